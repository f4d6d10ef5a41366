package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds remote fetches made without a caller-supplied client.
const DefaultTimeout = 12 * time.Second

// MaxBodyBytes caps a single response body or uploaded file.
const MaxBodyBytes = 32 << 20

// ErrTooLarge is returned for bodies over MaxBodyBytes.
var ErrTooLarge = errors.New("body exceeds 32 MiB limit")

// ReadLimited reads all of r, failing with ErrTooLarge instead of returning a
// truncated body.
func ReadLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > MaxBodyBytes {
		return nil, ErrTooLarge
	}
	return b, nil
}

// GetBytes fetches url and returns the body together with its Content-Type.
// Non-2xx responses are errors.
func GetBytes(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, "", fmt.Errorf("get %s: %s", url, resp.Status)
	}
	if resp.ContentLength > MaxBodyBytes {
		return nil, "", fmt.Errorf("get %s: %w", url, ErrTooLarge)
	}
	b, err := ReadLimited(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("get %s: %w", url, err)
	}
	return b, resp.Header.Get("Content-Type"), nil
}
