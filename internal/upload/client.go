package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is Cloudinary's API host.
const DefaultBaseURL = "https://api.cloudinary.com"

// GenericMessage is reported when the server gives no reason of its own.
const GenericMessage = "Upload failed"

// Config routes uploads to one cloud, preset and folder.
type Config struct {
	BaseURL      string
	CloudName    string
	UploadPreset string
	Folder       string
}

// Error is an upload the server rejected, or one that never got a usable
// answer.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// ErrNotConfigured is returned when no cloud name or preset is set.
var ErrNotConfigured = errors.New("upload: cloud name and upload preset are required")

// Client uploads files to Cloudinary.
type Client struct {
	Config
	HTTP *http.Client
}

func New(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{Config: cfg, HTTP: httpClient}
}

// Configured reports whether uploads can be attempted at all.
func (c *Client) Configured() bool {
	return c.CloudName != "" && c.UploadPreset != ""
}

// Endpoint is the upload URL for the configured cloud.
func (c *Client) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + "/v1_1/" + url.PathEscape(c.CloudName) + "/image/upload"
}

type response struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts the file read from r and returns its secure_url.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if filename == "" {
		filename = "upload.png"
	}

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("read upload %s: %w", filename, err)
	}
	if err := mw.WriteField("upload_preset", c.UploadPreset); err != nil {
		return "", err
	}
	if c.Folder != "" {
		if err := mw.WriteField("folder", c.Folder); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", &Error{Message: GenericMessage, Err: err}
	}
	defer resp.Body.Close()

	var out response
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out)

	if resp.StatusCode/100 != 2 {
		msg := GenericMessage
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", &Error{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", &Error{Status: resp.StatusCode, Message: GenericMessage, Err: decodeErr}
	}
	if out.SecureURL == "" {
		return "", &Error{Status: resp.StatusCode, Message: GenericMessage, Err: errors.New("response has no secure_url")}
	}
	return out.SecureURL, nil
}
