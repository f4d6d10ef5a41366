package export

import "context"

// WithExec swaps the share target's PATH lookup and command runner.
func (t *ShareTarget) WithExec(look func(string) (string, error), run func(ctx context.Context, name string, args ...string) error) *ShareTarget {
	t.lookPath, t.run = look, run
	return t
}
