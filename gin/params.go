package gin

import (
	"context"
)

// The decoders look params up with the literal string key, so the value has
// to be stored under it as well.
func contextWithParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, "params", params) //nolint:staticcheck
}
