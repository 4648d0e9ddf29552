// Package services contains the application services of the TinyLink
// client: links, administration, analytics and profile. Services validate
// input locally before any network call, keep mutating call and refresh
// strictly sequential within one action, and on failure leave the
// caller's prior state intact.
package services

import (
	"context"

	"github.com/tinylink/tinylink-cli/internal/client/api"
)

// Caller is the outbound-request surface services depend on.
type Caller interface {
	Call(ctx context.Context, path string, opts api.Options) (*api.Result, error)
}
