package renderer

import (
	"context"
	"errors"

	"threadsfetcher/internal/domain"
)

// ErrUnavailable is reported by a Navigator when no browser runtime exists
// in the execution environment. The pipeline degrades instead of crashing.
var ErrUnavailable = errors.New("browser runtime unavailable")

// Navigator is the minimal capability the render tier needs from a browser
// automation engine: load a page and hand back the final (possibly
// redirected) URL with the fully rendered markup. The concrete engine is an
// injectable implementation detail and absent entirely in tests.
type Navigator interface {
	Navigate(ctx context.Context, url string) (finalURL string, markup string, err error)
}

// Client is the last-resort extraction tier. It never returns an error:
// navigation failures and runtime unavailability come back as an empty
// record carrying a diagnostic.
type Client interface {
	RenderAndParse(ctx context.Context, rawURL string) *domain.PostRecord
}
