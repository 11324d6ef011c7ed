package pipeline

import (
	"context"

	"threadsfetcher/internal/domain"
)

// Client runs the full escalation pipeline for one post URL. The only error
// it ever returns is threadsurl.ErrInvalidFormat; every other failure mode
// degrades into an empty-but-well-formed record with diagnostics attached.
type Client interface {
	FetchPost(ctx context.Context, rawURL string) (*domain.PostRecord, error)
}
