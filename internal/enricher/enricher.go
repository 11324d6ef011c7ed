package enricher

import (
	"context"

	"threadsfetcher/internal/domain"
)

// Client is the second extraction tier: a lightweight oEmbed lookup that
// fills gaps left by the direct fetch. Strictly best-effort; implementations
// must swallow every failure and leave the record untouched when the lookup
// does not succeed. Already-set fields are never overwritten.
type Client interface {
	Enrich(ctx context.Context, post *domain.PostRecord)
}
