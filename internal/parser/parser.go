package parser

import (
	"threadsfetcher/internal/domain"
)

// Client extracts a post record from raw page markup. Implementations must
// be pure: identical markup and source URL always yield an identical record,
// no matter which fetch tier produced the markup.
type Client interface {
	Parse(markup string, sourceURL string) *domain.PostRecord
}
