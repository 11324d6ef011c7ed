package enricherimpl

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/fx"

	"threadsfetcher/internal/domain"
	"threadsfetcher/internal/enricher"
	"threadsfetcher/internal/fetcher"
	"threadsfetcher/internal/media"
	"threadsfetcher/pkg/config"
	"threadsfetcher/pkg/formatter"
	"threadsfetcher/pkg/logger"
)

const defaultEndpoint = "https://www.threads.net/oembed"

type oEmbedResponse struct {
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
	HTML         string `json:"html"`
	Title        string `json:"title"`
	ProviderName string `json:"provider_name"`
}

type Opts struct {
	fx.In

	Logger logger.Logger
	Config *config.Config
}

type EnricherImpl struct {
	Client *resty.Client
	Logger logger.Logger

	// Endpoint is overridable for tests.
	Endpoint string
}

func New(opts Opts) *EnricherImpl {
	client := resty.New().
		SetTimeout(opts.Config.FetchTimeout()).
		SetHeader("User-Agent", fetcher.UADesktop).
		SetHeader("Accept", "application/json").
		SetHeader("Accept-Language", fetcher.AcceptLanguage)

	return &EnricherImpl{
		Client:   client,
		Logger:   opts.Logger,
		Endpoint: defaultEndpoint,
	}
}

var _ enricher.Client = (*EnricherImpl)(nil)

// Enrich fills author name (only if empty) and at most one thumbnail (only
// if no media was found), and records the embeddable markup. Failures of any
// kind leave the record as it was.
func (e *EnricherImpl) Enrich(ctx context.Context, post *domain.PostRecord) {
	result := &oEmbedResponse{}
	resp, err := e.Client.R().
		SetContext(ctx).
		SetQueryParam("url", post.URL).
		SetQueryParam("omitscript", "1").
		SetResult(result).
		Get(e.Endpoint)
	if err != nil {
		e.Logger.Debug("oEmbed lookup failed", "url", post.URL, "error", err)
		return
	}
	if resp.StatusCode() != http.StatusOK {
		e.Logger.Debug("oEmbed lookup rejected", "url", post.URL, "status", resp.StatusCode())
		return
	}

	if result.HTML == "" && result.AuthorName == "" && result.ThumbnailURL == "" {
		// Body did not decode into anything usable; treat like a failure.
		return
	}

	post.EmbedMarkup = result.HTML
	post.AuthorName = formatter.FirstNonEmpty(post.AuthorName, result.AuthorName)
	if len(post.Media) == 0 && result.ThumbnailURL != "" {
		post.Media = media.AppendUnique(post.Media, domain.MediaItem{
			Kind: domain.MediaImage,
			URL:  result.ThumbnailURL,
		})
	}
}
