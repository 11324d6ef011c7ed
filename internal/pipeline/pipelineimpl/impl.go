package pipelineimpl

import (
	"context"

	"go.uber.org/fx"

	"threadsfetcher/internal/domain"
	"threadsfetcher/internal/enricher"
	"threadsfetcher/internal/fetcher"
	"threadsfetcher/internal/media"
	"threadsfetcher/internal/pipeline"
	"threadsfetcher/internal/renderer"
	"threadsfetcher/internal/threadsurl"
	"threadsfetcher/pkg/formatter"
	"threadsfetcher/pkg/logger"
)

type Opts struct {
	fx.In

	Fetcher  fetcher.Client
	Enricher enricher.Client
	Renderer renderer.Client
	Logger   logger.Logger
}

type PipelineImpl struct {
	Fetcher  fetcher.Client
	Enricher enricher.Client
	Renderer renderer.Client
	Logger   logger.Logger
}

func New(opts Opts) *PipelineImpl {
	return &PipelineImpl{
		Fetcher:  opts.Fetcher,
		Enricher: opts.Enricher,
		Renderer: opts.Renderer,
		Logger:   opts.Logger,
	}
}

var _ pipeline.Client = (*PipelineImpl)(nil)

// FetchPost escalates through the tiers strictly forward: direct fetch,
// then oEmbed enrichment when text or media is still missing, then a
// headless render only when both are missing. A tier is never re-entered
// and later tiers only fill what earlier ones left empty.
func (p *PipelineImpl) FetchPost(ctx context.Context, rawURL string) (*domain.PostRecord, error) {
	if !threadsurl.Valid(rawURL) {
		// Fail before any network work happens.
		_, err := threadsurl.Normalize(rawURL)
		return nil, err
	}

	post, ok := p.Fetcher.FetchDirect(ctx, rawURL)
	if !ok {
		p.Logger.Debug("direct fetch produced no content", "url", rawURL)
	}

	if post.Text == "" || len(post.Media) == 0 {
		p.Enricher.Enrich(ctx, post)
	}

	if post.Text == "" && len(post.Media) == 0 {
		rendered := p.Renderer.RenderAndParse(ctx, rawURL)
		p.merge(post, rendered)
	}

	return post, nil
}

// merge folds a rendered record into the accumulated one. Text only lands
// when it was still empty (the render tier is only reached in that state),
// media joins through the deduplicator rather than replacing wholesale, and
// diagnostics from earlier tiers win on key collisions.
func (p *PipelineImpl) merge(post, rendered *domain.PostRecord) {
	post.Text = formatter.FirstNonEmpty(post.Text, rendered.Text)
	post.AuthorName = formatter.FirstNonEmpty(post.AuthorName, rendered.AuthorName)
	post.AuthorUsername = formatter.FirstNonEmpty(post.AuthorUsername, rendered.AuthorUsername)
	post.CreatedAt = formatter.FirstNonEmpty(post.CreatedAt, rendered.CreatedAt)
	for _, m := range rendered.Media {
		post.Media = media.AppendUnique(post.Media, m)
	}
	post.MergeDiagnostics(rendered.Diagnostics)
}
