package rendererimpl

import (
	"context"
	"errors"

	"go.uber.org/fx"

	"threadsfetcher/internal/domain"
	"threadsfetcher/internal/parser"
	"threadsfetcher/internal/renderer"
	"threadsfetcher/internal/threadsurl"
	"threadsfetcher/pkg/logger"
)

type Opts struct {
	fx.In

	Navigator renderer.Navigator
	Parser    parser.Client
	Logger    logger.Logger
}

type RendererImpl struct {
	Navigator renderer.Navigator
	Parser    parser.Client
	Logger    logger.Logger
}

func New(opts Opts) *RendererImpl {
	return &RendererImpl{
		Navigator: opts.Navigator,
		Parser:    opts.Parser,
		Logger:    opts.Logger,
	}
}

var _ renderer.Client = (*RendererImpl)(nil)

// RenderAndParse drives a browser session to the canonical URL and feeds the
// rendered markup through the same parser used by the direct tier, so
// extraction semantics are identical no matter which tier got the markup.
func (r *RendererImpl) RenderAndParse(ctx context.Context, rawURL string) *domain.PostRecord {
	target, err := threadsurl.Normalize(rawURL)
	if err != nil {
		post := domain.NewPostRecord(rawURL)
		post.AddDiagnostic("renderer", "invalid url: "+err.Error())
		return post
	}

	finalURL, markup, err := r.Navigator.Navigate(ctx, target)
	if err != nil {
		post := domain.NewPostRecord(target)
		if errors.Is(err, renderer.ErrUnavailable) {
			post.AddDiagnostic("renderer", "unavailable: "+err.Error())
		} else {
			post.AddDiagnostic("renderer", "navigate failed: "+err.Error())
		}
		r.Logger.Warn("headless render failed", "url", target, "error", err)
		return post
	}

	return r.Parser.Parse(markup, finalURL)
}
