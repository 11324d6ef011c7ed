package rendererimpl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"threadsfetcher/internal/parser/parserimpl"
	"threadsfetcher/internal/renderer"
	"threadsfetcher/internal/renderer/rendererimpl"
	"threadsfetcher/pkg/logger"
)

type fakeNavigator struct {
	finalURL string
	markup   string
	err      error
	calls    int
	lastURL  string
}

func (f *fakeNavigator) Navigate(_ context.Context, url string) (string, string, error) {
	f.calls++
	f.lastURL = url
	if f.err != nil {
		return "", "", f.err
	}
	return f.finalURL, f.markup, nil
}

func newRenderer(t *testing.T, nav renderer.Navigator) *rendererimpl.RendererImpl {
	t.Helper()
	log := logger.New(logger.Opts{})
	return rendererimpl.New(rendererimpl.Opts{
		Navigator: nav,
		Parser:    parserimpl.New(parserimpl.Opts{Logger: log}),
		Logger:    log,
	})
}

const renderedFixture = `<html><head>
<meta property="og:description" content="rendered body" />
<meta property="og:image" content="https://cdn.example.com/rendered.jpg" />
</head><body></body></html>`

func TestRenderAndParseUsesSharedParser(t *testing.T) {
	nav := &fakeNavigator{
		finalURL: "https://threads.net/@acct/post/XYZ?hl=en",
		markup:   renderedFixture,
	}
	r := newRenderer(t, nav)

	post := r.RenderAndParse(context.Background(), "https://www.threads.net/@acct/post/XYZ/")

	require.Equal(t, 1, nav.calls)
	require.Equal(t, "https://threads.net/@acct/post/XYZ?hl=en", nav.lastURL,
		"should navigate to the canonical URL")
	require.Equal(t, "rendered body", post.Text)
	require.Len(t, post.Media, 1)
	require.Equal(t, "acct", post.AuthorUsername)
}

func TestRenderAndParseReportsNavigationFailure(t *testing.T) {
	nav := &fakeNavigator{err: errors.New("net::ERR_TIMED_OUT")}
	r := newRenderer(t, nav)

	post := r.RenderAndParse(context.Background(), "https://threads.net/@acct/post/XYZ")

	require.False(t, post.HasContent())
	require.Contains(t, post.Diagnostics["renderer"], "navigate failed")
}

func TestRenderAndParseReportsMissingRuntime(t *testing.T) {
	nav := &fakeNavigator{err: fmt.Errorf("%w: no chrome binary", renderer.ErrUnavailable)}
	r := newRenderer(t, nav)

	post := r.RenderAndParse(context.Background(), "https://threads.net/@acct/post/XYZ")

	require.False(t, post.HasContent())
	require.Contains(t, post.Diagnostics["renderer"], "unavailable")
}

func TestRenderAndParseRejectsInvalidURLWithoutNavigating(t *testing.T) {
	nav := &fakeNavigator{}
	r := newRenderer(t, nav)

	post := r.RenderAndParse(context.Background(), "https://example.com/not-a-post")

	require.Equal(t, 0, nav.calls)
	require.Contains(t, post.Diagnostics["renderer"], "invalid url")
}
