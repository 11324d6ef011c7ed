package enricherimpl_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"threadsfetcher/internal/domain"
	"threadsfetcher/internal/enricher/enricherimpl"
	"threadsfetcher/pkg/config"
	"threadsfetcher/pkg/logger"
)

func newEnricher(t *testing.T, endpoint string) *enricherimpl.EnricherImpl {
	t.Helper()

	cfg := &config.Config{}
	cfg.Fetcher.TimeoutSeconds = 2

	e := enricherimpl.New(enricherimpl.Opts{
		Logger: logger.New(logger.Opts{}),
		Config: cfg,
	})
	e.Endpoint = endpoint
	return e
}

func oEmbedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("omitscript"))
		require.NotEmpty(t, r.URL.Query().Get("url"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const oEmbedBody = `{
  "author_name": "Jane Doe",
  "thumbnail_url": "https://cdn.example.com/thumb.jpg",
  "html": "<blockquote>embedded</blockquote>"
}`

func TestEnrichFillsEmptyFields(t *testing.T) {
	srv := oEmbedServer(t, http.StatusOK, oEmbedBody)
	e := newEnricher(t, srv.URL)

	post := domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en")
	e.Enrich(context.Background(), post)

	require.Equal(t, "Jane Doe", post.AuthorName)
	require.Equal(t, "<blockquote>embedded</blockquote>", post.EmbedMarkup)
	require.Equal(t, []domain.MediaItem{
		{Kind: domain.MediaImage, URL: "https://cdn.example.com/thumb.jpg"},
	}, post.Media)
}

func TestEnrichNeverOverwritesAuthorName(t *testing.T) {
	srv := oEmbedServer(t, http.StatusOK, oEmbedBody)
	e := newEnricher(t, srv.URL)

	post := domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en")
	post.AuthorName = "Already Known"
	e.Enrich(context.Background(), post)

	require.Equal(t, "Already Known", post.AuthorName)
}

func TestEnrichSkipsThumbnailWhenMediaPresent(t *testing.T) {
	srv := oEmbedServer(t, http.StatusOK, oEmbedBody)
	e := newEnricher(t, srv.URL)

	existing := domain.MediaItem{Kind: domain.MediaImage, URL: "https://cdn.example.com/real.jpg"}
	post := domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en")
	post.Media = []domain.MediaItem{existing}
	e.Enrich(context.Background(), post)

	require.Equal(t, []domain.MediaItem{existing}, post.Media)
	require.Equal(t, "<blockquote>embedded</blockquote>", post.EmbedMarkup)
}

func TestEnrichSwallowsServerErrors(t *testing.T) {
	srv := oEmbedServer(t, http.StatusTooManyRequests, `{"error":"slow down"}`)
	e := newEnricher(t, srv.URL)

	post := domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en")
	e.Enrich(context.Background(), post)

	require.Equal(t, domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en"), post)
}

func TestEnrichSwallowsUnusableBodies(t *testing.T) {
	srv := oEmbedServer(t, http.StatusOK, `{"version":"1.0"}`)
	e := newEnricher(t, srv.URL)

	post := domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en")
	e.Enrich(context.Background(), post)

	require.Equal(t, domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en"), post)
}

func TestEnrichSwallowsUnreachableEndpoint(t *testing.T) {
	e := newEnricher(t, "http://127.0.0.1:1")

	post := domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en")
	e.Enrich(context.Background(), post)

	require.Equal(t, domain.NewPostRecord("https://threads.net/@janedoe/post/XYZ?hl=en"), post)
}
