package fetcherimpl

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"threadsfetcher/internal/domain"
	"threadsfetcher/internal/threadsurl"
	"threadsfetcher/pkg/retry"
)

// FetchDirect iterates candidate URLs (outer) and user-agent profiles
// (inner), retrying each pair on transient statuses, and short-circuits on
// the first response that parses into usable content. Worst case is bounded:
// both sets are small and fixed.
func (f *FetcherImpl) FetchDirect(ctx context.Context, rawURL string) (*domain.PostRecord, bool) {
	candidates, err := f.Candidates(rawURL)
	if err != nil {
		return domain.NewPostRecord(rawURL), false
	}

	var (
		lastStatus int
		lastURL    string
		lastBody   string
	)

	for _, candidate := range candidates {
		for _, ua := range userAgents {
			var usable *domain.PostRecord

			attempt := func() error {
				resp, err := f.Client.R().
					SetContext(ctx).
					SetHeader("User-Agent", ua).
					Get(candidate)
				if err != nil {
					return err
				}

				lastStatus = resp.StatusCode()
				finalURL := finalRequestURL(resp.RawResponse, candidate)
				lastURL = finalURL
				body := string(resp.Body())

				switch {
				case resp.StatusCode() == http.StatusOK && strings.Contains(strings.ToLower(body), "<html"):
					post := f.Parser.Parse(body, finalURL)
					if post.HasContent() {
						usable = post
						return nil
					}
					// Parsed clean but empty: keep the body around for
					// diagnostics and move on to the next pair.
					lastBody = body
					return nil
				case transientStatuses[resp.StatusCode()]:
					return fmt.Errorf("transient status %d from %s", resp.StatusCode(), candidate)
				default:
					// 403/404 and friends won't improve with retries.
					lastBody = body
					return nil
				}
			}

			err := retry.Do(ctx, f.Logger, "threads direct fetch", attempt, f.retryConfig())
			if err != nil {
				f.Logger.Debug("direct fetch attempt exhausted",
					"candidate", candidate, "user_agent", ua, "error", err)
				continue
			}
			if usable != nil {
				return usable, true
			}
		}
	}

	canonical, nerr := threadsurl.Normalize(rawURL)
	if nerr != nil {
		canonical = rawURL
	}
	post := domain.NewPostRecord(canonical)
	if lastStatus != 0 {
		post.AddDiagnostic("direct_last_status", strconv.Itoa(lastStatus))
	}
	if lastURL != "" {
		post.AddDiagnostic("direct_last_url", lastURL)
	}
	if lastBody != "" {
		if path, err := f.saveDebugBody("requests_last.html", lastBody); err == nil {
			post.AddDiagnostic("direct_last_html_path", path)
		}
	}
	return post, false
}

func (f *FetcherImpl) retryConfig() retry.Config {
	return retry.Config{
		MaxRetries:      f.Config.Fetcher.Retries,
		InitialInterval: f.Config.FetchBackoffInterval(),
		MaxInterval:     f.Config.FetchTimeout(),
		Multiplier:      f.Config.Fetcher.BackoffFactor,
	}
}

// saveDebugBody writes the last failed response body for offline inspection.
// Best-effort: files are loosely keyed and may be overwritten under
// concurrent failures.
func (f *FetcherImpl) saveDebugBody(name, body string) (string, error) {
	dir := f.Config.Fetcher.DebugDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func finalRequestURL(raw *http.Response, fallback string) string {
	if raw != nil && raw.Request != nil && raw.Request.URL != nil {
		return raw.Request.URL.String()
	}
	return fallback
}
