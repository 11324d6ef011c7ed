package fetcher

import (
	"context"

	"threadsfetcher/internal/domain"
)

// User-agent profiles rotated during direct fetches. Threads serves
// materially different markup per client class, so all three are tried.
const (
	UADesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/124.0.0.0 Safari/537.36"
	UAMobile = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	// App signature known to unlock variants the web UAs don't get.
	UAApp = "Instagram 305.0.0.34.110 Android (31/12; 420dpi; 1080x2138; Xiaomi; M2102K1G; star; qcom; en_US)"

	AcceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	AcceptLanguage = "en-US,en;q=0.9,zh-TW;q=0.8,zh;q=0.7"
)

// Client is the first extraction tier: plain HTTP retrieval across candidate
// URLs and user-agent profiles. The returned record is never nil; ok reports
// whether it carries usable content. Total failure leaves diagnostics on the
// record instead of an error.
type Client interface {
	FetchDirect(ctx context.Context, rawURL string) (post *domain.PostRecord, ok bool)
}
