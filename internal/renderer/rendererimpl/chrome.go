package rendererimpl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"go.uber.org/fx"

	"threadsfetcher/internal/fetcher"
	"threadsfetcher/internal/renderer"
	"threadsfetcher/pkg/config"
	"threadsfetcher/pkg/logger"
)

type NavigatorOpts struct {
	fx.In

	Logger logger.Logger
	Config *config.Config
}

// ChromeNavigator renders pages in a headless Chrome session scoped to a
// single Navigate call. The session and its process are torn down on every
// exit path, including timeouts.
type ChromeNavigator struct {
	Logger logger.Logger
	Config *config.Config
}

func NewChromeNavigator(opts NavigatorOpts) *ChromeNavigator {
	return &ChromeNavigator{
		Logger: opts.Logger,
		Config: opts.Config,
	}
}

var _ renderer.Navigator = (*ChromeNavigator)(nil)

func (n *ChromeNavigator) Navigate(ctx context.Context, url string) (string, string, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(fetcher.UAMobile),
		chromedp.Flag("lang", "en-US"),
		chromedp.Flag("disable-gpu", true),
	)
	for _, arg := range n.Config.BrowserLaunchArgs() {
		name, value, ok := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "" {
			continue
		}
		if ok {
			allocOpts = append(allocOpts, chromedp.Flag(name, value))
		} else {
			allocOpts = append(allocOpts, chromedp.Flag(name, true))
		}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// Hard timeout independent of any caller-supplied deadline.
	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, n.Config.BrowserTimeout())
	defer timeoutCancel()

	var finalURL, markup string
	err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetUserAgentOverride(fetcher.UAMobile).
				WithAcceptLanguage("en-US").
				Do(ctx)
		}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Settle delay: client-side rendering keeps mutating the DOM for a
		// moment after the document is ready.
		chromedp.Sleep(n.Config.BrowserSettleDelay()),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &markup),
	)
	if err != nil {
		if isRuntimeMissing(err) {
			return "", "", fmt.Errorf("%w: %v", renderer.ErrUnavailable, err)
		}
		return "", "", err
	}
	return finalURL, markup, nil
}

func isRuntimeMissing(err error) bool {
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "executable file not found")
}
