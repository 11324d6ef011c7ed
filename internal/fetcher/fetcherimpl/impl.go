package fetcherimpl

import (
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/fx"

	"threadsfetcher/internal/fetcher"
	"threadsfetcher/internal/parser"
	"threadsfetcher/internal/threadsurl"
	"threadsfetcher/pkg/config"
	"threadsfetcher/pkg/logger"
)

var userAgents = []string{fetcher.UADesktop, fetcher.UAMobile, fetcher.UAApp}

var transientStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

type Opts struct {
	fx.In

	Parser parser.Client
	Logger logger.Logger
	Config *config.Config
}

type FetcherImpl struct {
	Client *resty.Client
	Parser parser.Client
	Logger logger.Logger
	Config *config.Config

	// Candidates is swappable so tests can point the host×query iteration
	// at a local server.
	Candidates func(string) ([]string, error)
}

func New(opts Opts) *FetcherImpl {
	client := resty.New().
		SetTimeout(opts.Config.FetchTimeout()).
		SetHeader("Accept", fetcher.AcceptHTML).
		SetHeader("Accept-Language", fetcher.AcceptLanguage)

	return &FetcherImpl{
		Client:     client,
		Parser:     opts.Parser,
		Logger:     opts.Logger,
		Config:     opts.Config,
		Candidates: threadsurl.Candidates,
	}
}

var _ fetcher.Client = (*FetcherImpl)(nil)
