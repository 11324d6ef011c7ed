package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"

	"threadsfetcher/internal/enricher"
	"threadsfetcher/internal/enricher/enricherimpl"
	"threadsfetcher/internal/fetcher"
	"threadsfetcher/internal/fetcher/fetcherimpl"
	"threadsfetcher/internal/parser"
	"threadsfetcher/internal/parser/parserimpl"
	"threadsfetcher/internal/pipeline"
	"threadsfetcher/internal/pipeline/pipelineimpl"
	"threadsfetcher/internal/ratelimit"
	"threadsfetcher/internal/renderer"
	"threadsfetcher/internal/renderer/rendererimpl"
	"threadsfetcher/pkg/config"
	"threadsfetcher/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Provide(
		fx.Annotate(
			parserimpl.New,
			fx.As(new(parser.Client)),
		),
		fx.Annotate(
			fetcherimpl.New,
			fx.As(new(fetcher.Client)),
		),
		fx.Annotate(
			enricherimpl.New,
			fx.As(new(enricher.Client)),
		),
		fx.Annotate(
			rendererimpl.NewChromeNavigator,
			fx.As(new(renderer.Navigator)),
		),
		fx.Annotate(
			rendererimpl.New,
			fx.As(new(renderer.Client)),
		),
		fx.Annotate(
			pipelineimpl.New,
			fx.As(new(pipeline.Client)),
		),
	),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, pipe pipeline.Client) {
	// Each pipeline call can take tens of seconds when the render tier
	// fires; rate-limit per client so one caller can't pin every browser.
	limiter := ratelimit.NewInMemoryLimiter(1, 2*time.Second, 5)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	})
	router.Get("/api/v1/posts", handleFetchPost(log, pipe, limiter))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("Starting server", "port", cfg.App.Port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server")
			return server.Shutdown(ctx)
		},
	})
}
