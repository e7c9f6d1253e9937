// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	scs "github.com/alexedwards/scs/v2"

	"github.com/briangreenhill/athletiq/internal/app"
	"github.com/briangreenhill/athletiq/internal/auth"
	"github.com/briangreenhill/athletiq/internal/config"
	"github.com/briangreenhill/athletiq/internal/http/routes"
	"github.com/briangreenhill/athletiq/internal/logging"
	"github.com/briangreenhill/athletiq/internal/metrics"
	"github.com/briangreenhill/athletiq/web"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	a, err := app.New(ctx, cfg, app.Options{Logger: logger, Recorder: m, Enqueue: true})
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	// Sessions
	sess := scs.New()
	sess.Lifetime = 12 * time.Hour
	sess.Cookie.HttpOnly = true
	sess.Cookie.SameSite = http.SameSiteLaxMode
	sess.Cookie.Secure = false

	tmpl := template.Must(web.ParseTemplates(routes.TemplateFuncs()))

	s := routes.New(routes.ServerOptions{
		Sess:  sess,
		Tmpl:  tmpl,
		Plans: a.Service,
		Download: auth.DownloadLink{
			Secret:  []byte(cfg.SigningSecret),
			BaseURL: cfg.BaseURL,
		},
		Cfg:     cfg,
		Logger:  logger,
		Metrics: m,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("port", cfg.Port).Bool("async", cfg.AsyncEnabled).Msg("starting api")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
