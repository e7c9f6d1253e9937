package routes

import (
	"context"
	"html/template"
	"net/http"
	"time"

	scs "github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/auth"
	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/config"
	appmw "github.com/briangreenhill/athletiq/internal/http/middleware"
	"github.com/briangreenhill/athletiq/internal/metrics"
	"github.com/briangreenhill/athletiq/internal/plan"
)

const sessionLastPlan = "last_plan_id"

// Plans is the part of plan.Service the handlers use.
type Plans interface {
	Assess(p athlete.Profile) (bmi.Result, string, error)
	Generate(ctx context.Context, p athlete.Profile) (*plan.Plan, error)
	Enqueue(ctx context.Context, p athlete.Profile) (*plan.Plan, error)
	Get(ctx context.Context, id uuid.UUID) (*plan.Plan, error)
}

type Server struct {
	Router      *chi.Mux
	Sess        *scs.SessionManager
	Tmpl        *template.Template
	Plans       Plans
	Download    auth.DownloadLink
	DownloadTTL time.Duration
	AppName     string
	Async       bool
}

type ServerOptions struct {
	Sess     *scs.SessionManager
	Tmpl     *template.Template
	Plans    Plans
	Download auth.DownloadLink
	Cfg      config.Config
	Logger   zerolog.Logger
	Metrics  *metrics.Manager // optional
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(opts.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Str("request_id", chimw.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(chimw.Recoverer)

	s := &Server{
		Router:      r,
		Sess:        opts.Sess,
		Tmpl:        opts.Tmpl,
		Plans:       opts.Plans,
		Download:    opts.Download,
		DownloadTTL: opts.Cfg.DownloadTTL,
		AppName:     opts.Cfg.AppName,
		Async:       opts.Cfg.AsyncEnabled,
	}
	if s.AppName == "" {
		s.AppName = "Athletiq_AI"
	}
	if s.DownloadTTL <= 0 {
		s.DownloadTTL = 24 * time.Hour
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Get("/", s.handleHome)
	r.Post("/plan", s.handlePlanSubmit)
	r.Get("/plan/last", s.handleLastPlan)
	r.Get("/plans/{planID}/download", s.handleDownload)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.New(cors.Options{
			AllowedOrigins: opts.Cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", appmw.APIKeyHeader},
		}).Handler)
		api.Use(appmw.RequireAPIKey(opts.Cfg.APIKey))
		api.Post("/bmi", s.handleAPIBMI)
		api.Post("/prompt", s.handleAPIPrompt)
		api.Post("/plans", s.handleAPICreatePlan)
		api.Get("/plans/{planID}", s.handleAPIGetPlan)
	})

	return s
}

// Handler wraps the router with session loading.
func (s *Server) Handler() http.Handler {
	return s.Sess.LoadAndSave(s.Router)
}

// TemplateFuncs are the helpers the page templates expect.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"label":      func(c bmi.Category) string { return c.Label(bmi.LabelsCoaching) },
		"disclaimer": func() string { return bmi.Disclaimer },
	}
}

func (s *Server) downloadURL(p *plan.Plan) string {
	if p == nil || p.Status != plan.StatusReady || p.Unsaved {
		return ""
	}
	return s.Download.URL(p.ID.String(), s.DownloadTTL)
}
