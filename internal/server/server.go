// Package server hosts the dashboard. Every request is a full render cycle:
// load the snapshot, apply the current filter selections, resolve KPIs, and
// render — no state is kept between requests.
package server

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"soldash/internal/config"
	"soldash/internal/dataset"
	"soldash/internal/middleware"
	"soldash/internal/view"
)

// Server wires the dataset loader to the HTTP surface.
type Server struct {
	cfg    *config.Config
	logger zerolog.Logger
	loader *dataset.Loader
}

// New constructs the dashboard server.
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.With().Str("component", "server").Logger(),
		loader: dataset.NewLoader(cfg.Data.Dir, cfg.Data.MetadataFile, logger),
	}
}

// Router assembles the chi route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recover(s.logger))
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(s.cfg.Server.CORSOrigin))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Get("/", s.handleIndex)
	r.Get("/tab/{slug}", s.handleTab)
	r.Get("/tab/{slug}/chart/{name}.png", s.handleChart)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tabs", s.handleAPITabs)
		r.Get("/tab/{slug}", s.handleAPITab)
	})

	return r
}

// HTTPServer builds the http.Server around the router.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
}

func (s *Server) displayOptions() view.Options {
	return view.Options{
		MaxCategories: s.cfg.Display.MaxCategories,
		TopNChoices:   s.cfg.Display.TopNChoices,
		MaxTableRows:  s.cfg.Display.MaxTableRows,
	}
}

// parseSelections reads the filter widgets from query parameters. Every
// widget has a default: all categories (up to the display cap), the full
// numeric range, top-N "All".
func parseSelections(r *http.Request) view.Selections {
	q := r.URL.Query()

	sel := view.Selections{
		Token: q.Get("token"),
	}

	if cats, ok := q["category"]; ok {
		for _, c := range cats {
			if c != "" {
				sel.Categories = append(sel.Categories, c)
			}
		}
	}

	if v, err := strconv.ParseFloat(q.Get("min"), 64); err == nil {
		sel.RangeMin = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max"), 64); err == nil {
		sel.RangeMax = &v
	}
	if v, err := strconv.Atoi(q.Get("top")); err == nil && v > 0 {
		sel.TopN = v
	}
	if v, err := strconv.ParseFloat(q.Get("threshold"), 64); err == nil {
		sel.Threshold = &v
	}

	return sel
}

// ── HTML rendering ──────────────────────────────────────────────────────

type navTab struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type pageData struct {
	Tabs        []navTab
	Active      string
	LastUpdated time.Time

	Model          view.Model
	ChartImgs      []chartImg
	MinValue       string
	MaxValue       string
	ThresholdValue string

	Error string
}

type chartImg struct {
	Title string
	URL   string
}

func navTabs() []navTab {
	specs := view.Tabs()
	tabs := make([]navTab, 0, len(specs))
	for _, t := range specs {
		tabs = append(tabs, navTab{Slug: t.Slug, Title: t.Title})
	}
	return tabs
}

func (s *Server) renderHTML(w http.ResponseWriter, tmpl string, data pageData, status int) {
	t, err := template.New("page").Parse(tmplBase + tmpl)
	if err != nil {
		s.logger.Error().Err(err).Msg("template parse failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		s.logger.Error().Err(err).Msg("template execute failed")
	}
}

func floatParam(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
