package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"soldash/internal/charts"
	"soldash/internal/dataset"
	"soldash/internal/observability"
	"soldash/internal/view"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/tab/"+view.Tabs()[0].Slug, http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleReady reports ready only when the snapshot metadata is loadable —
// without it every render halts.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := s.loader.LoadMetadata(); err != nil {
		http.Error(w, `{"status":"not ready"}`, http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	tab, ok := view.Find(chi.URLParam(r, "slug"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	start := time.Now()
	snap, err := s.loader.Load()
	if err != nil {
		observability.RendersTotal.WithLabelValues(tab.Slug, "error").Inc()
		s.logger.Error().Err(err).Msg("render halted: metadata unavailable")
		s.renderHTML(w, tmplError, pageData{
			Tabs:   navTabs(),
			Active: tab.Slug,
			Error:  err.Error(),
		}, http.StatusInternalServerError)
		return
	}

	sel := parseSelections(r)
	model := view.Build(snap, tab, sel, s.displayOptions())

	observability.RendersTotal.WithLabelValues(tab.Slug, "ok").Inc()
	observability.RenderDuration.WithLabelValues(tab.Slug).Observe(time.Since(start).Seconds())

	s.renderHTML(w, tmplTab, pageData{
		Tabs:           navTabs(),
		Active:         tab.Slug,
		LastUpdated:    snap.Metadata.LastUpdated,
		Model:          model,
		ChartImgs:      chartImgs(tab, r.URL.Query()),
		MinValue:       floatParam(sel.RangeMin),
		MaxValue:       floatParam(sel.RangeMax),
		ThresholdValue: floatParam(sel.Threshold),
	}, http.StatusOK)
}

// chartImgs points the page's <img> tags at the chart endpoint, carrying the
// current filter selections through so both render the same derived table.
func chartImgs(tab view.TabSpec, query url.Values) []chartImg {
	imgs := make([]chartImg, 0, len(tab.Charts))
	for _, c := range tab.Charts {
		u := url.URL{
			Path:     "/tab/" + tab.Slug + "/chart/" + c.Name + ".png",
			RawQuery: query.Encode(),
		}
		imgs = append(imgs, chartImg{Title: c.Title, URL: u.String()})
	}
	return imgs
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	tab, ok := view.Find(chi.URLParam(r, "slug"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	spec, ok := tab.Chart(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	snap, err := s.loader.Load()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Aggregate-table charts (e.g. TVL by category) draw their own dataset
	// unfiltered; everything else draws the tab's filtered view.
	var t dataset.Table
	if spec.Dataset != "" {
		t = snap.Table(spec.Dataset)
	} else {
		t = view.FilteredTable(snap, tab, parseSelections(r))
	}

	params := charts.Params{
		Title:       spec.Title,
		LabelColumn: spec.LabelColumn,
		ValueColumn: spec.ValueColumn,
		XColumn:     spec.XColumn,
		YColumn:     spec.YColumn,
		GroupColumn: spec.GroupColumn,
		Width:       s.cfg.Charts.Width,
		Height:      s.cfg.Charts.Height,
		Bins:        s.cfg.Charts.HistogramBins,
	}

	w.Header().Set("Content-Type", "image/png")
	if err := charts.Render(spec.Kind, t, params, w); err != nil {
		s.logger.Error().Err(err).Str("chart", spec.Name).Msg("chart render failed")
	}
}

// ── JSON API ────────────────────────────────────────────────────────────

func (s *Server) handleAPITabs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, navTabs())
}

func (s *Server) handleAPITab(w http.ResponseWriter, r *http.Request) {
	tab, ok := view.Find(chi.URLParam(r, "slug"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown tab"})
		return
	}

	snap, err := s.loader.Load()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	model := view.Build(snap, tab, parseSelections(r), s.displayOptions())
	writeJSON(w, http.StatusOK, model)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
