package transport

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/OctaInsight/kpi-dashboard/internal/chart"
	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
)

func (s *Server) handleOverviewChart(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.records.Overview(r.Context(), projectParam(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	typ := chart.OverviewBar
	switch r.URL.Query().Get("type") {
	case "scatter":
		typ = chart.OverviewScatter
	case "", "bar", "histogram":
		// histogram is rendered as the bar view
	default:
		writeError(w, http.StatusBadRequest, "unknown chart type")
		return
	}

	s.renderChart(w, r, func(scheme chart.Scheme, buf *bytes.Buffer) error {
		return chart.Overview(summaries, typ, scheme, projectParam(r), buf)
	})
}

func (s *Server) handleStatusChart(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.records.Overview(r.Context(), projectParam(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.renderChart(w, r, func(scheme chart.Scheme, buf *bytes.Buffer) error {
		return chart.StatusPie(summaries, scheme, projectParam(r), buf)
	})
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	history, err := s.records.History(r.Context(), projectParam(r), pathParam(r, "kpi"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.renderChart(w, r, func(scheme chart.Scheme, buf *bytes.Buffer) error {
		return chart.Trend(history, scheme, buf)
	})
}

func (s *Server) handleTargetChart(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.latestForKPI(w, r)
	if !ok {
		return
	}
	s.renderChart(w, r, func(scheme chart.Scheme, buf *bytes.Buffer) error {
		return chart.TargetBar(rec, scheme, buf)
	})
}

func (s *Server) handleGaugeChart(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.records.Overview(r.Context(), projectParam(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	kpiName := pathParam(r, "kpi")
	for _, summary := range summaries {
		if summary.KPI == kpiName {
			s.renderChart(w, r, func(scheme chart.Scheme, buf *bytes.Buffer) error {
				return chart.Gauge(summary, scheme, buf)
			})
			return
		}
	}
	writeError(w, http.StatusNotFound, "kpi not found")
}

func (s *Server) handleGenderChart(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.latestForKPI(w, r)
	if !ok {
		return
	}
	s.renderChart(w, r, func(scheme chart.Scheme, buf *bytes.Buffer) error {
		return chart.GenderPie(rec, scheme, buf)
	})
}

func (s *Server) latestForKPI(w http.ResponseWriter, r *http.Request) (kpi.Record, bool) {
	latest, err := s.records.Latest(r.Context(), projectParam(r))
	if err != nil {
		s.writeServiceError(w, err)
		return kpi.Record{}, false
	}

	kpiName := pathParam(r, "kpi")
	for _, rec := range latest {
		if rec.KPI == kpiName {
			return rec, true
		}
	}
	writeError(w, http.StatusNotFound, "kpi not found")
	return kpi.Record{}, false
}

// renderChart renders into a buffer first so a failed render never leaves a
// truncated image on the wire.
func (s *Server) renderChart(w http.ResponseWriter, r *http.Request, render func(chart.Scheme, *bytes.Buffer) error) {
	scheme := chart.SchemeByName(r.URL.Query().Get("scheme"))

	var buf bytes.Buffer
	if err := render(scheme, &buf); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			writeError(w, http.StatusNotFound, "no data to chart")
			return
		}
		if s.logger != nil {
			s.logger.Error("chart render failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, "chart render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
