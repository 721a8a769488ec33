package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
)

// scanSummary es el resumen de un scan sin sus records.
type scanSummary struct {
	ID           string                        `json:"id"`
	EventName    string                        `json:"event_name"`
	Scope        domain.Scope                  `json:"scope"`
	Event        *domain.EventResolution       `json:"event,omitempty"`
	FieldSize    int                           `json:"field_size"`
	Matched      int                           `json:"matched"`
	ExactMatches int                           `json:"exact_matches"`
	FuzzyMatches int                           `json:"fuzzy_matches"`
	Skipped      int                           `json:"skipped"`
	OutOfEvent   int                           `json:"out_of_event"`
	Records      int                           `json:"records"`
	SeriesErrors map[domain.OutcomeType]string `json:"series_errors,omitempty"`
	ScannedAt    time.Time                     `json:"scanned_at"`
}

func newScanSummary(r domain.ScanResult) scanSummary {
	return scanSummary{
		ID:           r.ID,
		EventName:    r.EventName,
		Scope:        r.Scope,
		Event:        r.Event,
		FieldSize:    r.FieldSize,
		Matched:      r.Matched,
		ExactMatches: r.ExactMatches,
		FuzzyMatches: r.FuzzyMatches,
		Skipped:      r.Skipped,
		OutOfEvent:   r.OutOfEvent,
		Records:      len(r.Records),
		SeriesErrors: r.SeriesErrors,
		ScannedAt:    r.ScannedAt,
	}
}

// edgeRow es un EdgeRecord con sus tiers de renderizado.
type edgeRow struct {
	domain.EdgeRecord
	EdgeTier   domain.Tier `json:"edge_tier"`
	RewardTier domain.Tier `json:"reward_tier"`
}

type viewParamsJSON struct {
	MinEdge float64            `json:"min_edge"`
	Side    domain.Side        `json:"side,omitempty"`
	Market  domain.OutcomeType `json:"market,omitempty"`
	Sort    domain.SortKey     `json:"sort"`
}

type edgesResponse struct {
	ScanID    string         `json:"scan_id"`
	EventName string         `json:"event_name"`
	Params    viewParamsJSON `json:"params"`
	Summary   domain.Summary `json:"summary"`
	Records   []edgeRow      `json:"records"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	_, hasScan := s.scanner.Latest()
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "edgefinder",
		"has_scan":  hasScan,
	})
}

// runScan ejecuta un scan. Un fallo del feed de predicciones es un 502.
func (s *Server) runScan(w http.ResponseWriter, r *http.Request) {
	result, err := s.scanner.Scan(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "scan failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, newScanSummary(result))
}

func (s *Server) latestScan(w http.ResponseWriter, r *http.Request) {
	result, ok := s.scanner.Latest()
	if !ok {
		respondError(w, http.StatusNotFound, "no scan yet", nil)
		return
	}
	respondJSON(w, http.StatusOK, newScanSummary(result))
}

// edges aplica la vista pedida sobre el último scan.
// Query params: min_edge, side, market, sort. Los ausentes usan los de la configuración.
func (s *Server) edges(w http.ResponseWriter, r *http.Request) {
	params, err := parseViewParams(r, s.scanner.ViewParams())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, ok := s.scanner.Latest()
	if !ok {
		respondError(w, http.StatusNotFound, "no scan yet", nil)
		return
	}

	view := result.View(params)
	rows := make([]edgeRow, 0, len(view.Records))
	for _, rec := range view.Records {
		rows = append(rows, edgeRow{
			EdgeRecord: rec,
			EdgeTier:   domain.EdgeTier(rec.Edge),
			RewardTier: domain.RewardTier(rec.RewardRatio),
		})
	}

	respondJSON(w, http.StatusOK, edgesResponse{
		ScanID:    result.ID,
		EventName: result.EventName,
		Params: viewParamsJSON{
			MinEdge: params.MinEdge,
			Side:    params.Side,
			Market:  params.Outcome,
			Sort:    params.Sort,
		},
		Summary: view.Summary,
		Records: rows,
	})
}

// parseViewParams parte de defaults y sobreescribe con los query params presentes.
func parseViewParams(r *http.Request, defaults domain.ViewParams) (domain.ViewParams, error) {
	q := r.URL.Query()
	p := defaults
	if p.Sort == "" {
		p.Sort = domain.SortEdge
	}

	if q.Has("min_edge") {
		v, err := strconv.ParseFloat(q.Get("min_edge"), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return p, fmt.Errorf("invalid min_edge %q", q.Get("min_edge"))
		}
		p.MinEdge = v
	}
	if q.Has("side") {
		side, err := domain.ParseSide(q.Get("side"))
		if err != nil {
			return p, fmt.Errorf("invalid side %q", q.Get("side"))
		}
		p.Side = side
	}
	if q.Has("market") {
		outcome, err := domain.ParseOutcome(q.Get("market"))
		if err != nil {
			return p, fmt.Errorf("invalid market %q", q.Get("market"))
		}
		p.Outcome = outcome
	}
	if q.Has("sort") {
		key, err := domain.ParseSortKey(q.Get("sort"))
		if err != nil {
			return p, fmt.Errorf("invalid sort %q", q.Get("sort"))
		}
		p.Sort = key
	}
	return p, nil
}

// --- helpers ---

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response failed", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	if err != nil {
		slog.Warn("http api error", "status", status, "message", message, "err", err)
		resp.Message = message + ": " + err.Error()
	}
	respondJSON(w, status, resp)
}
