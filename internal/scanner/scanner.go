package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
	"github.com/alejandrodnm/edgefinder/internal/engine"
	"github.com/alejandrodnm/edgefinder/internal/ports"
)

// Config contiene la configuración del scanner.
type Config struct {
	ScanInterval time.Duration
	Scope        domain.Scope
	Series       map[domain.OutcomeType]string // outcome → series ticker de Kalshi
	View         domain.ViewParams
	Once         bool
}

// DefaultSeries devuelve las series de Kalshi de cada outcome.
func DefaultSeries() map[domain.OutcomeType]string {
	return map[domain.OutcomeType]string{
		domain.OutcomeWin:   "KXPGATOUR",
		domain.OutcomeTop5:  "KXPGATOP5",
		domain.OutcomeTop10: "KXPGATOP10",
		domain.OutcomeTop20: "KXPGATOP20",
	}
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		ScanInterval: 5 * time.Minute,
		Scope:        domain.ScopePreTournament,
		Series:       DefaultSeries(),
		View:         domain.DefaultViewParams(),
	}
}

// Scanner orquesta fetch → engine → notify y guarda el último resultado.
type Scanner struct {
	cfg         Config
	predictions ports.PredictionProvider
	markets     ports.MarketProvider
	notifier    ports.Notifier
	engine      *engine.Engine

	mu     sync.Mutex // serializa scans
	latest atomic.Pointer[domain.ScanResult]
}

// New crea un Scanner con todas las dependencias inyectadas. notifier puede ser nil.
func New(
	cfg Config,
	predictions ports.PredictionProvider,
	markets ports.MarketProvider,
	notifier ports.Notifier,
) *Scanner {
	if len(cfg.Series) == 0 {
		cfg.Series = DefaultSeries()
	}
	if cfg.Scope == "" {
		cfg.Scope = domain.ScopePreTournament
	}
	return &Scanner{
		cfg:         cfg,
		predictions: predictions,
		markets:     markets,
		notifier:    notifier,
		engine:      engine.New(),
	}
}

// Run ejecuta un scan al arrancar y luego uno por intervalo hasta que el
// contexto se cancele. Con cfg.Once solo ejecuta uno y devuelve su error.
func (s *Scanner) Run(ctx context.Context) error {
	slog.Info("scanner starting",
		"interval", s.cfg.ScanInterval,
		"scope", s.cfg.Scope,
		"once", s.cfg.Once,
	)

	if _, err := s.RunOnce(ctx); err != nil {
		slog.Error("scan failed", "err", err)
		if s.cfg.Once {
			return err
		}
	}
	if s.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner stopped")
			return nil
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				slog.Error("scan failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta un scan y notifica la vista configurada.
func (s *Scanner) RunOnce(ctx context.Context) (domain.ScanResult, error) {
	result, err := s.Scan(ctx)
	if err != nil {
		return domain.ScanResult{}, err
	}
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, result, result.View(s.cfg.View)); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
	return result, nil
}

// Scan hace un scan completo y reemplaza el último resultado.
// Un fallo del feed de predicciones aborta el scan; el fallo de una serie
// solo deja esa serie vacía y queda en SeriesErrors.
func (s *Scanner) Scan(ctx context.Context) (domain.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	set, err := s.predictions.FetchPredictions(ctx, s.cfg.Scope)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("scanner.Scan: fetch predictions: %w", err)
	}

	bySeries := make(map[domain.OutcomeType][]domain.MarketContract, len(s.cfg.Series))
	seriesErrors := make(map[domain.OutcomeType]string)
	for _, outcome := range domain.Outcomes() {
		ticker, ok := s.cfg.Series[outcome]
		if !ok || ticker == "" {
			continue
		}
		contracts, err := s.markets.FetchSeries(ctx, ticker)
		if err != nil {
			slog.Warn("series fetch failed, continuing without it",
				"outcome", outcome,
				"series", ticker,
				"err", err,
			)
			seriesErrors[outcome] = err.Error()
			continue
		}
		bySeries[outcome] = contracts
	}

	result := s.engine.Scan(set, bySeries)
	if len(seriesErrors) > 0 {
		result.SeriesErrors = seriesErrors
	}
	s.latest.Store(&result)

	slog.Info("scan complete",
		"event", result.EventName,
		"field", result.FieldSize,
		"matched", result.Matched,
		"fuzzy", result.FuzzyMatches,
		"skipped", result.Skipped,
		"records", len(result.Records),
		"series_errors", len(seriesErrors),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return result, nil
}

// Latest devuelve el último resultado; ok=false si aún no hubo scan exitoso.
func (s *Scanner) Latest() (domain.ScanResult, bool) {
	r := s.latest.Load()
	if r == nil {
		return domain.ScanResult{}, false
	}
	return *r, true
}

// ViewParams devuelve los parámetros de vista por defecto configurados.
func (s *Scanner) ViewParams() domain.ViewParams {
	return s.cfg.View
}
