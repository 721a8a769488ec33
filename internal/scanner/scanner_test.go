package scanner_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
	"github.com/alejandrodnm/edgefinder/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockPredictionProvider struct {
	set   domain.PredictionSet
	err   error
	scope domain.Scope
}

func (m *mockPredictionProvider) FetchPredictions(_ context.Context, scope domain.Scope) (domain.PredictionSet, error) {
	m.scope = scope
	return m.set, m.err
}

type mockMarketProvider struct {
	mu        sync.Mutex
	contracts map[string][]domain.MarketContract
	errs      map[string]error
	calls     []string
}

func (m *mockMarketProvider) FetchSeries(_ context.Context, series string) ([]domain.MarketContract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, series)
	if err := m.errs[series]; err != nil {
		return nil, err
	}
	return m.contracts[series], nil
}

type mockNotifier struct {
	mu     sync.Mutex
	count  int
	result domain.ScanResult
	view   domain.View
	err    error
}

func (m *mockNotifier) Notify(_ context.Context, result domain.ScanResult, view domain.View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	m.result = result
	m.view = view
	return m.err
}

func (m *mockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// --- helpers ---

func tigerPredictions() *mockPredictionProvider {
	return &mockPredictionProvider{set: domain.PredictionSet{
		EventName: "The Genesis Invitational",
		Players: []domain.PlayerPrediction{{
			PlayerName: "Woods, Tiger",
			Probabilities: map[domain.OutcomeType]float64{
				domain.OutcomeWin:  0.30,
				domain.OutcomeTop5: 0.50,
			},
		}},
	}}
}

func tigerMarkets() *mockMarketProvider {
	return &mockMarketProvider{
		contracts: map[string][]domain.MarketContract{
			"KXPGATOUR": {{
				Ticker: "KXPGATOUR-GENE26-TWOO", EventTicker: "KXPGATOUR-GENE26",
				Subtitle: "Tiger Woods wins the tournament", YesAsk: 20, NoAsk: 82,
			}},
			"KXPGATOP5": {{
				Ticker: "KXPGATOP5-GENE26-TWOO", EventTicker: "KXPGATOP5-GENE26",
				Subtitle: "Tiger Woods Top 5", YesAsk: 40, NoAsk: 62,
			}},
		},
		errs: map[string]error{},
	}
}

func testConfig() scanner.Config {
	cfg := scanner.DefaultConfig()
	cfg.ScanInterval = 10 * time.Millisecond
	return cfg
}

// --- Scan ---

func TestScan_EndToEnd(t *testing.T) {
	preds := tigerPredictions()
	s := scanner.New(testConfig(), preds, tigerMarkets(), nil)

	_, ok := s.Latest()
	assert.False(t, ok)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ScopePreTournament, preds.scope)

	assert.Equal(t, 1, result.FieldSize)
	assert.Equal(t, 2, result.Matched)
	assert.Empty(t, result.SeriesErrors)
	require.Len(t, result.Records, 4)

	view := result.View(domain.ViewParams{MinEdge: 5})
	require.Len(t, view.Records, 2)
	assert.InDelta(t, 10.0, view.Records[0].Edge, 1e-9)
	assert.InDelta(t, 10.0, view.Records[1].Edge, 1e-9)
	// empate en edge: se conserva el orden del scan (win antes que top_5)
	assert.Equal(t, domain.OutcomeWin, view.Records[0].Outcome)
	assert.Equal(t, domain.OutcomeTop5, view.Records[1].Outcome)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, result.ID, latest.ID)
}

func TestScan_FetchesSeriesInCanonicalOrder(t *testing.T) {
	markets := tigerMarkets()
	s := scanner.New(testConfig(), tigerPredictions(), markets, nil)

	_, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"KXPGATOUR", "KXPGATOP5", "KXPGATOP10", "KXPGATOP20"}, markets.calls)
}

func TestScan_OnlyConfiguredSeries(t *testing.T) {
	markets := tigerMarkets()
	cfg := testConfig()
	cfg.Series = map[domain.OutcomeType]string{domain.OutcomeWin: "KXPGATOUR"}
	s := scanner.New(cfg, tigerPredictions(), markets, nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"KXPGATOUR"}, markets.calls)
	assert.Len(t, result.Records, 2)
}

func TestScan_PredictionFailureIsFatal(t *testing.T) {
	preds := tigerPredictions()
	markets := tigerMarkets()
	s := scanner.New(testConfig(), preds, markets, nil)

	first, err := s.Scan(context.Background())
	require.NoError(t, err)

	preds.err = errors.New("401 unauthorized")
	_, err = s.Scan(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, preds.err)

	// el último resultado bueno se conserva
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, first.ID, latest.ID)
}

func TestScan_SeriesFailureIsNotFatal(t *testing.T) {
	markets := tigerMarkets()
	markets.errs["KXPGATOP5"] = errors.New("server error 503")
	s := scanner.New(testConfig(), tigerPredictions(), markets, nil)

	result, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Contains(t, result.SeriesErrors, domain.OutcomeTop5)
	assert.Contains(t, result.SeriesErrors[domain.OutcomeTop5], "503")
	require.Len(t, result.Records, 2)
	for _, r := range result.Records {
		assert.Equal(t, domain.OutcomeWin, r.Outcome)
	}
}

func TestScan_EachScanReplacesLatest(t *testing.T) {
	markets := tigerMarkets()
	s := scanner.New(testConfig(), tigerPredictions(), markets, nil)

	first, err := s.Scan(context.Background())
	require.NoError(t, err)

	markets.contracts = map[string][]domain.MarketContract{}
	second, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, second.ID, latest.ID)
	assert.Empty(t, latest.Records)
}

// --- Run ---

func TestRunOnce_NotifiesConfiguredView(t *testing.T) {
	notifier := &mockNotifier{}
	cfg := testConfig()
	cfg.View = domain.ViewParams{MinEdge: 5, Side: domain.SideYes, Outcome: domain.OutcomeTop5}
	s := scanner.New(cfg, tigerPredictions(), tigerMarkets(), notifier)

	_, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.Count())
	require.Len(t, notifier.view.Records, 1)
	assert.Equal(t, domain.OutcomeTop5, notifier.view.Records[0].Outcome)
	assert.Len(t, notifier.result.Records, 4)
}

func TestRunOnce_NotifierErrorIgnored(t *testing.T) {
	notifier := &mockNotifier{err: errors.New("stdout closed")}
	s := scanner.New(testConfig(), tigerPredictions(), tigerMarkets(), notifier)

	_, err := s.RunOnce(context.Background())
	assert.NoError(t, err)
}

func TestRun_OnceReturnsScanError(t *testing.T) {
	preds := &mockPredictionProvider{err: errors.New("feed down")}
	notifier := &mockNotifier{}
	cfg := testConfig()
	cfg.Once = true
	s := scanner.New(cfg, preds, tigerMarkets(), notifier)

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, preds.err)
	assert.Equal(t, 0, notifier.Count())
}

func TestRun_OnceSingleScan(t *testing.T) {
	notifier := &mockNotifier{}
	cfg := testConfig()
	cfg.Once = true
	s := scanner.New(cfg, tigerPredictions(), tigerMarkets(), notifier)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 1, notifier.Count())
}

func TestRun_LoopsUntilCanceled(t *testing.T) {
	notifier := &mockNotifier{}
	s := scanner.New(testConfig(), tigerPredictions(), tigerMarkets(), notifier)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return notifier.Count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestNew_Defaults(t *testing.T) {
	preds := tigerPredictions()
	s := scanner.New(scanner.Config{}, preds, tigerMarkets(), nil)

	_, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ScopePreTournament, preds.scope)
	assert.Equal(t, domain.ViewParams{}, s.ViewParams())
}
