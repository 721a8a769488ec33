package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/edgefinder/config"
	"github.com/alejandrodnm/edgefinder/internal/adapters/cache"
	"github.com/alejandrodnm/edgefinder/internal/adapters/datagolf"
	"github.com/alejandrodnm/edgefinder/internal/adapters/httpapi"
	"github.com/alejandrodnm/edgefinder/internal/adapters/httpjson"
	"github.com/alejandrodnm/edgefinder/internal/adapters/kalshi"
	"github.com/alejandrodnm/edgefinder/internal/adapters/notify"
	"github.com/alejandrodnm/edgefinder/internal/scanner"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file (empty: defaults + env)")
	once := flag.Bool("once", false, "run one scan, print the edges and exit")
	serve := flag.Bool("serve", false, "serve the JSON view API while scanning")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	compact := flag.Bool("compact", false, "print a one-line summary per scan instead of the table")
	scope := flag.String("scope", "", "predictions scope: pre_tournament|live (overrides config)")
	minEdge := flag.Float64("min-edge", 5, "minimum edge in percentage points (overrides config)")
	side := flag.String("side", "", "side filter: yes|no|all (overrides config)")
	market := flag.String("market", "", "market filter: win|top_5|top_10|top_20|all (overrides config)")
	sortBy := flag.String("sort", "", "sort key: edge|rr|profit (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	// solo los flags pasados explícitamente sobreescriben la configuración
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scope":
			cfg.Scanner.Scope = *scope
		case "min-edge":
			cfg.Scanner.MinEdge = minEdge
		case "side":
			cfg.Scanner.Side = *side
		case "market":
			cfg.Scanner.Market = *market
		case "sort":
			cfg.Scanner.Sort = *sortBy
		}
	})

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "Data Golf API key not configured. Add DG_API_KEY to your environment or .env file.")
		}
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *once, *serve, *compact); err != nil {
		slog.Error("edgefinder exited with error", "err", err)
		os.Exit(1)
	}
	slog.Info("edgefinder stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config, once, serve, compact bool) error {
	scanCfg, err := scannerConfig(cfg)
	if err != nil {
		return err
	}
	scanCfg.Once = once && !serve

	slog.Info("edgefinder starting",
		"scope", scanCfg.Scope,
		"interval", scanCfg.ScanInterval,
		"min_edge", scanCfg.View.MinEdge,
		"cache", cfg.Cache.Backend,
		"once", scanCfg.Once,
		"serve", serve,
	)

	store, err := cache.Open(ctx, cfg.Cache.Backend, cfg.Cache.DSN, cfg.Cache.RedisURL)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	ttlCache := cache.NewTTLCache(store)
	defer ttlCache.Close()

	httpOpts := []httpjson.Option{
		httpjson.WithTimeout(cfg.Timeout()),
		httpjson.WithRetries(cfg.API.Retries),
	}
	dg := datagolf.NewClient(cfg.API.DataGolfBase, cfg.API.DataGolfKey, cfg.API.Tour, httpOpts...)
	ks := kalshi.NewClient(cfg.API.KalshiBase, cfg.Scanner.MaxPages, cfg.Scanner.PageLimit, httpOpts...)

	predictions := cache.NewCachedPredictions(dg, ttlCache, cfg.PredictionsTTL())
	markets := cache.NewCachedMarkets(ks, ttlCache, cfg.MarketsTTL())
	notifier := notify.NewConsole(compact)

	s := scanner.New(scanCfg, predictions, markets, notifier)

	if !serve {
		return s.Run(ctx)
	}

	api := httpapi.NewServer(s, cfg.HTTP.CORSOrigins)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(gctx) })
	g.Go(func() error { return api.ListenAndServe(gctx, cfg.HTTP.Addr) })
	return g.Wait()
}

func scannerConfig(cfg *config.Config) (scanner.Config, error) {
	scope, err := cfg.Scope()
	if err != nil {
		return scanner.Config{}, err
	}
	view, err := cfg.ViewParams()
	if err != nil {
		return scanner.Config{}, err
	}
	series, err := cfg.SeriesTickers()
	if err != nil {
		return scanner.Config{}, err
	}

	scanCfg := scanner.DefaultConfig()
	scanCfg.ScanInterval = cfg.ScanInterval()
	scanCfg.Scope = scope
	scanCfg.Series = series
	scanCfg.View = view
	return scanCfg, nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
