package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/edgefinder/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey se devuelve cuando no hay API key de Data Golf.
var ErrMissingAPIKey = errors.New("config: Data Golf API key not configured (set DG_API_KEY)")

// Config es la configuración completa del edge finder.
type Config struct {
	Scanner ScannerConfig     `yaml:"scanner"`
	API     APIConfig         `yaml:"api"`
	Series  map[string]string `yaml:"series"` // outcome → series ticker
	Cache   CacheConfig       `yaml:"cache"`
	HTTP    HTTPConfig        `yaml:"http"`
	Log     LogConfig         `yaml:"log"`
}

// ScannerConfig controla el loop de scan y la vista por defecto.
type ScannerConfig struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	Scope           string   `yaml:"scope"`    // pre_tournament | live
	MinEdge         *float64 `yaml:"min_edge"` // puntos porcentuales; nil = 5
	Side            string   `yaml:"side"`     // yes | no | "" (todos)
	Market          string   `yaml:"market"`   // win | top_5 | top_10 | top_20 | "" (todos)
	Sort            string   `yaml:"sort"`     // edge | rr | profit
	MaxPages        int      `yaml:"max_pages"`
	PageLimit       int      `yaml:"page_limit"`
}

// APIConfig contiene los base URLs y credenciales de las APIs.
type APIConfig struct {
	DataGolfBase   string `yaml:"datagolf_base"`
	DataGolfKey    string `yaml:"datagolf_key"` // mejor vía DG_API_KEY
	Tour           string `yaml:"tour"`
	KalshiBase     string `yaml:"kalshi_base"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Retries        int    `yaml:"retries"`
}

// CacheConfig controla la cache TTL de los feeds.
type CacheConfig struct {
	Backend               string `yaml:"backend"` // memory | sqlite | redis
	DSN                   string `yaml:"dsn"`     // ruta SQLite
	RedisURL              string `yaml:"redis_url"`
	PredictionsTTLSeconds int    `yaml:"predictions_ttl_seconds"`
	MarketsTTLSeconds     int    `yaml:"markets_ttl_seconds"`
}

// HTTPConfig controla la API de vistas.
type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Un path vacío usa solo defaults y variables de entorno.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Validate comprueba los valores que no tienen default razonable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.DataGolfKey) == "" {
		return ErrMissingAPIKey
	}
	if _, err := domain.ParseScope(c.Scanner.Scope); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	if _, err := c.ViewParams(); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	if _, err := c.SeriesTickers(); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	return nil
}

// ScanInterval devuelve el intervalo de escaneo como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalSeconds) * time.Second
}

// Timeout devuelve el timeout HTTP de las APIs.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PredictionsTTL devuelve el TTL de cache de las predicciones.
func (c *Config) PredictionsTTL() time.Duration {
	return time.Duration(c.Cache.PredictionsTTLSeconds) * time.Second
}

// MarketsTTL devuelve el TTL de cache de los listados de mercados.
func (c *Config) MarketsTTL() time.Duration {
	return time.Duration(c.Cache.MarketsTTLSeconds) * time.Second
}

// Scope devuelve el scope de predicciones configurado.
func (c *Config) Scope() (domain.Scope, error) {
	return domain.ParseScope(c.Scanner.Scope)
}

// ViewParams convierte los filtros configurados a domain.ViewParams.
func (c *Config) ViewParams() (domain.ViewParams, error) {
	side, err := domain.ParseSide(c.Scanner.Side)
	if err != nil {
		return domain.ViewParams{}, err
	}
	outcome, err := domain.ParseOutcome(c.Scanner.Market)
	if err != nil {
		return domain.ViewParams{}, err
	}
	sort, err := domain.ParseSortKey(c.Scanner.Sort)
	if err != nil {
		return domain.ViewParams{}, err
	}
	minEdge := domain.DefaultViewParams().MinEdge
	if c.Scanner.MinEdge != nil {
		minEdge = *c.Scanner.MinEdge
	}
	return domain.ViewParams{
		MinEdge: minEdge,
		Side:    side,
		Outcome: outcome,
		Sort:    sort,
	}, nil
}

// SeriesTickers convierte la sección series a un mapa por outcome.
func (c *Config) SeriesTickers() (map[domain.OutcomeType]string, error) {
	out := make(map[domain.OutcomeType]string, len(c.Series))
	for k, ticker := range c.Series {
		outcome, err := domain.ParseOutcome(k)
		if err != nil || outcome == "" {
			return nil, fmt.Errorf("unknown series outcome %q", k)
		}
		if ticker = strings.TrimSpace(ticker); ticker != "" {
			out[outcome] = ticker
		}
	}
	return out, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DG_API_KEY"); v != "" {
		cfg.API.DataGolfKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("EDGEFINDER_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if v := os.Getenv("EDGEFINDER_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Scanner.IntervalSeconds <= 0 {
		cfg.Scanner.IntervalSeconds = 300
	}
	if cfg.Scanner.Scope == "" {
		cfg.Scanner.Scope = string(domain.ScopePreTournament)
	}
	if cfg.Scanner.MinEdge == nil {
		minEdge := domain.DefaultViewParams().MinEdge
		cfg.Scanner.MinEdge = &minEdge
	}
	if cfg.Scanner.Sort == "" {
		cfg.Scanner.Sort = string(domain.SortEdge)
	}
	if cfg.Scanner.MaxPages <= 0 {
		cfg.Scanner.MaxPages = 20
	}
	if cfg.Scanner.PageLimit <= 0 {
		cfg.Scanner.PageLimit = 200
	}
	if cfg.API.DataGolfBase == "" {
		cfg.API.DataGolfBase = "https://feeds.datagolf.com"
	}
	if cfg.API.Tour == "" {
		cfg.API.Tour = "pga"
	}
	if cfg.API.KalshiBase == "" {
		cfg.API.KalshiBase = "https://api.elections.kalshi.com/trade-api/v2"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 15
	}
	if cfg.API.Retries < 0 {
		cfg.API.Retries = 0
	}
	if len(cfg.Series) == 0 {
		cfg.Series = map[string]string{
			string(domain.OutcomeWin):   "KXPGATOUR",
			string(domain.OutcomeTop5):  "KXPGATOP5",
			string(domain.OutcomeTop10): "KXPGATOP10",
			string(domain.OutcomeTop20): "KXPGATOP20",
		}
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.DSN == "" {
		cfg.Cache.DSN = "edgefinder-cache.db"
	}
	if cfg.Cache.RedisURL == "" {
		cfg.Cache.RedisURL = "redis://localhost:6379/0"
	}
	if cfg.Cache.PredictionsTTLSeconds <= 0 {
		cfg.Cache.PredictionsTTLSeconds = 300
	}
	if cfg.Cache.MarketsTTLSeconds <= 0 {
		cfg.Cache.MarketsTTLSeconds = 120
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
