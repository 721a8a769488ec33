package cache

// cache.go — cache TTL de respuestas de los feeds.
//
// Evita golpear Data Golf y Kalshi en cada scan: las predicciones valen 5 minutos
// y los listados de mercados 2 minutos. No es un mecanismo de corrección: un fallo
// del store degrada a fetch directo y los errores de fetch nunca se cachean.

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Entry es un valor cacheado con su momento de fetch y su TTL.
type Entry struct {
	Value     []byte        `json:"value"`
	FetchedAt time.Time     `json:"fetched_at"`
	TTL       time.Duration `json:"ttl"`
}

// Fresh devuelve true si la entrada no ha expirado en now.
func (e Entry) Fresh(now time.Time) bool {
	return e.TTL > 0 && now.Before(e.FetchedAt.Add(e.TTL))
}

// Store es el backend de almacenamiento de la cache.
// Get devuelve ok=false si la clave no existe.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	Close() error
}

// FetchFunc obtiene el valor fresco de una clave.
type FetchFunc func(ctx context.Context) ([]byte, error)

// TTLCache aplica la política TTL sobre un Store.
type TTLCache struct {
	store Store
	now   func() time.Time
}

// NewTTLCache crea una cache sobre el store dado.
func NewTTLCache(store Store) *TTLCache {
	return &TTLCache{store: store, now: time.Now}
}

// GetOrRefresh devuelve el valor cacheado si sigue fresco; si no, llama a fetch
// y guarda el resultado.
func (c *TTLCache) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	now := c.now()

	e, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		slog.Warn("cache read failed, fetching directly", "key", key, "err", err)
	case ok && e.Fresh(now):
		slog.Debug("cache hit", "key", key, "age", now.Sub(e.FetchedAt).Round(time.Second))
		return e.Value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if ttl > 0 {
		entry := Entry{Value: value, FetchedAt: now, TTL: ttl}
		if err := c.store.Set(ctx, key, entry); err != nil {
			slog.Warn("cache write failed", "key", key, "err", err)
		}
	}
	return value, nil
}

// Close cierra el store subyacente.
func (c *TTLCache) Close() error {
	return c.store.Close()
}

// Backends soportados por Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open crea el Store para el backend configurado.
func Open(ctx context.Context, backend, dsn, redisURL string) (Store, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(dsn)
	case BackendRedis:
		return NewRedisStore(ctx, redisURL)
	default:
		return nil, fmt.Errorf("cache.Open: unknown backend %q", backend)
	}
}
