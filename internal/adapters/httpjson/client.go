package httpjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRatePerSec = 5
	defaultBurst      = 2
	defaultRetryWait  = 500 * time.Millisecond
	maxErrorBody      = 512
)

// StatusError es una respuesta HTTP con código >= 400.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Code >= 500 {
		return fmt.Sprintf("server error %d", e.Code)
	}
	return fmt.Sprintf("client error %d: %s", e.Code, e.Body)
}

// IsStatus devuelve true si err envuelve un StatusError con ese código.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Client es el HTTP client JSON compartido por los adapters, con rate limiting
// y retries opcionales. Por defecto no reintenta.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	retries   int
	retryWait time.Duration
	headers   map[string]string
}

// Option configura un Client.
type Option func(*Client)

// WithTimeout fija el timeout total de cada request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit fija el token bucket del cliente.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) {
		if perSec > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithRetries habilita n reintentos ante errores de red, 429 y 5xx.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryWait fija la espera base del backoff exponencial.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) { c.retryWait = d }
}

// WithHeader añade una cabecera a todas las requests.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// New crea un Client con las opciones dadas.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(defaultRatePerSec, defaultBurst),
		retryWait: defaultRetryWait,
		headers:   map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON hace un GET y decodifica el body JSON en out.
// Los errores devueltos nunca contienen el parámetro key de la URL.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, attempt-1); err != nil {
				return err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		retry, err := c.do(ctx, rawURL, out)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
		if attempt < c.retries {
			slog.Warn("request failed, retrying", "url", redact(rawURL), "attempt", attempt+1, "err", err)
		}
	}
	if c.retries == 0 {
		return lastErr
	}
	return fmt.Errorf("request failed after %d retries: %w", c.retries, lastErr)
}

// do ejecuta una request. retry indica si el error es transitorio.
func (c *Client) do(ctx context.Context, rawURL string, out any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", redactURLError(err))
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ctx.Err() == nil, redactURLError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &StatusError{Code: resp.StatusCode, Body: string(body)}
		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, se
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

// redactURLError oculta la key en la URL que net/http incluye en sus errores.
func redactURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = redact(ue.URL)
	}
	return err
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) error {
	wait := time.Duration(math.Pow(2, float64(attempt))) * c.retryWait
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
