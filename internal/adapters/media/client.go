// internal/adapters/media/client.go
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"propcomfy/internal/adapters/observability"
	"propcomfy/internal/domain"
)

const maxRetries = 3

var (
	ErrNotFound     = fmt.Errorf("media: %w", domain.ErrNotFound)
	ErrUnauthorized = fmt.Errorf("media: unauthorized: %w", domain.ErrAccessDenied)
	ErrForbidden    = fmt.Errorf("media: forbidden: %w", domain.ErrAccessDenied)
)

// Client reads per-city media manifests from a CDN.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

// New builds a client. key is optional and sent as X-API-Key when present.
func New(base, key string, rps int) (*Client, error) {
	if strings.TrimSpace(base) == "" {
		return nil, fmt.Errorf("media base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// GetMedia tries <base>/media/<city>.json, then <base>/media/<city> when the first is missing.
func (c *Client) GetMedia(ctx context.Context, city string) (map[string]any, error) {
	esc := url.PathEscape(city)
	var out map[string]any
	err := c.fetch(ctx, fmt.Sprintf("%s/media/%s.json", c.base, esc), &out)
	if errors.Is(err, ErrNotFound) {
		out = nil
		err = c.fetch(ctx, fmt.Sprintf("%s/media/%s", c.base, esc), &out)
	}
	return out, err
}

// transient marks a failure worth another attempt; wait is the server's Retry-After hint.
type transient struct {
	err  error
	wait time.Duration
}

func (t *transient) Error() string { return t.err.Error() }
func (t *transient) Unwrap() error { return t.err }

// fetch retries throttling, 5xx and transport failures with exponential backoff.
func (c *Client) fetch(ctx context.Context, u string, out any) error {
	policy := &hintedBackOff{BackOff: newBackOff()}
	op := func() error {
		err := c.once(ctx, u, out)
		var t *transient
		switch {
		case err == nil:
			return nil
		case ctx.Err() != nil:
			return backoff.Permanent(ctx.Err())
		case errors.As(err, &t):
			policy.wait = t.wait
			return t.err
		default:
			return backoff.Permanent(err)
		}
	}
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
}

func (c *Client) once(ctx context.Context, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "propcomfy-seeder/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("media", "manifest", 0, time.Since(start))
		return &transient{err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("media", "manifest", resp.StatusCode, time.Since(start))

	switch code := resp.StatusCode; {
	case code == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case code == http.StatusNoContent:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusTooManyRequests || code >= 500 && code != http.StatusNotImplemented:
		return &transient{err: fmt.Errorf("remote %d", code), wait: retryAfter(resp.Header.Get("Retry-After"))}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bad status %d: %s", code, strings.TrimSpace(string(b)))
	}
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.RandomizationFactor = 0.5
	b.Multiplier = 2
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = time.Minute
	return b
}

// hintedBackOff prefers a Retry-After hint over the exponential schedule for one attempt.
type hintedBackOff struct {
	backoff.BackOff
	wait time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	if w := h.wait; w > 0 {
		h.wait = 0
		return w
	}
	return h.BackOff.NextBackOff()
}

func (h *hintedBackOff) Reset() {
	h.wait = 0
	h.BackOff.Reset()
}

// retryAfter accepts delta-seconds or an HTTP-date; anything else is no hint.
func retryAfter(h string) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		return max(time.Until(t), 0)
	}
	return 0
}
