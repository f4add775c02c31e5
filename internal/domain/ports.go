package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrSignInRequired = errors.New("sign-in required")
	ErrInvalidInput   = errors.New("invalid input")
	// ErrAccessDenied covers remote 401/403 answers.
	ErrAccessDenied = errors.New("access denied")
)

type CatalogRepository interface {
	// Read paths
	UnitsByCity(ctx context.Context) (UnitsMap, error)
	Locations(ctx context.Context) ([]Location, error)
	Media(ctx context.Context, city string) ([]MediaItem, error)
}

type CatalogWriter interface {
	UpsertCity(ctx context.Context, city string, units []Unit) error
	UpsertLocation(ctx context.Context, loc Location) error
	UpsertMedia(ctx context.Context, city string, items []MediaItem) error
	LogMiss(ctx context.Context, city string, status int, reason string) error
}

// MediaClient fetches a city's media manifest entry from the remote CDN.
type MediaClient interface {
	GetMedia(ctx context.Context, city string) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// LocalStore emulates the browser's localStorage, scoped per client id.
type LocalStore interface {
	GetItem(ctx context.Context, client, key string) (string, bool, error)
	SetItem(ctx context.Context, client, key, value string) error
	RemoveItem(ctx context.Context, client, key string) error
}

type EventPublisher interface {
	PublishAssetRecorded(ctx context.Context, e AssetRecorded) error
}

// Criteria is what the free-text parser extracted. Nil fields mean "no constraint".
type Criteria struct {
	City     *string `json:"city,omitempty"`
	Bedrooms *int    `json:"bedrooms,omitempty"`
	Budget   *int64  `json:"budget,omitempty"`
}

func (c Criteria) Empty() bool { return c.City == nil && c.Bedrooms == nil && c.Budget == nil }

type SearchResult struct {
	Query    string   `json:"query"`
	Summary  string   `json:"summary"`
	Criteria Criteria `json:"criteria"`
	Matched  int      `json:"matched"`
	Items    []Card   `json:"items"`
}
