package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"propcomfy/internal/domain"
	"propcomfy/internal/search"
)

// SeedService copies the catalog into the database and pulls each city's media manifest.
type SeedService struct {
	media domain.MediaClient
	repo  domain.CatalogWriter
	cache domain.Cache
	local domain.CatalogRepository
}

// NewSeedService accepts a nil media client (media is then skipped) and a nil cache.
func NewSeedService(m domain.MediaClient, r domain.CatalogWriter, cache domain.Cache) *SeedService {
	return &SeedService{media: m, repo: r, cache: cache}
}

// WithLocal sets the catalog whose media is written when the remote manifest has none for a city.
func (s *SeedService) WithLocal(src domain.CatalogRepository) *SeedService {
	s.local = src
	return s
}

func (s *SeedService) SeedCity(ctx context.Context, city string, units []domain.Unit) error {
	// 1) Units replace whatever the city had.
	if err := s.repo.UpsertCity(ctx, city, units); err != nil {
		return fmt.Errorf("upsert units for %s: %w", city, err)
	}
	if s.cache != nil {
		s.invalidateUnits(ctx)
	}

	// 2) Media: best-effort. 404/401/403 are recorded as misses, anything else surfaces.
	items, err := s.remoteMedia(ctx, city)
	if err != nil {
		return err
	}
	if len(items) == 0 && s.local != nil {
		if items, err = s.local.Media(ctx, city); err != nil {
			return fmt.Errorf("local media for %s: %w", city, err)
		}
	}
	if len(items) > 0 {
		if err := s.repo.UpsertMedia(ctx, city, items); err != nil {
			return fmt.Errorf("upsert media for %s: %w", city, err)
		}
	}
	if s.cache != nil && (s.media != nil || len(items) > 0) {
		s.invalidateMedia(ctx, city)
	}
	return nil
}

func (s *SeedService) remoteMedia(ctx context.Context, city string) ([]domain.MediaItem, error) {
	if s.media == nil {
		return nil, nil
	}
	payload, err := s.media.GetMedia(ctx, city)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		_ = s.repo.LogMiss(ctx, city, http.StatusNotFound, "media")
		return nil, nil
	case errors.Is(err, domain.ErrAccessDenied):
		_ = s.repo.LogMiss(ctx, city, http.StatusForbidden, "media")
		return nil, nil
	default:
		return nil, err
	}
	items := mapMedia(payload)
	if len(items) == 0 {
		_ = s.repo.LogMiss(ctx, city, http.StatusNoContent, "media:empty")
	}
	return items, nil
}

func (s *SeedService) SeedLocation(ctx context.Context, loc domain.Location) error {
	if err := s.repo.UpsertLocation(ctx, loc); err != nil {
		return fmt.Errorf("upsert location %s: %w", loc.City, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, keyLocations)
	}
	return nil
}

// Search results are keyed by free text and cannot be enumerated; they expire by TTL.
func (s *SeedService) invalidateUnits(ctx context.Context) {
	_ = s.cache.Del(ctx, keyUnits)
}

func (s *SeedService) invalidateMedia(ctx context.Context, city string) {
	_ = s.cache.Del(ctx, "media:"+strings.ToLower(search.MediaCityKey(city)))
}
