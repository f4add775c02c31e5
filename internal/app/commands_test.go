package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"propcomfy/internal/domain"
)

type fakeWriter struct {
	units  map[string][]domain.Unit
	media  map[string][]domain.MediaItem
	locs   []domain.Location
	misses []string
}

func (f *fakeWriter) UpsertCity(ctx context.Context, city string, units []domain.Unit) error {
	if f.units == nil {
		f.units = map[string][]domain.Unit{}
	}
	f.units[city] = units
	return nil
}
func (f *fakeWriter) UpsertLocation(ctx context.Context, loc domain.Location) error {
	f.locs = append(f.locs, loc)
	return nil
}
func (f *fakeWriter) UpsertMedia(ctx context.Context, city string, items []domain.MediaItem) error {
	if f.media == nil {
		f.media = map[string][]domain.MediaItem{}
	}
	f.media[city] = items
	return nil
}
func (f *fakeWriter) LogMiss(ctx context.Context, city string, status int, reason string) error {
	f.misses = append(f.misses, fmt.Sprintf("%s:%d:%s", city, status, reason))
	return nil
}

type fakeMedia struct {
	payload map[string]any
	err     error
}

func (f fakeMedia) GetMedia(ctx context.Context, city string) (map[string]any, error) {
	return f.payload, f.err
}

type recCache struct{ dels []string }

func (c *recCache) Get(ctx context.Context, key string, dst any) (bool, error)   { return false, nil }
func (c *recCache) Set(ctx context.Context, key string, v any, ttlSec int) error { return nil }
func (c *recCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	return nil
}

func TestSeedCity_UnitsAndMedia(t *testing.T) {
	w := &fakeWriter{}
	cache := &recCache{}
	m := fakeMedia{payload: map[string]any{"media": []any{
		"https://cdn.example/a.jpg",
		map[string]any{"url": "https://cdn.example/tour.mp4?x=1"},
		map[string]any{"type": "gif", "src": "https://cdn.example/loop"},
		map[string]any{"caption": "no source"},
	}}}
	s := NewSeedService(m, w, cache)

	units := []domain.Unit{{Title: "T", PricePerNight: 1}}
	if err := s.SeedCity(context.Background(), "Lekki", units); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(w.units["Lekki"]) != 1 {
		t.Fatalf("units not written: %+v", w.units)
	}
	got := w.media["Lekki"]
	if len(got) != 3 || got[0].Type != domain.MediaImage || got[1].Type != domain.MediaVideo || got[2].Type != domain.MediaGIF {
		t.Fatalf("unexpected media: %+v", got)
	}
	if len(cache.dels) != 2 || cache.dels[0] != keyUnits || cache.dels[1] != "media:lekki" {
		t.Fatalf("unexpected invalidations: %v", cache.dels)
	}
}

func TestSeedCity_MissesAreRecorded(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("media: %w", domain.ErrNotFound), fmt.Sprintf("Ajah:%d:media", http.StatusNotFound)},
		{fmt.Errorf("media: %w", domain.ErrAccessDenied), fmt.Sprintf("Ajah:%d:media", http.StatusForbidden)},
	}
	for _, tc := range cases {
		w := &fakeWriter{}
		s := NewSeedService(fakeMedia{err: tc.err}, w, nil)
		if err := s.SeedCity(context.Background(), "Ajah", nil); err != nil {
			t.Fatalf("miss should not fail seeding: %v", err)
		}
		if len(w.misses) != 1 || w.misses[0] != tc.want {
			t.Fatalf("misses = %v want %s", w.misses, tc.want)
		}
	}
}

func TestSeedCity_UnexpectedErrorSurfaces(t *testing.T) {
	boom := errors.New("remote 502")
	s := NewSeedService(fakeMedia{err: boom}, &fakeWriter{}, nil)
	if err := s.SeedCity(context.Background(), "Ikeja", nil); !errors.Is(err, boom) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestSeedLocation_InvalidatesCache(t *testing.T) {
	w := &fakeWriter{}
	cache := &recCache{}
	if err := NewSeedService(nil, w, cache).SeedLocation(context.Background(), domain.Location{City: "Abuja"}); err != nil {
		t.Fatalf("seed location: %v", err)
	}
	if len(w.locs) != 1 || len(cache.dels) != 1 || cache.dels[0] != keyLocations {
		t.Fatalf("locs=%v dels=%v", w.locs, cache.dels)
	}
}

type fakeLocal struct{ media map[string][]domain.MediaItem }

func (f fakeLocal) UnitsByCity(ctx context.Context) (domain.UnitsMap, error) { return nil, nil }
func (f fakeLocal) Locations(ctx context.Context) ([]domain.Location, error) { return nil, nil }
func (f fakeLocal) Media(ctx context.Context, city string) ([]domain.MediaItem, error) {
	return f.media[city], nil
}

func TestSeedCity_FallsBackToCatalogMedia(t *testing.T) {
	local := fakeLocal{media: map[string][]domain.MediaItem{
		"Yaba": {{Type: domain.MediaVideo, Src: "https://cdn.example/yaba.mp4"}},
	}}
	cases := []struct {
		name   string
		remote domain.MediaClient
		misses int
	}{
		{"no media client", nil, 0},
		{"remote missing", fakeMedia{err: fmt.Errorf("media: %w", domain.ErrNotFound)}, 1},
		{"remote empty", fakeMedia{payload: map[string]any{"media": []any{}}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := &fakeWriter{}
			cache := &recCache{}
			s := NewSeedService(tc.remote, w, cache).WithLocal(local)
			if err := s.SeedCity(context.Background(), "Yaba", nil); err != nil {
				t.Fatalf("seed: %v", err)
			}
			got := w.media["Yaba"]
			if len(got) != 1 || got[0].Src != "https://cdn.example/yaba.mp4" {
				t.Fatalf("catalog media not written: %+v", w.media)
			}
			if len(w.misses) != tc.misses {
				t.Fatalf("misses = %v", w.misses)
			}
			if len(cache.dels) != 2 || cache.dels[1] != "media:yaba" {
				t.Fatalf("unexpected invalidations: %v", cache.dels)
			}
		})
	}
}

func TestSeedCity_RemoteMediaWinsOverCatalog(t *testing.T) {
	local := fakeLocal{media: map[string][]domain.MediaItem{
		"Lekki": {{Type: domain.MediaImage, Src: "https://cdn.example/local.jpg"}},
	}}
	w := &fakeWriter{}
	remote := fakeMedia{payload: map[string]any{"media": []any{"https://cdn.example/remote.jpg"}}}
	if err := NewSeedService(remote, w, nil).WithLocal(local).SeedCity(context.Background(), "Lekki", nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := w.media["Lekki"]; len(got) != 1 || got[0].Src != "https://cdn.example/remote.jpg" {
		t.Fatalf("remote media should be kept: %+v", got)
	}
}
