package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"propcomfy/internal/adapters/observability"
	"propcomfy/internal/catalog"
	"propcomfy/internal/domain"
	"propcomfy/internal/search"
)

const (
	keyUnits     = "catalog:units"
	keyLocations = "catalog:locations"
)

// DefaultRails is the home page order; Ikate is the Lekki alias rail.
var DefaultRails = []string{"Lekki", catalog.AliasIkate, "Victoria Island", "Ajah"}

var cloneSuffixRe = regexp.MustCompile(`\s#\d+$`)

type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	if c == nil {
		c = nopCache{}
	}
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ttl() int { return int(s.cacheTTL.Seconds()) }

// units returns the catalog with alias rails applied.
func (s *QueryService) units(ctx context.Context) (domain.UnitsMap, error) {
	var m domain.UnitsMap
	if ok, _ := s.cache.Get(ctx, keyUnits, &m); ok && m != nil {
		return m, nil
	}
	base, err := s.repo.UnitsByCity(ctx)
	if err != nil {
		return nil, err
	}
	m = catalog.WithAliases(base)
	_ = s.cache.Set(ctx, keyUnits, m, s.ttl())
	return m, nil
}

func searchKey(q string) string {
	return "search:" + strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// Search parses q, filters every listing and pads the result for display.
func (s *QueryService) Search(ctx context.Context, q string) (domain.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return domain.SearchResult{Items: []domain.Card{}}, nil
	}
	key := searchKey(q)
	var out domain.SearchResult
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	m, err := s.units(ctx)
	if err != nil {
		return domain.SearchResult{}, err
	}
	c := search.Parse(q)
	observability.ObserveSearch(c.City != nil, c.Bedrooms != nil, c.Budget != nil)

	matched := search.Filter(catalog.Flatten(m), c, q)
	padCity := "Lagos"
	if c.City != nil {
		padCity = *c.City
	}
	out = domain.SearchResult{
		Query:    q,
		Summary:  search.Describe(c),
		Criteria: c,
		Matched:  len(matched),
		Items:    search.Cards(search.EnsureMin(matched, search.MinSearchResults, padCity)),
	}
	_ = s.cache.Set(ctx, key, out, s.ttl())
	return out, nil
}

func railTitle(city string) string {
	label := city
	if city == "Victoria Island" {
		label = "VI"
	}
	return "Service Apartments — " + label
}

// Rail renders one city rail filtered by chip. Unknown cities are ErrNotFound.
func (s *QueryService) Rail(ctx context.Context, city, chip string) (domain.Rail, error) {
	m, err := s.units(ctx)
	if err != nil {
		return domain.Rail{}, err
	}
	name, ok := matchCity(m, city)
	if !ok {
		return domain.Rail{}, fmt.Errorf("rail %q: %w", city, domain.ErrNotFound)
	}
	return search.BuildRail(railTitle(name), name, m[name], chip), nil
}

// Rails renders the home page rails with no chip applied.
func (s *QueryService) Rails(ctx context.Context) ([]domain.Rail, error) {
	m, err := s.units(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Rail, 0, len(DefaultRails))
	for _, city := range DefaultRails {
		out = append(out, search.BuildRail(railTitle(city), city, m[city], "all"))
	}
	return out, nil
}

func (s *QueryService) Locations(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	if ok, _ := s.cache.Get(ctx, keyLocations, &out); ok && out != nil {
		return out, nil
	}
	out, err := s.repo.Locations(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, keyLocations, out, s.ttl())
	return out, nil
}

func (s *QueryService) Location(ctx context.Context, city string) (domain.Location, error) {
	locs, err := s.Locations(ctx)
	if err != nil {
		return domain.Location{}, err
	}
	key := search.MediaCityKey(city)
	for _, l := range locs {
		if strings.EqualFold(l.City, key) {
			return l, nil
		}
	}
	return domain.Location{}, fmt.Errorf("location %q: %w", city, domain.ErrNotFound)
}

// Media returns the gallery for a city or alias, always led by the base image.
func (s *QueryService) Media(ctx context.Context, city string) ([]domain.MediaItem, error) {
	key := search.MediaCityKey(city)
	cacheKey := "media:" + strings.ToLower(key)
	var items []domain.MediaItem
	if ok, _ := s.cache.Get(ctx, cacheKey, &items); ok && items != nil {
		return items, nil
	}
	manifest, err := s.repo.Media(ctx, key)
	if err != nil {
		return nil, err
	}
	items = search.MediaFor(manifest)
	_ = s.cache.Set(ctx, cacheKey, items, s.ttl())
	return items, nil
}

// Unit resolves a card back to its unit. Padded clones ("Title #7") resolve to their
// source, and a city's placeholder apartment resolves to the default seed.
func (s *QueryService) Unit(ctx context.Context, city, title string) (domain.Unit, string, error) {
	m, err := s.units(ctx)
	if err != nil {
		return domain.Unit{}, "", err
	}
	name, known := matchCity(m, city)
	if !known {
		name = strings.TrimSpace(city)
	}
	if u, ok := catalog.FindUnit(m, name, title); ok {
		return u, name, nil
	}
	base := cloneSuffixRe.ReplaceAllString(title, "")
	if u, ok := catalog.FindUnit(m, name, base); ok {
		u.Title = title
		return u, name, nil
	}
	if name != "" && base == search.DefaultUnit(name).Title {
		u := search.DefaultUnit(name)
		u.Title = title
		return u, name, nil
	}
	return domain.Unit{}, "", fmt.Errorf("unit %q in %q: %w", title, city, domain.ErrNotFound)
}

func matchCity(m domain.UnitsMap, city string) (string, bool) {
	city = strings.TrimSpace(city)
	if _, ok := m[city]; ok {
		return city, true
	}
	for name := range m {
		if strings.EqualFold(name, city) {
			return name, true
		}
	}
	if strings.EqualFold(city, "vi") {
		if _, ok := m["Victoria Island"]; ok {
			return "Victoria Island", true
		}
	}
	return "", false
}

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string, dst any) (bool, error)   { return false, nil }
func (nopCache) Set(ctx context.Context, key string, v any, ttlSec int) error { return nil }
func (nopCache) Del(ctx context.Context, key string) error                    { return nil }
