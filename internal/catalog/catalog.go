// Package catalog holds the static listing dataset and the helpers that shape it
// into rails: alias expansion and flattening.
package catalog

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"propcomfy/internal/domain"
)

// AliasIkate is listed as its own rail but is sourced from Lekki units.
const AliasIkate = "Ikate"

// File is the on-disk layout accepted by LoadFile.
type File struct {
	Units     domain.UnitsMap               `yaml:"units"`
	Locations []domain.Location             `yaml:"locations"`
	Media     map[string][]domain.MediaItem `yaml:"media"`
}

// Static is an in-memory, read-only CatalogRepository.
type Static struct {
	units     domain.UnitsMap
	locations []domain.Location
	media     map[string][]domain.MediaItem
}

func Builtin() *Static {
	return &Static{units: builtinUnits(), locations: builtinLocations(), media: map[string][]domain.MediaItem{}}
}

// LoadFile reads a YAML catalog. Sections missing from the file fall back to the built-in data.
func LoadFile(path string) (*Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	s := Builtin()
	if len(f.Units) > 0 {
		s.units = f.Units
	}
	if len(f.Locations) > 0 {
		s.locations = f.Locations
	}
	if f.Media != nil {
		s.media = f.Media
	}
	return s, nil
}

func (s *Static) UnitsByCity(ctx context.Context) (domain.UnitsMap, error) {
	out := make(domain.UnitsMap, len(s.units))
	for city, list := range s.units {
		out[city] = append([]domain.Unit(nil), list...)
	}
	return out, nil
}

func (s *Static) Locations(ctx context.Context) ([]domain.Location, error) {
	return append([]domain.Location(nil), s.locations...), nil
}

func (s *Static) Media(ctx context.Context, city string) ([]domain.MediaItem, error) {
	for _, k := range []string{city, capitalize(city), strings.ToUpper(city)} {
		if items, ok := s.media[k]; ok {
			return append([]domain.MediaItem(nil), items...), nil
		}
	}
	return nil, nil
}

// Cities returns the catalog's city names in sorted order.
func (s *Static) Cities() []string {
	out := make([]string, 0, len(s.units))
	for c := range s.units {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

var ikateRe = regexp.MustCompile(`(?i)ikate`)

// WithAliases returns a copy of m with the Ikate rail added: Lekki units whose title
// mentions Ikate, followed by the first Lekki unit.
func WithAliases(m domain.UnitsMap) domain.UnitsMap {
	out := make(domain.UnitsMap, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	lekki := m["Lekki"]
	ikate := make([]domain.Unit, 0, len(lekki)+1)
	for _, u := range lekki {
		if ikateRe.MatchString(u.Title) {
			ikate = append(ikate, u)
		}
	}
	if len(lekki) > 0 {
		ikate = append(ikate, lekki[0])
	}
	out[AliasIkate] = ikate
	return out
}

// Flatten tags each unit with its city. Cities are visited in sorted order so results are stable.
func Flatten(m domain.UnitsMap) []domain.Listing {
	cities := make([]string, 0, len(m))
	for c := range m {
		cities = append(cities, c)
	}
	sort.Strings(cities)

	var out []domain.Listing
	for _, c := range cities {
		for _, u := range m[c] {
			out = append(out, domain.Listing{City: c, Unit: u})
		}
	}
	return out
}

// FindUnit looks a unit up by city and exact title.
func FindUnit(m domain.UnitsMap, city, title string) (domain.Unit, bool) {
	for _, u := range m[city] {
		if u.Title == title {
			return u, true
		}
	}
	return domain.Unit{}, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
