package search

import (
	"regexp"

	"propcomfy/internal/domain"
)

const baseMedia = "https://images.unsplash.com/photo-1502005229762-cf1b2da7c05c?q=80&w=1200&auto=format&fit=crop"

var (
	viOnlyRe = regexp.MustCompile(`(?i)^vi$`)
	// DefaultMedia is shown after the base image when a city has no manifest entry.
	DefaultMedia = []domain.MediaItem{
		{Type: domain.MediaImage, Src: "https://images.unsplash.com/photo-1493809842364-78817add7ffb?q=80&w=1200&auto=format&fit=crop"},
		{Type: domain.MediaVideo, Src: "https://www.w3schools.com/html/mov_bbb.mp4"},
	}
)

// MediaCityKey maps display names and aliases to the manifest key.
func MediaCityKey(city string) string {
	switch {
	case viOnlyRe.MatchString(city):
		return "Victoria Island"
	case ikateRe.MatchString(city):
		return "Lekki"
	}
	return city
}

// MediaFor prepends the base image to the manifest items, or to DefaultMedia when there are none.
func MediaFor(manifest []domain.MediaItem) []domain.MediaItem {
	out := []domain.MediaItem{{Type: domain.MediaImage, Src: baseMedia}}
	if len(manifest) > 0 {
		return append(out, manifest...)
	}
	return append(out, DefaultMedia...)
}
