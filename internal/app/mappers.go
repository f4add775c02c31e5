package app

import (
	"path"
	"strings"

	"propcomfy/internal/domain"
)

// mediaAliases lists where a manifest entry may keep its items.
var mediaAliases = []string{"media", "items", "gallery", "assets.media"}

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, p string) any {
	cur := any(m)
	for _, part := range strings.Split(p, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, p string) string {
	if s, ok := lookupAny(m, p).(string); ok {
		return s
	}
	return ""
}

// mediaTypeFor trusts an explicit type, otherwise guesses from the file extension.
func mediaTypeFor(explicit, src string) domain.MediaType {
	switch t := domain.MediaType(strings.ToLower(strings.TrimSpace(explicit))); t {
	case domain.MediaImage, domain.MediaVideo, domain.MediaGIF:
		return t
	}
	clean := src
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	switch strings.ToLower(path.Ext(clean)) {
	case ".mp4", ".webm", ".mov", ".m3u8":
		return domain.MediaVideo
	case ".gif":
		return domain.MediaGIF
	}
	return domain.MediaImage
}

// mapMedia accepts items as plain url strings or objects keyed src/url/href.
func mapMedia(payload map[string]any) []domain.MediaItem {
	for _, p := range mediaAliases {
		raw, ok := lookupAny(payload, p).([]any)
		if !ok {
			continue
		}
		out := make([]domain.MediaItem, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if s := strings.TrimSpace(t); s != "" {
					out = append(out, domain.MediaItem{Type: mediaTypeFor("", s), Src: s})
				}
			case map[string]any:
				src := ""
				for _, k := range []string{"src", "url", "href"} {
					if src = strings.TrimSpace(lookupStr(t, k)); src != "" {
						break
					}
				}
				if src == "" {
					continue
				}
				out = append(out, domain.MediaItem{Type: mediaTypeFor(lookupStr(t, "type"), src), Src: src})
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
