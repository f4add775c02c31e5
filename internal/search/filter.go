package search

import (
	"fmt"
	"net/url"
	"strings"

	"propcomfy/internal/domain"
)

const (
	MinSearchResults = 8
	MinRailCards     = 12
)

// Filter applies criteria as a conjunction. When the parser found nothing the raw
// text is matched against titles instead, so plain keyword searches still work.
func Filter(all []domain.Listing, c domain.Criteria, text string) []domain.Listing {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	city := ""
	if c.City != nil {
		city = strings.ToLower(*c.City)
	}
	keyword := ""
	if c.Empty() {
		keyword = strings.ToLower(text)
	}

	out := make([]domain.Listing, 0, len(all))
	for _, l := range all {
		if city != "" && !strings.Contains(strings.ToLower(l.City), city) {
			continue
		}
		if c.Bedrooms != nil && l.Bedrooms != *c.Bedrooms {
			continue
		}
		// a zero budget is no constraint
		if c.Budget != nil && *c.Budget > 0 && l.PricePerNight > *c.Budget {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(l.Title), keyword) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// DefaultUnit seeds padding when a city has no units at all.
func DefaultUnit(city string) domain.Unit {
	return domain.Unit{
		Title:         city + " Apartment",
		Bedrooms:      1,
		Guests:        2,
		PricePerNight: 80000,
		Highlights:    []string{"Wifi", "Security"},
	}
}

// EnsureMin pads listings up to min by cycling through the originals and
// suffixing titles with their position. Padding is decorative only.
func EnsureMin(in []domain.Listing, min int, city string) []domain.Listing {
	out := append([]domain.Listing(nil), in...)
	base := in
	if len(base) == 0 {
		base = []domain.Listing{{City: city, Unit: DefaultUnit(city)}}
	}
	for i := 0; len(out) < min; i++ {
		src := base[i%len(base)]
		clone := src
		clone.Title = fmt.Sprintf("%s #%d", src.Title, len(out)+1)
		clone.Highlights = append([]string(nil), src.Highlights...)
		out = append(out, clone)
	}
	return out
}

// FilterRail narrows a city's units by a rail chip. Unknown chips ("more") show everything.
func FilterRail(units []domain.Unit, chip string) []domain.Unit {
	var keep func(domain.Unit) bool
	switch strings.ToLower(chip) {
	case "studio":
		keep = func(u domain.Unit) bool { return u.Bedrooms == 0 }
	case "1bd":
		keep = func(u domain.Unit) bool { return u.Bedrooms == 1 }
	case "2bd":
		keep = func(u domain.Unit) bool { return u.Bedrooms == 2 }
	case "3bd":
		keep = func(u domain.Unit) bool { return u.Bedrooms >= 3 }
	default:
		return units
	}
	out := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

// Chips lists the rail filter labels in display order.
var Chips = []string{"All", "Studio", "1BD", "2BD", "3BD", "More"}

// BuildRail renders one city rail. Count and MinPrice describe the unfiltered city.
func BuildRail(title, city string, units []domain.Unit, chip string) domain.Rail {
	if chip == "" {
		chip = "all"
	}
	r := domain.Rail{Title: title, City: city, Chip: strings.ToLower(chip), Count: len(units)}
	for _, u := range units {
		if r.MinPrice == nil || u.PricePerNight < *r.MinPrice {
			p := u.PricePerNight
			r.MinPrice = &p
		}
	}

	noun := "units"
	if r.Count == 1 {
		noun = "unit"
	}
	r.Summary = fmt.Sprintf("%s • %d %s", city, r.Count, noun)
	if r.MinPrice != nil && *r.MinPrice > 0 {
		r.Summary += fmt.Sprintf(" • from %s/night", FormatNaira(*r.MinPrice))
	}

	filtered := FilterRail(units, chip)
	listings := make([]domain.Listing, 0, len(filtered))
	for _, u := range filtered {
		listings = append(listings, domain.Listing{City: city, Unit: u})
	}
	r.Cards = Cards(EnsureMin(listings, MinRailCards, city))
	return r
}

// Cards attaches card images to listings.
func Cards(ls []domain.Listing) []domain.Card {
	out := make([]domain.Card, 0, len(ls))
	for _, l := range ls {
		out = append(out, domain.Card{Listing: l, ImageURL: CardImage(l.City, l.Title)})
	}
	return out
}

// CardImage returns a deterministic placeholder image for a card.
func CardImage(city, title string) string {
	if city == "" {
		city = "city"
	}
	if title == "" {
		title = "unit"
	}
	return "https://picsum.photos/seed/" + escapeComponent(city+"-"+title) + "/1200/800"
}

// componentUnescape restores the marks a browser's encodeURIComponent leaves alone.
var componentUnescape = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

func escapeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}
