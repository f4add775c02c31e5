// Package search turns free-text queries into filter criteria and applies them to listings.
package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"propcomfy/internal/domain"
)

var (
	viRe      = regexp.MustCompile(`(?i)\bvi\b|victoria\s*island`)
	lekkiRe   = regexp.MustCompile(`(?i)lekki|ikate`)
	ikateRe   = regexp.MustCompile(`(?i)ikate`)
	ajahRe    = regexp.MustCompile(`(?i)ajah`)
	ikejaRe   = regexp.MustCompile(`(?i)ikeja`)
	studioRe  = regexp.MustCompile(`(?i)studio|\b0\s*bd|\b0\s*br`)
	bedsRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:bd|br|bed(?:rooms?)?)`)
	budgetRe  = regexp.MustCompile(`(?i)(?:under|<=?|max|below)\s*(?:₦|ngn|#)?\s*([\d,.]+)\s*([km])?`)
	numericRe = regexp.MustCompile(`^\d*\.?\d+$|^\d+\.$`)
)

// Parse extracts city, bedroom count and budget ceiling. Anything it does not
// recognise is simply left unconstrained.
func Parse(q string) domain.Criteria {
	var c domain.Criteria
	if city := ParseCity(q); city != "" {
		c.City = &city
	}
	if n, ok := ParseBedrooms(q); ok {
		c.Bedrooms = &n
	}
	if b, ok := ParseBudget(q); ok {
		c.Budget = &b
	}
	return c
}

// ParseCity returns the canonical city (or alias) named in q, or "".
func ParseCity(q string) string {
	switch {
	case viRe.MatchString(q):
		return "Victoria Island"
	case lekkiRe.MatchString(q):
		if ikateRe.MatchString(q) {
			return "Ikate"
		}
		return "Lekki"
	case ajahRe.MatchString(q):
		return "Ajah"
	case ikejaRe.MatchString(q):
		return "Ikeja"
	}
	return ""
}

// ParseBedrooms recognises "studio" / "0bd" as 0 and "N bd|br|bed|bedrooms" as N.
func ParseBedrooms(q string) (int, bool) {
	if studioRe.MatchString(q) {
		return 0, true
	}
	m := bedsRe.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseBudget reads "under|max|below|<|<= [₦|ngn|#] N[k|m]" into whole naira.
func ParseBudget(q string) (int64, bool) {
	m := budgetRe.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	digits := strings.ReplaceAll(m[1], ",", "")
	if !numericRe.MatchString(digits) {
		return 0, false
	}
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "k":
		n *= 1_000
	case "m":
		n *= 1_000_000
	}
	return int64(math.Round(n)), true
}
