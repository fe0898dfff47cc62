package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"carmarket/internal/filter"
)

var (
	reID = regexp.MustCompile(`^[0-9]{1,10}$`)
)

// FieldError names the form field that failed validation.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// ID validates a listing identifier: a positive decimal integer.
func ID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reID.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// maxFacet caps make, fuel and gearbox values, in runes.
const maxFacet = 128

// Facet validates a select value (make, fuel, gearbox). The options come
// from the dataset, so any printable text is accepted as is and matched
// exactly later. Empty is allowed and means "any".
func Facet(s string) (string, bool) {
	if s == "" {
		return "", true
	}
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) > maxFacet {
		return "", false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	return s, true
}

// Amount parses an optional non-negative number. Empty yields nil.
func Amount(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

// Whole parses an optional non-negative integer. Empty yields nil.
func Whole(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

// Criteria builds filter criteria from form values looked up by get. The
// first invalid field is reported as a *FieldError.
func Criteria(get func(string) string) (filter.Criteria, error) {
	var c filter.Criteria
	var ok bool

	facets := []struct {
		field string
		dst   *string
	}{
		{"make", &c.Make},
		{"fuel", &c.Fuel},
		{"gearbox", &c.Gearbox},
	}
	for _, f := range facets {
		if *f.dst, ok = Facet(get(f.field)); !ok {
			return filter.Criteria{}, &FieldError{Field: f.field, Value: get(f.field)}
		}
	}

	if c.MinPrice, ok = Amount(get("minPrice")); !ok {
		return filter.Criteria{}, &FieldError{Field: "minPrice", Value: get("minPrice")}
	}
	if c.MaxPrice, ok = Amount(get("maxPrice")); !ok {
		return filter.Criteria{}, &FieldError{Field: "maxPrice", Value: get("maxPrice")}
	}
	if c.MaxKm, ok = Whole(get("maxKm")); !ok {
		return filter.Criteria{}, &FieldError{Field: "maxKm", Value: get("maxKm")}
	}
	if c.MinYear, ok = Whole(get("minYear")); !ok {
		return filter.Criteria{}, &FieldError{Field: "minYear", Value: get("minYear")}
	}
	return c, nil
}
