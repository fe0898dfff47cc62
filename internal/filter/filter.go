package filter

import (
	"cmp"
	"slices"

	"carmarket/internal/domain"
)

// Criteria is the state of the search form. The zero value matches every
// listing: empty strings and nil bounds are pass-through.
type Criteria struct {
	Make     string   `json:"make,omitempty"`
	Fuel     string   `json:"fuel,omitempty"`
	Gearbox  string   `json:"gearbox,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	MaxKm    *int     `json:"maxKm,omitempty"`
	MinYear  *int     `json:"minYear,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Make == "" && c.Fuel == "" && c.Gearbox == "" &&
		c.MinPrice == nil && c.MaxPrice == nil && c.MaxKm == nil && c.MinYear == nil
}

// Match reports whether l satisfies every criterion.
func (c Criteria) Match(l domain.Listing) bool {
	return c.matchMake(l) &&
		c.matchFuel(l) &&
		c.matchGearbox(l) &&
		c.matchPrice(l) &&
		c.matchKm(l) &&
		c.matchYear(l)
}

func (c Criteria) matchMake(l domain.Listing) bool { return c.Make == "" || l.Make == c.Make }
func (c Criteria) matchFuel(l domain.Listing) bool { return c.Fuel == "" || l.Fuel == c.Fuel }
func (c Criteria) matchGearbox(l domain.Listing) bool {
	return c.Gearbox == "" || l.Gearbox == c.Gearbox
}

// Price bounds are inclusive; the lower bound defaults to 0.
func (c Criteria) matchPrice(l domain.Listing) bool {
	lo := 0.0
	if c.MinPrice != nil {
		lo = *c.MinPrice
	}
	if l.Price < lo {
		return false
	}
	return c.MaxPrice == nil || l.Price <= *c.MaxPrice
}

func (c Criteria) matchKm(l domain.Listing) bool {
	return c.MaxKm == nil || l.Km <= *c.MaxKm
}

func (c Criteria) matchYear(l domain.Listing) bool {
	lo := 0
	if c.MinYear != nil {
		lo = *c.MinYear
	}
	return l.Year >= lo
}

// Apply returns the listings matching c, in dataset order. The result is
// never nil and never aliases the input.
func Apply(listings []domain.Listing, c Criteria) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if c.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// Find returns the listing with the given id, or nil.
func Find(listings []domain.Listing, id int) *domain.Listing {
	for i := range listings {
		if listings[i].ID == id {
			l := listings[i]
			return &l
		}
	}
	return nil
}

// Distinct returns the distinct values of xs in ascending order.
func Distinct[T cmp.Ordered](xs []T) []T {
	out := slices.Clone(xs)
	slices.Sort(out)
	return slices.Compact(out)
}

// Makes returns the distinct, non-empty manufacturer names.
func Makes(listings []domain.Listing) []string {
	return facet(listings, func(l domain.Listing) string { return l.Make })
}

// Fuels returns the distinct, non-empty fuel types.
func Fuels(listings []domain.Listing) []string {
	return facet(listings, func(l domain.Listing) string { return l.Fuel })
}

// Gearboxes returns the distinct, non-empty transmission types.
func Gearboxes(listings []domain.Listing) []string {
	return facet(listings, func(l domain.Listing) string { return l.Gearbox })
}

// FacetsOf collects every option list of the search form.
func FacetsOf(listings []domain.Listing) domain.Facets {
	return domain.Facets{
		Makes:     Makes(listings),
		Fuels:     Fuels(listings),
		Gearboxes: Gearboxes(listings),
	}
}

func facet(listings []domain.Listing, field func(domain.Listing) string) []string {
	vals := make([]string, 0, len(listings))
	for _, l := range listings {
		if v := field(l); v != "" {
			vals = append(vals, v)
		}
	}
	return Distinct(vals)
}
