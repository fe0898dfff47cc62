package render

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"

	"carmarket/internal/domain"
)

// Skin selects one of the card templates under web/templates/cards.
type Skin string

const (
	SkinRow     Skin = "row"
	SkinGrid    Skin = "grid"
	SkinCompact Skin = "compact"
	SkinClassic Skin = "classic"
)

var Skins = []Skin{SkinRow, SkinGrid, SkinCompact, SkinClassic}

// ParseSkin returns the skin named s, or def when s is unknown.
func ParseSkin(s string, def Skin) Skin {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Skins {
		if string(k) == s {
			return k
		}
	}
	return def
}

// Template is the engine name of the skin's card template.
func (s Skin) Template() string { return "cards/" + string(s) }

// Card is the summary view of a listing.
type Card struct {
	ID       int
	Href     string
	Image    string
	Title    string
	Subtitle string
	Price    string
	Fuel     string
	Gearbox  string
	Year     int
	Km       string
	Location string
}

// NewCard builds the card view of l.
func NewCard(l domain.Listing) Card {
	c := Card{
		ID:       l.ID,
		Href:     DetailHref(l.ID),
		Title:    l.Title(),
		Subtitle: fmt.Sprintf("%d • %s km • %s • %s", l.Year, Km(l.Km), l.Fuel, l.Gearbox),
		Price:    Price(l.Price),
		Fuel:     l.Fuel,
		Gearbox:  l.Gearbox,
		Year:     l.Year,
		Km:       Km(l.Km),
		Location: l.Location,
	}
	if len(l.Images) > 0 {
		c.Image = l.Images[0]
	}
	return c
}

// Cards maps NewCard over listings.
func Cards(listings []domain.Listing) []Card {
	out := make([]Card, 0, len(listings))
	for _, l := range listings {
		out = append(out, NewCard(l))
	}
	return out
}

func DetailHref(id int) string { return fmt.Sprintf("/car?id=%d", id) }

// Price formats an amount in euros with thousands separators.
func Price(p float64) string { return "€" + humanize.CommafWithDigits(p, 2) }

func Km(km int) string { return humanize.Comma(int64(km)) }

// Detail is the full view of one listing. Found is false when the listing
// does not exist.
type Detail struct {
	Found       bool
	ID          int
	Title       string
	Images      []string
	Price       string
	Meta        []string
	Description template.HTML
	GarageName  string
	CallHref    template.URL
	EmailHref   template.URL
}

// NewDetail builds the detail view of l; a nil l yields the not-found view.
// Absent optional fields render as empty values.
func NewDetail(l *domain.Listing, md *Markdown) Detail {
	if l == nil {
		return Detail{}
	}
	d := Detail{
		Found:  true,
		ID:     l.ID,
		Title:  l.Title(),
		Images: l.Images,
		Price:  Price(l.Price),
		Meta: []string{
			fmt.Sprintf("%d • %s km", l.Year, Km(l.Km)),
			fmt.Sprintf("%s • %s • %s", l.Fuel, l.Gearbox, l.Location),
		},
		GarageName: "Garage",
	}
	if md != nil {
		d.Description = md.HTML(l.Description)
	} else {
		d.Description = template.HTML(template.HTMLEscapeString(l.Description))
	}

	var g domain.Garage
	if l.Garage != nil {
		g = *l.Garage
	}
	if g.Name != "" {
		d.GarageName = g.Name
	}
	d.CallHref = CallHref(g.Phone)
	d.EmailHref = EmailHref(g.Email, l.Title())
	return d
}

// CallHref builds a tel: link. Whitespace is removed and anything that is
// not a digit or a leading plus sign is dropped.
func CallHref(phone string) template.URL {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return template.URL("tel:" + b.String())
}

// EmailHref builds a mailto: link whose subject mentions the listing.
func EmailHref(email, title string) template.URL {
	addr := strings.ReplaceAll(uriComponent(strings.TrimSpace(email)), "%40", "@")
	return template.URL("mailto:" + addr + "?subject=Interest%20in%20" + uriComponent(title))
}

// uriComponent escapes s for one query value, spaces as %20.
func uriComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
