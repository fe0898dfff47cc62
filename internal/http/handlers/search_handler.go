package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"carmarket/internal/domain"
	"carmarket/internal/log"
	"carmarket/internal/render"
	"carmarket/internal/services"
	"carmarket/internal/validate"
)

// formFields are the search form inputs echoed back into the page.
var formFields = []string{"make", "fuel", "gearbox", "minPrice", "maxPrice", "maxKm", "minYear"}

type SearchHandler struct {
	Listings    *services.ListingService
	DefaultSkin render.Skin
}

// Search renders the filter form and the matching cards. A request without
// criteria shows every listing.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	form := make(map[string]string, len(formFields))
	for _, f := range formFields {
		form[f] = c.Query(f)
	}
	skin := render.ParseSkin(c.Query("skin"), h.DefaultSkin)

	data := fiber.Map{
		"Title":     "Search",
		"Form":      form,
		"Skin":      string(skin),
		"SkinLinks": skinLinks(form, skin),
		"Facets":    domain.Facets{},
		"Cards":     []render.Card{},
		"Count":     0,
		"Total":     0,
	}

	crit, verr := validate.Criteria(func(k string) string { return c.Query(k) })
	if verr != nil {
		var fe *validate.FieldError
		if errors.As(verr, &fe) {
			log.Security(c, "validation.fail", map[string]any{"field": fe.Field, "value": fe.Value})
		}
		// Keep the facets so the form stays usable.
		if facets, err := h.Listings.Facets(c.UserContext()); err == nil {
			data["Facets"] = facets
		}
		data["Err"] = "Please check the " + fieldLabel(verr) + " filter."
		return renderPage(c.Status(fiber.StatusBadRequest), "search", data)
	}

	res, err := h.Listings.Search(c.UserContext(), crit)
	if err != nil {
		log.Error(c, "search.load.fail", err, nil)
		return renderError(c, fiber.StatusBadGateway, "Listings unavailable", msgUnavailable)
	}

	data["Facets"] = res.Facets
	data["Cards"] = render.Cards(res.Listings)
	data["Count"] = len(res.Listings)
	data["Total"] = res.Total
	log.Search(c, crit, string(skin), len(res.Listings))
	return renderPage(c, "search", data)
}

type skinLink struct {
	Name   string
	Href   string
	Active bool
}

// skinLinks points every skin at the current search.
func skinLinks(form map[string]string, current render.Skin) []skinLink {
	out := make([]skinLink, 0, len(render.Skins))
	for _, s := range render.Skins {
		q := url.Values{}
		for _, f := range formFields {
			if v := form[f]; v != "" {
				q.Set(f, v)
			}
		}
		q.Set("skin", string(s))
		out = append(out, skinLink{Name: string(s), Href: "/search?" + q.Encode(), Active: s == current})
	}
	return out
}

var fieldLabels = map[string]string{
	"make": "make", "fuel": "fuel", "gearbox": "gearbox",
	"minPrice": "minimum price", "maxPrice": "maximum price",
	"maxKm": "maximum km", "minYear": "minimum year",
}

func fieldLabel(err error) string {
	var fe *validate.FieldError
	if errors.As(err, &fe) {
		if l, ok := fieldLabels[fe.Field]; ok {
			return l
		}
	}
	return "search"
}
