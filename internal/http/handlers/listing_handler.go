package handlers

import (
	"github.com/gofiber/fiber/v2"

	"carmarket/internal/log"
	"carmarket/internal/render"
	"carmarket/internal/services"
	"carmarket/internal/validate"
)

type ListingHandler struct {
	Listings *services.ListingService
	Markdown *render.Markdown
}

// Detail renders one listing addressed by ?id=.
func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	raw := c.Query("id")
	id, ok := validate.ID(raw)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "id", "value": raw})
		return renderError(c, fiber.StatusBadRequest, "Invalid listing", msgBadID)
	}

	l, err := h.Listings.Get(c.UserContext(), id)
	if err != nil {
		log.Error(c, "listing.load.fail", err, map[string]any{"id": id})
		return renderError(c, fiber.StatusBadGateway, "Listings unavailable", msgUnavailable)
	}

	d := render.NewDetail(l, h.Markdown)
	title := d.Title
	if !d.Found {
		c.Status(fiber.StatusNotFound)
		title = msgNotFound
	}
	return renderPage(c, "car", fiber.Map{"Title": title, "Detail": d})
}
