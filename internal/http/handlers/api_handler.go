package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"carmarket/internal/log"
	"carmarket/internal/services"
	"carmarket/internal/validate"
)

type APIHandler struct {
	Listings *services.ListingService
}

func unavailable(c *fiber.Ctx, err error) error {
	log.Error(c, "api.load.fail", err, nil)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "listings unavailable"})
}

// Dataset serves the raw collection, always re-read from the source.
func (h *APIHandler) Dataset(c *fiber.Ctx) error {
	all, err := h.Listings.All(c.UserContext())
	if err != nil {
		return unavailable(c, err)
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(all)
}

// List filters with the same parameters as the search page.
func (h *APIHandler) List(c *fiber.Ctx) error {
	crit, err := validate.Criteria(func(k string) string { return c.Query(k) })
	if err != nil {
		var fe *validate.FieldError
		if errors.As(err, &fe) {
			log.Security(c, "validation.fail", map[string]any{"field": fe.Field, "value": fe.Value})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	res, err := h.Listings.Search(c.UserContext(), crit)
	if err != nil {
		return unavailable(c, err)
	}
	return c.JSON(fiber.Map{"count": len(res.Listings), "total": res.Total, "listings": res.Listings})
}

func (h *APIHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	l, err := h.Listings.Get(c.UserContext(), id)
	if err != nil {
		return unavailable(c, err)
	}
	if l == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "listing not found"})
	}
	return c.JSON(l)
}

func (h *APIHandler) Facets(c *fiber.Ctx) error {
	f, err := h.Listings.Facets(c.UserContext())
	if err != nil {
		return unavailable(c, err)
	}
	return c.JSON(f)
}
