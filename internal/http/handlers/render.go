package handlers

import "github.com/gofiber/fiber/v2"

func renderPage(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		data["RequestID"] = rid
	}
	return c.Render(tmpl, data)
}

// renderError shows the friendly error page with the given status.
func renderError(c *fiber.Ctx, status int, heading, message string) error {
	return renderPage(c.Status(status), "error", fiber.Map{
		"Title":   heading,
		"Heading": heading,
		"Message": message,
	})
}

// Messages shown to visitors; internals go to the log only.
const (
	msgUnavailable = "Could not load listings. Please retry."
	msgBadID       = "Missing or invalid listing id."
	msgNotFound    = "Car not found."
)
