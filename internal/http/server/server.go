package server

import (
	"errors"
	stdlog "log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"carmarket/internal/config"
	"carmarket/internal/http/handlers"
	applog "carmarket/internal/log"
	"carmarket/web"
)

// Views returns the template engine: templates from cfg.TemplatesDir with
// live reload when set, the embedded copies otherwise.
func Views(cfg config.Config) *html.Engine {
	if cfg.TemplatesDir != "" {
		engine := html.New(cfg.TemplatesDir, ".html")
		engine.Reload(true)
		return engine
	}
	return html.NewFileSystem(web.Templates(), ".html")
}

// New wires middleware and routes around deps.
func New(cfg config.Config, deps *handlers.Deps, views fiber.Views) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: errorHandler,
	})
	// Only GET forms; nothing needs a large body.
	app.Server().MaxRequestBodySize = 64 << 10

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("start", time.Now())
		return c.Next()
	})
	app.Use(logger.New(logger.Config{Output: stdlog.Writer()}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, retry soon.")
		},
	}))

	// ---------- Static assets ----------
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))
	app.Get("/media/*", deps.MediaHandler.Serve)

	// ---------- Pages ----------
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/search") })
	app.Get("/search", deps.SearchHandler.Search)
	app.Get("/search.html", deps.SearchHandler.Search)
	app.Get("/car", deps.ListingHandler.Detail)
	app.Get("/car.html", deps.ListingHandler.Detail)

	// ---------- Data ----------
	app.Get("/cars.json", deps.APIHandler.Dataset)
	api := app.Group("/api/v1")
	api.Get("/listings", deps.APIHandler.List)
	api.Get("/listings/:id", deps.APIHandler.Get)
	api.Get("/facets", deps.APIHandler.Facets)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	applog.Info(nil, "server.routes", map[string]any{"dataset": cfg.Dataset, "skin": cfg.CardSkin})
	return app
}

// errorHandler renders a friendly page and never exposes err to the visitor.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	heading, msg := "Something went wrong", "Something went wrong. Please try again."
	switch {
	case code == fiber.StatusNotFound:
		heading, msg = "Page not found", "The page you asked for does not exist."
	case code < fiber.StatusInternalServerError:
		heading, msg = utils.StatusMessage(code), "The request could not be handled."
	default:
		applog.Error(c, "server.error", err, nil)
	}

	if rerr := c.Status(code).Render("error", fiber.Map{
		"Title": heading, "Heading": heading, "Message": msg,
	}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
