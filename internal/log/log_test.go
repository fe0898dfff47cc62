package log

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carmarket/internal/filter"
)

func capture(t *testing.T, fn func()) []entry {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldFlags := stdlog.Writer(), stdlog.Flags()
	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)
	defer func() {
		stdlog.SetOutput(oldW)
		stdlog.SetFlags(oldFlags)
	}()

	fn()

	var out []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e entry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			out = append(out, e)
		}
	}
	return out
}

func TestWriteWithoutContext(t *testing.T) {
	entries := capture(t, func() {
		Error(nil, "dataset.load.fail", errors.New("connection refused"), map[string]any{"source": "file"})
	})
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "error", e.Level)
	assert.Equal(t, "dataset.load.fail", e.Action)
	assert.Equal(t, "connection refused", e.Err)
	assert.Equal(t, "file", e.Fields["source"])
	assert.Empty(t, e.ReqID)
}

func TestAuditLevel(t *testing.T) {
	entries := capture(t, func() {
		Audit(nil, "listings.import", map[string]any{"count": 8})
	})
	require.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].Level)
	assert.Equal(t, float64(8), entries[0].Fields["count"])
}

func TestWriteWithRequest(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/car", func(c *fiber.Ctx) error {
		Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.SendStatus(fiber.StatusBadRequest)
	})

	entries := capture(t, func() {
		_, err := app.Test(httptest.NewRequest("GET", "/car?id=abc", nil))
		require.NoError(t, err)
	})
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, "GET", e.Method)
	assert.Equal(t, "/car", e.Path)
	assert.Equal(t, "id=abc", e.Query)
	assert.NotEmpty(t, e.ReqID)
}

func TestSearchEntry(t *testing.T) {
	app := fiber.New()
	app.Get("/search", func(c *fiber.Ctx) error {
		Search(c, filter.Criteria{Make: "BMW"}, "grid", 0)
		Search(c, filter.Criteria{}, "row", 3)
		return nil
	})

	entries := capture(t, func() {
		_, err := app.Test(httptest.NewRequest("GET", "/search?make=BMW", nil))
		require.NoError(t, err)
	})
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "info", first.Level)
	assert.Equal(t, "search", first.Action)
	assert.Equal(t, "grid", first.Skin)
	require.NotNil(t, first.Results)
	assert.Equal(t, 0, *first.Results, "zero matches is still recorded")
	assert.Equal(t, map[string]any{"make": "BMW"}, first.Criteria)

	second := entries[1]
	assert.Nil(t, second.Criteria)
	assert.Equal(t, 3, *second.Results)
}
