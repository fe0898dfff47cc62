package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"carmarket/internal/filter"
)

// entry is one JSON log line.
type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Query     string         `json:"query,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Skin      string         `json:"skin,omitempty"`
	Criteria  any            `json:"criteria,omitempty"`
	Results   *int           `json:"results,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	emit(newEntry(level, c, action, err, fields))
}

func newEntry(level string, c *fiber.Ctx, action string, err error, fields map[string]any) entry {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Query = string(c.Request().URI().QueryString())
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
		if start, ok := c.Locals("start").(time.Time); ok {
			e.LatencyMs = time.Since(start).Milliseconds()
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	return e
}

func emit(e entry) {
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

// Search records one rendered search: the criteria applied, the card skin
// and how many listings matched.
func Search(c *fiber.Ctx, criteria filter.Criteria, skin string, results int) {
	e := newEntry("info", c, "search", nil, nil)
	if !criteria.IsZero() {
		e.Criteria = criteria
	}
	e.Skin = skin
	e.Results = &results
	emit(e)
}

// Info records a normal event. c may be nil outside a request.
func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }

// Audit records changes to stored data.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}

// Security records rejected input and blocked requests.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
