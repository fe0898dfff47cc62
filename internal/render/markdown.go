package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"html/template"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown turns listing descriptions into sanitized HTML. Results are
// memoized by content hash, so a changed description is always re-rendered.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *ristretto.Cache[string, template.HTML]
}

func NewMarkdown() (*Markdown, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, template.HTML]{
		NumCounters: 1e5,
		MaxCost:     8 << 20,
		BufferItems: 64,
		Cost:        func(v template.HTML) int64 { return int64(len(v)) },
	})
	if err != nil {
		return nil, err
	}
	return &Markdown{
		md:     goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		policy: bluemonday.UGCPolicy(),
		cache:  cache,
	}, nil
}

// HTML renders src. Conversion errors fall back to the escaped source.
func (m *Markdown) HTML(src string) template.HTML {
	if src == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(src))
	key := hex.EncodeToString(sum[:])
	if v, ok := m.cache.Get(key); ok {
		return v
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	out := template.HTML(m.policy.SanitizeBytes(buf.Bytes()))
	m.cache.Set(key, out, 0)
	return out
}

// Close releases the cache's goroutines.
func (m *Markdown) Close() { m.cache.Close() }
