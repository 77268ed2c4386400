package htmlsanitizer

import (
	"bytes"
	"io"

	"github.com/njchilds90/htmlsanitizer/v2/internal/entity"
	"github.com/njchilds90/htmlsanitizer/v2/internal/lexer"
	"github.com/njchilds90/htmlsanitizer/v2/internal/sax"
)

// Sanitize parses markup, applies p, and returns the sanitized HTML.
// If p is nil, DefaultPolicy is used. The only errors are tag policy
// failures; malformed markup is never an error.
func Sanitize(markup string, p *Policy) (string, error) {
	if p == nil {
		p = DefaultPolicy()
	}
	s := p.schema()
	tp := p.TagPolicy
	if tp == nil {
		tp = p.newDefaultTagPolicy(s)
	}
	return run(markup, &assembler{
		schema:   s,
		policy:   tp,
		logger:   p.Logger,
		linkify:  p.Linkify,
		maxDepth: p.MaxDepth,
	})
}

// SanitizeReader reads HTML from r, applies p, and returns the
// sanitized HTML string.
func SanitizeReader(r io.Reader, p *Policy) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Sanitize(string(b), p)
}

// SanitizeWithPolicy sanitizes markup against the built-in schema with tp
// making every tag decision.
func SanitizeWithPolicy(markup string, tp TagPolicy) (string, error) {
	return Sanitize(markup, &Policy{Schema: DefaultSchema(), TagPolicy: tp})
}

func run(markup string, a *assembler) (string, error) {
	parser := sax.Parser{TextModeOf: a.schema.textMode}
	if err := parser.Parse(markup, a); err != nil {
		return "", err
	}
	if a.err != nil {
		return "", a.err
	}
	return a.out.String(), nil
}

// StripTags removes all markup and returns the plain text. Character
// references are decoded and the bodies of script-like elements dropped.
func StripTags(markup string) (string, error) {
	s := DefaultSchema()
	var t textCollector
	parser := sax.Parser{TextModeOf: s.textMode}
	if err := parser.Parse(markup, &t); err != nil {
		return "", err
	}
	return t.buf.String(), nil
}

// textCollector is a sax.Handler that keeps only text.
type textCollector struct {
	buf bytes.Buffer
}

func (t *textCollector) StartDoc() { t.buf.Reset() }
func (t *textCollector) StartTag(string, []lexer.Attr) error { return nil }
func (t *textCollector) EndTag(string) error { return nil }
func (t *textCollector) PCDATA(text string) { t.buf.WriteString(entity.Unescape(text)) }
func (t *textCollector) RCDATA(text string) { t.buf.WriteString(entity.Unescape(text)) }
func (t *textCollector) CDATA(string) {}
func (t *textCollector) Comment(string) {}
func (t *textCollector) EndDoc() {}
