// Package cssfilter is a property whitelist for style attributes. It
// implements htmlsanitizer.CSSSanitizer.
package cssfilter

import (
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
)

// Filter keeps declarations whose property is whitelisted and whose value
// uses only plain tokens: keywords, numbers, lengths, colors and a few color
// functions. url() is allowed only for image properties and goes through the
// caller's URI check.
type Filter struct {
	properties map[string]bool
	urls       map[string]bool
	functions  map[string]bool
}

// DefaultProperties are the properties New allows.
var DefaultProperties = []string{
	"background", "background-color", "background-image", "background-position", "background-repeat",
	"border", "border-bottom", "border-collapse", "border-color", "border-left", "border-radius",
	"border-right", "border-spacing", "border-style", "border-top", "border-width",
	"clear", "color", "direction", "display", "float",
	"font", "font-family", "font-size", "font-style", "font-variant", "font-weight",
	"height", "letter-spacing", "line-height", "list-style", "list-style-image",
	"list-style-position", "list-style-type",
	"margin", "margin-bottom", "margin-left", "margin-right", "margin-top",
	"max-height", "max-width", "min-height", "min-width",
	"padding", "padding-bottom", "padding-left", "padding-right", "padding-top",
	"table-layout", "text-align", "text-decoration", "text-indent", "text-transform",
	"vertical-align", "white-space", "width", "word-spacing", "word-wrap",
}

// New returns a Filter allowing DefaultProperties.
func New() *Filter {
	return NewWithProperties(DefaultProperties...)
}

// NewWithProperties returns a Filter allowing only the given properties.
func NewWithProperties(properties ...string) *Filter {
	f := &Filter{
		properties: make(map[string]bool, len(properties)),
		urls: map[string]bool{
			"background":       true,
			"background-image": true,
			"list-style":       true,
			"list-style-image": true,
		},
		functions: map[string]bool{
			"rgb(": true, "rgba(": true, "hsl(": true, "hsla(": true,
		},
	}
	for _, p := range properties {
		f.properties[strings.ToLower(p)] = true
	}
	return f
}

// Allows reports whether property is whitelisted.
func (f *Filter) Allows(property string) bool {
	return f.properties[strings.ToLower(property)]
}

// SanitizeProperty returns the tokens to keep for one declaration, or nil
// to drop it.
func (f *Filter) SanitizeProperty(property string, tokens []*scanner.Token, rewriteURL func(raw string) (string, bool)) []*scanner.Token {
	if !f.Allows(property) || len(tokens) == 0 {
		return nil
	}
	out := make([]*scanner.Token, 0, len(tokens))
	depth := 0
	for _, t := range tokens {
		switch t.Type {
		case scanner.TokenIdent, scanner.TokenNumber, scanner.TokenPercentage,
			scanner.TokenDimension, scanner.TokenHash:
			if strings.ContainsAny(t.Value, `\`) {
				return nil
			}
			out = append(out, t)

		case scanner.TokenString:
			if strings.ContainsAny(t.Value, "\\\n\r\f") {
				return nil
			}
			out = append(out, t)

		case scanner.TokenFunction:
			if !f.functions[strings.ToLower(t.Value)] {
				return nil
			}
			depth++
			out = append(out, t)

		case scanner.TokenChar:
			switch t.Value {
			case ",", "/":
			case ")":
				if depth == 0 {
					return nil
				}
				depth--
			default:
				return nil
			}
			out = append(out, t)

		case scanner.TokenURI:
			if !f.urls[property] || rewriteURL == nil {
				return nil
			}
			u, ok := rewriteURL(uriValue(t.Value))
			if !ok {
				return nil
			}
			out = append(out, &scanner.Token{
				Type:   scanner.TokenURI,
				Value:  `url("` + escapeString(u) + `")`,
				Line:   t.Line,
				Column: t.Column,
			})

		default:
			return nil
		}
	}
	if depth != 0 {
		return nil
	}
	return out
}

// uriValue extracts the address from a url(...) token.
func uriValue(tok string) string {
	s := strings.TrimSpace(tok)
	s = strings.TrimSpace(s[len("url(") : len(s)-1])
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}

// escapeString makes s safe inside a double-quoted CSS string.
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 0x20 || r == 0x7f || strings.ContainsRune(`"'\()<>`, r):
			b.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
