package htmlsanitizer

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
)

// CSSSanitizer filters the value of one style declaration. It receives the
// lower-cased property and the value tokens (whitespace and comments
// removed) and returns the tokens to keep; an empty result drops the
// declaration. URL tokens must be passed through rewriteURL, which applies
// the policy's scheme check and URIRewriter.
type CSSSanitizer interface {
	SanitizeProperty(property string, tokens []*scanner.Token, rewriteURL func(raw string) (string, bool)) []*scanner.Token
}

// sanitizeStyle rewrites a style attribute, keeping only the declarations
// the CSS sanitizer accepts. Without a CSS sanitizer the attribute is
// always dropped.
func (tp *defaultTagPolicy) sanitizeStyle(tagName, value string) (string, bool) {
	if tp.css == nil || strings.TrimSpace(value) == "" {
		return "", false
	}
	if !strings.HasSuffix(strings.TrimSpace(value), ";") {
		value += ";"
	}
	decls, err := parser.ParseDeclarations(value)
	if err != nil {
		return "", false
	}

	var kept []string
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		tokens, ok := cssValueTokens(d.Value)
		if !ok || len(tokens) == 0 {
			continue
		}
		hints := URIHints{Type: "CSS", TagName: tagName, CSSProperty: prop}
		tokens = tp.css.SanitizeProperty(prop, tokens, func(raw string) (string, bool) {
			return tp.safeURI(raw, SameDocument, LoaderSandboxed, hints)
		})
		if len(tokens) > 0 {
			kept = append(kept, prop+": "+joinCSSTokens(tokens))
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, " ; "), true
}

// cssValueTokens scans a declaration value. It reports false when the
// scanner hits malformed input.
func cssValueTokens(value string) ([]*scanner.Token, bool) {
	var tokens []*scanner.Token
	s := scanner.New(value)
	for {
		t := s.Next()
		switch t.Type {
		case scanner.TokenEOF:
			return tokens, true
		case scanner.TokenError:
			return nil, false
		case scanner.TokenS, scanner.TokenComment:
		default:
			tokens = append(tokens, t)
		}
	}
}

func joinCSSTokens(tokens []*scanner.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Value
	}
	return strings.Join(parts, " ")
}
