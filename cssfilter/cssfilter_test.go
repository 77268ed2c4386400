package cssfilter

import (
	"strings"
	"testing"

	"github.com/gorilla/css/scanner"
	"github.com/stretchr/testify/assert"
)

func tokens(value string) []*scanner.Token {
	var out []*scanner.Token
	s := scanner.New(value)
	for {
		t := s.Next()
		switch t.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return out
		case scanner.TokenS, scanner.TokenComment:
		default:
			out = append(out, t)
		}
	}
}

func join(toks []*scanner.Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Value
	}
	return strings.Join(parts, " ")
}

func allowAll(raw string) (string, bool) { return raw, true }

func TestSanitizeProperty(t *testing.T) {
	f := New()
	cases := []struct {
		name     string
		property string
		value    string
		want     string
	}{
		{"keyword", "color", "red", "red"},
		{"hash", "color", "#ff0000", "#ff0000"},
		{"dimension", "margin", "0 10px 1em 5%", "0 10px 1em 5%"},
		{"rgb", "color", "rgb(1, 2, 3)", "rgb( 1 , 2 , 3 )"},
		{"font list", "font-family", `"Helvetica", sans-serif`, `"Helvetica" , sans-serif`},
		{"unknown property", "behavior", "url(x.htc)", ""},
		{"expression", "width", "expression(alert(1))", ""},
		{"url on plain property", "color", "url(http://x/)", ""},
		{"url on image property", "background-image", "url(http://x/a.png)", `url("http://x/a.png")`},
		{"escaped ident", "color", `r\65 d`, ""},
		{"unbalanced paren", "color", "red)", ""},
		{"semicolon char", "color", "red !", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.SanitizeProperty(tc.property, tokens(tc.value), allowAll)
			assert.Equal(t, tc.want, join(got))
		})
	}
}

func TestSanitizeProperty_URLRefused(t *testing.T) {
	f := New()
	got := f.SanitizeProperty("background", tokens("url(javascript:x)"), func(string) (string, bool) {
		return "", false
	})
	assert.Nil(t, got)
}

func TestSanitizeProperty_URLQuoted(t *testing.T) {
	f := New()
	var seen string
	got := f.SanitizeProperty("background", tokens(`url('a b.png') no-repeat`), func(raw string) (string, bool) {
		seen = raw
		return `a"b.png`, true
	})
	assert.Equal(t, "a b.png", seen)
	assert.Equal(t, `url("a\22 b.png") no-repeat`, join(got))
}

func TestNewWithProperties(t *testing.T) {
	f := NewWithProperties("Color")
	assert.True(t, f.Allows("color"))
	assert.False(t, f.Allows("margin"))
	assert.Nil(t, f.SanitizeProperty("margin", tokens("0"), allowAll))
}
