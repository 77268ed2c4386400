package htmlsanitizer

import (
	"net/url"
	"strings"
)

// URIParser turns raw attribute text into a parsed URI.
type URIParser interface {
	ParseURI(raw string) (*url.URL, error)
}

// StdURIParser parses with net/url.
type StdURIParser struct{}

func (StdURIParser) ParseURI(raw string) (*url.URL, error) {
	return url.Parse(raw)
}

// URIHints tell a URIRewriter where a URI was found. Type is "MARKUP" for
// attributes and "CSS" for url() tokens inside a style attribute.
type URIHints struct {
	Type        string
	TagName     string
	AttrName    string
	CSSProperty string
}

// URIRewriter decides the final text of a URI that passed the scheme
// check. Returning false removes the attribute or CSS declaration.
type URIRewriter interface {
	RewriteURI(u *url.URL, effect URIEffect, loader LoaderType, hints URIHints) (string, bool)
}

// URIRewriterFunc adapts a function to URIRewriter.
type URIRewriterFunc func(u *url.URL, effect URIEffect, loader LoaderType, hints URIHints) (string, bool)

func (f URIRewriterFunc) RewriteURI(u *url.URL, effect URIEffect, loader LoaderType, hints URIHints) (string, bool) {
	return f(u, effect, loader, hints)
}

// IdentityURIRewriter keeps every URI as parsed.
var IdentityURIRewriter URIRewriter = URIRewriterFunc(func(u *url.URL, _ URIEffect, _ LoaderType, _ URIHints) (string, bool) {
	return u.String(), true
})

// DenyURIRewriter refuses every URI.
var DenyURIRewriter URIRewriter = URIRewriterFunc(func(*url.URL, URIEffect, LoaderType, URIHints) (string, bool) {
	return "", false
})

// safeURI applies the scheme allow-list and the rewriter to raw.
func (tp *defaultTagPolicy) safeURI(raw string, effect URIEffect, loader LoaderType, hints URIHints) (string, bool) {
	u, err := tp.uriParser.ParseURI(raw)
	if err != nil || u == nil {
		return "", false
	}
	if u.Scheme != "" && !tp.schemes[strings.ToLower(u.Scheme)] {
		return "", false
	}
	return tp.uriRewriter.RewriteURI(u, effect, loader, hints)
}
