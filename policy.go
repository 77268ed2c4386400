package htmlsanitizer

import (
	"strings"
)

// Attribute is one name/value pair handed to or returned by a TagPolicy.
// Removed marks an attribute the policy rejected; it is never rendered.
type Attribute struct {
	Name    string
	Value   string
	Removed bool
}

// TagDecision is what a TagPolicy returns for a start tag. The zero value
// omits the element; use Keep to emit it.
type TagDecision struct {
	keep    bool
	TagName string
	Attrs   []Attribute
}

// Omit drops the element. Unless the element is empty, its content is
// dropped up to the matching end tag.
func Omit() TagDecision {
	return TagDecision{}
}

// Keep emits the element as tagName with attrs, in order.
func Keep(tagName string, attrs []Attribute) TagDecision {
	return TagDecision{keep: true, TagName: tagName, Attrs: attrs}
}

// Omitted reports whether d drops the element.
func (d TagDecision) Omitted() bool {
	return !d.keep
}

// SetAttr sets (or adds) the attribute key=val. It is intended for use
// inside Transformer functions.
func (d *TagDecision) SetAttr(key, val string) {
	for i, a := range d.Attrs {
		if a.Name == key {
			d.Attrs[i].Value = val
			d.Attrs[i].Removed = false
			return
		}
	}
	d.Attrs = append(d.Attrs, Attribute{Name: key, Value: val})
}

// GetAttr returns the value of the named attribute, or "" if it is absent
// or removed.
func (d *TagDecision) GetAttr(key string) string {
	for _, a := range d.Attrs {
		if a.Name == key && !a.Removed {
			return a.Value
		}
	}
	return ""
}

// RemoveAttr marks the named attribute as removed if present.
func (d *TagDecision) RemoveAttr(key string) {
	for i, a := range d.Attrs {
		if a.Name == key {
			d.Attrs[i].Removed = true
		}
	}
}

// TagPolicy decides what happens to each start tag. attrs are the raw,
// entity-decoded attributes in source order. An error aborts sanitization.
type TagPolicy interface {
	Decide(tagName string, attrs []Attribute) (TagDecision, error)
}

// TagPolicyFunc adapts a function to TagPolicy.
type TagPolicyFunc func(tagName string, attrs []Attribute) (TagDecision, error)

func (f TagPolicyFunc) Decide(tagName string, attrs []Attribute) (TagDecision, error) {
	return f(tagName, attrs)
}

// NameTokenPolicy rewrites or rejects identifier-like attribute values
// (ids, class lists, names, targets). Returning false removes the
// attribute.
type NameTokenPolicy interface {
	RewriteName(tagName, attrName, value string) (string, bool)
}

// NameTokenPolicyFunc adapts a function to NameTokenPolicy.
type NameTokenPolicyFunc func(tagName, attrName, value string) (string, bool)

func (f NameTokenPolicyFunc) RewriteName(tagName, attrName, value string) (string, bool) {
	return f(tagName, attrName, value)
}

// Transformer receives a kept decision after attribute sanitization and may
// change it. Returning an omitted decision drops the element.
type Transformer func(tagName string, d TagDecision) TagDecision

// Policy configures a sanitizer. Nil capability fields fall back to the
// documented defaults. A Policy must not be mutated after first use.
type Policy struct {
	// Schema is the element and attribute whitelist. Nil means
	// DefaultSchema().
	Schema *Schema

	// AllowedSchemes lists the URI schemes accepted by URI attributes.
	// Schemeless (relative) URIs are always accepted. Nil means http,
	// https and mailto.
	AllowedSchemes []string

	// URIParser parses URI attribute values. Nil means StdURIParser.
	URIParser URIParser

	// URIRewriter gets the final say on every URI that passed the scheme
	// check. Nil means IdentityURIRewriter.
	URIRewriter URIRewriter

	// NameTokenPolicy rewrites ids, classes and names. Nil keeps them.
	NameTokenPolicy NameTokenPolicy

	// CSSSanitizer filters style attributes. Nil drops every style
	// attribute.
	CSSSanitizer CSSSanitizer

	// Logger receives a ChangeEvent for every element or attribute the
	// sanitizer alters.
	Logger ChangeLogger

	// Transformers are applied in order to every kept element.
	Transformers []Transformer

	// TagPolicy replaces the default decision logic entirely. The schema
	// is still used for parsing and tag balancing.
	TagPolicy TagPolicy

	// Linkify converts plain-text http and https URLs into <a> elements.
	// The generated links go through the tag policy like any other.
	Linkify bool

	// MaxDepth limits how deeply elements may nest. Elements beyond the
	// limit are dropped and their content kept. Zero means unlimited.
	MaxDepth int
}

// DefaultSchemes are the URI schemes accepted when Policy.AllowedSchemes
// is nil.
var DefaultSchemes = []string{"http", "https", "mailto"}

// DefaultPolicy returns a Policy that keeps the built-in whitelist of
// content elements, drops scripts, event handlers and style attributes, and
// accepts http, https, mailto and relative URIs unchanged.
func DefaultPolicy() *Policy {
	return &Policy{
		Schema:         DefaultSchema(),
		AllowedSchemes: append([]string(nil), DefaultSchemes...),
	}
}

// StrictPolicy returns a Policy that allows only basic inline formatting
// and lists with no attributes and no URIs at all, suitable for comment
// sections.
func StrictPolicy() *Policy {
	return &Policy{
		Schema:         DefaultSchema().Only(false, "b", "i", "em", "strong", "br", "p", "ul", "ol", "li"),
		AllowedSchemes: []string{"https"},
		URIRewriter:    DenyURIRewriter,
	}
}

func (p *Policy) schema() *Schema {
	if p.Schema == nil {
		return DefaultSchema()
	}
	return p.Schema
}

// NewTagPolicy builds the default decision logic from p's capabilities.
func (p *Policy) NewTagPolicy() TagPolicy {
	return p.newDefaultTagPolicy(p.schema())
}

func (p *Policy) newDefaultTagPolicy(s *Schema) *defaultTagPolicy {
	tp := &defaultTagPolicy{
		schema:       s,
		schemes:      make(map[string]bool),
		uriParser:    p.URIParser,
		uriRewriter:  p.URIRewriter,
		names:        p.NameTokenPolicy,
		css:          p.CSSSanitizer,
		logger:       p.Logger,
		transformers: p.Transformers,
	}
	schemes := p.AllowedSchemes
	if schemes == nil {
		schemes = DefaultSchemes
	}
	for _, sc := range schemes {
		tp.schemes[strings.ToLower(sc)] = true
	}
	if tp.uriParser == nil {
		tp.uriParser = StdURIParser{}
	}
	if tp.uriRewriter == nil {
		tp.uriRewriter = IdentityURIRewriter
	}
	return tp
}

// MakeTagPolicy builds the default tag policy over the built-in schema with
// the given capabilities; any of them may be nil.
func MakeTagPolicy(rewriter URIRewriter, names NameTokenPolicy, logger ChangeLogger) TagPolicy {
	p := DefaultPolicy()
	p.URIRewriter = rewriter
	p.NameTokenPolicy = names
	p.Logger = logger
	return p.NewTagPolicy()
}

type defaultTagPolicy struct {
	schema       *Schema
	schemes      map[string]bool
	uriParser    URIParser
	uriRewriter  URIRewriter
	names        NameTokenPolicy
	css          CSSSanitizer
	logger       ChangeLogger
	transformers []Transformer
}

func (tp *defaultTagPolicy) Decide(tagName string, attrs []Attribute) (TagDecision, error) {
	flags, ok := tp.schema.ElementFlags(tagName)
	if !ok || flags&(Unsafe|Foldable) != 0 {
		logElementRemoved(tp.logger, tagName)
		return Omit(), nil
	}

	d := Keep(tagName, tp.sanitizeAttrs(tagName, attrs))
	for _, req := range tp.schema.RequiredAttributes(tagName) {
		if d.GetAttr(req) == "" {
			logElementRemoved(tp.logger, tagName)
			return Omit(), nil
		}
	}
	for _, t := range tp.transformers {
		if d = t(tagName, d); d.Omitted() {
			return d, nil
		}
	}
	return d, nil
}
