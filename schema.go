package htmlsanitizer

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/njchilds90/htmlsanitizer/v2/internal/sax"
)

// ElementFlags describe how an element is parsed and whether it may be
// emitted at all.
type ElementFlags uint16

const (
	// OptionalEndTag elements (p, li, td, ...) are closed implicitly by a
	// following sibling of the same name or by their parent's end tag.
	OptionalEndTag ElementFlags = 1 << iota
	// Empty elements (br, img, ...) have no content and no end tag.
	Empty
	// CDATA elements have a raw text body up to their end tag.
	CDATA
	// RCDATA elements have a text body that may contain character
	// references but no tags.
	RCDATA
	// Unsafe elements are never emitted by the default policy.
	Unsafe
	// Foldable elements are dropped but their content is kept.
	Foldable
)

var flagNames = []struct {
	flag ElementFlags
	name string
}{
	{OptionalEndTag, "optional_end_tag"},
	{Empty, "empty"},
	{CDATA, "cdata"},
	{RCDATA, "rcdata"},
	{Unsafe, "unsafe"},
	{Foldable, "foldable"},
}

// Has reports whether every bit of g is set in f.
func (f ElementFlags) Has(g ElementFlags) bool {
	return f&g == g
}

func (f ElementFlags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseElementFlag returns the flag named by s, e.g. "optional_end_tag".
func ParseElementFlag(s string) (ElementFlags, error) {
	for _, fn := range flagNames {
		if strings.EqualFold(fn.name, s) {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown element flag %q", s)
}

// AttributeKind classifies the value of an attribute and selects the rule
// used to sanitize it.
type AttributeKind uint8

const (
	KindNone AttributeKind = iota
	KindURI
	KindURIFragment
	KindScript
	KindStyle
	KindID
	KindIDRef
	KindIDRefs
	KindGlobalName
	KindLocalName
	KindClasses
	KindFrameTarget
	KindHTML
	KindMediaQuery
)

var kindNames = [...]string{
	KindNone:        "none",
	KindURI:         "uri",
	KindURIFragment: "uri_fragment",
	KindScript:      "script",
	KindStyle:       "style",
	KindID:          "id",
	KindIDRef:       "idref",
	KindIDRefs:      "idrefs",
	KindGlobalName:  "global_name",
	KindLocalName:   "local_name",
	KindClasses:     "classes",
	KindFrameTarget: "frame_target",
	KindHTML:        "html",
	KindMediaQuery:  "media_query",
}

func (k AttributeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("AttributeKind(%d)", k)
}

// ParseAttributeKind returns the kind named by s, e.g. "uri".
func ParseAttributeKind(s string) (AttributeKind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return AttributeKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute kind %q", s)
}

// URIEffect says what following a URI does to the embedding page.
type URIEffect uint8

const (
	NotLoaded URIEffect = iota
	SameDocument
	NewDocument
)

func (e URIEffect) String() string {
	switch e {
	case NotLoaded:
		return "not_loaded"
	case SameDocument:
		return "same_document"
	case NewDocument:
		return "new_document"
	}
	return fmt.Sprintf("URIEffect(%d)", e)
}

// ParseURIEffect returns the effect named by s, e.g. "new_document".
func ParseURIEffect(s string) (URIEffect, error) {
	for e := NotLoaded; e <= NewDocument; e++ {
		if strings.EqualFold(e.String(), s) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown uri effect %q", s)
}

// LoaderType says how the content behind a URI is loaded.
type LoaderType uint8

const (
	LoaderData LoaderType = iota
	LoaderSandboxed
	LoaderUnsandboxed
)

func (l LoaderType) String() string {
	switch l {
	case LoaderData:
		return "data"
	case LoaderSandboxed:
		return "sandboxed"
	case LoaderUnsandboxed:
		return "unsandboxed"
	}
	return fmt.Sprintf("LoaderType(%d)", l)
}

// ParseLoaderType returns the loader type named by s, e.g. "sandboxed".
func ParseLoaderType(s string) (LoaderType, error) {
	for l := LoaderData; l <= LoaderUnsandboxed; l++ {
		if strings.EqualFold(l.String(), s) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown loader type %q", s)
}

// Schema is the element and attribute whitelist. The zero value knows no
// elements; use DefaultSchema. A Schema must not be modified once it is in
// use by a Policy.
type Schema struct {
	elements    map[string]ElementFlags
	attributes  map[string]AttributeKind
	uriEffects  map[string]URIEffect
	loaderTypes map[string]LoaderType
	required    map[string][]string
}

// DefaultSchema returns a fresh copy of the built-in HTML whitelist.
func DefaultSchema() *Schema {
	s := newSchema()
	for k, v := range defaultElements {
		s.elements[k] = v
	}
	for k, v := range defaultAttributes {
		s.attributes[k] = v
	}
	for k, v := range defaultURIEffects {
		s.uriEffects[k] = v
	}
	for k, v := range defaultLoaderTypes {
		s.loaderTypes[k] = v
	}
	for k, v := range defaultRequired {
		s.required[k] = append([]string(nil), v...)
	}
	return s
}

func newSchema() *Schema {
	return &Schema{
		elements:    make(map[string]ElementFlags),
		attributes:  make(map[string]AttributeKind),
		uriEffects:  make(map[string]URIEffect),
		loaderTypes: make(map[string]LoaderType),
		required:    make(map[string][]string),
	}
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	c := newSchema()
	for k, v := range s.elements {
		c.elements[k] = v
	}
	for k, v := range s.attributes {
		c.attributes[k] = v
	}
	for k, v := range s.uriEffects {
		c.uriEffects[k] = v
	}
	for k, v := range s.loaderTypes {
		c.loaderTypes[k] = v
	}
	for k, v := range s.required {
		c.required[k] = append([]string(nil), v...)
	}
	return c
}

// Only returns a copy of s restricted to the named elements. Every other
// safe element becomes Foldable, so its tags are dropped and its content
// kept. Unsafe elements are kept as they are. Attributes are kept only for
// the named elements; wildcard attributes are dropped unless keepGlobal is
// set.
func (s *Schema) Only(keepGlobal bool, tags ...string) *Schema {
	c := newSchema()
	for t, f := range s.elements {
		if f&Unsafe == 0 {
			f |= Foldable
		}
		c.elements[t] = f
	}
	keep := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(t)
		if f, ok := s.elements[t]; ok {
			c.elements[t] = f
			keep[t] = true
		}
	}
	for k, v := range s.attributes {
		tag, _ := splitKey(k)
		if keep[tag] || (keepGlobal && tag == "*") {
			c.attributes[k] = v
			if e, ok := s.uriEffects[k]; ok {
				c.uriEffects[k] = e
			}
			if l, ok := s.loaderTypes[k]; ok {
				c.loaderTypes[k] = l
			}
		}
	}
	for t := range keep {
		if r, ok := s.required[t]; ok {
			c.required[t] = append([]string(nil), r...)
		}
	}
	return c
}

// ElementFlags returns the flags of tagName and whether the element is in
// the whitelist at all.
func (s *Schema) ElementFlags(tagName string) (ElementFlags, bool) {
	f, ok := s.elements[tagName]
	return f, ok
}

// AttributeKind looks up tagName::attrName, then *::attrName.
func (s *Schema) AttributeKind(tagName, attrName string) (AttributeKind, bool) {
	if k, ok := s.attributes[attrKey(tagName, attrName)]; ok {
		return k, true
	}
	k, ok := s.attributes[attrKey("*", attrName)]
	return k, ok
}

// URIEffect returns the effect recorded for a URI attribute. Unlisted
// attributes are treated as NotLoaded.
func (s *Schema) URIEffect(tagName, attrName string) URIEffect {
	if e, ok := s.uriEffects[attrKey(tagName, attrName)]; ok {
		return e
	}
	return s.uriEffects[attrKey("*", attrName)]
}

// LoaderType returns the loader recorded for a URI attribute. Unlisted
// attributes are treated as LoaderData.
func (s *Schema) LoaderType(tagName, attrName string) LoaderType {
	if l, ok := s.loaderTypes[attrKey(tagName, attrName)]; ok {
		return l
	}
	return s.loaderTypes[attrKey("*", attrName)]
}

// RequiredAttributes lists the attributes that must survive sanitization
// for tagName to be kept.
func (s *Schema) RequiredAttributes(tagName string) []string {
	return s.required[tagName]
}

// SetElement adds or replaces an element.
func (s *Schema) SetElement(tagName string, flags ElementFlags) {
	s.elements[strings.ToLower(tagName)] = flags
}

// RemoveElement drops an element from the whitelist.
func (s *Schema) RemoveElement(tagName string) {
	delete(s.elements, strings.ToLower(tagName))
}

// SetAttribute adds or replaces an attribute; use "*" as tagName for every
// element.
func (s *Schema) SetAttribute(tagName, attrName string, kind AttributeKind) {
	s.attributes[attrKey(strings.ToLower(tagName), strings.ToLower(attrName))] = kind
}

// SetURIEffect records how a URI attribute is loaded.
func (s *Schema) SetURIEffect(tagName, attrName string, effect URIEffect, loader LoaderType) {
	key := attrKey(strings.ToLower(tagName), strings.ToLower(attrName))
	s.uriEffects[key] = effect
	s.loaderTypes[key] = loader
}

// Require marks attributes that must survive sanitization for tagName to be
// emitted.
func (s *Schema) Require(tagName string, attrNames ...string) {
	tagName = strings.ToLower(tagName)
	for _, a := range attrNames {
		s.required[tagName] = append(s.required[tagName], strings.ToLower(a))
	}
}

// Validate reports every element whose flags contradict each other and
// required attributes recorded for elements the schema does not know.
func (s *Schema) Validate() error {
	var result *multierror.Error
	for tag, f := range s.elements {
		if f.Has(CDATA | RCDATA) {
			result = multierror.Append(result, fmt.Errorf("element %q: cdata and rcdata are exclusive", tag))
		}
		if f&Empty != 0 && f&(CDATA|RCDATA) != 0 {
			result = multierror.Append(result, fmt.Errorf("element %q: empty element cannot have a text body", tag))
		}
	}
	for tag, attrs := range s.required {
		if _, ok := s.elements[tag]; !ok {
			result = multierror.Append(result, fmt.Errorf("required attributes %v for unknown element %q", attrs, tag))
		}
	}
	return result.ErrorOrNil()
}

func (s *Schema) textMode(tagName string) sax.TextMode {
	f := s.elements[tagName]
	switch {
	case f&CDATA != 0:
		return sax.CDATA
	case f&RCDATA != 0:
		return sax.RCDATA
	}
	return sax.Markup
}

func attrKey(tagName, attrName string) string {
	return tagName + "::" + attrName
}

func splitKey(key string) (tagName, attrName string) {
	tagName, attrName, _ = strings.Cut(key, "::")
	return tagName, attrName
}
