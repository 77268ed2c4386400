package htmlsanitizer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/njchilds90/htmlsanitizer/v2/internal/entity"
	"github.com/njchilds90/htmlsanitizer/v2/internal/lexer"
)

// urlRegexp matches http/https URLs inside plain text.
var urlRegexp = regexp.MustCompile(`https?://[^\s<>"]+[^\s<>".,;:!?)\]]`)

// frame is an element whose end tag is still owed.
type frame struct {
	orig string // name in the input
	rep  string // name in the output
	// silent frames were folded by MaxDepth: no tags are written for them.
	silent bool
	// void frames were renamed to an empty element: the open tag was
	// written but no end tag is.
	void bool
	// optional is set when the input element may omit its end tag.
	optional bool
}

func (f frame) nests() bool {
	return !f.silent && !f.void
}

// assembler is the sax.Handler that writes sanitized markup. It consults
// the tag policy for every start tag and keeps the open-element stack so the
// output is always balanced.
type assembler struct {
	schema   *Schema
	policy   TagPolicy
	logger   ChangeLogger
	linkify  bool
	maxDepth int

	out     bytes.Buffer
	stack   []frame
	depth   int
	anchors int

	// open maps an input element name to the stack indexes where it is
	// open. required holds the indexes of frames whose end tag is not
	// optional.
	open     map[string][]int
	required []int

	// text is the pending PCDATA run, linkified as a whole once a tag or
	// the end of the document ends it.
	text strings.Builder

	// While ignoring, everything up to the end tag of ignoreTag is
	// dropped. ignoreDepth counts nested elements of the same name.
	ignoring    bool
	ignoreTag   string
	ignoreDepth int

	// err holds a failure raised where the handler cannot return one.
	err error
}

func (a *assembler) StartDoc() {
	a.out.Reset()
	a.stack = a.stack[:0]
	a.depth, a.anchors = 0, 0
	if a.open == nil {
		a.open = make(map[string][]int)
	}
	clear(a.open)
	a.required = a.required[:0]
	a.text.Reset()
	a.ignoring, a.ignoreTag, a.ignoreDepth = false, "", 0
	a.err = nil
}

func (a *assembler) StartTag(name string, attrs []lexer.Attr) error {
	a.flushText()
	flags, known := a.schema.ElementFlags(name)

	if a.ignoring {
		if name != a.ignoreTag {
			return nil
		}
		switch {
		case flags&OptionalEndTag != 0 && a.ignoreDepth == 0:
			// A sibling of an omitted optional-end-tag element closes it.
			a.ignoring = false
		case flags&Empty == 0:
			a.ignoreDepth++
			return nil
		default:
			return nil
		}
	}

	if !known {
		logElementRemoved(a.logger, name)
		a.ignore(name)
		return nil
	}
	if flags&Foldable != 0 {
		logElementRemoved(a.logger, name)
		return nil
	}

	d, err := a.policy.Decide(name, toAttributes(attrs))
	if err != nil {
		return fmt.Errorf("htmlsanitizer: tag policy for <%s>: %w", name, err)
	}
	if d.Omitted() {
		if flags&Empty == 0 {
			a.ignore(name)
		}
		return nil
	}
	repFlags, err := a.checkDecision(name, d)
	if err != nil {
		return err
	}

	if flags&OptionalEndTag != 0 && len(a.stack) > 0 && a.stack[len(a.stack)-1].orig == name {
		a.closeTop()
	}

	silent := a.maxDepth > 0 && a.depth >= a.maxDepth
	if flags&Empty == 0 {
		a.push(frame{
			orig:     name,
			rep:      d.TagName,
			silent:   silent,
			void:     repFlags&Empty != 0,
			optional: flags&OptionalEndTag != 0,
		})
	}
	if silent {
		return nil
	}
	a.writeStartTag(d.TagName, d.Attrs)
	if flags&Empty != 0 && repFlags&Empty == 0 {
		a.writeEndTag(d.TagName)
	}
	return nil
}

func (a *assembler) EndTag(name string) error {
	a.flushText()
	if a.ignoring {
		if name == a.ignoreTag {
			if a.ignoreDepth > 0 {
				a.ignoreDepth--
			} else {
				a.ignoring = false
			}
			return nil
		}
		if a.openIndex(name) < 0 {
			return nil
		}
		// An open ancestor is closing, so the omitted element is over too.
		a.ignoring = false
	}

	flags, known := a.schema.ElementFlags(name)
	if !known || flags&(Empty|Foldable) != 0 {
		return nil
	}

	index := a.openIndex(name)
	if index < 0 {
		return nil
	}
	// Never close a required end tag while looking for an optional one.
	if flags&OptionalEndTag != 0 && len(a.required) > 0 && a.required[len(a.required)-1] > index {
		return nil
	}
	for len(a.stack) > index {
		a.closeTop()
	}
	return nil
}

func (a *assembler) PCDATA(text string) {
	if a.ignoring {
		return
	}
	if a.linkify && a.anchors == 0 {
		a.text.WriteString(text)
		return
	}
	a.out.WriteString(text)
}

func (a *assembler) RCDATA(text string) {
	a.flushText()
	if !a.ignoring {
		a.out.WriteString(text)
	}
}

func (a *assembler) CDATA(text string) {
	a.flushText()
	if !a.ignoring {
		a.out.WriteString(text)
	}
}

func (a *assembler) Comment(string) {}

func (a *assembler) EndDoc() {
	a.flushText()
	for len(a.stack) > 0 {
		a.closeTop()
	}
}

func (a *assembler) ignore(name string) {
	a.ignoring = true
	a.ignoreTag = name
	a.ignoreDepth = 0
}

func (a *assembler) push(f frame) {
	i := len(a.stack)
	a.stack = append(a.stack, f)
	a.open[f.orig] = append(a.open[f.orig], i)
	if !f.optional {
		a.required = append(a.required, i)
	}
	if f.nests() {
		a.depth++
		if f.rep == "a" {
			a.anchors++
		}
	}
}

func (a *assembler) closeTop() {
	f := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	ids := a.open[f.orig]
	a.open[f.orig] = ids[:len(ids)-1]
	if !f.optional {
		a.required = a.required[:len(a.required)-1]
	}
	if f.nests() {
		a.depth--
		if f.rep == "a" {
			a.anchors--
		}
		a.writeEndTag(f.rep)
	}
}

// openIndex returns the stack index of the innermost open name, or -1.
func (a *assembler) openIndex(name string) int {
	ids := a.open[name]
	if len(ids) == 0 {
		return -1
	}
	return ids[len(ids)-1]
}

// checkDecision verifies that a kept decision names an element the schema
// allows and only well-formed attribute names.
func (a *assembler) checkDecision(orig string, d TagDecision) (ElementFlags, error) {
	if d.TagName == "" || lexer.TagName(d.TagName) != d.TagName {
		return 0, &PolicyContractError{TagName: orig, Reason: fmt.Sprintf("invalid replacement tag name %q", d.TagName)}
	}
	flags, ok := a.schema.ElementFlags(d.TagName)
	if !ok {
		return 0, &PolicyContractError{TagName: orig, Reason: fmt.Sprintf("replacement <%s> is not in the schema", d.TagName)}
	}
	if flags&(Unsafe|Foldable) != 0 {
		return 0, &PolicyContractError{TagName: orig, Reason: fmt.Sprintf("replacement <%s> is %s", d.TagName, flags)}
	}
	for _, at := range d.Attrs {
		if !at.Removed && !validAttrName(at.Name) {
			return 0, &PolicyContractError{TagName: orig, Reason: fmt.Sprintf("invalid attribute name %q", at.Name)}
		}
	}
	return flags, nil
}

func (a *assembler) writeStartTag(name string, attrs []Attribute) {
	a.out.WriteByte('<')
	a.out.WriteString(name)
	for _, at := range attrs {
		if at.Removed {
			continue
		}
		a.out.WriteByte(' ')
		a.out.WriteString(at.Name)
		a.out.WriteString(`="`)
		a.out.WriteString(html.EscapeString(at.Value))
		a.out.WriteByte('"')
	}
	a.out.WriteByte('>')
}

func (a *assembler) writeEndTag(name string) {
	a.out.WriteString("</")
	a.out.WriteString(name)
	a.out.WriteByte('>')
}

func (a *assembler) flushText() {
	if a.text.Len() == 0 {
		return
	}
	text := a.text.String()
	a.text.Reset()
	a.writeLinkedText(text)
}

// writeLinkedText writes escaped text, turning every URL in it into a link
// decided by the tag policy. A URL the policy refuses stays plain text.
func (a *assembler) writeLinkedText(text string) {
	last := 0
	for _, m := range urlRegexp.FindAllStringIndex(text, -1) {
		a.out.WriteString(text[last:m[0]])
		rawURL := text[m[0]:m[1]]
		last = m[1]

		d, err := a.policy.Decide("a", []Attribute{
			{Name: "href", Value: entity.Unescape(rawURL)},
			{Name: "rel", Value: "nofollow noopener noreferrer"},
		})
		if err == nil && !d.Omitted() {
			_, err = a.checkDecision("a", d)
		}
		if err != nil {
			if a.err == nil {
				a.err = fmt.Errorf("htmlsanitizer: tag policy for linkified <a>: %w", err)
			}
			a.out.WriteString(rawURL)
			continue
		}
		if d.Omitted() || d.GetAttr("href") == "" {
			a.out.WriteString(rawURL)
			continue
		}
		a.writeStartTag(d.TagName, d.Attrs)
		a.out.WriteString(rawURL)
		a.writeEndTag(d.TagName)
	}
	a.out.WriteString(text[last:])
}

func toAttributes(attrs []lexer.Attr) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, at := range attrs {
		out[i] = Attribute{Name: at.Name, Value: at.Value}
	}
	return out
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_' || c == '-' || c == '.' || c == ':') {
			return false
		}
	}
	return true
}
