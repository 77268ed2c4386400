// Package sax walks a token stream and reports tags, text and comments to a
// Handler. It is a single iterative loop; nothing recurses on input size.
package sax

import (
	"strings"

	"github.com/njchilds90/htmlsanitizer/v2/internal/entity"
	"github.com/njchilds90/htmlsanitizer/v2/internal/lexer"
)

// TextMode says how the body of an element is scanned.
type TextMode uint8

const (
	Markup TextMode = iota // ordinary content
	CDATA                  // raw text up to the matching end tag
	RCDATA                 // text with character references, no tags
)

// Handler receives parse events. StartTag and EndTag may return an error,
// which stops the parse and is returned from Parse unchanged.
type Handler interface {
	StartDoc()
	StartTag(name string, attrs []lexer.Attr) error
	EndTag(name string) error
	// PCDATA text is either a raw run without markup delimiters or an
	// already escaped fragment such as "&lt;" or "&amp;rest".
	PCDATA(text string)
	RCDATA(text string)
	CDATA(text string)
	Comment(text string)
	EndDoc()
}

// Mode is the scanner state.
type Mode uint8

const (
	Scanning Mode = iota
	InTextModeElement
	Done
)

// State is the per-parse scanner state.
type State struct {
	Mode Mode
	Pos  int

	// NoMoreEndComments is set once a search for "-->" has failed. No later
	// comment can be closed either, so later "<!--" are treated as text.
	NoMoreEndComments bool
	// NoMoreGT is the same guard for "<!" and "<?" constructs.
	NoMoreGT bool

	textTag  string
	textMode TextMode
}

// Parser drives a Handler over a token stream.
type Parser struct {
	// TextModeOf reports how the body of the named element is scanned.
	// A nil func treats every element as Markup.
	TextModeOf func(tagName string) TextMode
}

// Parse splits markup and walks it.
func (p *Parser) Parse(markup string, h Handler) error {
	return p.ParseTokens(lexer.Split(markup), h)
}

// ParseTokens walks tokens, calling h for every event.
func (p *Parser) ParseTokens(tokens []lexer.Token, h Handler) error {
	st := &State{}
	h.StartDoc()
	for st.Mode != Done {
		var err error
		switch st.Mode {
		case Scanning:
			err = p.scan(tokens, st, h)
		case InTextModeElement:
			p.scanText(tokens, st, h)
		}
		if err != nil {
			return err
		}
	}
	h.EndDoc()
	return nil
}

func (p *Parser) textModeOf(name string) TextMode {
	if p.TextModeOf == nil {
		return Markup
	}
	return p.TextModeOf(name)
}

// scan consumes one construct starting at st.Pos.
func (p *Parser) scan(tokens []lexer.Token, st *State, h Handler) error {
	if st.Pos >= len(tokens) {
		st.Mode = Done
		return nil
	}
	cur := tokens[st.Pos]
	st.Pos++
	var next lexer.Token
	hasNext := st.Pos < len(tokens)
	if hasNext {
		next = tokens[st.Pos]
	}
	nextText := hasNext && next.Kind == lexer.Text

	switch cur.Kind {
	case lexer.Amp:
		if nextText && entity.IsReferenceStart(next.Text) {
			h.PCDATA("&" + next.Text)
			st.Pos++
		} else {
			h.PCDATA("&amp;")
		}

	case lexer.EndTagOpen:
		name := ""
		if nextText {
			name = lexer.TagName(next.Text)
		}
		if name == "" {
			h.PCDATA("&lt;/")
			return nil
		}
		if !strings.ContainsAny(next.Text, `"'`) && st.Pos+1 < len(tokens) && tokens[st.Pos+1].Kind == lexer.TagClose {
			st.Pos += 2
			return h.EndTag(strings.ToLower(name))
		}
		tag, ok := lexer.ParseTag(tokens, st.Pos)
		if !ok {
			st.Pos = len(tokens)
			return nil
		}
		st.Pos = tag.Next
		return h.EndTag(tag.Name)

	case lexer.TagOpen:
		name := ""
		if nextText {
			name = lexer.TagName(next.Text)
		}
		if name == "" {
			h.PCDATA("&lt;")
			return nil
		}
		var tag lexer.Tag
		if isBareName(next.Text[len(name):]) && st.Pos+1 < len(tokens) && tokens[st.Pos+1].Kind == lexer.TagClose {
			tag = lexer.Tag{Name: strings.ToLower(name), Next: st.Pos + 2}
		} else {
			var ok bool
			if tag, ok = lexer.ParseTag(tokens, st.Pos); !ok {
				st.Pos = len(tokens)
				return nil
			}
		}
		st.Pos = tag.Next
		if err := h.StartTag(tag.Name, tag.Attrs); err != nil {
			return err
		}
		if mode := p.textModeOf(tag.Name); mode != Markup {
			st.Mode = InTextModeElement
			st.textTag = tag.Name
			st.textMode = mode
		}

	case lexer.CommentOpen:
		if !st.NoMoreEndComments {
			end := st.Pos + 1
			for ; end < len(tokens); end++ {
				if tokens[end].Kind == lexer.TagClose && strings.HasSuffix(tokens[end-1].Text, "--") {
					break
				}
			}
			if end < len(tokens) {
				body := join(tokens[st.Pos:end])
				h.Comment(body[:len(body)-2])
				st.Pos = end + 1
				return nil
			}
			st.NoMoreEndComments = true
		}
		h.PCDATA("&lt;!--")

	case lexer.DeclOpen:
		if !nextText || !isWord(next.Text[0]) {
			h.PCDATA("&lt;!")
			return nil
		}
		if !p.skipToClose(tokens, st, st.Pos+1) {
			h.PCDATA("&lt;!")
		}

	case lexer.PIOpen:
		if !p.skipToClose(tokens, st, st.Pos) {
			h.PCDATA("&lt;?")
		}

	case lexer.TagClose:
		h.PCDATA("&gt;")

	default:
		h.PCDATA(cur.Text)
	}
	return nil
}

// skipToClose moves st.Pos past the first '>' at or after from. It reports
// false once no '>' is left in the document.
func (p *Parser) skipToClose(tokens []lexer.Token, st *State, from int) bool {
	if st.NoMoreGT {
		return false
	}
	for i := from; i < len(tokens); i++ {
		if tokens[i].Kind == lexer.TagClose {
			st.Pos = i + 1
			return true
		}
	}
	st.NoMoreGT = true
	return false
}

// scanText collects the body of a CDATA or RCDATA element up to, but not
// including, the '</' of its end tag.
func (p *Parser) scanText(tokens []lexer.Token, st *State, h Handler) {
	first := st.Pos
	end := first + 1
	for ; end < len(tokens); end++ {
		if tokens[end-1].Kind == lexer.EndTagOpen && closesText(tokens[end], st.textTag) {
			break
		}
	}
	if end < len(tokens) {
		end--
	} else {
		end = len(tokens)
	}
	if end < first {
		end = first
	}

	body := join(tokens[first:end])
	switch st.textMode {
	case CDATA:
		h.CDATA(body)
	case RCDATA:
		h.RCDATA(NormalizeRCDATA(body))
	}
	st.Pos = end
	st.Mode = Scanning
	st.textTag = ""
}

// closesText reports whether tok starts the end tag of name: the name,
// case-insensitively, followed by whitespace, '/' or the end of the token.
func closesText(tok lexer.Token, name string) bool {
	if tok.Kind != lexer.Text || len(tok.Text) < len(name) || !strings.EqualFold(tok.Text[:len(name)], name) {
		return false
	}
	if len(tok.Text) == len(name) {
		return true
	}
	switch tok.Text[len(name)] {
	case ' ', '\t', '\n', '\r', '\f', '\v', '/':
		return true
	}
	return false
}

// NormalizeRCDATA escapes '<', '>' and every '&' that cannot start a
// character reference, leaving existing references alone.
func NormalizeRCDATA(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			if looseAmp(s[i+1:]) {
				b.WriteString("&amp;")
			} else {
				b.WriteByte('&')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// looseAmp reports whether an '&' followed by rest cannot begin a
// reference: not a letter, not '#' plus a digit, not '#x' plus a hex digit.
func looseAmp(rest string) bool {
	if rest == "" {
		return true
	}
	if isLetter(rest[0]) {
		return false
	}
	if rest[0] != '#' || len(rest) < 2 {
		return true
	}
	switch c := rest[1]; {
	case '0' <= c && c <= '9':
		return false
	case c == 'x' || c == 'X':
		return len(rest) < 3 || !isHex(rest[2])
	}
	return true
}

// isBareName reports whether the text after a tag name is `\s*/?`.
func isBareName(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\n\r\f\v")
	return rest == "" || rest == "/"
}

func join(tokens []lexer.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isWord(c byte) bool {
	return isLetter(c) || '0' <= c && c <= '9' || c == '_'
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
