package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/njchilds90/htmlsanitizer/v2/internal/entity"
)

// Attr is a parsed attribute. Value is already unquoted, stripped of NULs
// and entity-decoded.
type Attr struct {
	Name  string
	Value string
}

// Tag is the result of ParseTag.
type Tag struct {
	Name  string
	Attrs []Attr
	// Next is the index of the first token after the tag.
	Next int
}

// TagName returns the leading run of tag-name characters ([-\w:]) in s.
func TagName(s string) string {
	i := 0
	for i < len(s) && isTagNameChar(s[i]) {
		i++
	}
	return s[:i]
}

// ParseTag parses the tag whose name starts tokens[pos], the token right
// after a '<' or '</'. It returns false when no '>' follows, in which case
// the tag and everything after it is dropped by the caller.
//
// The splitter knows nothing about quotes, so a '>' inside a quoted value
// ends the first scan early. When the attribute matcher sees an unterminated
// quote the scan is resumed past the quote and the attributes are matched
// again over the longer buffer.
func ParseTag(tokens []Token, pos int) (Tag, bool) {
	if pos >= len(tokens) || tokens[pos].Kind != Text {
		return Tag{}, false
	}
	first := tokens[pos].Text
	name := TagName(first)
	if name == "" {
		return Tag{}, false
	}

	var b strings.Builder
	b.WriteString(first[len(name):])
	p := pos + 1
	for ; p < len(tokens); p++ {
		if tokens[p].Kind == TagClose {
			break
		}
		b.WriteString(tokens[p].Text)
	}
	if p >= len(tokens) {
		return Tag{}, false
	}

	tag := Tag{Name: strings.ToLower(name)}
	buf := b.String()
	for buf != "" {
		m, ok := matchAttr(buf)
		switch {
		case !ok:
			buf = skipGarbage(buf)
		case m.openQuote != 0:
			var ab strings.Builder
			ab.WriteString(buf)
			ab.WriteString(tokens[p].Text)
			p++
			sawQuote := false
			for ; p < len(tokens); p++ {
				if sawQuote {
					if tokens[p].Kind == TagClose {
						break
					}
				} else if strings.IndexByte(tokens[p].Text, m.openQuote) >= 0 {
					sawQuote = true
				}
				ab.WriteString(tokens[p].Text)
			}
			if p >= len(tokens) {
				// The quote never closed; keep what was matched and give up
				// on the rest of the input.
				tag.Next = len(tokens)
				return tag, true
			}
			buf = ab.String()
		default:
			value := ""
			if m.hasValue {
				value = decodeValue(m.raw)
			}
			tag.Attrs = append(tag.Attrs, Attr{Name: strings.ToLower(m.name), Value: value})
			buf = buf[m.length:]
		}
	}
	tag.Next = p + 1
	return tag, true
}

type attrMatch struct {
	name      string
	hasValue  bool
	raw       string
	length    int
	openQuote byte
}

// matchAttr matches one `name(=value)?` at the start of buf, skipping
// leading whitespace. A value is double quoted, single quoted, empty when
// the next thing is another `name=`, or a bare run without quotes or spaces.
func matchAttr(buf string) (attrMatch, bool) {
	i := skipSpace(buf, 0)
	j := i
	for j < len(buf) && isAttrNameChar(buf[j]) {
		j++
	}
	if j == i {
		return attrMatch{}, false
	}
	m := attrMatch{name: buf[i:j], length: j}

	k := skipSpace(buf, j)
	if k >= len(buf) || buf[k] != '=' {
		return m, true
	}
	k = skipSpace(buf, k+1)
	m.hasValue = true
	start := k
	switch {
	case k < len(buf) && (buf[k] == '"' || buf[k] == '\''):
		q := buf[k]
		end := strings.IndexByte(buf[k+1:], q)
		if end < 0 {
			m.raw = buf[k:]
			m.length = len(buf)
			m.openQuote = q
			return m, true
		}
		k += end + 2
	case startsAssignment(buf[k:]):
	default:
		for k < len(buf) && buf[k] != '"' && buf[k] != '\'' && !isSpace(buf[k]) {
			k++
		}
	}
	m.raw = buf[start:k]
	m.length = k
	return m, true
}

// startsAssignment reports whether s begins with `[a-z][-\w]*\s*=`.
func startsAssignment(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	i := 1
	for i < len(s) && (isWord(s[i]) || s[i] == '-') {
		i++
	}
	i = skipSpace(s, i)
	return i < len(s) && s[i] == '='
}

// skipGarbage drops one character and whatever follows it up to the next
// lower-case letter or whitespace.
func skipGarbage(buf string) string {
	_, n := utf8.DecodeRuneInString(buf)
	for n < len(buf) && !('a' <= buf[n] && buf[n] <= 'z') && !isSpace(buf[n]) {
		n++
	}
	return buf[n:]
}

func decodeValue(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') {
		v = v[1 : len(v)-1]
	}
	return entity.Unescape(entity.StripNULs(v))
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isWord(c byte) bool {
	return isLetter(c) || '0' <= c && c <= '9' || c == '_'
}

func isTagNameChar(c byte) bool {
	return isWord(c) || c == '-' || c == ':'
}

func isAttrNameChar(c byte) bool {
	return isTagNameChar(c) || c == '.'
}
