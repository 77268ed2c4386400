// Package entity decodes HTML character references.
package entity

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// fixed holds the references every document relies on. Anything else is
// looked up in the full HTML5 table.
var fixed = map[string]string{
	"lt":   "<",
	"LT":   "<",
	"gt":   ">",
	"GT":   ">",
	"amp":  "&",
	"AMP":  "&",
	"quot": `"`,
	"QUOT": `"`,
	"apos": "'",
	"nbsp": "\u00a0",
}

// referenceRe matches a complete character reference including the
// trailing semicolon.
var referenceRe = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9A-Fa-f]+|\w+);`)

// maxCached bounds the lookup memo. The memo is dropped wholesale when full.
const maxCached = 256

var (
	cacheMu sync.Mutex
	cache   = make(map[string]string)
)

// Decode returns the text a reference name such as "amp", "#60" or "#x3c"
// stands for. Unknown names come back as "&name;" so the caller can emit
// them untouched.
func Decode(name string) string {
	if s, ok := fixed[name]; ok {
		return s
	}
	if strings.HasPrefix(name, "#") {
		if s, ok := decodeNumeric(name[1:]); ok {
			return s
		}
		return "&" + name + ";"
	}
	return lookup(name)
}

func decodeNumeric(num string) (string, bool) {
	base := 10
	if len(num) > 0 && (num[0] == 'x' || num[0] == 'X') {
		base = 16
		num = num[1:]
	}
	if num == "" {
		return "", false
	}
	for i := 0; i < len(num); i++ {
		c := num[i]
		switch {
		case '0' <= c && c <= '9':
		case base == 16 && ('a' <= c && c <= 'f' || 'A' <= c && c <= 'F'):
		default:
			return "", false
		}
	}
	n, err := strconv.ParseUint(num, base, 32)
	if err != nil || n == 0 || n > utf8.MaxRune || (n >= 0xd800 && n <= 0xdfff) {
		return "\ufffd", true
	}
	return string(rune(n)), true
}

func lookup(name string) string {
	cacheMu.Lock()
	s, ok := cache[name]
	cacheMu.Unlock()
	if ok {
		return s
	}

	ref := "&" + name + ";"
	s = html.UnescapeString(ref)
	// UnescapeString also accepts legacy prefixes such as "&ampfoo;", which
	// leave the tail of the name behind. Only whole-name matches count.
	if s == ref || (len(s) > 1 && strings.HasSuffix(s, ";")) {
		s = ref
	}

	cacheMu.Lock()
	if len(cache) >= maxCached {
		cache = make(map[string]string)
	}
	cache[name] = s
	cacheMu.Unlock()
	return s
}

// ResetCache forgets every memoized lookup.
func ResetCache() {
	cacheMu.Lock()
	cache = make(map[string]string)
	cacheMu.Unlock()
}

// Unescape replaces every well-formed character reference in s. A bare '&'
// that does not start a reference is left alone.
func Unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return referenceRe.ReplaceAllStringFunc(s, func(ref string) string {
		return Decode(ref[1 : len(ref)-1])
	})
}

// StripNULs removes every U+0000 from s.
func StripNULs(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// IsReferenceStart reports whether s begins with a reference name followed
// by ';', i.e. whether a '&' placed before s forms a reference.
func IsReferenceStart(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '#' {
		i = 1
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			j := i + 1
			for j < len(s) && isHex(s[j]) {
				j++
			}
			if j > i+1 && j < len(s) && s[j] == ';' {
				return true
			}
		}
		j := i
		for j < len(s) && '0' <= s[j] && s[j] <= '9' {
			j++
		}
		return j > i && j < len(s) && s[j] == ';'
	}
	for i < len(s) && isWord(s[i]) {
		i++
	}
	return i > 0 && i < len(s) && s[i] == ';'
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isWord(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_'
}
