// Package lexer splits markup into delimiter and text tokens and parses the
// tokens that follow a '<' into a tag name and attributes.
package lexer

import "strings"

// Split breaks markup into tokens in a single pass. Every delimiter becomes
// its own token and the text between delimiters becomes a Text token; empty
// runs produce nothing.
func Split(markup string) []Token {
	tokens := make([]Token, 0, strings.Count(markup, "<")*3+strings.Count(markup, "&")*2+1)
	start := 0
	flush := func(end int) {
		if end > start {
			tokens = append(tokens, Token{Kind: Text, Text: markup[start:end]})
		}
	}

	for i := 0; i < len(markup); {
		var k Kind
		n := 1
		switch markup[i] {
		case '&':
			k = Amp
		case '>':
			k = TagClose
		case '<':
			rest := markup[i+1:]
			switch {
			case strings.HasPrefix(rest, "/"):
				k, n = EndTagOpen, 2
			case strings.HasPrefix(rest, "!--"):
				k, n = CommentOpen, 4
			case strings.HasPrefix(rest, "!"):
				k, n = DeclOpen, 2
			case strings.HasPrefix(rest, "?"):
				k, n = PIOpen, 2
			default:
				k = TagOpen
			}
		default:
			i++
			continue
		}
		flush(i)
		tokens = append(tokens, Token{Kind: k, Text: markup[i : i+n]})
		i += n
		start = i
	}
	flush(len(markup))
	return tokens
}
