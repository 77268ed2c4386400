package lexer

import "fmt"

// Kind classifies a Token.
type Kind uint8

const (
	Text        Kind = iota // run of characters containing no delimiter
	TagOpen                 // <
	EndTagOpen              // </
	CommentOpen             // <!--
	DeclOpen                // <!
	PIOpen                  // <?
	Amp                     // &
	TagClose                // >
)

var kindNames = [...]string{
	Text:        "Text",
	TagOpen:     "TagOpen",
	EndTagOpen:  "EndTagOpen",
	CommentOpen: "CommentOpen",
	DeclOpen:    "DeclOpen",
	PIOpen:      "PIOpen",
	Amp:         "Amp",
	TagClose:    "TagClose",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is one markup-significant fragment of the input. Text holds the
// exact source characters, delimiters included.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

// Is reports whether t is a delimiter of kind k.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}
