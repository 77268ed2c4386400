package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []Token
	}{
		{
			in: `<p class="x">Hi &amp; bye</p>`,
			want: []Token{
				{TagOpen, "<"}, {Text, `p class="x"`}, {TagClose, ">"},
				{Text, "Hi "}, {Amp, "&"}, {Text, "amp; bye"},
				{EndTagOpen, "</"}, {Text, "p"}, {TagClose, ">"},
			},
		},
		{
			in: "<!-- c --><!DOCTYPE html><?xml?>",
			want: []Token{
				{CommentOpen, "<!--"}, {Text, " c --"}, {TagClose, ">"},
				{DeclOpen, "<!"}, {Text, "DOCTYPE html"}, {TagClose, ">"},
				{PIOpen, "<?"}, {Text, "xml?"}, {TagClose, ">"},
			},
		},
		{
			in:   "<<>>",
			want: []Token{{TagOpen, "<"}, {TagOpen, "<"}, {TagClose, ">"}, {TagClose, ">"}},
		},
		{
			in:   "plain",
			want: []Token{{Text, "plain"}},
		},
		{
			in:   "",
			want: []Token{},
		},
		{
			in:   "trailing <",
			want: []Token{{Text, "trailing "}, {TagOpen, "<"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Split(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	in := `a<b c='d>e'>&f;</b><!--x--><!y><?z>>`
	var b strings.Builder
	for _, tok := range Split(in) {
		b.WriteString(tok.Text)
	}
	assert.Equal(t, in, b.String())
}

func parse(t *testing.T, markup string) (Tag, bool) {
	t.Helper()
	tokens := Split(markup)
	require.NotEmpty(t, tokens)
	require.True(t, tokens[0].Is(TagOpen) || tokens[0].Is(EndTagOpen))
	return ParseTag(tokens, 1)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantName  string
		wantAttrs []Attr
	}{
		{
			name:     "no attributes",
			in:       "<B>",
			wantName: "b",
		},
		{
			name:      "quoted values",
			in:        `<a href="/x" title='t'>`,
			wantName:  "a",
			wantAttrs: []Attr{{"href", "/x"}, {"title", "t"}},
		},
		{
			name:      "bare and valueless",
			in:        `<input type=checkbox checked>`,
			wantName:  "input",
			wantAttrs: []Attr{{"type", "checkbox"}, {"checked", ""}},
		},
		{
			name:      "empty value before next assignment",
			in:        `<foo a= b=c>`,
			wantName:  "foo",
			wantAttrs: []Attr{{"a", ""}, {"b", "c"}},
		},
		{
			name:      "close angle inside quotes",
			in:        `<a title="x>y" href=z>`,
			wantName:  "a",
			wantAttrs: []Attr{{"title", "x>y"}, {"href", "z"}},
		},
		{
			name:      "entities and NULs in values",
			in:        "<a href=\"&#106;ava\x00script:x\" title='&lt;&amp;'>",
			wantName:  "a",
			wantAttrs: []Attr{{"href", "javascript:x"}, {"title", "<&"}},
		},
		{
			name:      "garbage between attributes",
			in:        `<p "junk" ALIGN=left / >`,
			wantName:  "p",
			wantAttrs: []Attr{{"junk", ""}, {"align", "left"}},
		},
		{
			name:      "self closing",
			in:        `<br/>`,
			wantName:  "br",
			wantAttrs: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := parse(t, tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, tag.Name)
			if diff := cmp.Diff(tt.wantAttrs, tag.Attrs); diff != "" {
				t.Errorf("attrs mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(Split(tt.in)), tag.Next)
		})
	}
}

func TestParseTag_Unterminated(t *testing.T) {
	_, ok := parse(t, `<b`)
	assert.False(t, ok)

	_, ok = parse(t, `<a href="x`)
	assert.False(t, ok)
}

func TestParseTag_QuoteNeverCloses(t *testing.T) {
	tokens := Split(`<a id=ok title="x> tail & more`)
	tag, ok := ParseTag(tokens, 1)
	require.True(t, ok)
	assert.Equal(t, []Attr{{"id", "ok"}}, tag.Attrs)
	assert.Equal(t, len(tokens), tag.Next)
}

func TestParseTag_StopsAtFirstUnquotedClose(t *testing.T) {
	tokens := Split(`<b class=x>text</b>`)
	tag, ok := ParseTag(tokens, 1)
	require.True(t, ok)
	assert.Equal(t, 3, tag.Next)
	assert.Equal(t, Token{Text, "text"}, tokens[tag.Next])
}

func TestTagName(t *testing.T) {
	assert.Equal(t, "my-el:x", TagName("my-el:x rest"))
	assert.Equal(t, "", TagName(" p"))
}
