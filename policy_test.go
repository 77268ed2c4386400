package htmlsanitizer_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/htmlsanitizer/v2"
	"github.com/njchilds90/htmlsanitizer/v2/cssfilter"
)

type recorder struct {
	events []htmlsanitizer.ChangeEvent
}

func (r *recorder) LogChange(ev htmlsanitizer.ChangeEvent) {
	r.events = append(r.events, ev)
}

func TestTagDecision_Attrs(t *testing.T) {
	d := htmlsanitizer.Keep("a", nil)
	assert.False(t, d.Omitted())

	d.SetAttr("href", "https://example.com")
	assert.Equal(t, "https://example.com", d.GetAttr("href"))

	d.SetAttr("href", "https://other.com")
	assert.Equal(t, "https://other.com", d.GetAttr("href"))
	assert.Len(t, d.Attrs, 1)

	d.RemoveAttr("href")
	assert.Equal(t, "", d.GetAttr("href"))

	d.SetAttr("href", "/back")
	assert.Equal(t, "/back", d.GetAttr("href"))
	assert.Len(t, d.Attrs, 1)

	assert.True(t, htmlsanitizer.Omit().Omitted())
	assert.True(t, htmlsanitizer.TagDecision{}.Omitted())
}

func TestDefaultTagPolicy_Decide(t *testing.T) {
	tp := htmlsanitizer.DefaultPolicy().NewTagPolicy()

	d, err := tp.Decide("a", []htmlsanitizer.Attribute{
		{Name: "href", Value: "javascript:x"},
		{Name: "title", Value: "t"},
		{Name: "onclick", Value: "y"},
	})
	require.NoError(t, err)
	require.False(t, d.Omitted())
	want := []htmlsanitizer.Attribute{
		{Name: "href", Removed: true},
		{Name: "title", Value: "t"},
		{Name: "onclick", Removed: true},
	}
	if diff := cmp.Diff(want, d.Attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}

	d, err = tp.Decide("script", nil)
	require.NoError(t, err)
	assert.True(t, d.Omitted())

	d, err = tp.Decide("marquee", nil)
	require.NoError(t, err)
	assert.True(t, d.Omitted())
}

func TestMakeTagPolicy(t *testing.T) {
	var hints []htmlsanitizer.URIHints
	rewriter := htmlsanitizer.URIRewriterFunc(func(u *url.URL, effect htmlsanitizer.URIEffect, loader htmlsanitizer.LoaderType, h htmlsanitizer.URIHints) (string, bool) {
		hints = append(hints, h)
		if u.Host == "evil.test" {
			return "", false
		}
		u.Host = "proxy.test"
		return u.String(), true
	})
	names := htmlsanitizer.NameTokenPolicyFunc(func(tagName, attrName, value string) (string, bool) {
		return "user-" + value, true
	})
	rec := &recorder{}
	tp := htmlsanitizer.MakeTagPolicy(rewriter, names, rec)

	got, err := htmlsanitizer.SanitizeWithPolicy(
		`<a href="http://good.test/x" id="top" class="c">a</a><img src="http://evil.test/i.png">`, tp)
	require.NoError(t, err)
	assert.Equal(t, `<a href="http://proxy.test/x" id="user-top" class="user-c">a</a><img>`, got)

	require.Len(t, hints, 2)
	assert.Equal(t, htmlsanitizer.URIHints{Type: "MARKUP", TagName: "a", AttrName: "href"}, hints[0])
	assert.Equal(t, htmlsanitizer.URIHints{Type: "MARKUP", TagName: "img", AttrName: "src"}, hints[1])

	want := []htmlsanitizer.ChangeEvent{
		{Change: htmlsanitizer.Changed, TagName: "a", AttrName: "href", OldValue: "http://good.test/x", NewValue: "http://proxy.test/x"},
		{Change: htmlsanitizer.Changed, TagName: "a", AttrName: "id", OldValue: "top", NewValue: "user-top"},
		{Change: htmlsanitizer.Changed, TagName: "a", AttrName: "class", OldValue: "c", NewValue: "user-c"},
		{Change: htmlsanitizer.Removed, TagName: "img", AttrName: "src", OldValue: "http://evil.test/i.png"},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestURIEffectAndLoader(t *testing.T) {
	type seen struct {
		effect htmlsanitizer.URIEffect
		loader htmlsanitizer.LoaderType
	}
	var got []seen
	p := htmlsanitizer.DefaultPolicy()
	p.URIRewriter = htmlsanitizer.URIRewriterFunc(func(u *url.URL, e htmlsanitizer.URIEffect, l htmlsanitizer.LoaderType, _ htmlsanitizer.URIHints) (string, bool) {
		got = append(got, seen{e, l})
		return u.String(), true
	})
	sanitize(t, `<a href="/a">x</a><img src="/i.png">`, p)
	assert.Equal(t, []seen{
		{htmlsanitizer.NewDocument, htmlsanitizer.LoaderUnsandboxed},
		{htmlsanitizer.SameDocument, htmlsanitizer.LoaderSandboxed},
	}, got)
}

func TestNameTokenPolicy_Reject(t *testing.T) {
	p := htmlsanitizer.DefaultPolicy()
	p.NameTokenPolicy = htmlsanitizer.NameTokenPolicyFunc(func(tagName, attrName, value string) (string, bool) {
		return value, !strings.HasPrefix(value, "admin")
	})
	got := sanitize(t, `<div id="admin-panel" class="box">x</div><a href="#admin">y</a><a href="#ok">z</a>`, p)
	assert.Equal(t, `<div class="box">x</div><a href="#admin">y</a><a href="#ok">z</a>`, got)

	got = sanitize(t, `<img usemap="#admin"><img usemap="#ok">`, p)
	assert.Equal(t, `<img><img usemap="#ok">`, got)
}

func TestDenyURIRewriter(t *testing.T) {
	p := htmlsanitizer.DefaultPolicy()
	p.URIRewriter = htmlsanitizer.DenyURIRewriter
	assert.Equal(t, `<a>x</a>`, sanitize(t, `<a href="https://ok.test/">x</a>`, p))
}

func TestAllowedSchemes(t *testing.T) {
	p := htmlsanitizer.DefaultPolicy()
	p.AllowedSchemes = []string{"HTTPS"}
	assert.Equal(t, `<a>x</a><a href="https://ok.test/">y</a><a href="rel">z</a>`,
		sanitize(t, `<a href="http://no.test/">x</a><a href="https://ok.test/">y</a><a href="rel">z</a>`, p))
}

func TestStyles(t *testing.T) {
	p := htmlsanitizer.DefaultPolicy()
	p.CSSSanitizer = cssfilter.New()
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"kept", `<b style="color: red; font-weight: bold">x</b>`, `<b style="color: red ; font-weight: bold">x</b>`},
		{"filtered", `<b style="color: red; behavior: url(x.htc)">x</b>`, `<b style="color: red">x</b>`},
		{"all dropped", `<b style="width: expression(alert(1))">x</b>`, `<b>x</b>`},
		{"uppercase property", `<b style="COLOR: blue">x</b>`, `<b style="color: blue">x</b>`},
		{"url allowed", `<div style="background-image: url(http://x.test/a.png)">x</div>`,
			`<div style="background-image: url(&#34;http://x.test/a.png&#34;)">x</div>`},
		{"url scheme refused", `<div style="background-image: url(javascript:alert(1))">x</div>`, `<div>x</div>`},
		{"empty", `<b style="">x</b>`, `<b>x</b>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitize(t, tc.input, p))
		})
	}
}

func TestStyles_URIHints(t *testing.T) {
	var hints []htmlsanitizer.URIHints
	p := htmlsanitizer.DefaultPolicy()
	p.CSSSanitizer = cssfilter.New()
	p.URIRewriter = htmlsanitizer.URIRewriterFunc(func(u *url.URL, _ htmlsanitizer.URIEffect, _ htmlsanitizer.LoaderType, h htmlsanitizer.URIHints) (string, bool) {
		hints = append(hints, h)
		return u.String(), true
	})
	sanitize(t, `<p style="background: url(/bg.png) no-repeat">x</p>`, p)
	require.Len(t, hints, 1)
	assert.Equal(t, htmlsanitizer.URIHints{Type: "CSS", TagName: "p", CSSProperty: "background"}, hints[0])
}

func TestLogger_Events(t *testing.T) {
	rec := &recorder{}
	p := htmlsanitizer.DefaultPolicy()
	p.Logger = rec
	sanitize(t, `<a href="javascript:x" title="t">x</a><script>y</script><blink>z</blink><form>f</form>`, p)

	want := []htmlsanitizer.ChangeEvent{
		{Change: htmlsanitizer.Removed, TagName: "a", AttrName: "href", OldValue: "javascript:x"},
		{Change: htmlsanitizer.Removed, TagName: "script"},
		{Change: htmlsanitizer.Removed, TagName: "blink"},
		{Change: htmlsanitizer.Removed, TagName: "form"},
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "a.href removed", rec.events[0].String())
	assert.Equal(t, "script removed", rec.events[1].String())
}

func TestLogger_Added(t *testing.T) {
	rec := &recorder{}
	tp := htmlsanitizer.MakeTagPolicy(nil, htmlsanitizer.NameTokenPolicyFunc(func(_, _, v string) (string, bool) {
		if v == "" {
			return "anon", true
		}
		return v, true
	}), rec)
	got, err := htmlsanitizer.SanitizeWithPolicy(`<span id="">x</span>`, tp)
	require.NoError(t, err)
	assert.Equal(t, `<span id="anon">x</span>`, got)
	require.Len(t, rec.events, 1)
	assert.Equal(t, htmlsanitizer.Added, rec.events[0].Change)
}

func TestChange_String(t *testing.T) {
	assert.Equal(t, "removed", htmlsanitizer.Removed.String())
	assert.Equal(t, "added", htmlsanitizer.Added.String())
	assert.Equal(t, "changed", htmlsanitizer.Changed.String())
	assert.Equal(t, "Change(9)", htmlsanitizer.Change(9).String())
}
