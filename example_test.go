package htmlsanitizer_test

import (
	"fmt"

	"github.com/njchilds90/htmlsanitizer/v2"
	"github.com/njchilds90/htmlsanitizer/v2/cssfilter"
)

func ExampleSanitize() {
	input := `<b>Hello</b> <script>alert('xss')</script>`
	clean, _ := htmlsanitizer.Sanitize(input, htmlsanitizer.DefaultPolicy())
	fmt.Println(clean)
	// Output: <b>Hello</b>
}

func ExampleStripTags() {
	input := `<p>Hello <b>world</b> &amp; all</p>`
	text, _ := htmlsanitizer.StripTags(input)
	fmt.Println(text)
	// Output: Hello world & all
}

func ExampleSanitize_customSchema() {
	s := htmlsanitizer.DefaultSchema().Only(false, "b", "i")
	p := &htmlsanitizer.Policy{Schema: s}
	input := `<b>bold</b> <div>unwrapped</div>`
	clean, _ := htmlsanitizer.Sanitize(input, p)
	fmt.Println(clean)
	// Output: <b>bold</b> unwrapped
}

func ExampleSanitize_transformer() {
	p := htmlsanitizer.DefaultPolicy()
	p.Transformers = []htmlsanitizer.Transformer{
		func(tagName string, d htmlsanitizer.TagDecision) htmlsanitizer.TagDecision {
			if tagName == "a" {
				d.SetAttr("target", "_blank")
			}
			return d
		},
	}
	input := `<a href="https://example.com">link</a>`
	clean, _ := htmlsanitizer.Sanitize(input, p)
	fmt.Println(clean)
	// Output: <a href="https://example.com" target="_blank">link</a>
}

func ExampleSanitize_styles() {
	p := htmlsanitizer.DefaultPolicy()
	p.CSSSanitizer = cssfilter.New()
	clean, _ := htmlsanitizer.Sanitize(`<span style="color: red; position: fixed">x</span>`, p)
	fmt.Println(clean)
	// Output: <span style="color: red">x</span>
}

func ExampleSanitizeWithPolicy() {
	tp := htmlsanitizer.TagPolicyFunc(func(tagName string, attrs []htmlsanitizer.Attribute) (htmlsanitizer.TagDecision, error) {
		if tagName == "b" {
			return htmlsanitizer.Keep("strong", nil), nil
		}
		return htmlsanitizer.Omit(), nil
	})
	clean, _ := htmlsanitizer.SanitizeWithPolicy(`<b>kept</b><i>dropped</i>`, tp)
	fmt.Println(clean)
	// Output: <strong>kept</strong>
}

func ExampleParseConfig() {
	c, err := htmlsanitizer.ParseConfig(`
allowed_schemes = ["https"]

element "u" {
  remove = true
}
`)
	if err != nil {
		fmt.Println(err)
		return
	}
	clean, _ := htmlsanitizer.Sanitize(`<u>x</u><a href="http://a.test/">y</a>`, c.Policy())
	fmt.Println(clean)
	// Output: <a>y</a>
}
