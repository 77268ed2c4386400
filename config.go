package htmlsanitizer

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"

	"github.com/njchilds90/htmlsanitizer/v2/cssfilter"
)

// Config is a Policy described in HCL. Element and attribute blocks are
// applied on top of the built-in schema.
//
//	allowed_schemes = ["https", "mailto"]
//	linkify         = true
//	max_depth       = 16
//	allow_styles    = true
//
//	element "iframe" {
//	  flags    = []
//	  required = ["src"]
//	}
//
//	attribute "iframe::src" {
//	  kind   = "uri"
//	  effect = "new_document"
//	  loader = "sandboxed"
//	}
type Config struct {
	AllowedSchemes []string           `hcl:"allowed_schemes"`
	Linkify        bool               `hcl:"linkify"`
	MaxDepth       int                `hcl:"max_depth"`
	AllowStyles    bool               `hcl:"allow_styles"`
	Elements       []*ElementConfig   `hcl:"element"`
	Attributes     []*AttributeConfig `hcl:"attribute"`

	// Schema is the built-in schema with the blocks above applied.
	Schema *Schema `hcl:"-"`
}

// ElementConfig adds, replaces or removes one element.
type ElementConfig struct {
	Name     string   `hcl:",key"`
	Flags    []string `hcl:"flags"`
	Required []string `hcl:"required"`
	Remove   bool     `hcl:"remove"`
}

// AttributeConfig adds or replaces one attribute. Name is "tag::attr" or
// "*::attr".
type AttributeConfig struct {
	Name   string `hcl:",key"`
	Kind   string `hcl:"kind"`
	Effect string `hcl:"effect"`
	Loader string `hcl:"loader"`
}

// LoadConfigFile loads the configuration from the given file.
func LoadConfigFile(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseConfig(string(d))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseConfig decodes HCL source and builds its schema. Every invalid block
// is reported, not just the first.
func ParseConfig(src string) (*Config, error) {
	obj, err := hcl.Parse(src)
	if err != nil {
		return nil, err
	}
	result := new(Config)
	if err := hcl.DecodeObject(result, obj); err != nil {
		return nil, err
	}
	if err := result.build(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Config) build() error {
	var errs *multierror.Error
	if c.MaxDepth < 0 {
		errs = multierror.Append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}
	for _, sc := range c.AllowedSchemes {
		if sc == "" || strings.ContainsAny(sc, ":/ ") {
			errs = multierror.Append(errs, fmt.Errorf("allowed_schemes: invalid scheme %q", sc))
		}
	}

	s := DefaultSchema()
	for _, e := range c.Elements {
		name := strings.ToLower(e.Name)
		if name == "" || name == "*" {
			errs = multierror.Append(errs, fmt.Errorf("element: invalid name %q", e.Name))
			continue
		}
		if e.Remove {
			s.RemoveElement(name)
			continue
		}
		var flags ElementFlags
		for _, fs := range e.Flags {
			f, err := ParseElementFlag(fs)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("element %q: %w", name, err))
				continue
			}
			flags |= f
		}
		s.SetElement(name, flags)
		if len(e.Required) > 0 {
			s.Require(name, e.Required...)
		}
	}

	for _, a := range c.Attributes {
		tag, attr := splitKey(strings.ToLower(a.Name))
		if tag == "" || attr == "" {
			errs = multierror.Append(errs, fmt.Errorf("attribute %q: name must look like tag::attr", a.Name))
			continue
		}
		kind, err := ParseAttributeKind(a.Kind)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("attribute %q: %w", a.Name, err))
			continue
		}
		s.SetAttribute(tag, attr, kind)
		if a.Effect == "" && a.Loader == "" {
			continue
		}
		effect, err := ParseURIEffect(a.Effect)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("attribute %q: %w", a.Name, err))
			continue
		}
		loader, err := ParseLoaderType(a.Loader)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("attribute %q: %w", a.Name, err))
			continue
		}
		s.SetURIEffect(tag, attr, effect, loader)
	}

	if err := s.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	c.Schema = s
	return errs.ErrorOrNil()
}

// Policy returns a Policy using the configured schema and options. Styles
// are filtered by cssfilter when allow_styles is set and dropped otherwise.
func (c *Config) Policy() *Policy {
	p := DefaultPolicy()
	if c.Schema != nil {
		p.Schema = c.Schema
	}
	if c.AllowedSchemes != nil {
		p.AllowedSchemes = append([]string(nil), c.AllowedSchemes...)
	}
	p.Linkify = c.Linkify
	p.MaxDepth = c.MaxDepth
	if c.AllowStyles {
		p.CSSSanitizer = cssfilter.New()
	}
	return p
}
