// Package htmlsanitizer provides a fast, policy-driven HTML sanitizer
// for Go applications.
//
// # Overview
//
// htmlsanitizer splits markup into tokens, parses tags and attributes
// leniently, and streams the resulting events through a [TagPolicy]. Only
// what the policy keeps is written back out, and the output is always
// balanced: every element that is opened is closed, in order. Malformed
// markup is never an error. It degrades to escaped text or is dropped.
//
// # Schema
//
// A [Schema] is the element and attribute whitelist. Every element carries
// [ElementFlags] (optional end tag, empty, CDATA or RCDATA body, unsafe,
// foldable) and every attribute an [AttributeKind] that selects how its
// value is cleaned. [DefaultSchema] returns the built-in HTML table.
//
// # Policies
//
// A [Policy] controls:
//   - Which elements and attributes exist ([Policy.Schema])
//   - Which URI schemes are allowed and how URIs are rewritten
//     ([Policy.AllowedSchemes], [Policy.URIRewriter])
//   - How ids, classes and names are rewritten ([Policy.NameTokenPolicy])
//   - Whether style attributes survive ([Policy.CSSSanitizer])
//   - Zero or more [Transformer] callbacks that can change kept elements
//   - Whether plain-text URLs become links ([Policy.Linkify])
//   - A maximum nesting depth ([Policy.MaxDepth])
//
// Two built-in policies are provided:
//   - [DefaultPolicy] keeps the whole content whitelist with http, https,
//     mailto and relative URIs. Good for blog posts and articles.
//   - [StrictPolicy] allows only basic inline formatting and lists with no
//     attributes. Good for comment sections.
//
// A custom [TagPolicy] replaces the decision logic entirely; it must only
// keep elements the schema allows, or sanitization fails with a
// [*PolicyContractError].
//
// Policies can also be loaded from HCL with [ParseConfig] and
// [LoadConfigFile].
//
// # Auditing
//
// Set [Policy.Logger] to receive a [ChangeEvent] for every element or
// attribute that was removed or rewritten. [NewHCLogChangeLogger] adapts an
// hclog.Logger.
//
// # Thread Safety
//
// Sanitize and StripTags are safe for concurrent use. Policy structs
// should not be mutated after first use.
//
// # Example
//
//	p := htmlsanitizer.DefaultPolicy()
//	clean, err := htmlsanitizer.Sanitize(userInput, p)
package htmlsanitizer
