package htmlsanitizer

// sanitizeAttrs applies the per-kind rule to every attribute. The result has
// the same length and order as attrs; rejected attributes are marked
// Removed.
func (tp *defaultTagPolicy) sanitizeAttrs(tagName string, attrs []Attribute) []Attribute {
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		value, ok := a.Value, !a.Removed
		if ok {
			value, ok = tp.sanitizeAttr(tagName, a.Name, a.Value)
		}
		logAttr(tp.logger, tagName, a.Name, a.Value, value, !ok)
		out[i] = Attribute{Name: a.Name, Value: value, Removed: !ok}
	}
	return out
}

func (tp *defaultTagPolicy) sanitizeAttr(tagName, attrName, value string) (string, bool) {
	kind, ok := tp.schema.AttributeKind(tagName, attrName)
	if !ok {
		return "", false
	}

	switch kind {
	case KindNone:
		return value, true

	case KindScript:
		return "", false

	case KindStyle:
		return tp.sanitizeStyle(tagName, value)

	case KindURI:
		return tp.safeURI(value,
			tp.schema.URIEffect(tagName, attrName),
			tp.schema.LoaderType(tagName, attrName),
			URIHints{Type: "MARKUP", TagName: tagName, AttrName: attrName})

	case KindURIFragment:
		if len(value) == 0 || value[0] != '#' {
			return "", false
		}
		frag, ok := tp.nameToken(tagName, attrName, value[1:])
		if !ok {
			return "", false
		}
		return "#" + frag, true

	case KindID, KindIDRef, KindIDRefs, KindGlobalName, KindLocalName,
		KindClasses, KindFrameTarget, KindHTML, KindMediaQuery:
		return tp.nameToken(tagName, attrName, value)
	}
	return "", false
}

func (tp *defaultTagPolicy) nameToken(tagName, attrName, value string) (string, bool) {
	if tp.names == nil {
		return value, true
	}
	return tp.names.RewriteName(tagName, attrName, value)
}
