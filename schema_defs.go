package htmlsanitizer

// Built-in whitelist. These tables are data, not logic: extend a copy with
// the Schema setters or a config file rather than editing them in place.

const (
	unsafeEmpty = Unsafe | Empty
	foldable    = OptionalEndTag | Unsafe | Foldable
)

var defaultElements = map[string]ElementFlags{
	"a":          0,
	"abbr":       0,
	"acronym":    0,
	"address":    0,
	"applet":     Unsafe,
	"area":       Empty,
	"article":    0,
	"aside":      0,
	"audio":      0,
	"b":          0,
	"base":       unsafeEmpty,
	"basefont":   unsafeEmpty,
	"bdi":        0,
	"bdo":        0,
	"big":        0,
	"blockquote": 0,
	"body":       foldable,
	"br":         Empty,
	"button":     0,
	"canvas":     0,
	"caption":    0,
	"center":     0,
	"cite":       0,
	"code":       0,
	"col":        Empty,
	"colgroup":   OptionalEndTag,
	"command":    Empty,
	"data":       0,
	"datalist":   0,
	"dd":         OptionalEndTag,
	"del":        0,
	"details":    0,
	"dfn":        0,
	"dialog":     Unsafe,
	"dir":        0,
	"div":        0,
	"dl":         0,
	"dt":         OptionalEndTag,
	"em":         0,
	"fieldset":   0,
	"figcaption": 0,
	"figure":     0,
	"font":       0,
	"footer":     0,
	"form":       0,
	"frame":      unsafeEmpty,
	"frameset":   Unsafe,
	"h1":         0,
	"h2":         0,
	"h3":         0,
	"h4":         0,
	"h5":         0,
	"h6":         0,
	"head":       foldable,
	"header":     0,
	"hgroup":     0,
	"hr":         Empty,
	"html":       foldable,
	"i":          0,
	"iframe":     CDATA,
	"img":        Empty,
	"input":      Empty,
	"ins":        0,
	"isindex":    unsafeEmpty,
	"kbd":        0,
	"keygen":     unsafeEmpty,
	"label":      0,
	"legend":     0,
	"li":         OptionalEndTag,
	"link":       unsafeEmpty,
	"map":        0,
	"mark":       0,
	"menu":       0,
	"meta":       unsafeEmpty,
	"meter":      0,
	"nav":        0,
	"nobr":       0,
	"noembed":    Unsafe | CDATA,
	"noframes":   Unsafe | CDATA,
	"noscript":   Unsafe | CDATA,
	"object":     Unsafe,
	"ol":         0,
	"optgroup":   0,
	"option":     OptionalEndTag,
	"output":     0,
	"p":          OptionalEndTag,
	"param":      unsafeEmpty,
	"pre":        0,
	"progress":   0,
	"q":          0,
	"s":          0,
	"samp":       0,
	"script":     Unsafe | CDATA,
	"section":    0,
	"select":     0,
	"small":      0,
	"source":     Empty,
	"span":       0,
	"strike":     0,
	"strong":     0,
	"style":      Unsafe | CDATA,
	"sub":        0,
	"summary":    0,
	"sup":        0,
	"table":      0,
	"tbody":      OptionalEndTag,
	"td":         OptionalEndTag,
	"textarea":   RCDATA,
	"tfoot":      OptionalEndTag,
	"th":         OptionalEndTag,
	"thead":      OptionalEndTag,
	"time":       0,
	"title":      Unsafe | RCDATA,
	"tr":         OptionalEndTag,
	"track":      Empty,
	"tt":         0,
	"u":          0,
	"ul":         0,
	"var":        0,
	"video":      0,
	"wbr":        Empty,
}

// Elements that are dropped unless these attributes survive. iframe has no
// src entry in defaultAttributes, so it only appears once a schema adds one.
var defaultRequired = map[string][]string{
	"iframe": {"src"},
	"form":   {"action"},
}

var defaultAttributes = map[string]AttributeKind{
	"*::class":               KindClasses,
	"*::dir":                 KindNone,
	"*::draggable":           KindNone,
	"*::hidden":              KindNone,
	"*::id":                  KindID,
	"*::inert":               KindNone,
	"*::itemprop":            KindNone,
	"*::itemref":             KindIDRefs,
	"*::itemscope":           KindNone,
	"*::lang":                KindNone,
	"*::onblur":              KindScript,
	"*::onchange":            KindScript,
	"*::onclick":             KindScript,
	"*::ondblclick":          KindScript,
	"*::onerror":             KindScript,
	"*::onfocus":             KindScript,
	"*::onkeydown":           KindScript,
	"*::onkeypress":          KindScript,
	"*::onkeyup":             KindScript,
	"*::onload":              KindScript,
	"*::onmousedown":         KindScript,
	"*::onmousemove":         KindScript,
	"*::onmouseout":          KindScript,
	"*::onmouseover":         KindScript,
	"*::onmouseup":           KindScript,
	"*::onreset":             KindScript,
	"*::onscroll":            KindScript,
	"*::onselect":            KindScript,
	"*::onsubmit":            KindScript,
	"*::ontouchcancel":       KindScript,
	"*::ontouchend":          KindScript,
	"*::ontouchenter":        KindScript,
	"*::ontouchleave":        KindScript,
	"*::ontouchmove":         KindScript,
	"*::ontouchstart":        KindScript,
	"*::onunload":            KindScript,
	"*::spellcheck":          KindNone,
	"*::style":               KindStyle,
	"*::title":               KindNone,
	"*::translate":           KindNone,
	"a::accesskey":           KindNone,
	"a::coords":              KindNone,
	"a::href":                KindURI,
	"a::hreflang":            KindNone,
	"a::name":                KindGlobalName,
	"a::rel":                 KindNone,
	"a::shape":               KindNone,
	"a::tabindex":            KindNone,
	"a::target":              KindFrameTarget,
	"a::type":                KindNone,
	"area::accesskey":        KindNone,
	"area::alt":              KindNone,
	"area::coords":           KindNone,
	"area::href":             KindURI,
	"area::nohref":           KindNone,
	"area::shape":            KindNone,
	"area::tabindex":         KindNone,
	"area::target":           KindFrameTarget,
	"audio::controls":        KindNone,
	"audio::loop":            KindNone,
	"audio::mediagroup":      KindIDRef,
	"audio::muted":           KindNone,
	"audio::preload":         KindNone,
	"audio::src":             KindURI,
	"bdo::dir":               KindNone,
	"blockquote::cite":       KindURI,
	"br::clear":              KindNone,
	"button::accesskey":      KindNone,
	"button::disabled":       KindNone,
	"button::name":           KindLocalName,
	"button::tabindex":       KindNone,
	"button::type":           KindNone,
	"button::value":          KindNone,
	"canvas::height":         KindNone,
	"canvas::width":          KindNone,
	"caption::align":         KindNone,
	"col::align":             KindNone,
	"col::char":              KindNone,
	"col::charoff":           KindNone,
	"col::span":              KindNone,
	"col::valign":            KindNone,
	"col::width":             KindNone,
	"colgroup::align":        KindNone,
	"colgroup::char":         KindNone,
	"colgroup::charoff":      KindNone,
	"colgroup::span":         KindNone,
	"colgroup::valign":       KindNone,
	"colgroup::width":        KindNone,
	"command::checked":       KindNone,
	"command::command":       KindIDRef,
	"command::disabled":      KindNone,
	"command::icon":          KindURI,
	"command::label":         KindNone,
	"command::type":          KindNone,
	"data::value":            KindNone,
	"del::cite":              KindURI,
	"del::datetime":          KindNone,
	"details::open":          KindNone,
	"dir::compact":           KindNone,
	"div::align":             KindNone,
	"dl::compact":            KindNone,
	"fieldset::disabled":     KindNone,
	"font::color":            KindNone,
	"font::face":             KindNone,
	"font::size":             KindNone,
	"form::accept":           KindNone,
	"form::action":           KindURI,
	"form::autocomplete":     KindNone,
	"form::enctype":          KindNone,
	"form::method":           KindNone,
	"form::name":             KindGlobalName,
	"form::novalidate":       KindNone,
	"form::target":           KindFrameTarget,
	"h1::align":              KindNone,
	"h2::align":              KindNone,
	"h3::align":              KindNone,
	"h4::align":              KindNone,
	"h5::align":              KindNone,
	"h6::align":              KindNone,
	"hr::align":              KindNone,
	"hr::noshade":            KindNone,
	"hr::size":               KindNone,
	"hr::width":              KindNone,
	"iframe::align":          KindNone,
	"iframe::frameborder":    KindNone,
	"iframe::height":         KindNone,
	"iframe::marginheight":   KindNone,
	"iframe::marginwidth":    KindNone,
	"iframe::width":          KindNone,
	"img::align":             KindNone,
	"img::alt":               KindNone,
	"img::border":            KindNone,
	"img::height":            KindNone,
	"img::hspace":            KindNone,
	"img::ismap":             KindNone,
	"img::name":              KindGlobalName,
	"img::src":               KindURI,
	"img::usemap":            KindURIFragment,
	"img::vspace":            KindNone,
	"img::width":             KindNone,
	"input::accept":          KindNone,
	"input::accesskey":       KindNone,
	"input::align":           KindNone,
	"input::alt":             KindNone,
	"input::autocomplete":    KindNone,
	"input::checked":         KindNone,
	"input::disabled":        KindNone,
	"input::inputmode":       KindNone,
	"input::ismap":           KindNone,
	"input::list":            KindIDRef,
	"input::max":             KindNone,
	"input::maxlength":       KindNone,
	"input::min":             KindNone,
	"input::multiple":        KindNone,
	"input::name":            KindLocalName,
	"input::placeholder":     KindNone,
	"input::readonly":        KindNone,
	"input::required":        KindNone,
	"input::size":            KindNone,
	"input::src":             KindURI,
	"input::step":            KindNone,
	"input::tabindex":        KindNone,
	"input::type":            KindNone,
	"input::usemap":          KindURIFragment,
	"input::value":           KindNone,
	"ins::cite":              KindURI,
	"ins::datetime":          KindNone,
	"label::accesskey":       KindNone,
	"label::for":             KindIDRef,
	"legend::accesskey":      KindNone,
	"legend::align":          KindNone,
	"li::type":               KindNone,
	"li::value":              KindNone,
	"map::name":              KindGlobalName,
	"menu::compact":          KindNone,
	"menu::label":            KindNone,
	"menu::type":             KindNone,
	"meter::high":            KindNone,
	"meter::low":             KindNone,
	"meter::max":             KindNone,
	"meter::min":             KindNone,
	"meter::value":           KindNone,
	"ol::compact":            KindNone,
	"ol::reversed":           KindNone,
	"ol::start":              KindNone,
	"ol::type":               KindNone,
	"optgroup::disabled":     KindNone,
	"optgroup::label":        KindNone,
	"option::disabled":       KindNone,
	"option::label":          KindNone,
	"option::selected":       KindNone,
	"option::value":          KindNone,
	"output::for":            KindIDRefs,
	"output::name":           KindLocalName,
	"p::align":               KindNone,
	"pre::width":             KindNone,
	"progress::max":          KindNone,
	"progress::min":          KindNone,
	"progress::value":        KindNone,
	"q::cite":                KindURI,
	"select::autocomplete":   KindNone,
	"select::disabled":       KindNone,
	"select::multiple":       KindNone,
	"select::name":           KindLocalName,
	"select::required":       KindNone,
	"select::size":           KindNone,
	"select::tabindex":       KindNone,
	"source::type":           KindNone,
	"table::align":           KindNone,
	"table::bgcolor":         KindNone,
	"table::border":          KindNone,
	"table::cellpadding":     KindNone,
	"table::cellspacing":     KindNone,
	"table::frame":           KindNone,
	"table::rules":           KindNone,
	"table::summary":         KindNone,
	"table::width":           KindNone,
	"tbody::align":           KindNone,
	"tbody::char":            KindNone,
	"tbody::charoff":         KindNone,
	"tbody::valign":          KindNone,
	"td::abbr":               KindNone,
	"td::align":              KindNone,
	"td::axis":               KindNone,
	"td::bgcolor":            KindNone,
	"td::char":               KindNone,
	"td::charoff":            KindNone,
	"td::colspan":            KindNone,
	"td::headers":            KindIDRefs,
	"td::height":             KindNone,
	"td::nowrap":             KindNone,
	"td::rowspan":            KindNone,
	"td::scope":              KindNone,
	"td::valign":             KindNone,
	"td::width":              KindNone,
	"textarea::accesskey":    KindNone,
	"textarea::autocomplete": KindNone,
	"textarea::cols":         KindNone,
	"textarea::disabled":     KindNone,
	"textarea::inputmode":    KindNone,
	"textarea::name":         KindLocalName,
	"textarea::placeholder":  KindNone,
	"textarea::readonly":     KindNone,
	"textarea::required":     KindNone,
	"textarea::rows":         KindNone,
	"textarea::tabindex":     KindNone,
	"textarea::wrap":         KindNone,
	"tfoot::align":           KindNone,
	"tfoot::char":            KindNone,
	"tfoot::charoff":         KindNone,
	"tfoot::valign":          KindNone,
	"th::abbr":               KindNone,
	"th::align":              KindNone,
	"th::axis":               KindNone,
	"th::bgcolor":            KindNone,
	"th::char":               KindNone,
	"th::charoff":            KindNone,
	"th::colspan":            KindNone,
	"th::headers":            KindIDRefs,
	"th::height":             KindNone,
	"th::nowrap":             KindNone,
	"th::rowspan":            KindNone,
	"th::scope":              KindNone,
	"th::valign":             KindNone,
	"th::width":              KindNone,
	"thead::align":           KindNone,
	"thead::char":            KindNone,
	"thead::charoff":         KindNone,
	"thead::valign":          KindNone,
	"tr::align":              KindNone,
	"tr::bgcolor":            KindNone,
	"tr::char":               KindNone,
	"tr::charoff":            KindNone,
	"tr::valign":             KindNone,
	"track::default":         KindNone,
	"track::kind":            KindNone,
	"track::label":           KindNone,
	"track::srclang":         KindNone,
	"ul::compact":            KindNone,
	"ul::type":               KindNone,
	"video::controls":        KindNone,
	"video::height":          KindNone,
	"video::loop":            KindNone,
	"video::mediagroup":      KindIDRef,
	"video::muted":           KindNone,
	"video::poster":          KindURI,
	"video::preload":         KindNone,
	"video::src":             KindURI,
	"video::width":           KindNone,
}

var defaultURIEffects = map[string]URIEffect{
	"a::href":          NewDocument,
	"area::href":       NewDocument,
	"audio::src":       SameDocument,
	"blockquote::cite": NotLoaded,
	"command::icon":    SameDocument,
	"del::cite":        NotLoaded,
	"form::action":     NewDocument,
	"img::src":         SameDocument,
	"input::src":       SameDocument,
	"ins::cite":        NotLoaded,
	"q::cite":          NotLoaded,
	"video::poster":    SameDocument,
	"video::src":       SameDocument,
}

var defaultLoaderTypes = map[string]LoaderType{
	"a::href":          LoaderUnsandboxed,
	"area::href":       LoaderUnsandboxed,
	"audio::src":       LoaderUnsandboxed,
	"blockquote::cite": LoaderUnsandboxed,
	"command::icon":    LoaderSandboxed,
	"del::cite":        LoaderUnsandboxed,
	"form::action":     LoaderUnsandboxed,
	"img::src":         LoaderSandboxed,
	"input::src":       LoaderSandboxed,
	"ins::cite":        LoaderUnsandboxed,
	"q::cite":          LoaderUnsandboxed,
	"video::poster":    LoaderSandboxed,
	"video::src":       LoaderUnsandboxed,
}
