package extract

import "regexp"

var (
	bylinePattern   = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)
	sentenceEnd     = regexp.MustCompile(`\.( |$)`)
	badImageHint    = regexp.MustCompile(`(?i)(sprite|icon|favicon|logo|avatar|emoji|placeholder|pixel|tracker|adserver|promo|beacon|\bads?\b)`)
	titleSeparators = regexp.MustCompile(` [\|\-–—\\/>»] `)
	hierarchicalSep = regexp.MustCompile(` [\\/>»] `)
	separatorChars  = regexp.MustCompile(`[\|\-–—\\/>»]+`)
	displayNone     = regexp.MustCompile(`(?i)display\s*:\s*none|visibility\s*:\s*hidden`)
)

// unlikelyRoles are ARIA roles of page furniture.
var unlikelyRoles = map[string]bool{
	"menu": true, "menubar": true, "complementary": true, "navigation": true,
	"alert": true, "alertdialog": true, "dialog": true,
}

// landmarkTags hold page furniture unless marked up as content.
var landmarkTags = []string{"nav", "aside", "footer"}

// alwaysRemovedTags never carry readable content.
var alwaysRemovedTags = []string{"script", "style", "noscript", "template", "link"}

// blockTags are elements that start a new block in flow content.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "details": true, "dialog": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hgroup": true, "hr": true, "li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "ul": true, "tr": true, "td": true, "th": true,
	"tbody": true, "thead": true, "tfoot": true, "body": true,
}

// keptAttributes survive attribute normalization of the content. A nil
// tag list allows the attribute on every element.
var keptAttributes = map[string][]string{
	"href": nil, "src": nil, "srcset": nil, "alt": nil, "title": nil,
	"lang": nil, "dir": nil, "cite": nil, "datetime": nil, "poster": nil,
	"width":   {"img", "video", "source", "iframe"},
	"height":  {"img", "video", "source", "iframe"},
	"colspan": {"td", "th"},
	"rowspan": {"td", "th"},
	"headers": {"td", "th"},
	"scope":   {"th"},
	"start":   {"ol"},
	"type":    {"ol", "ul", "li", "source"},
}

// postCleanTags are dropped from the content unconditionally.
var postCleanTags = []string{
	"script", "style", "link", "noscript", "meta", "object", "embed", "iframe",
	"header", "footer", "aside", "nav", "input", "button", "select", "textarea",
}

// conditionalTags are dropped from the content when they look useless.
var conditionalTags = []string{"form", "table", "ul", "ol", "div", "section"}

// emptyTags are dropped from the content when they hold neither text nor media.
var emptyTags = []string{"p", "div", "section", "span", "li", "dt", "dd", "canvas", "h1", "h2", "h3", "h4", "h5", "h6"}

// mediaTags count as content even without text.
var mediaTags = []string{"img", "picture", "video", "audio", "svg", "math", "iframe", "embed", "object"}

// embedTags are counted against containers by the conditional cleaning.
var embedTags = []string{"embed", "object", "iframe", "video", "audio"}

// lazySources are attributes lazy loaders keep the real image source in.
var lazySources = []string{"data-src", "data-original", "data-lazy-src", "data-url"}
