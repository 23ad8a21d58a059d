package readable

import "regexp"

// Default class and id patterns. They are compiled once and never modified;
// regexp.Regexp is safe for concurrent use.
var (
	defaultPunctuations = regexp.MustCompile(`([、。，．！？]|\.[^A-Za-z0-9]|,[^0-9]|!|\?)`)

	defaultUnlikelyCandidates = regexp.MustCompile(`(?i)combx|comment|community|disqus|extra|foot|header|menu|` +
		`remark|rss|shoutbox|sidebar|sponsor|ad-break|agegate|pagination|pager|popup|tweet|twitter|ssba`)

	defaultLikelyCandidates = regexp.MustCompile(`(?i)and|article|body|column|main|shadow|content|hentry`)

	defaultPositiveCandidates = regexp.MustCompile(`(?i)article|body|content|entry|hentry|main|page|` +
		`pagination|post|text|blog|story`)

	defaultNegativeCandidates = regexp.MustCompile(`(?i)combx|comment|com-|contact|foot|footer|footnote|` +
		`masthead|media|meta|outbrain|promo|related|scroll|shoutbox|sidebar|sponsor|shopping|tags|tool|widget|` +
		`form|textfield|uiScale|hidden`)
)

// defaultBlockChildTags disqualify div-like containers from being scored
// directly; their block children are scored instead.
var defaultBlockChildTags = []string{"a", "blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul"}
