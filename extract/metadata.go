package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/readable"
)

// metaSource maps a meta key to the kind of metadata it belongs to.
func metaSource(key string) readable.MetadataSource {
	switch {
	case strings.HasPrefix(key, "og:"), strings.HasPrefix(key, "article:"):
		return readable.SourceOpenGraph
	case strings.HasPrefix(key, "twitter:"):
		return readable.SourceTwitter
	default:
		return readable.SourceMeta
	}
}

func (b *Builder) resolveTitle(a *readable.Article, meta *readable.Metadata) {
	if b.opts.LookupMetadataTags {
		if key, v := meta.MetaValue("og:title", "twitter:title"); v != "" {
			a.Title, a.TitleSource = normalizeSpace(v), metaSource(key)
			return
		}
		if v := meta.LinkedData.Headline; v != "" {
			a.Title, a.TitleSource = normalizeSpace(v), readable.SourceJSONLD
			return
		}
		if _, v := meta.MetaValue("dc.title", "dcterms.title"); v != "" {
			a.Title, a.TitleSource = normalizeSpace(v), readable.SourceMeta
			return
		}
	}
	if t := CleanTitle(meta.DocumentTitle, siteName(meta), meta.Headings); t != "" {
		a.Title, a.TitleSource = t, readable.SourceDocument
		return
	}
	if len(meta.Headings) == 1 {
		if t := normalizeSpace(meta.Headings[0]); t != "" {
			a.Title, a.TitleSource = t, readable.SourceHeading
		}
	}
}

// CleanTitle strips the site name from a document title. A known site
// name is removed when it opens or closes the title next to a separator.
// Otherwise the part after the last separator is dropped, unless that
// leaves too few words to be a title. A suffix of up to maxSuffixWords
// words is always dropped as long as two words remain.
func CleanTitle(title, site string, headings []string) string {
	orig := normalizeSpace(title)
	if orig == "" {
		return ""
	}
	if site = normalizeSpace(site); site != "" && !strings.EqualFold(site, orig) {
		for _, loc := range titleSeparators.FindAllStringIndex(orig, -1) {
			head, tail := orig[:loc[0]], orig[loc[1]:]
			if strings.EqualFold(tail, site) && head != "" {
				return head
			}
			if strings.EqualFold(head, site) && tail != "" {
				return tail
			}
		}
	}

	cur := orig
	hierarchical := false
	// head is the title without a short trailing segment, kept even when
	// it has few words.
	head := ""
	switch {
	case titleSeparators.MatchString(orig):
		hierarchical = hierarchicalSep.MatchString(orig)
		locs := titleSeparators.FindAllStringIndex(orig, -1)
		last := locs[len(locs)-1]
		cur = orig[:last[0]]
		if !hierarchicalSep.MatchString(orig[last[0]:last[1]]) &&
			wordCount(orig[last[1]:]) <= maxSuffixWords &&
			wordCount(separatorChars.ReplaceAllString(cur, "")) >= 2 {
			head = cur
		}
		if wordCount(cur) < 3 {
			cur = orig[locs[0][1]:]
		}
	case strings.Contains(orig, ": "):
		matched := false
		for _, h := range headings {
			if normalizeSpace(h) == orig {
				matched = true
				break
			}
		}
		if !matched {
			cur = orig[strings.LastIndex(orig, ":")+1:]
			if wordCount(cur) < 3 {
				cur = orig[strings.Index(orig, ":")+1:]
			} else if wordCount(orig[:strings.Index(orig, ":")]) > 5 {
				cur = orig
			}
		}
	case utf8.RuneCountInString(orig) > 150 || utf8.RuneCountInString(orig) < 15:
		if len(headings) == 1 && normalizeSpace(headings[0]) != "" {
			cur = headings[0]
		}
	}

	cur = normalizeSpace(cur)
	words := wordCount(cur)
	if words <= 4 && (!hierarchical || words != wordCount(separatorChars.ReplaceAllString(orig, ""))-1) {
		if head != "" {
			return normalizeSpace(head)
		}
		return orig
	}
	return cur
}

// maxSuffixWords is the longest trailing title segment taken for a site
// name.
const maxSuffixWords = 3

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func siteName(meta *readable.Metadata) string {
	if _, v := meta.MetaValue("og:site_name", "application-name"); v != "" {
		return v
	}
	return meta.LinkedData.Publisher
}

func (b *Builder) resolveByline(a *readable.Article, meta *readable.Metadata) {
	if b.opts.LookupMetadataTags {
		if v := meta.LinkedData.Author; v != "" {
			a.Byline, a.BylineSource = normalizeSpace(v), readable.SourceJSONLD
			return
		}
		if v := meta.Meta["author"]; v != "" {
			a.Byline, a.BylineSource = normalizeSpace(v), readable.SourceMeta
			return
		}
		if v := meta.Meta["article:author"]; v != "" && !isURL(v) {
			a.Byline, a.BylineSource = normalizeSpace(v), readable.SourceOpenGraph
			return
		}
		if _, v := meta.MetaValue("dc.creator", "dcterms.creator"); v != "" {
			a.Byline, a.BylineSource = normalizeSpace(v), readable.SourceMeta
			return
		}
	}
	if v := normalizeSpace(meta.Byline); v != "" {
		a.Byline, a.BylineSource = v, readable.SourceContent
	}
}

func (b *Builder) resolveExcerpt(a *readable.Article, meta *readable.Metadata) {
	if b.opts.LookupMetadataTags {
		if key, v := meta.MetaValue("og:description", "twitter:description"); v != "" {
			a.Excerpt, a.ExcerptSource = normalizeSpace(v), metaSource(key)
			return
		}
		if v := meta.LinkedData.Description; v != "" {
			a.Excerpt, a.ExcerptSource = normalizeSpace(v), readable.SourceJSONLD
			return
		}
		if _, v := meta.MetaValue("description", "dc.description", "dcterms.description"); v != "" {
			a.Excerpt, a.ExcerptSource = normalizeSpace(v), readable.SourceMeta
			return
		}
	}
	for _, p := range a.Tree.ElementsByTag(a.Root, "p") {
		text := normalizeSpace(a.Tree.InnerText(p))
		if utf8.RuneCountInString(text) >= 25 {
			a.Excerpt, a.ExcerptSource = text, readable.SourceContent
			return
		}
	}
}

func (b *Builder) resolveImage(a *readable.Article, meta *readable.Metadata, lead string) {
	if b.opts.LookupMetadataTags {
		if key, v := meta.MetaValue("og:image:secure_url", "og:image", "twitter:image", "twitter:image:src"); v != "" {
			a.Image, a.ImageSource = b.resolve(v), metaSource(key)
			return
		}
		if v := meta.LinkedData.Image; v != "" {
			a.Image, a.ImageSource = b.resolve(v), readable.SourceJSONLD
			return
		}
	}
	if lead != "" {
		a.Image, a.ImageSource = b.resolve(lead), readable.SourceContent
	}
}

// resolveDocumentFacts fills the fields that have no in-body fallback.
func (b *Builder) resolveDocumentFacts(a *readable.Article, meta *readable.Metadata) {
	a.SiteName = normalizeSpace(siteName(meta))
	if _, v := meta.MetaValue("article:published_time", "dc.date", "dcterms.created"); v != "" {
		a.PublishedTime = strings.TrimSpace(v)
	} else {
		a.PublishedTime = strings.TrimSpace(meta.LinkedData.DatePublished)
	}
	a.Language = strings.TrimSpace(meta.Language)
}

func isURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && u.IsAbs() && u.Host != ""
}

// resolveURL makes ref absolute against base, returning ref unchanged when
// it cannot be parsed.
func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
