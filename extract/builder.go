package extract

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/html"
)

// Builder turns the selected candidate into an Article.
type Builder struct {
	opts readable.ExtractOptions
}

// NewBuilder returns a Builder using opts.
func NewBuilder(opts readable.ExtractOptions) *Builder {
	return &Builder{opts: opts}
}

// Build merges related siblings of top into the content, cleans the
// content subtree, resolves the article metadata and renders the result.
// The tree is modified in place.
func (b *Builder) Build(tree *readable.Tree, table *readable.ScoreTable, top readable.Candidate, meta *readable.Metadata) (*readable.Article, error) {
	if meta == nil {
		meta = &readable.Metadata{}
	}
	root := b.MergeSiblings(tree, table, top)

	article := &readable.Article{Tree: tree, Root: root}
	b.resolveTitle(article, meta)
	b.resolveByline(article, meta)

	b.postClean(tree, root, table, article.Title, article.Byline, meta.Byline)

	b.resolveExcerpt(article, meta)
	b.resolveImage(article, meta, b.leadImage(tree, root))
	b.resolveDocumentFacts(article, meta)

	b.normalizeAttributes(tree, root)

	content, err := html.Render(tree, root)
	if err != nil {
		return nil, fmt.Errorf("render content: %w", err)
	}
	article.Content = content
	article.Text = html.RenderText(tree, root)
	article.Length = utf8.RuneCountInString(article.Text)
	return article, nil
}

// MergeSiblings returns the content root for top. Siblings of top, and of
// its parent when that is not <body>, join the content when they score
// close enough to top or look like paragraphs of the same text. Merged
// nodes are moved into a new <div> in document order. When nothing is
// merged top itself is the content root.
func (b *Builder) MergeSiblings(tree *readable.Tree, table *readable.ScoreTable, top readable.Candidate) readable.NodeID {
	body := tree.Body()
	if top.Node == body || top.Node == tree.Root() {
		wrapper := tree.NewElement("div")
		for _, c := range tree.Children(top.Node) {
			tree.AppendChild(wrapper, c)
		}
		return wrapper
	}

	threshold := math.Max(10, top.Score*b.opts.SiblingScoreRatio)
	before, after := b.qualifyingSiblings(tree, table, top.Node, top, threshold)

	var outerBefore, outerAfter []readable.NodeID
	if parent := tree.Parent(top.Node); tree.IsElement(parent) && parent != body {
		outerBefore, outerAfter = b.qualifyingSiblings(tree, table, parent, top, threshold)
	}

	if len(before)+len(after)+len(outerBefore)+len(outerAfter) == 0 {
		return top.Node
	}

	wrapper := tree.NewElement("div")
	for _, group := range [][]readable.NodeID{outerBefore, before, {top.Node}, after, outerAfter} {
		for _, n := range group {
			tree.AppendChild(wrapper, n)
		}
	}
	return wrapper
}

// qualifyingSiblings returns the siblings of n that join the content,
// split into those before and after n, each in document order.
func (b *Builder) qualifyingSiblings(tree *readable.Tree, table *readable.ScoreTable, n readable.NodeID, top readable.Candidate, threshold float64) (before, after []readable.NodeID) {
	adjacent := true
	for s := tree.PrevSibling(n); s != readable.NoNode; s = tree.PrevSibling(s) {
		ok := b.qualifies(tree, table, s, top, threshold, adjacent)
		if ok {
			before = append(before, s)
		}
		if !isWhitespace(tree, s) {
			adjacent = ok
		}
	}
	slices.Reverse(before)

	adjacent = true
	for s := tree.NextSibling(n); s != readable.NoNode; s = tree.NextSibling(s) {
		ok := b.qualifies(tree, table, s, top, threshold, adjacent)
		if ok {
			after = append(after, s)
		}
		if !isWhitespace(tree, s) {
			adjacent = ok
		}
	}
	return before, after
}

// qualifies reports whether sibling s joins the content of top. adjacent
// tells whether the nearest significant node between s and the content
// has already joined.
func (b *Builder) qualifies(tree *readable.Tree, table *readable.ScoreTable, s readable.NodeID, top readable.Candidate, threshold float64, adjacent bool) bool {
	if tree.IsText(s) {
		text := strings.TrimSpace(tree.Data(s))
		return text != "" && adjacent && sentenceEnd.MatchString(text)
	}
	if !tree.IsElement(s) {
		return false
	}

	if table.Has(s) {
		score := table.Score(s) * (1 - LinkDensity(tree, s))
		if class := tree.Attr(top.Node, "class"); class != "" && tree.Attr(s, "class") == class {
			score += top.Score * b.opts.SiblingScoreRatio
		}
		if score >= threshold {
			return true
		}
	}

	if !tree.IsElement(s, "p") {
		return false
	}
	ld := LinkDensity(tree, s)
	text := strings.TrimSpace(tree.InnerText(s))
	length := utf8.RuneCountInString(text)
	switch {
	case length > 80:
		return ld < 0.25
	case length > 0:
		return ld == 0 && adjacent && sentenceEnd.MatchString(text)
	default:
		return false
	}
}

// postClean removes furniture and noise from the content subtree below root.
func (b *Builder) postClean(tree *readable.Tree, root readable.NodeID, table *readable.ScoreTable, title string, bylines ...string) {
	for _, n := range tree.ElementsByTag(root, postCleanTags...) {
		tree.Detach(n)
	}

	if key := normalizeSpace(title); key != "" {
		for _, h := range tree.ElementsByTag(root, "h1", "h2") {
			if strings.EqualFold(normalizeSpace(tree.InnerText(h)), key) {
				tree.Detach(h)
			}
		}
	}

	b.removeBylines(tree, root, bylines)

	conditional := tree.ElementsByTag(root, conditionalTags...)
	for i := len(conditional) - 1; i >= 0; i-- {
		n := conditional[i]
		if tree.Contains(root, n) && b.isUseless(tree, table, n) {
			tree.Detach(n)
		}
	}

	empty := tree.ElementsByTag(root, emptyTags...)
	for i := len(empty) - 1; i >= 0; i-- {
		n := empty[i]
		if tree.Contains(root, n) && tree.TextLen(n) == 0 && tree.FirstElement(n, mediaTags...) == readable.NoNode {
			tree.Detach(n)
		}
	}
}

// removeBylines drops elements marked up as a byline whose text is one of
// the given bylines.
func (b *Builder) removeBylines(tree *readable.Tree, root readable.NodeID, bylines []string) {
	var keys []string
	for _, s := range bylines {
		if k := normalizeSpace(s); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	var doomed []readable.NodeID
	tree.Walk(root, func(n readable.NodeID) bool {
		if n == root || !tree.IsElement(n) || !isBylineElement(tree, n) {
			return true
		}
		text := normalizeSpace(tree.InnerText(n))
		for _, k := range keys {
			if strings.EqualFold(text, k) {
				doomed = append(doomed, n)
				return false
			}
		}
		return true
	})
	for _, n := range doomed {
		tree.Detach(n)
	}
}

func isBylineElement(tree *readable.Tree, n readable.NodeID) bool {
	if tree.Attr(n, "rel") == "author" || strings.Contains(tree.Attr(n, "itemprop"), "author") {
		return true
	}
	match := tree.Attr(n, "class") + " " + tree.Attr(n, "id")
	return strings.TrimSpace(match) != "" && bylinePattern.MatchString(match)
}

// isUseless reports whether a container in the content is more likely
// furniture than text, judging by its weight and by the ratio of images,
// list items, inputs, embeds and links to paragraphs.
func (b *Builder) isUseless(tree *readable.Tree, table *readable.ScoreTable, n readable.NodeID) bool {
	weight := ClassWeight(tree, n, b.opts.ScorerOptions)
	var score float64
	if table != nil && table.Has(n) {
		score = table.Score(n)
	}
	if weight+score < 0 {
		return true
	}

	list := tree.IsElement(n, "ul", "ol")
	texts := 0
	for c := tree.FirstChild(n); c != readable.NoNode; c = tree.NextSibling(c) {
		if tree.IsText(c) && !isWhitespace(tree, c) {
			texts++
		}
	}
	paragraphs := len(tree.ElementsByTag(n, "p"))
	images := len(tree.ElementsByTag(n, "img"))
	items := len(tree.ElementsByTag(n, "li"))
	inputs := len(tree.ElementsByTag(n, "input"))
	embeds := len(tree.ElementsByTag(n, embedTags...))
	length := tree.TextLen(n)
	ld := LinkDensity(tree, n)
	paraCount := texts + paragraphs

	switch {
	case images > paraCount+texts:
		return true
	case !list && items-100 > paraCount:
		return true
	case inputs > paraCount/3:
		return true
	case !list && length < 25 && (images == 0 || images > 2):
		return true
	case !list && weight < b.opts.PositiveCandidateWeight && ld > 0.2:
		return true
	case list && weight < b.opts.PositiveCandidateWeight && ld > 0.5:
		return true
	case images > 1 && float64(paragraphs)/float64(images) < 0.5:
		return true
	case (embeds == 1 && length < 35) || embeds > 1:
		return true
	}
	return false
}

// leadImage returns the source of the first image in the content that is
// large enough and does not look like an icon, logo or ad.
func (b *Builder) leadImage(tree *readable.Tree, root readable.NodeID) string {
	for _, img := range tree.ElementsByTag(root, "img") {
		src := imageSource(tree, img)
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		hint := src + " " + tree.Attr(img, "class") + " " + tree.Attr(img, "id") + " " + tree.Attr(img, "alt")
		if badImageHint.MatchString(hint) {
			continue
		}
		if !b.largeEnough(tree.Attr(img, "width")) || !b.largeEnough(tree.Attr(img, "height")) {
			continue
		}
		return src
	}
	return ""
}

// largeEnough reports whether a declared image dimension reaches
// MinImageSize. Undeclared or unparsable dimensions pass.
func (b *Builder) largeEnough(dim string) bool {
	dim = strings.TrimSuffix(strings.TrimSpace(dim), "px")
	if dim == "" {
		return true
	}
	var size int
	if _, err := fmt.Sscanf(dim, "%d", &size); err != nil {
		return true
	}
	return size >= b.opts.MinImageSize
}

// imageSource returns the real source of img, preferring lazy-loading
// attributes over a placeholder src.
func imageSource(tree *readable.Tree, img readable.NodeID) string {
	src := strings.TrimSpace(tree.Attr(img, "src"))
	if src != "" && !strings.HasPrefix(src, "data:") {
		return src
	}
	for _, key := range lazySources {
		if v := strings.TrimSpace(tree.Attr(img, key)); v != "" {
			return v
		}
	}
	return src
}

// normalizeAttributes promotes lazy image sources, resolves links against
// the base URL, drops images without a source and links without a target,
// and strips every attribute that is not structural.
func (b *Builder) normalizeAttributes(tree *readable.Tree, root readable.NodeID) {
	var dropped, unwrapped []readable.NodeID
	tree.Walk(root, func(n readable.NodeID) bool {
		if !tree.IsElement(n) {
			return true
		}
		switch tree.Tag(n) {
		case "img", "source":
			if src := imageSource(tree, n); src != "" {
				tree.SetAttr(n, "src", src)
			}
			if tree.Attr(n, "srcset") == "" {
				if v := tree.Attr(n, "data-srcset"); v != "" {
					tree.SetAttr(n, "srcset", v)
				}
			}
			if tree.IsElement(n, "img") && tree.Attr(n, "src") == "" && tree.Attr(n, "srcset") == "" {
				dropped = append(dropped, n)
				return false
			}
		case "a":
			href := strings.TrimSpace(tree.Attr(n, "href"))
			if href == "" || strings.HasPrefix(strings.ToLower(href), "javascript:") {
				unwrapped = append(unwrapped, n)
			}
		}

		for _, key := range []string{"href", "src", "poster"} {
			if v, ok := tree.LookupAttr(n, key); ok {
				tree.SetAttr(n, key, b.resolve(v))
			}
		}
		if v, ok := tree.LookupAttr(n, "srcset"); ok {
			tree.SetAttr(n, "srcset", b.resolveSrcset(v))
		}

		tag := tree.Tag(n)
		tree.RetainAttrs(n, func(a readable.Attribute) bool {
			tags, ok := keptAttributes[a.Key]
			return ok && a.Namespace == "" && (tags == nil || slices.Contains(tags, tag))
		})
		return true
	})
	for _, n := range dropped {
		tree.Detach(n)
	}
	for _, n := range unwrapped {
		if n != root {
			tree.Unwrap(n)
		}
	}
}

// resolve makes ref absolute against the base URL. Fragment-only links and
// unparsable references are returned unchanged.
func (b *Builder) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if b.opts.BaseURL == nil || ref == "" || strings.HasPrefix(ref, "#") {
		return ref
	}
	return resolveURL(b.opts.BaseURL, ref)
}

func (b *Builder) resolveSrcset(srcset string) string {
	if b.opts.BaseURL == nil {
		return srcset
	}
	candidates := strings.Split(srcset, ",")
	for i, c := range candidates {
		fields := strings.Fields(c)
		if len(fields) == 0 {
			continue
		}
		fields[0] = b.resolve(fields[0])
		candidates[i] = strings.Join(fields, " ")
	}
	return strings.Join(candidates, ", ")
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
