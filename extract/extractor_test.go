package extract_test

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/extract"
	"github.com/fwojciec/readable/html"
	"github.com/fwojciec/readable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsPage = `<!DOCTYPE html>
<html lang="en">
<head>
	<title>Understanding How Tree Scoring Works | Example News</title>
	<meta property="og:site_name" content="Example News">
	%s
</head>
<body>
	<nav class="menu">
		<ul><li><a href="/">Home</a></li><li><a href="/world">World</a></li><li><a href="/tech">Tech</a></li></ul>
	</nav>
	<div id="main">
		<article class="post">
			<h1>Understanding How Tree Scoring Works</h1>
			<p class="byline">By Jane Doe</p>
			<p>Content extraction starts from paragraphs, which earn points for every comma, and for every hundred characters of text they hold, up to a small cap.</p>
			<p>Those points flow upwards to the containers around each paragraph, so the element that wraps most of the prose ends up with the highest score.</p>
			<p>Navigation, footers and sidebars rarely contain long sentences, and their class names usually give them away long before scoring starts.</p>
		</article>
	</div>
	<footer><p>Copyright 2026, Example News. All rights reserved, everywhere.</p></footer>
</body>
</html>`

func newsHTML(head string) string {
	return fmt.Sprintf(newsPage, head)
}

func parse(t testing.TB, s string) *readable.Tree {
	t.Helper()
	tree, err := html.ParseString(s, readable.DefaultParseOptions())
	require.NoError(t, err)
	return tree
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article and drops page furniture", func(t *testing.T) {
		t.Parallel()

		article, err := extract.Extract(parse(t, newsHTML("")), readable.DefaultExtractOptions())

		require.NoError(t, err)
		assert.Equal(t, "Understanding How Tree Scoring Works", article.Title)
		assert.Equal(t, readable.SourceDocument, article.TitleSource)
		assert.Equal(t, "By Jane Doe", article.Byline)
		assert.Equal(t, readable.SourceContent, article.BylineSource)
		assert.Equal(t, "Example News", article.SiteName)
		assert.Equal(t, "en", article.Language)

		assert.Contains(t, article.Content, "Content extraction starts from paragraphs")
		assert.Contains(t, article.Content, "rarely contain long sentences")
		assert.NotContains(t, article.Content, "Home")
		assert.NotContains(t, article.Content, "Copyright")
		assert.NotContains(t, article.Content, "By Jane Doe")
		assert.NotContains(t, article.Content, "<h1")
		assert.NotContains(t, article.Content, "class=")

		assert.True(t, strings.HasPrefix(article.Text, "Content extraction starts"))
		assert.Equal(t, len([]rune(article.Text)), article.Length)
		assert.True(t, strings.HasPrefix(article.Excerpt, "Content extraction starts"))
		assert.Equal(t, readable.SourceContent, article.ExcerptSource)
	})

	t.Run("prefers og:title when metadata lookup is enabled", func(t *testing.T) {
		t.Parallel()

		head := `<meta property="og:title" content="How Scoring Works">`

		article, err := extract.Extract(parse(t, newsHTML(head)), readable.DefaultExtractOptions())

		require.NoError(t, err)
		assert.Equal(t, "How Scoring Works", article.Title)
		assert.Equal(t, readable.SourceOpenGraph, article.TitleSource)
	})

	t.Run("ignores og:title when metadata lookup is disabled", func(t *testing.T) {
		t.Parallel()

		head := `<meta property="og:title" content="How Scoring Works">`
		opts := readable.DefaultExtractOptions()
		opts.LookupMetadataTags = false

		article, err := extract.Extract(parse(t, newsHTML(head)), opts)

		require.NoError(t, err)
		assert.Equal(t, "Understanding How Tree Scoring Works", article.Title)
		assert.Equal(t, readable.SourceDocument, article.TitleSource)
	})

	t.Run("reads metadata from JSON-LD", func(t *testing.T) {
		t.Parallel()

		head := `<script type="application/ld+json">
		{"@context":"https://schema.org","@type":"NewsArticle","headline":"Scoring Trees",
		 "author":{"@type":"Person","name":"John Roe"},"description":"All about scores.",
		 "image":{"url":"/img/lead.jpg"},"datePublished":"2026-01-02T03:04:05Z"}
		</script>`
		opts := readable.DefaultExtractOptions()
		opts.BaseURL, _ = url.Parse("https://news.example.com/2026/scoring")

		article, err := extract.Extract(parse(t, newsHTML(head)), opts)

		require.NoError(t, err)
		assert.Equal(t, "Scoring Trees", article.Title)
		assert.Equal(t, readable.SourceJSONLD, article.TitleSource)
		assert.Equal(t, "John Roe", article.Byline)
		assert.Equal(t, "All about scores.", article.Excerpt)
		assert.Equal(t, "https://news.example.com/img/lead.jpg", article.Image)
		assert.Equal(t, "2026-01-02T03:04:05Z", article.PublishedTime)
	})

	t.Run("returns ENOCONTENT for navigation-only document", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body>
			<nav><a href="/a">First link</a> <a href="/b">Second link</a></nav>
			<footer>Copyright 2026, Example Corp. All rights reserved.</footer>
		</body></html>`

		article, err := extract.Extract(parse(t, doc), readable.DefaultExtractOptions())

		assert.Nil(t, article)
		assert.Equal(t, readable.ENOCONTENT, readable.ErrorCode(err))
	})

	t.Run("returns ENOCONTENT for empty document", func(t *testing.T) {
		t.Parallel()

		_, err := extract.Extract(parse(t, ""), readable.DefaultExtractOptions())

		assert.Equal(t, readable.ENOCONTENT, readable.ErrorCode(err))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		first, err := extract.Extract(parse(t, newsHTML("")), readable.DefaultExtractOptions())
		require.NoError(t, err)

		for range 5 {
			again, err := extract.Extract(parse(t, newsHTML("")), readable.DefaultExtractOptions())
			require.NoError(t, err)
			assert.Equal(t, first.Content, again.Content)
			assert.Equal(t, first.Text, again.Text)
		}
	})
}

func TestExtract_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(o *readable.ExtractOptions)
	}{
		{"min score ratio above one", func(o *readable.ExtractOptions) { o.MinScoreRatio = 2 }},
		{"negative candidate length", func(o *readable.ExtractOptions) { o.MinCandidateLength = -1 }},
		{"missing punctuation pattern", func(o *readable.ExtractOptions) { o.Punctuations = nil }},
		{"relative base URL", func(o *readable.ExtractOptions) { o.BaseURL = &url.URL{Path: "/relative"} }},
		{"unknown candidate score", func(o *readable.ExtractOptions) { o.CandidateScore = readable.CandidateScore(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := parse(t, newsHTML(""))
			before, err := html.Render(tree, tree.Root())
			require.NoError(t, err)

			opts := readable.DefaultExtractOptions()
			tt.modify(&opts)

			_, err = extract.Extract(tree, opts)

			assert.Equal(t, readable.EINVALID, readable.ErrorCode(err))
			after, err := html.Render(tree, tree.Root())
			require.NoError(t, err)
			assert.Equal(t, before, after, "tree must not be touched")
		})
	}

	t.Run("nil tree", func(t *testing.T) {
		t.Parallel()

		_, err := extract.Extract(nil, readable.DefaultExtractOptions())

		assert.Equal(t, readable.EINVALID, readable.ErrorCode(err))
	})

	t.Run("nil scorer", func(t *testing.T) {
		t.Parallel()

		_, err := extract.ExtractWithScorer(parse(t, newsHTML("")), nil, readable.DefaultExtractOptions())

		assert.Equal(t, readable.EINVALID, readable.ErrorCode(err))
	})

	t.Run("element cap", func(t *testing.T) {
		t.Parallel()

		opts := readable.DefaultExtractOptions()
		opts.MaxElements = 5

		_, err := extract.Extract(parse(t, newsHTML("")), opts)

		assert.Equal(t, readable.EPARSE, readable.ErrorCode(err))
	})
}

func TestExtractWithScorer(t *testing.T) {
	t.Parallel()

	const doc = `<html><body>
		<div id="chosen">A short note that no default scorer would pick.</div>
		<div id="other"><p>A much longer paragraph, with commas, sentences, and plenty of text to score well.</p></div>
	</body></html>`

	t.Run("uses the custom scorer's table", func(t *testing.T) {
		t.Parallel()

		scorer := &mock.Scorer{
			ScoreFn: func(tree *readable.Tree, _ readable.ScorerOptions) (*readable.ScoreTable, error) {
				table := readable.NewScoreTable()
				for _, n := range tree.ElementsByTag(tree.Root(), "div") {
					if tree.Attr(n, "id") == "chosen" {
						table.Add(n, 100)
					}
				}
				return table, nil
			},
		}

		article, err := extract.ExtractWithScorer(parse(t, doc), scorer, readable.DefaultExtractOptions())

		require.NoError(t, err)
		assert.Contains(t, article.Text, "A short note")
		assert.NotContains(t, article.Text, "much longer paragraph")
	})

	t.Run("propagates scorer errors unchanged", func(t *testing.T) {
		t.Parallel()

		want := errors.New("scorer exploded")
		scorer := &mock.Scorer{
			ScoreFn: func(*readable.Tree, readable.ScorerOptions) (*readable.ScoreTable, error) {
				return nil, want
			},
		}

		_, err := extract.ExtractWithScorer(parse(t, doc), scorer, readable.DefaultExtractOptions())

		assert.Same(t, want, err)
	})

	t.Run("rejects a nil mock scorer", func(t *testing.T) {
		t.Parallel()

		var scorer *mock.Scorer

		_, err := extract.ExtractWithScorer(parse(t, doc), scorer, readable.DefaultExtractOptions())

		assert.Equal(t, readable.EINVALID, readable.ErrorCode(err))
	})

	t.Run("accepts a zero value score table", func(t *testing.T) {
		t.Parallel()

		scorer := &mock.Scorer{
			ScoreFn: func(tree *readable.Tree, _ readable.ScorerOptions) (*readable.ScoreTable, error) {
				var table readable.ScoreTable
				table.Add(findByID(tree, "chosen"), 100)
				return &table, nil
			},
		}

		article, err := extract.ExtractWithScorer(parse(t, doc), scorer, readable.DefaultExtractOptions())

		require.NoError(t, err)
		assert.Contains(t, article.Text, "A short note")
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("parses, extracts and sanitizes", func(t *testing.T) {
		t.Parallel()

		e := extract.NewExtractor()
		e.Sanitizer = &mock.Sanitizer{
			SanitizeFn: func(s string) string { return "<!-- clean -->" + s },
		}

		article, err := e.Extract(newsHTML(""), readable.DefaultExtractOptions())

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(article.Content, "<!-- clean -->"))
	})

	t.Run("returns metadata reader errors", func(t *testing.T) {
		t.Parallel()

		e := extract.NewExtractor()
		e.Metadata = &mock.MetadataReader{
			ReadMetadataFn: func(*readable.Tree) (*readable.Metadata, error) {
				return nil, readable.Errorf(readable.EINTERNAL, "boom")
			},
		}

		_, err := e.Extract(newsHTML(""), readable.DefaultExtractOptions())

		assert.Equal(t, readable.EINTERNAL, readable.ErrorCode(err))
	})

	t.Run("rejects malformed markup in strict mode", func(t *testing.T) {
		t.Parallel()

		opts := readable.DefaultExtractOptions()
		opts.Strict = true

		_, err := extract.NewExtractor().Extract(`<html><body><div><p>open</span></div></body></html>`, opts)

		assert.Equal(t, readable.EPARSE, readable.ErrorCode(err))
	})

	t.Run("ExtractString matches Extract", func(t *testing.T) {
		t.Parallel()

		a, err := extract.ExtractString(newsHTML(""), readable.DefaultExtractOptions())
		require.NoError(t, err)
		b, err := extract.NewExtractor().Extract(newsHTML(""), readable.DefaultExtractOptions())
		require.NoError(t, err)

		assert.Equal(t, a.Content, b.Content)
	})
}

// navArticlePage is a bare navigation bar of 20 links followed by an
// article of six long paragraphs.
func navArticlePage(title string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<html><head><title>%s</title></head><body><nav><ul>", title)
	for i := range 20 {
		fmt.Fprintf(&sb, `<li><a href="/section/%d">Section %d</a></li>`, i, i)
	}
	sb.WriteString("</ul></nav><article>")
	for i := range 6 {
		fmt.Fprintf(&sb, "<p>Paragraph %d explains how scores travel, step by step, from each block of prose "+
			"to the containers around it. The longer a paragraph runs, and the more commas it holds, the more "+
			"it adds, so the wrapper of the real story ends up well ahead of any menu or footer.</p>", i)
	}
	sb.WriteString("</article></body></html>")
	return sb.String()
}

func TestExtract_NavigationAndArticle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Understanding How Tree Scoring Works | Example News", "Understanding How Tree Scoring Works"},
		{"Tree Scoring Basics | Example News", "Tree Scoring Basics"},
		{"Tree Scoring Basics - Example", "Tree Scoring Basics"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			article, err := extract.Extract(parse(t, navArticlePage(tt.title)), readable.DefaultExtractOptions())

			require.NoError(t, err)
			assert.Equal(t, tt.want, article.Title)
			assert.Equal(t, "article", article.Tree.Tag(article.Root))
			assert.NotContains(t, article.Text, "Section 3")
			assert.Equal(t, 6, strings.Count(article.Content, "<p>"))
		})
	}
}

func TestExtract_ThresholdMonotonicity(t *testing.T) {
	t.Parallel()

	const doc = `<html><body><div><p>This is a sentence, with a comma. And another sentence here.</p></div></body></html>`

	failed := false
	for i := 0; i <= 20; i++ {
		opts := readable.DefaultExtractOptions()
		opts.MinScoreRatio = float64(i) / 20

		_, err := extract.Extract(parse(t, doc), opts)

		if failed {
			assert.Equal(t, readable.ENOCONTENT, readable.ErrorCode(err), "ratio %g", opts.MinScoreRatio)
			continue
		}
		if err != nil {
			require.Equal(t, readable.ENOCONTENT, readable.ErrorCode(err))
			failed = true
		}
	}
	assert.True(t, failed, "the highest threshold must reject the document")

	_, err := extract.Extract(parse(t, doc), readable.DefaultExtractOptions())
	assert.NoError(t, err)
}

func BenchmarkExtract(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("<html><head><title>Benchmark page | Bench</title></head><body><nav><a href='/'>Home</a></nav><div class='content'>")
	for i := range 200 {
		fmt.Fprintf(&sb, "<div class='section-%d'><h2>Section %d</h2>", i, i)
		sb.WriteString("<p>Paragraph text, with some commas, and enough words to be scored as a real paragraph of content.</p>")
		sb.WriteString("<p>Another paragraph follows. It links <a href='/x'>somewhere</a> but mostly holds prose.</p></div>")
	}
	sb.WriteString("</div><footer>Footer</footer></body></html>")
	doc := sb.String()
	opts := readable.DefaultExtractOptions()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := extract.ExtractString(doc, opts); err != nil {
			b.Fatal(err)
		}
	}
}
