package goquery_test

import (
	"testing"

	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/goquery"
	"github.com/fwojciec/readable/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, doc string) *readable.Metadata {
	t.Helper()
	tree, err := html.ParseString(doc, readable.DefaultParseOptions())
	require.NoError(t, err)
	meta, err := goquery.NewMetadataReader().ReadMetadata(tree)
	require.NoError(t, err)
	return meta
}

func TestMetadataReader_ReadMetadata(t *testing.T) {
	t.Parallel()

	t.Run("reads title, headings and language", func(t *testing.T) {
		t.Parallel()

		meta := read(t, `<html lang="en-GB"><head><title>  A Page | Site </title></head>
			<body><h1>First   heading</h1><h1></h1><h1>Second</h1></body></html>`)

		assert.Equal(t, "A Page | Site", meta.DocumentTitle)
		assert.Equal(t, []string{"First heading", "Second"}, meta.Headings)
		assert.Equal(t, "en-GB", meta.Language)
	})

	t.Run("collects meta keys with the first value winning", func(t *testing.T) {
		t.Parallel()

		meta := read(t, `<html><head>
			<meta property="og:title" content="From OG">
			<meta property="og:title" content="Second OG">
			<meta name="Description" content=" Summary ">
			<meta property="dc:creator og:site_name" content="Shared">
			<meta itemprop="author" content="Item Author">
			<meta name="empty" content="">
		</head><body></body></html>`)

		assert.Equal(t, "From OG", meta.Meta["og:title"])
		assert.Equal(t, "Summary", meta.Meta["description"])
		assert.Equal(t, "Shared", meta.Meta["dc:creator"])
		assert.Equal(t, "Shared", meta.Meta["og:site_name"])
		assert.Equal(t, "Item Author", meta.Meta["author"])
		assert.NotContains(t, meta.Meta, "empty")

		key, value := meta.MetaValue("twitter:title", "og:title")
		assert.Equal(t, "og:title", key)
		assert.Equal(t, "From OG", value)
	})

	t.Run("reads the first article in JSON-LD", func(t *testing.T) {
		t.Parallel()

		meta := read(t, `<html><head>
			<script type="application/ld+json">not json</script>
			<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
				{"@type":"WebSite","name":"Site"},
				{"@type":"NewsArticle","headline":"LD Headline",
				 "author":[{"@type":"Person","name":"Ann"},{"name":"Bob"}],
				 "description":"LD description",
				 "image":{"@type":"ImageObject","url":"https://example.com/ld.jpg"},
				 "datePublished":"2024-05-01T10:00:00Z",
				 "publisher":{"@type":"Organization","name":"Example Press"}}
			]}</script>
		</head><body></body></html>`)

		ld := meta.LinkedData
		assert.Equal(t, "LD Headline", ld.Headline)
		assert.Equal(t, "Ann, Bob", ld.Author)
		assert.Equal(t, "LD description", ld.Description)
		assert.Equal(t, "https://example.com/ld.jpg", ld.Image)
		assert.Equal(t, "2024-05-01T10:00:00Z", ld.DatePublished)
		assert.Equal(t, "Example Press", ld.Publisher)
	})

	t.Run("ignores JSON-LD without an article", func(t *testing.T) {
		t.Parallel()

		meta := read(t, `<html><head><script type="application/ld+json">{"@type":"Organization","name":"Org"}</script></head><body></body></html>`)

		assert.Equal(t, readable.LinkedData{}, meta.LinkedData)
	})

	t.Run("finds the byline", func(t *testing.T) {
		t.Parallel()

		meta := read(t, `<html><body>
			<div class="header">Site</div>
			<p class="byline">By   Jane Doe</p>
			<a rel="author">Someone Else</a>
		</body></html>`)

		assert.Equal(t, "By Jane Doe", meta.Byline)
	})

	t.Run("skips long author blocks", func(t *testing.T) {
		t.Parallel()

		long := "This author box is much too long to be a byline because it goes on and on about the author and their many achievements."
		meta := read(t, `<html><body><div class="author-bio">`+long+`</div><span itemprop="author">Jane</span></body></html>`)

		assert.Equal(t, "Jane", meta.Byline)
	})

	t.Run("does not modify the tree", func(t *testing.T) {
		t.Parallel()

		tree, err := html.ParseString(`<html><head><title>T</title></head><body><p class="byline">By Jane</p></body></html>`, readable.DefaultParseOptions())
		require.NoError(t, err)
		before, err := html.Render(tree, tree.Root())
		require.NoError(t, err)

		_, err = goquery.NewMetadataReader().ReadMetadata(tree)
		require.NoError(t, err)

		after, err := html.Render(tree, tree.Root())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("rejects a nil tree", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewMetadataReader().ReadMetadata(nil)

		assert.Equal(t, readable.EINVALID, readable.ErrorCode(err))
	})
}
