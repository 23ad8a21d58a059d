package html_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/readable"
	rhtml "github.com/fwojciec/readable/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("builds tree with head and body", func(t *testing.T) {
		t.Parallel()

		tree, err := rhtml.ParseString(`<!DOCTYPE html><html lang="en"><head><title>T</title></head>`+
			`<body><p class="lead">Hello <b>world</b></p></body></html>`, readable.DefaultParseOptions())
		require.NoError(t, err)

		body := tree.Body()
		require.True(t, tree.IsElement(body, "body"))
		p := tree.FirstElement(body, "p")
		require.NotEqual(t, readable.NoNode, p)
		assert.Equal(t, "lead", tree.Attr(p, "class"))
		assert.Equal(t, "Hello world", tree.InnerText(p))
		assert.Equal(t, readable.NoNode, tree.FirstElement(body, "title"))
		assert.NotEqual(t, readable.NoNode, tree.Head())
	})

	t.Run("parses noscript content as markup", func(t *testing.T) {
		t.Parallel()

		tree, err := rhtml.ParseString(`<body><noscript><img src="a.png"></noscript></body>`, readable.DefaultParseOptions())
		require.NoError(t, err)

		assert.Len(t, tree.ElementsByTag(tree.Root(), "img"), 1)
	})

	t.Run("recovers malformed markup in lenient mode", func(t *testing.T) {
		t.Parallel()

		tree, err := rhtml.ParseString(`<body><div><p>open</span></div>`, readable.DefaultParseOptions())
		require.NoError(t, err)
		assert.Equal(t, "open", tree.InnerText(tree.Body()))
	})

	t.Run("rejects malformed markup in strict mode", func(t *testing.T) {
		t.Parallel()

		_, err := rhtml.ParseString(`<body><div><p>open</span></div>`, readable.ParseOptions{Strict: true})
		require.Error(t, err)
		assert.Equal(t, readable.EPARSE, readable.ErrorCode(err))
		assert.Contains(t, readable.ErrorMessage(err), "span")
	})

	t.Run("accepts well-formed markup in strict mode", func(t *testing.T) {
		t.Parallel()

		_, err := rhtml.ParseString(`<html><body><ul><li>a<li>b</ul><p>x<br>y</p></body></html>`, readable.ParseOptions{Strict: true})
		require.NoError(t, err)
	})

	t.Run("enforces element cap", func(t *testing.T) {
		t.Parallel()

		src := "<body>" + strings.Repeat("<p>x</p>", 50) + "</body>"
		_, err := rhtml.ParseString(src, readable.ParseOptions{MaxElements: 10})
		require.Error(t, err)
		assert.Equal(t, readable.EPARSE, readable.ErrorCode(err))
	})

	t.Run("rejects negative element cap", func(t *testing.T) {
		t.Parallel()

		_, err := rhtml.ParseString("<p>x</p>", readable.ParseOptions{MaxElements: -1})
		assert.Equal(t, readable.EINVALID, readable.ErrorCode(err))
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kinds []rhtml.DiagnosticKind
	}{
		{"well formed", `<div><p>a</p><img src="x"></div>`, nil},
		{"optional end tags", `<table><tr><td>a<td>b</table>`, nil},
		{"stray end tag", `<div>a</section></div>`, []rhtml.DiagnosticKind{rhtml.UnexpectedEndTag}},
		{"implicitly closed", `<div><span>a</div>`, []rhtml.DiagnosticKind{rhtml.ImplicitlyClosed}},
		{"unterminated", `<div><em>a`, []rhtml.DiagnosticKind{rhtml.Unterminated, rhtml.Unterminated}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := rhtml.Check(strings.NewReader(tt.input))
			var kinds []rhtml.DiagnosticKind
			for _, d := range diags {
				kinds = append(kinds, d.Kind)
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	tree, err := rhtml.ParseString(`<body><div id="c"><p>One &amp; <a href="/x">two</a></p></div></body>`, readable.DefaultParseOptions())
	require.NoError(t, err)

	div := tree.FirstElement(tree.Root(), "div")
	out, err := rhtml.Render(tree, div)

	require.NoError(t, err)
	assert.Equal(t, `<div id="c"><p>One &amp; <a href="/x">two</a></p></div>`, out)
}

func TestFromNodeToNode_RoundTrip(t *testing.T) {
	t.Parallel()

	src := `<!DOCTYPE html><html><head></head><body><!--c--><p>a<br/>b</p><svg><circle r="1"></circle></svg></body></html>`
	tree, err := rhtml.ParseString(src, readable.DefaultParseOptions())
	require.NoError(t, err)

	out, err := rhtml.Render(tree, tree.Root())

	require.NoError(t, err)
	assert.Equal(t, `<!DOCTYPE html><html><head></head><body><!--c--><p>a<br/>b</p><svg><circle r="1"></circle></svg></body></html>`, out)
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	tree, err := rhtml.ParseString(`<body><h2>Title</h2>
		<p>First   paragraph
		wraps.</p>
		<ul><li>one</li><li>two</li></ul>
		<pre>  keep
    indent</pre>
		<p>a<br>b</p></body>`, readable.DefaultParseOptions())
	require.NoError(t, err)

	text := rhtml.RenderText(tree, tree.Body())

	assert.Equal(t, "Title\n\nFirst paragraph wraps.\n\none\ntwo\n\n  keep\n    indent\n\na\nb", text)
}
