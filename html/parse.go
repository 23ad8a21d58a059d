// Package html adapts golang.org/x/net/html to readable.Tree: parsing,
// well-formedness checking and serialization.
package html

import (
	"bytes"
	"io"
	"strings"

	"github.com/fwojciec/readable"
	"golang.org/x/net/html"
)

// Parse reads an HTML document into a tree.
//
// Scripting is disabled so that <noscript> content is parsed as markup.
// In strict mode the input is checked first and any diagnostic fails the
// parse with EPARSE; otherwise malformed markup is recovered the way
// browsers do.
func Parse(r io.Reader, opts readable.ParseOptions) (*readable.Tree, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readable.Errorf(readable.EPARSE, "read HTML: %v", err)
	}

	if opts.Strict {
		if diags := Check(bytes.NewReader(data)); len(diags) > 0 {
			return nil, readable.Errorf(readable.EPARSE, "malformed HTML: %s", summarize(diags))
		}
	}

	root, err := html.ParseWithOptions(bytes.NewReader(data), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, readable.Errorf(readable.EPARSE, "parse HTML: %v", err)
	}

	tree := FromNode(root)
	if opts.MaxElements > 0 {
		if n := tree.CountElements(tree.Root()); n > opts.MaxElements {
			return nil, readable.Errorf(readable.EPARSE, "document has %d elements, limit is %d", n, opts.MaxElements)
		}
	}
	return tree, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string, opts readable.ParseOptions) (*readable.Tree, error) {
	return Parse(strings.NewReader(s), opts)
}

const maxReportedDiagnostics = 3

func summarize(diags []Diagnostic) string {
	parts := make([]string, 0, maxReportedDiagnostics+1)
	for i, d := range diags {
		if i == maxReportedDiagnostics {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}
