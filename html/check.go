package html

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// DiagnosticKind classifies a well-formedness problem.
type DiagnosticKind string

// DiagnosticKind constants.
const (
	UnexpectedEndTag DiagnosticKind = "unexpected end tag"
	ImplicitlyClosed DiagnosticKind = "implicitly closed element"
	Unterminated     DiagnosticKind = "unterminated element"
	TokenizerError   DiagnosticKind = "tokenizer error"
)

// Diagnostic describes one well-formedness problem.
type Diagnostic struct {
	Kind DiagnosticKind

	// Tag is the element involved, if any.
	Tag string

	// Offset is the byte offset of the token that revealed the problem.
	Offset int
}

func (d Diagnostic) String() string {
	if d.Tag == "" {
		return fmt.Sprintf("%s at byte %d", d.Kind, d.Offset)
	}
	return fmt.Sprintf("%s <%s> at byte %d", d.Kind, d.Tag, d.Offset)
}

// voidElements never have an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "param": true, "source": true, "track": true, "wbr": true,
	"keygen": true, "basefont": true, "bgsound": true, "frame": true,
}

// optionalEndElements may legally be closed implicitly.
var optionalEndElements = map[string]bool{
	"html": true, "head": true, "body": true, "p": true, "li": true, "dt": true, "dd": true,
	"option": true, "optgroup": true, "rb": true, "rp": true, "rt": true, "rtc": true,
	"thead": true, "tbody": true, "tfoot": true, "tr": true, "td": true, "th": true,
	"colgroup": true, "caption": true,
}

// Check tokenizes r and reports end tags that match no open element,
// elements closed implicitly by an ancestor's end tag, and elements still
// open at end of input. Void elements and elements whose end tag is
// optional are never reported.
func Check(r io.Reader) []Diagnostic {
	var (
		diags  []Diagnostic
		stack  []string
		offset int
	)
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		pos := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				diags = append(diags, Diagnostic{Kind: TokenizerError, Offset: pos})
			}
			for i := len(stack) - 1; i >= 0; i-- {
				if !optionalEndElements[stack[i]] {
					diags = append(diags, Diagnostic{Kind: Unterminated, Tag: stack[i], Offset: pos})
				}
			}
			return diags

		case html.StartTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			if !voidElements[tag] {
				stack = append(stack, tag)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := strings.ToLower(string(name))
			i := len(stack) - 1
			for i >= 0 && stack[i] != tag {
				i--
			}
			if i < 0 {
				diags = append(diags, Diagnostic{Kind: UnexpectedEndTag, Tag: tag, Offset: pos})
				continue
			}
			for j := len(stack) - 1; j > i; j-- {
				if !optionalEndElements[stack[j]] {
					diags = append(diags, Diagnostic{Kind: ImplicitlyClosed, Tag: stack[j], Offset: pos})
				}
			}
			stack = stack[:i]
		}
	}
}
