// Package dom exposes the small query surface the scrapers need over a
// parsed HTML document. Extraction code only talks to Node, so the parser
// behind it can change without touching any selector logic.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is a queryable element (or a set of matched elements, in which case
// reads apply to the first one). A Node for a selector that matched nothing
// is still usable: Exists reports false and every read is empty.
type Node interface {
	Find(selector string) Node
	FindAll(selector string) []Node
	Attr(name string) (string, bool)
	Text() string
	Exists() bool
}

type selection struct {
	s *goquery.Selection
}

// Parse reads an HTML document.
func Parse(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	return selection{s: doc.Selection}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(html string) (Node, error) {
	return Parse(strings.NewReader(html))
}

// FromSelection wraps an existing goquery selection.
func FromSelection(s *goquery.Selection) Node {
	return selection{s: s}
}

func (n selection) Find(selector string) Node {
	return selection{s: n.s.Find(selector).First()}
}

func (n selection) FindAll(selector string) []Node {
	found := n.s.Find(selector)
	out := make([]Node, 0, found.Length())
	found.Each(func(_ int, el *goquery.Selection) {
		out = append(out, selection{s: el})
	})

	return out
}

func (n selection) Attr(name string) (string, bool) {
	if n.s.Length() == 0 {
		return "", false
	}

	return n.s.First().Attr(name)
}

func (n selection) Text() string {
	if n.s.Length() == 0 {
		return ""
	}

	return strings.TrimSpace(n.s.First().Text())
}

func (n selection) Exists() bool {
	return n.s.Length() > 0
}
