// Package document reads raw markup into a navigable element tree and
// provides the small set of queries used by the report and build parsers.
package document

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Parse reads the markup from r and returns the document root.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse document")
	}
	return doc, nil
}

// ParseString is a shorthand for Parse(strings.NewReader(s)).
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// isElement reports if n is an element with the given tag. An empty tag
// matches any element.
func isElement(n *html.Node, tag string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return tag == "" || n.Data == tag
}

// Find returns the first descendant of n (depth first, document order) with
// the given tag, or nil.
func Find(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, tag) {
			return c
		}
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of n with the given tag in document order.
func FindAll(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if isElement(c, tag) {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return nodes
}

// Children returns the direct element children of n with the given tag.
// An empty tag returns all element children.
func Children(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	if n == nil {
		return nodes
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, tag) {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Text returns the concatenated text of n and its descendants, trimmed.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			sb.WriteString(p.Data)
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// Attr returns the value of the attribute key on n, or an empty string.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Title returns the text of the document <title>.
func Title(doc *html.Node) string {
	return Text(Find(doc, "title"))
}
