package dom

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is a parsed page the pipeline mutates in place. It is not safe for
// concurrent use.
type Document struct {
	doc *goquery.Document
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseBytes parses an in-memory document.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

// Find runs a CSS selector over the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// ByID returns the element with the given id.
func (d *Document) ByID(id string) (*goquery.Selection, bool) {
	sel := d.doc.Find("#" + id).First()
	return sel, sel.Length() > 0
}

// SetInnerHTML replaces the children of element id with parsed markup.
func (d *Document) SetInnerHTML(id, markup string) bool {
	sel, ok := d.ByID(id)
	if !ok {
		return false
	}
	sel.SetHtml(markup)
	return true
}

// Replace replaces the children of element id with built nodes.
func (d *Document) Replace(id string, nodes ...Node) bool {
	sel, ok := d.ByID(id)
	if !ok {
		return false
	}
	replaceChildren(sel, nodes)
	return true
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	if len(d.doc.Nodes) == 0 {
		return nil
	}
	return html.Render(w, d.doc.Nodes[0])
}

// HTML returns the whole document as a string.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BodyHTML returns the inner markup of <body>.
func (d *Document) BodyHTML() (string, error) {
	return d.doc.Find("body").First().Html()
}

func replaceChildren(sel *goquery.Selection, nodes []Node) {
	sel.Each(func(_ int, s *goquery.Selection) {
		s.Empty()
		for _, n := range nodes {
			s.AppendNodes(n.HTML())
		}
	})
}
