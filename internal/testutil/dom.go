package testutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"finitefield.org/folio/internal/dom"
)

// ParseHTML parses a rendered page or fragment into a goquery document for assertions.
func ParseHTML(t testing.TB, body string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Snapshot renders a pipeline document and re-parses it so assertions see exactly
// what a browser would receive.
func Snapshot(t testing.TB, d *dom.Document) *goquery.Document {
	t.Helper()

	out, err := d.HTML()
	if err != nil {
		t.Fatalf("render document: %v", err)
	}
	return ParseHTML(t, out)
}

// MustDocument parses markup into a pipeline document.
func MustDocument(t testing.TB, markup string) *dom.Document {
	t.Helper()

	d, err := dom.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return d
}

// Texts returns the trimmed text of every match.
func Texts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}
