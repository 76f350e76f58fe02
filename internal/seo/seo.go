// Package seo writes page metadata (title, description, Open Graph, hreflang
// alternates, JSON-LD) into a rendered document head.
package seo

import (
	"github.com/PuerkitoBio/goquery"

	"finitefield.org/folio/internal/dom"
)

type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
}

// Alternate is a language variant of the page.
type Alternate struct {
	Hreflang string
	Href     string
}

type Meta struct {
	Lang        string
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Alternates  []Alternate
	JSONLD      []map[string]any
}

// Apply writes m into the head of d. Tags it manages are replaced rather than
// duplicated, so Apply can run again after a language change. Empty fields leave the
// existing markup untouched.
func Apply(d *dom.Document, m Meta) {
	if m.Lang != "" {
		d.Find("html").First().SetAttr("lang", m.Lang)
	}
	head := d.Find("head").First()
	if head.Length() == 0 {
		return
	}
	if m.Title != "" {
		title := head.Find("title").First()
		if title.Length() == 0 {
			head.AppendNodes(dom.El("title", "").HTML())
			title = head.Find("title").First()
		}
		title.SetText(m.Title)
	}
	if m.Description != "" {
		upsertMeta(head, "name", "description", m.Description)
	}
	if m.Canonical != "" {
		upsertLink(head, "canonical", m.Canonical)
	}
	for _, og := range []struct{ key, val string }{
		{"og:title", m.OG.Title},
		{"og:description", m.OG.Description},
		{"og:type", m.OG.Type},
		{"og:url", m.OG.URL},
	} {
		if og.val != "" {
			upsertMeta(head, "property", og.key, og.val)
		}
	}
	if len(m.Alternates) > 0 {
		head.Find(`link[rel="alternate"][hreflang]`).Remove()
		for _, alt := range m.Alternates {
			head.AppendNodes(dom.El("link", "").
				Attr("rel", "alternate").
				Attr("hreflang", alt.Hreflang).
				Attr("href", alt.Href).HTML())
		}
	}
	if len(m.JSONLD) > 0 {
		head.Find(`script[type="application/ld+json"]`).Remove()
		for _, v := range m.JSONLD {
			if s := JSON(v); s != "" {
				head.AppendNodes(dom.El("script", "", dom.Text(s)).Attr("type", "application/ld+json").HTML())
			}
		}
	}
}

func upsertMeta(head *goquery.Selection, attr, key, content string) {
	sel := head.Find(`meta[` + attr + `="` + key + `"]`)
	if sel.Length() == 0 {
		head.AppendNodes(dom.El("meta", "").Attr(attr, key).Attr("content", content).HTML())
		return
	}
	sel.First().SetAttr("content", content)
	sel.Slice(1, sel.Length()).Remove()
}

// upsertLink sets the href of link[rel=rel] in place, so re-applying keeps the head
// order stable.
func upsertLink(head *goquery.Selection, rel, href string) {
	sel := head.Find(`link[rel="` + rel + `"]`)
	if sel.Length() == 0 {
		head.AppendNodes(dom.El("link", "").Attr("rel", rel).Attr("href", href).HTML())
		return
	}
	sel.First().SetAttr("href", href)
	sel.Slice(1, sel.Length()).Remove()
}

// SetThemeColor sets meta[name=theme-color], creating it when missing.
func SetThemeColor(d *dom.Document, color string) {
	head := d.Find("head").First()
	if head.Length() == 0 {
		return
	}
	upsertMeta(head, "name", "theme-color", color)
}
