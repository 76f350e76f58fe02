package portfolio

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/dom"
	"finitefield.org/folio/internal/i18n"
	"finitefield.org/folio/internal/loader"
	"finitefield.org/folio/internal/render"
	"finitefield.org/folio/internal/seo"
)

// Page is one rendered document together with its language state. It is owned by a
// single goroutine.
type Page struct {
	RenderID  string
	Fragments loader.Report

	doc     *dom.Document
	bundle  *content.Bundle
	rc      render.Context
	siteURL string
	ready   bool
}

// Lang returns the current language.
func (p *Page) Lang() content.Lang { return p.rc.Lang }

// Ready reports whether the content loaded and the page was revealed.
func (p *Page) Ready() bool { return p.ready }

// Bundle returns the loaded content, nil when the load failed.
func (p *Page) Bundle() *content.Bundle { return p.bundle }

// Document exposes the underlying document.
func (p *Page) Document() *dom.Document { return p.doc }

// Toggle flips the language and re-renders every section. It returns the new language.
func (p *Page) Toggle() content.Lang {
	p.SetLang(p.rc.Lang.Toggle())
	return p.rc.Lang
}

// SetLang switches to lang and re-renders.
func (p *Page) SetLang(lang content.Lang) {
	p.rc = p.rc.WithLang(lang)
	if p.bundle == nil {
		p.syncToggles()
		return
	}
	p.render()
}

// HTML serializes the full document.
func (p *Page) HTML() (string, error) { return p.doc.HTML() }

// PartialHTML serializes the document title followed by the children of <body>. htmx
// applies the title when it swaps the body in.
func (p *Page) PartialHTML() (string, error) {
	body, err := p.doc.BodyHTML()
	if err != nil {
		return "", err
	}
	title := p.doc.Find("head title").First()
	if title.Length() == 0 {
		return body, nil
	}
	t, err := dom.Render(dom.El("title", "", dom.Text(title.Text())))
	if err != nil {
		return "", err
	}
	return t + body, nil
}

// Metadata returns the head metadata for the current language. Without content only
// the language is set.
func (p *Page) Metadata() seo.Meta { return p.metadata() }

// Render writes the full document to w.
func (p *Page) Render(w io.Writer) error { return p.doc.Render(w) }

func (p *Page) render() {
	render.RenderAll(p.doc, p.bundle, p.rc)
	p.syncToggles()
	seo.Apply(p.doc, p.metadata())
}

// syncToggles labels the language controls with the current code and points them at
// the other language.
func (p *Page) syncToggles() {
	next := p.rc.Lang.Toggle()
	href := "?hl=" + next.String()
	label := p.rc.T(i18n.KeyToggleLanguage)
	for _, id := range toggleIDs {
		dom.Apply(p.doc, []dom.Patch{
			dom.SetText("", "#"+id, p.rc.Lang.Code()),
			dom.SetAttr("", "#"+id, "href", href),
			dom.SetAttr("", "#"+id, "hx-get", href),
			dom.SetAttr("", "#"+id, "hx-target", "body"),
			dom.SetAttr("", "#"+id, "hx-swap", "innerHTML"),
			dom.SetAttr("", "#"+id, "hx-push-url", href),
			dom.SetAttr("", "#"+id, "hreflang", next.String()),
			dom.SetAttr("", "#"+id, "aria-label", label),
		})
	}
	dom.Apply(p.doc, []dom.Patch{dom.SetAttr("", "html", "lang", p.rc.Lang.String())})
}

var toggleIDs = []string{"language-toggle", "language-toggle-mobile"}

func (p *Page) metadata() seo.Meta {
	m := seo.Meta{Lang: p.rc.Lang.String()}
	if p.bundle == nil || p.bundle.Hero == nil {
		return m
	}
	h := p.bundle.Hero
	name := p.rc.Text(h.Name)
	role := p.rc.Text(h.Role)
	m.Title = strings.Join(nonEmpty(name, role), " | ")
	for _, d := range h.Descriptions {
		if s := p.rc.Text(d); s != "" {
			m.Description = s
			break
		}
	}
	m.OG = seo.OpenGraph{Title: m.Title, Description: m.Description, Type: "profile"}
	if p.siteURL != "" {
		m.Canonical = langURL(p.siteURL, p.rc.Lang)
		m.OG.URL = m.Canonical
		for _, l := range content.Langs {
			m.Alternates = append(m.Alternates, seo.Alternate{Hreflang: l.String(), Href: langURL(p.siteURL, l)})
		}
		m.Alternates = append(m.Alternates, seo.Alternate{Hreflang: "x-default", Href: langURL(p.siteURL, content.DefaultLang)})
	}
	if name != "" {
		person := seo.Person(name, role, p.siteURL, p.profileLinks()...)
		m.JSONLD = []map[string]any{seo.ProfilePage(m.Canonical, m.Lang, person)}
	}
	return m
}

// profileLinks returns the web links of the contact cards, in document order.
func (p *Page) profileLinks() []string {
	var out []string
	p.doc.Find(`#contact a[href]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "https://") || strings.HasPrefix(href, "http://") {
			out = append(out, href)
		}
	})
	return out
}

func langURL(site string, lang content.Lang) string {
	u, err := url.Parse(site)
	if err != nil {
		return site
	}
	q := u.Query()
	q.Set("hl", lang.String())
	u.RawQuery = q.Encode()
	return u.String()
}

func nonEmpty(in ...string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
