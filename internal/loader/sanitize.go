package loader

import "github.com/microcosm-cc/bluemonday"

// FragmentPolicy keeps the layout markup of section fragments (ids, classes, data and
// aria attributes, inline SVG icons, anchors including mailto and tel links) and drops
// scripts, styles and event handler attributes. Links are left as written: no
// nofollow, no target rewriting.
func FragmentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("section", "nav", "header", "footer", "main", "article", "aside",
		"div", "span", "p", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
		"strong", "em", "small", "br", "hr", "a", "button", "i", "svg", "path", "img")
	p.AllowAttrs("id", "class", "role", "title", "tabindex", "lang").Globally()
	p.AllowAttrs("aria-label", "aria-hidden", "aria-controls", "aria-expanded", "aria-labelledby").Globally()
	p.AllowDataAttributes()

	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.AllowRelativeURLs(true)
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("href", "target", "rel", "hreflang").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height", "loading").OnElements("img")
	p.AllowAttrs("type").OnElements("button")
	p.AllowAttrs("viewbox", "fill", "stroke", "d", "stroke-linecap", "stroke-linejoin", "stroke-width", "xmlns").
		OnElements("svg", "path")
	return p
}
