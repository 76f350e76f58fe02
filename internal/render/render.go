// Package render turns a content bundle into document patches, one pure function per
// page section.
package render

import (
	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/dom"
	"finitefield.org/folio/internal/i18n"
)

// Context is the immutable state a render pass reads. The page controller builds a
// new Context on every language change.
type Context struct {
	Lang   content.Lang
	Labels *i18n.Bundle
}

// NewContext returns a context for lang, normalizing unknown codes to the default.
func NewContext(lang content.Lang, labels *i18n.Bundle) Context {
	return Context{Lang: content.ParseLang(string(lang)), Labels: labels}
}

// T returns the interface label for key in the context language.
func (rc Context) T(key string) string {
	return rc.Labels.T(string(rc.Lang), key)
}

// Text resolves a content field in the context language.
func (rc Context) Text(v content.Value) string {
	return content.Text(v, rc.Lang)
}

// TextOr resolves v, falling back to the interface label for key when the content
// leaves it empty. Without a label the result is empty.
func (rc Context) TextOr(v content.Value, key string) string {
	if s := rc.Text(v); s != "" {
		return s
	}
	s, _ := rc.Labels.Lookup(string(rc.Lang), key)
	return s
}

// Texts resolves a list field in the context language.
func (rc Context) Texts(v content.Value) []string {
	return content.Texts(v, rc.Lang)
}

// WithLang returns a copy of rc for another language.
func (rc Context) WithLang(lang content.Lang) Context {
	rc.Lang = content.ParseLang(string(lang))
	return rc
}

// Func renders one section. It must not mutate the bundle and returns no patches when
// its document is absent.
type Func func(b *content.Bundle, rc Context) []dom.Patch

// Step pairs a section with its renderer.
type Step struct {
	Section content.Section
	Render  Func
}

// Pipeline is the fixed render order.
var Pipeline = []Step{
	{Section: content.SectionNavigation, Render: Navigation},
	{Section: content.SectionHero, Render: Hero},
	{Section: content.SectionAbout, Render: About},
	{Section: content.SectionExperience, Render: Experience},
	{Section: content.SectionEducation, Render: Education},
	{Section: content.SectionLanguages, Render: Languages},
	{Section: content.SectionSkills, Render: Skills},
	{Section: content.SectionContact, Render: Contact},
}

// Patches collects the patches of every section in pipeline order.
func Patches(b *content.Bundle, rc Context) []dom.Patch {
	if b == nil {
		return nil
	}
	var out []dom.Patch
	for _, step := range Pipeline {
		out = append(out, step.Render(b, rc)...)
	}
	return out
}

// RenderAll applies every section to doc and returns the number of patches that
// found a target. Calling it again with the same inputs leaves doc unchanged.
func RenderAll(doc *dom.Document, b *content.Bundle, rc Context) int {
	return dom.Apply(doc, Patches(b, rc))
}

// setTextIfAny skips the patch when text is empty so the fragment default stays.
func setTextIfAny(out []dom.Patch, scope, selector, text string) []dom.Patch {
	if text == "" {
		return out
	}
	return append(out, dom.SetText(scope, selector, text))
}

func listItems(items []string, icon, color string) []dom.Node {
	nodes := make([]dom.Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, dom.El("li", "flex items-start text-gray-300",
			dom.Icon(icon, "text-"+color+" mt-1 mr-2 text-xs"),
			dom.El("span", "", dom.Text(it)),
		))
	}
	return nodes
}
