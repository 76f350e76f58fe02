package render

import (
	"regexp"
	"sort"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/dom"
	"finitefield.org/folio/internal/i18n"
)

var anchorPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Navigation labels the desktop and mobile links whose href is "#<anchor>".
func Navigation(b *content.Bundle, rc Context) []dom.Patch {
	if b.Navigation == nil {
		return nil
	}
	anchors := make([]string, 0, len(b.Navigation))
	for a := range b.Navigation {
		if anchorPattern.MatchString(a) {
			anchors = append(anchors, a)
		}
	}
	sort.Strings(anchors)

	var out []dom.Patch
	for _, a := range anchors {
		label := rc.Text(b.Navigation[a])
		if label == "" {
			continue
		}
		href := `[href="#` + a + `"]`
		out = append(out,
			dom.SetText("", ".nav-link"+href, label).Every(),
			dom.AddClass("", ".nav-link"+href, "animate-fade-in-up").Every(),
			dom.SetText("", ".mobile-nav-item"+href, label).Every(),
		)
	}
	return out
}

// Hero fills the landing section. Empty texts keep the fragment defaults.
func Hero(b *content.Bundle, rc Context) []dom.Patch {
	h := b.Hero
	if h == nil {
		return nil
	}
	var out []dom.Patch
	out = setTextIfAny(out, "#hero-container", "#name", rc.Text(h.Name))
	out = setTextIfAny(out, "#hero-container", "#role", rc.Text(h.Role))
	if h.Descriptions != nil {
		paras := make([]dom.Node, 0, len(h.Descriptions))
		for _, d := range h.Descriptions {
			paras = append(paras, dom.El("p", "text-gray-300 md:text-lg mb-4 leading-relaxed", dom.Text(rc.Text(d))))
		}
		out = append(out, dom.ReplaceChildren("#hero-container", "#hero-description", paras...))
	}
	if h.Buttons != nil {
		out = setTextIfAny(out, "#hero-container", "#contact-btn", rc.Text(h.Buttons.Contact))
		out = setTextIfAny(out, "#hero-container", "#about-btn", rc.TextOr(h.Buttons.About, i18n.KeyLearnMore))
	}
	return out
}

// About fills the title, the description paragraphs by position, the stats row and
// the skill cards.
func About(b *content.Bundle, rc Context) []dom.Patch {
	a := b.About
	if a == nil {
		return nil
	}
	const scope = "#about"
	out := []dom.Patch{dom.SetText(scope, "h2", rc.Text(a.Title))}
	for i, d := range a.Descriptions {
		out = append(out, dom.SetTextAt(scope, "p.text-lg.mb-6", i, rc.Text(d)))
	}
	if a.Stats != nil {
		stats := make([]dom.Node, 0, len(a.Stats))
		for _, s := range a.Stats {
			stats = append(stats, dom.El("div", "flex items-center bg-gray-900/60 rounded-xl p-4 border border-gray-800/40 backdrop-blur-sm transition-all duration-300 hover:border-indigo-500/30 shadow-lg",
				dom.El("div", "bg-gradient-to-r from-indigo-600 to-purple-600 p-3 rounded-full mr-3 shadow-lg",
					dom.Icon(s.Icon, "text-white"),
				),
				dom.El("div", "",
					dom.El("p", "font-semibold text-gray-100", dom.Text(rc.Text(s.Value))),
					dom.El("p", "text-sm text-gray-500", dom.Text(rc.Text(s.Label))),
				),
			))
		}
		out = append(out, dom.ReplaceChildren(scope, ".flex.flex-wrap.gap-6", stats...))
	}
	if a.Skills != nil {
		cards := make([]dom.Node, 0, len(a.Skills))
		for _, s := range a.Skills {
			cards = append(cards, dom.El("div", "bg-gray-900/60 p-6 rounded-xl border border-gray-800/40 shadow-xl hover:shadow-2xl hover:border-indigo-500/30 transition-all duration-300 group backdrop-blur-sm",
				dom.El("div", "text-indigo-400 text-3xl mb-3 group-hover:scale-110 transition-transform duration-300",
					dom.Icon(s.Icon, ""),
				),
				dom.El("h3", "font-semibold mb-2 text-gray-100", dom.Text(rc.Text(s.Title))),
				dom.El("p", "text-sm text-gray-500", dom.Text(rc.Text(s.Description))),
			))
		}
		out = append(out, dom.ReplaceChildren(scope, ".grid.grid-cols-2.gap-4", cards...))
	}
	return out
}

// Languages fills the spoken languages list.
func Languages(b *content.Bundle, rc Context) []dom.Patch {
	l := b.Languages
	if l == nil {
		return nil
	}
	const scope = "#languages"
	var out []dom.Patch
	out = setTextIfAny(out, scope, "h2", rc.Text(l.Title))
	out = setTextIfAny(out, scope, "p", rc.Text(l.Subtitle))
	rows := make([]dom.Node, 0, len(l.Items))
	for _, it := range l.Items {
		rows = append(rows, dom.El("div", "flex justify-between items-center p-4 bg-gray-900/60 rounded-xl shadow-lg border border-gray-800/40 backdrop-blur-sm transition-all duration-300 hover:border-indigo-600/30",
			dom.El("span", "font-medium text-gray-100", dom.Text(rc.Text(it.Language))),
			dom.El("span", "text-gray-400 bg-gray-800/50 px-3 py-1 rounded-lg", dom.Text(rc.Text(it.Level))),
		).Attr("data-aos", "fade-up"))
	}
	return append(out, dom.ReplaceChildren(scope, "#languages-list", rows...))
}

// Contact fills the headings, the four method labels and the location card.
func Contact(b *content.Bundle, rc Context) []dom.Patch {
	c := b.Contact
	if c == nil {
		return nil
	}
	const scope = "#contact"
	var out []dom.Patch
	out = setTextIfAny(out, scope, "h2", rc.TextOr(c.Title, i18n.KeyContact))
	out = setTextIfAny(out, scope, "p.text-center", rc.Text(c.Subtitle))
	if m := c.ContactMethods; m != nil {
		for i, v := range []content.Value{m.Email, m.Whatsapp, m.Phone, m.Location} {
			out = append(out, dom.SetTextAt(scope, ".grid h3", i, rc.Text(v)).AtLeast(4))
		}
	}
	out = append(out, dom.SetText(scope, ".group:last-child p", rc.Text(c.Location)))
	return out
}
