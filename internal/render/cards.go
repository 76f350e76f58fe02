package render

import (
	"strconv"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/dom"
	"finitefield.org/folio/internal/i18n"
)

const cardClass = "p-6 bg-gray-900/60 rounded-2xl shadow-lg hover:shadow-xl transition-all duration-300 border border-gray-800/40 backdrop-blur-sm hover:border-indigo-600/30"

// credentialURL is where the evaluation badge links to.
const credentialURL = "https://www.wes.org"

// Experience rebuilds the position list, one card per entry in document order.
func Experience(b *content.Bundle, rc Context) []dom.Patch {
	if b.Experience == nil {
		return nil
	}
	out := []dom.Patch{dom.SetText("", "#experience-title", rc.T(i18n.KeyExperience))}
	cards := make([]dom.Node, 0, len(b.Experience))
	for _, exp := range b.Experience {
		cards = append(cards, experienceCard(exp, rc))
	}
	return append(out, dom.ReplaceChildren("#experience", "#experience-list", cards...))
}

func experienceCard(exp content.Experience, rc Context) dom.Node {
	heading := []dom.Node{
		dom.El("h3", "text-xl font-bold text-gray-100", dom.Text(rc.Text(exp.Company))),
		dom.El("p", "text-indigo-400 font-medium", dom.Text(rc.Text(exp.Role))),
	}
	if t := rc.Text(exp.Type); t != "" {
		heading = append(heading, dom.El("span", "text-sm text-gray-400 italic", dom.Text(t)))
	}
	body := []dom.Node{
		dom.El("div", "flex flex-col md:flex-row md:justify-between md:items-start mb-4",
			dom.El("div", "", heading...),
			dom.El("span", "text-gray-400 mt-2 md:mt-0 bg-gray-800/50 px-3 py-1 rounded-lg", dom.Text(rc.Text(exp.Duration))),
		),
	}
	if c := rc.Text(exp.Context); c != "" {
		body = append(body, dom.El("p", "text-gray-300 mb-4", dom.Text(c)))
	}
	if items := rc.Texts(exp.Responsibilities); len(items) > 0 {
		body = append(body, listSection(rc.T(i18n.KeyResponsibilities), listItems(items, "chevron-right", "indigo-400")))
	}
	if items := rc.Texts(exp.Results); len(items) > 0 {
		body = append(body, listSection(rc.T(i18n.KeyResults), listItems(items, "check", "green-400")).Attr("data-block", "results"))
	}
	if tags := nonEmpty(exp.TechStack); len(tags) > 0 {
		chips := make([]dom.Node, 0, len(tags))
		for _, tag := range tags {
			chips = append(chips, dom.El("span", "px-3 py-1 bg-indigo-900/30 text-indigo-300 rounded-full text-sm border border-indigo-800/40", dom.Text(tag)))
		}
		body = append(body, dom.El("div", "",
			dom.El("h4", "text-lg font-semibold text-gray-100 mb-3", dom.Text(rc.T(i18n.KeyTechnologies))),
			dom.El("div", "flex flex-wrap gap-2", chips...),
		).Attr("data-block", "tech-stack"))
	}
	return dom.El("div", cardClass, body...).Attr("data-aos", "fade-up")
}

func listSection(title string, items []dom.Node) dom.Node {
	return dom.El("div", "mb-4",
		dom.El("h4", "text-lg font-semibold text-gray-100 mb-3", dom.Text(title)),
		dom.El("ul", "space-y-2", items...),
	)
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Education rebuilds the degree list. Items marked with the credential badge get a
// link to the evaluation service.
func Education(b *content.Bundle, rc Context) []dom.Patch {
	e := b.Education
	if e == nil {
		return nil
	}
	const scope = "#education"
	var out []dom.Patch
	out = setTextIfAny(out, scope, "h2", rc.Text(e.Title))
	out = setTextIfAny(out, scope, "p", rc.Text(e.Subtitle))

	cards := make([]dom.Node, 0, len(e.Items))
	for _, it := range e.Items {
		row := []dom.Node{
			dom.El("div", "flex-1",
				dom.El("h3", "text-xl font-bold text-gray-100 mb-2", dom.Text(rc.Text(it.Institution))),
				dom.El("p", "text-indigo-400 font-medium mb-3", dom.Text(rc.Text(it.Degree))),
				dom.El("span", "text-gray-400 bg-gray-800/50 px-3 py-1 rounded-lg", dom.Text(rc.Text(it.Year))),
			),
		}
		if it.HasBadge(content.CredentialBadge) {
			row = append(row, credentialBadge(rc))
		}
		cards = append(cards, dom.El("div", cardClass,
			dom.El("div", "flex flex-col lg:flex-row lg:justify-between lg:items-start gap-4 mb-4", row...),
		).Attr("data-aos", "fade-up"))
	}
	return append(out, dom.ReplaceChildren(scope, "#education-list", cards...))
}

func credentialBadge(rc Context) dom.Node {
	link := dom.El("a", "inline-flex items-center px-4 py-2 bg-gradient-to-r from-green-900/50 to-emerald-900/50 text-green-300 rounded-lg border border-green-700/40 hover:border-green-500/60 transition-all duration-300 group",
		dom.Icon("award", "mr-2 text-green-400"),
		dom.El("span", "font-semibold", dom.Text(content.CredentialBadge)),
		dom.Icon("external-link-alt", "ml-2 text-xs opacity-0 group-hover:opacity-100 transition-opacity duration-300"),
	).Attr("href", credentialURL).Attr("target", "_blank").Attr("rel", "noopener")
	return dom.El("div", "lg:text-right credential-badge",
		link,
		dom.El("p", "text-xs text-gray-500 mt-2", dom.Text(rc.T(i18n.KeyCredentialEval))),
	)
}

// skillCategories lists the tag cards of the skills grid with their palette and
// animation delay.
var skillCategories = []struct {
	pick  func(*content.Skills) *content.SkillCategory
	label string
	color string
	delay int
}{
	{func(s *content.Skills) *content.SkillCategory { return s.Frameworks }, i18n.KeyFrameworks, "blue", 0},
	{func(s *content.Skills) *content.SkillCategory { return s.Languages }, i18n.KeyLanguages, "green", 100},
	{func(s *content.Skills) *content.SkillCategory { return s.Databases }, i18n.KeyDatabases, "purple", 200},
	{func(s *content.Skills) *content.SkillCategory { return s.Tools }, i18n.KeyTools, "orange", 300},
}

// Skills rebuilds #skills-content. Absent or empty categories produce no block.
func Skills(b *content.Bundle, rc Context) []dom.Patch {
	s := b.Skills
	if s == nil {
		return nil
	}
	var out []dom.Patch
	out = setTextIfAny(out, "#skills", "h2", rc.TextOr(s.Title, i18n.KeySkills))

	var blocks []dom.Node
	if n, ok := skillList(s.Technical, i18n.KeyTechnicalSkills, rc, "check", "green-400"); ok {
		blocks = append(blocks, n)
	}
	var cards []dom.Node
	for _, c := range skillCategories {
		cat := c.pick(s)
		if cat.Empty() {
			continue
		}
		tags := make([]dom.Node, 0, len(cat.Items))
		for _, it := range cat.Items {
			tags = append(tags, dom.El("span", "px-3 py-2 bg-"+c.color+"-900/40 text-"+c.color+"-300 rounded-lg text-sm border border-"+c.color+"-800/30 backdrop-blur-sm", dom.Text(rc.Text(it))))
		}
		cards = append(cards, dom.El("div", "",
			dom.El("h4", "text-xl font-semibold mb-4 text-gray-100", dom.Text(rc.TextOr(cat.Title, c.label))),
			dom.El("div", "flex flex-wrap gap-2", tags...),
		).Attr("data-aos", "fade-up").Attr("data-aos-delay", strconv.Itoa(c.delay)))
	}
	if len(cards) > 0 {
		blocks = append(blocks, dom.El("div", "grid md:grid-cols-2 lg:grid-cols-4 gap-8 mb-12", cards...))
	}
	if n, ok := skillList(s.Methodologies, i18n.KeyMethodologies, rc, "cog", "indigo-400"); ok {
		blocks = append(blocks, n)
	}
	return append(out, dom.ReplaceChildren("", "#skills-content", blocks...))
}

func skillList(cat *content.SkillCategory, label string, rc Context, icon, color string) (dom.Node, bool) {
	if cat.Empty() {
		return dom.Node{}, false
	}
	rows := make([]dom.Node, 0, len(cat.Items))
	for _, it := range cat.Items {
		rows = append(rows, dom.El("div", "flex items-start space-x-3",
			dom.Icon(icon, "text-"+color+" mt-1"),
			dom.El("p", "text-gray-400", dom.Text(rc.Text(it))),
		))
	}
	return dom.El("div", "mb-12",
		dom.El("h3", "text-2xl font-semibold mb-6 text-gray-100", dom.Text(rc.TextOr(cat.Title, label))),
		dom.El("div", "grid md:grid-cols-2 gap-6", rows...),
	).Attr("data-aos", "fade-up"), true
}
