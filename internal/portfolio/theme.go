package portfolio

import (
	"finitefield.org/folio/internal/dom"
	"finitefield.org/folio/internal/seo"
)

// ThemeColor is the browser chrome color of the dark theme.
const ThemeColor = "#111827"

// ThemeCookie is the name of the legacy theme preference the server expires.
const ThemeCookie = "theme"

// EnforceDarkTheme pins the document to the dark theme.
func EnforceDarkTheme(d *dom.Document) {
	dom.Apply(d, []dom.Patch{
		dom.AddClass("", "html", "dark"),
		dom.RemoveClass("", "html", "light"),
	})
	seo.SetThemeColor(d, ThemeColor)
}

const hiddenStyle = "visibility:hidden;opacity:0"

// contentRoot is <main>, or <body> for shells without one.
func contentRoot(d *dom.Document) string {
	if d.Find("main").Length() > 0 {
		return "main"
	}
	return "body"
}

func hide(d *dom.Document) {
	root := contentRoot(d)
	dom.Apply(d, []dom.Patch{
		dom.SetAttr("", root, "style", hiddenStyle),
		dom.SetAttr("", root, "data-state", "loading"),
		dom.RemoveClass("", root, "fade-in"),
	})
}

func reveal(d *dom.Document) {
	root := contentRoot(d)
	dom.Apply(d, []dom.Patch{
		dom.RemoveAttr("", root, "style"),
		dom.SetAttr("", root, "data-state", "ready"),
		dom.AddClass("", root, "fade-in"),
	})
}

// wireInteractions sets the hooks the static script binds to. Missing elements are
// skipped.
func wireInteractions(d *dom.Document) {
	dom.Apply(d, []dom.Patch{
		dom.SetAttr("", "#mobile-menu-button", "aria-controls", "mobile-menu"),
		dom.SetAttr("", "#mobile-menu-button", "aria-expanded", "false"),
		dom.SetAttr("", "#mobile-menu-button", "data-action", "toggle-menu"),
		dom.AddClass("", "#mobile-menu", "hidden"),
		dom.SetAttr("", "#go-to-top", "data-action", "scroll-top"),
		dom.SetAttr("", "#go-to-top", "href", "#"),
		dom.AddClass("", "#go-to-top", "opacity-0 scale-90"),
	})
}
