package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.uber.org/zap"

	"finitefield.org/folio/internal/content"
	mw "finitefield.org/folio/internal/middleware"
	"finitefield.org/folio/internal/observability"
	"finitefield.org/folio/internal/portfolio"
	"finitefield.org/folio/internal/seo"
)

// PageOpener builds a rendered page for a language.
type PageOpener interface {
	Open(ctx context.Context, lang content.Lang) (*portfolio.Page, error)
}

// Home serves the portfolio page. htmx requests receive the title and the inner HTML
// of <body> so a language toggle can swap it in place; the rest of the head travels in
// the LangEvent trigger.
type Home struct {
	pages PageOpener
}

// NewHome returns the page handler.
func NewHome(pages PageOpener) *Home { return &Home{pages: pages} }

func (h *Home) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := observability.FromContext(r.Context())
	lang := mw.Lang(r)

	page, err := h.pages.Open(r.Context(), lang)
	if page == nil {
		logger.Error("page unavailable", zap.String("lang", lang.String()), zap.Error(err))
		mw.WriteError(w, r, http.StatusBadGateway, "page unavailable")
		return
	}

	status := http.StatusOK
	if errors.Is(err, portfolio.ErrContentUnavailable) {
		status = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", "30")
	}

	expireThemeCookie(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Render-ID", page.RenderID)

	var markup string
	if mw.IsHTMX(r.Context()) {
		setLangTrigger(w, page.Metadata(), logger)
		markup, err = page.PartialHTML()
	} else {
		markup, err = page.HTML()
		if err == nil && !strings.HasPrefix(strings.ToLower(markup), "<!doctype") {
			markup = "<!DOCTYPE html>" + markup
		}
	}
	if err != nil {
		logger.Error("serialize page", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "render failed")
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(markup))
}

// LangEvent is the htmx event carrying the head metadata of a swapped page.
const LangEvent = "folio:lang"

// LangDetail is the payload of LangEvent.
type LangDetail struct {
	Lang        string `json:"lang"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
}

func setLangTrigger(w http.ResponseWriter, m seo.Meta, logger *zap.Logger) {
	v, err := asciiJSON(map[string]LangDetail{LangEvent: {
		Lang:        m.Lang,
		Title:       m.Title,
		Description: m.Description,
		Canonical:   m.Canonical,
	}})
	if err != nil {
		logger.Warn("encode htmx trigger", zap.Error(err))
		return
	}
	w.Header().Set("HX-Trigger", v)
}

// asciiJSON marshals v with every non-ASCII rune escaped, so it can travel in a
// header value.
func asciiJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, r := range string(b) {
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&sb, `\u%04x`, u)
		}
	}
	return sb.String(), nil
}

// expireThemeCookie discards any persisted theme preference; the page is always dark.
func expireThemeCookie(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(portfolio.ThemeCookie); err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     portfolio.ThemeCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
