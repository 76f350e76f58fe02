package middleware

import (
	"net/http"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/i18n"
)

// LangParam is the query parameter carrying the page language.
const LangParam = "hl"

// Locale resolves the page language from the `hl` query parameter only. Nothing is
// persisted: a request without `hl` gets the bundle fallback.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := content.DefaultLang
			if bundle != nil {
				lang = content.ParseLang(bundle.Resolve(r.URL.Query().Get(LangParam)))
			} else if q := r.URL.Query().Get(LangParam); q != "" {
				lang = content.ParseLang(q)
			}
			w.Header().Set("Content-Language", lang.String())
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// Lang returns the language resolved by Locale.
func Lang(r *http.Request) content.Lang {
	return LangFromContext(r.Context())
}
