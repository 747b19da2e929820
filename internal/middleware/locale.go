package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/i18n"
)

// Locale validates the {locale} route segment against the bundle and stores
// the resolved locale in the request context. An unsupported locale fails
// closed: notFound renders the not-found page, no fallback substitution.
func Locale(bundle *i18n.Bundle, notFound http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := chi.URLParam(r, "locale")
			if locale == "" || !bundle.IsSupported(locale) {
				notFound(w, r)
				return
			}
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
		})
	}
}
