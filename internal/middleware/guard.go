package middleware

import (
	"net/http"
	"net/url"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/rbac"
)

// RequireRoles gates a route subtree behind a role requirement. The guard is
// role-set-agnostic: any requirement set works, a session satisfies it when
// its role set intersects the requirement.
//
// Both a missing session and an insufficient role set redirect to the locale
// login page. Insufficient roles deliberately look identical to
// unauthenticated so the response never confirms that a protected resource
// exists. The guard runs before any handler, so no admin data fetch is ever
// issued for a rejected request.
func RequireRoles(required ...rbac.Role) func(http.Handler) http.Handler {
	requirement := rbac.Roles(required)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !rbac.HasAnyRole(user.Roles, requirement) {
				redirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginPath returns the locale-scoped login page path.
func LoginPath(locale string) string {
	return "/" + locale + "/admin-login"
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	locale, ok := LocaleFromContext(r.Context())
	if !ok {
		locale = "bg"
	}
	target := LoginPath(locale)
	if next := r.URL.Path; next != "" && next != target {
		target += "?next=" + url.QueryEscape(next)
	}
	http.Redirect(w, r, target, http.StatusFound)
}
