package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/compose"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/layout"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/middleware"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/nav"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/view"
)

// lang returns the request locale, falling back to the catalog default when
// the request never passed the locale middleware (top-level 404s).
func (h *Handlers) lang(r *http.Request) string {
	if locale, ok := middleware.LocaleFromContext(r.Context()); ok {
		return locale
	}
	return h.bundle.Fallback()
}

// tr binds the catalog lookup to one locale for the duration of a request.
func (h *Handlers) tr(lang string) func(key string) string {
	return func(key string) string { return h.bundle.T(lang, key) }
}

// renderPublic composes sections into the public shell: header, nav, locale
// switcher, footer and the floating booking CTA.
func (h *Handlers) renderPublic(w http.ResponseWriter, r *http.Request, status int, title string, sections []compose.Section) {
	lang := h.lang(r)
	t := h.tr(lang)

	content, err := compose.Page(h.engine, sections)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	shell := view.PublicShell{
		Lang:  lang,
		Title: title + " · " + t("common.brand"),
		Brand: t("common.brand"),
		Tagline: t("common.tagline"),
		FooterRights: h.bundle.TP(lang, "footer.rights", map[string]string{
			"year": strconv.Itoa(time.Now().Year()),
		}),
		Nav:         nav.Build(lang, r.URL.Path, t),
		LocaleLinks: nav.LocaleSwitch(r.URL.Path, lang, h.bundle.Supported()),
		CTA: &layout.FloatingCTA{
			Label:       t("cta.floating.label"),
			Href:        "/" + lang + "/booking",
			ThresholdPx: layout.DefaultCTAThresholdPx,
		},
		Content: content,
	}

	h.write(w, r, status, "public_shell", shell)
}

// renderAdmin wraps content in the back-office shell. Flashes queued on the
// session are drained here so they show exactly once.
func (h *Handlers) renderAdmin(w http.ResponseWriter, r *http.Request, status int, heading string, content template.HTML) {
	lang := h.lang(r)
	t := h.tr(lang)

	var (
		email   string
		csrf    string
		flashes []session.Flash
	)
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		if user := sess.User(); user != nil {
			email = user.Email
		}
		csrf = sess.CSRFToken()
		flashes = sess.PopFlashes()
	}

	shell := view.AdminShell{
		Lang:         lang,
		Title:        heading + " · " + t("admin.title"),
		Heading:      heading,
		UserEmail:    email,
		LogoutAction: h.logoutAction(r),
		LogoutLabel:  t("admin.logout"),
		CSRFToken:    csrf,
		Flashes:      flashes,
		Content:      content,
	}

	h.write(w, r, status, "admin_shell", shell)
}

// logoutAction targets the logout route of whichever admin area the request
// came through; the login page itself posts back to the visible area for the
// signed-in role, but there is no session to sign out there so the shell
// simply omits the form.
func (h *Handlers) logoutAction(r *http.Request) string {
	lang := h.lang(r)
	marker := layout.MarkerAdmin
	if user, ok := middleware.UserFromContext(r.Context()); ok && !hasRole(user, "admin") {
		marker = layout.MarkerMechanic
	}
	return "/" + lang + "/" + marker + "/logout"
}

func hasRole(u *middleware.User, role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (h *Handlers) write(w http.ResponseWriter, r *http.Request, status int, shellTemplate string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.engine.Execute(w, shellTemplate, data); err != nil {
		log.Printf("render: execute %s for %s failed: %v", shellTemplate, r.URL.Path, err)
	}
}

// renderError is the fallback for template failures. By this point headers
// may not have been written, so a plain 500 is still possible.
func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("render: compose %s failed: %v", r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
