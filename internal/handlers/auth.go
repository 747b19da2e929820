package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/compose"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/layout"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/middleware"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
)

// LoginForm renders the staff sign-in page. A request that already carries an
// authenticated session is sent straight to its destination.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.isAuthenticated(r) {
		http.Redirect(w, r, h.redirectTarget(r, r.URL.Query().Get("next")), http.StatusFound)
		return
	}
	h.renderLoginPage(w, r, loginFormState{Next: r.URL.Query().Get("next")}, http.StatusOK)
}

// LoginSubmit verifies the posted credential, binds the user to the session
// and redirects into the back office. The session ID is regenerated on the
// anonymous-to-authenticated transition inside SetUser.
func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	t := h.tr(lang)

	if err := r.ParseForm(); err != nil {
		h.renderLoginPage(w, r, loginFormState{Error: t("login.error")}, http.StatusBadRequest)
		return
	}

	state := loginFormState{Next: r.PostFormValue("next")}
	token := strings.TrimSpace(r.PostFormValue("id_token"))
	if token == "" {
		state.Error = t("login.error")
		h.renderLoginPage(w, r, state, http.StatusBadRequest)
		return
	}

	user, err := h.auth.Authenticate(r, token)
	if err != nil || user == nil {
		log.Printf("login failed: %v", err)
		state.Error = t("login.error")
		h.renderLoginPage(w, r, state, http.StatusUnauthorized)
		return
	}

	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		sess.SetUser(&session.User{
			UID:   user.UID,
			Email: user.Email,
			Roles: append([]string(nil), user.Roles...),
		})
	}

	http.Redirect(w, r, h.redirectTargetFor(r, state.Next, user.Roles), http.StatusSeeOther)
}

// Logout destroys the session and returns to the sign-in page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		sess.Destroy()
	}
	http.Redirect(w, r, middleware.LoginPath(h.lang(r)), http.StatusSeeOther)
}

type loginFormState struct {
	Next  string
	Error string
}

func (h *Handlers) renderLoginPage(w http.ResponseWriter, r *http.Request, state loginFormState, status int) {
	lang := h.lang(r)
	t := h.tr(lang)

	content, err := compose.Page(h.engine, []compose.Section{
		{Template: "admin_login", Data: LoginData{
			Title:       t("login.title"),
			TokenLabel:  t("login.token"),
			SubmitLabel: t("login.submit"),
			Error:       state.Error,
			Action:      middleware.LoginPath(lang),
			Next:        normalizeNext(state.Next, lang),
		}},
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderAdmin(w, r, status, t("login.title"), content)
}

func (h *Handlers) isAuthenticated(r *http.Request) bool {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return false
	}
	user := sess.User()
	return user != nil && strings.TrimSpace(user.UID) != ""
}

// redirectTarget resolves the post-login destination for an already signed-in
// request, using the session's roles.
func (h *Handlers) redirectTarget(r *http.Request, next string) string {
	var roles []string
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		roles = user.Roles
	}
	return h.redirectTargetFor(r, next, roles)
}

// redirectTargetFor prefers a safe next parameter, then falls back to the
// offers list of the widest area the roles allow.
func (h *Handlers) redirectTargetFor(r *http.Request, next string, roles []string) string {
	lang := h.lang(r)
	if target := normalizeNext(next, lang); target != "" {
		return target
	}
	marker := layout.MarkerMechanic
	for _, role := range roles {
		if role == "admin" {
			marker = layout.MarkerAdmin
			break
		}
	}
	return "/" + lang + "/" + marker + "/offers"
}

// normalizeNext accepts only site-local absolute paths; anything else (empty,
// scheme-relative, off-site) is discarded so the login form cannot be used as
// an open redirect.
func normalizeNext(next, lang string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	if strings.HasPrefix(next, middleware.LoginPath(lang)) {
		return ""
	}
	return next
}
