package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/i18n"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/rbac"
	appsession "github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
)

func testBundle(t *testing.T) *i18n.Bundle {
	t.Helper()

	dir := t.TempDir()
	for _, lang := range []string{"bg", "en"} {
		writeFile(t, dir+"/"+lang+".json", `{"common.brand":"MB Center"}`)
	}
	bundle, err := i18n.Load(dir, "bg", []string{"bg", "en"})
	require.NoError(t, err)
	return bundle
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func withSession(ctx context.Context, sess *appsession.Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, sess)
}

func TestLocaleMiddleware(t *testing.T) {
	bundle := testBundle(t)

	notFoundHit := false
	router := chi.NewRouter()
	router.Route("/{locale}", func(r chi.Router) {
		r.Use(Locale(bundle, func(w http.ResponseWriter, _ *http.Request) {
			notFoundHit = true
			w.WriteHeader(http.StatusNotFound)
		}))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			locale, ok := LocaleFromContext(r.Context())
			require.True(t, ok)
			_, _ = w.Write([]byte(locale))
		})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/en/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", rec.Body.String())
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/de/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, notFoundHit, "unsupported locale must fail closed")
}

func TestRequireRolesRedirectsToLogin(t *testing.T) {
	guard := RequireRoles(rbac.RoleAdmin)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// no user at all
	req := httptest.NewRequest("GET", "/en/mb-admin/offers", nil)
	req = req.WithContext(WithLocale(req.Context(), "en"))
	rec := httptest.NewRecorder()
	guard(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/en/admin-login", loc.Path)
	assert.Equal(t, "/en/mb-admin/offers", loc.Query().Get("next"))

	// wrong role: indistinguishable from no session
	req = httptest.NewRequest("GET", "/en/mb-admin/offers", nil)
	ctx := WithLocale(req.Context(), "en")
	ctx = WithUser(ctx, &User{UID: "u1", Roles: []string{"mechanic"}})
	rec = httptest.NewRecorder()
	guard(next).ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusFound, rec.Code)

	// role intersection admits without an implicit admin override
	mechGuard := RequireRoles(rbac.RoleMechanic, rbac.RoleAdmin)
	req = httptest.NewRequest("GET", "/en/mech-admin/offers", nil)
	ctx = WithUser(WithLocale(req.Context(), "en"), &User{UID: "u1", Roles: []string{"mechanic"}})
	rec = httptest.NewRecorder()
	mechGuard(next).ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func newSessionContext(t *testing.T, r *http.Request) (*http.Request, *appsession.Session) {
	t.Helper()

	manager, err := appsession.NewManager(appsession.Config{
		HashKey: []byte("0123456789abcdef0123456789abcdef"),
	})
	require.NoError(t, err)
	sess := manager.New()
	ctx := r.Context()
	ctx = withSession(ctx, sess)
	return r.WithContext(ctx), sess
}

func TestCSRFMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CSRF()(next)

	// safe method passes and seeds a token
	req, sess := newSessionContext(t, httptest.NewRequest("GET", "/en/mb-admin/offers", nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, sess.CSRFToken())

	// unsafe method without a token is rejected
	req, _ = newSessionContext(t, httptest.NewRequest("POST", "/en/mb-admin/offers", strings.NewReader("status=sent")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// unsafe method with the session token passes
	req, sess = newSessionContext(t, httptest.NewRequest("GET", "/en/mb-admin/offers", nil))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	token := sess.CSRFToken()
	require.NotEmpty(t, token)

	form := url.Values{CSRFFormField: {token}}
	post := httptest.NewRequest("POST", "/en/mb-admin/offers", strings.NewReader(form.Encode()))
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	post = post.WithContext(withSession(post.Context(), sess))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, post)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPassthroughAuthenticator(t *testing.T) {
	auth := DefaultAuthenticator()

	_, err := auth.Authenticate(httptest.NewRequest("POST", "/", nil), "  ")
	require.Error(t, err)

	user, err := auth.Authenticate(httptest.NewRequest("POST", "/", nil), "dev-token")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, user.Roles)
}

func TestClaimStringSlice(t *testing.T) {
	roles := claimStringSlice("admin", []any{"mechanic", "admin"}, map[string]any{"viewer": true, "off": false})
	assert.ElementsMatch(t, []string{"admin", "mechanic", "viewer"}, roles)
	assert.Len(t, roles, 3, "duplicates are collapsed")
}
