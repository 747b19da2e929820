package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/cms"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/httpserver"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/i18n"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/middleware"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/offers"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/view"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/templates"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithAuthenticator overrides the authenticator used by the login handler.
func WithAuthenticator(auth middleware.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Authenticator = auth
	}
}

// WithOffersService wires a custom offer service implementation.
func WithOffersService(service offers.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Offers = service
	}
}

// WithContentStore wires a custom markdown content store.
func WithContentStore(store *cms.Store) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Content = store
	}
}

// NewServer constructs an httptest server running the full site with sensible
// defaults: on-disk locale catalogs, embedded templates, an in-memory offer
// store and the passthrough authenticator.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	engine, err := view.NewEngine(templates.FS())
	if err != nil {
		t.Fatalf("build view engine: %v", err)
	}

	sessions, err := session.NewManager(session.Config{
		HashKey:     []byte("0123456789abcdef0123456789abcdef"),
		Lifetime:    12 * time.Hour,
		IdleTimeout: 30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("build session manager: %v", err)
	}

	cfg := httpserver.Config{
		Address:       ":0",
		Bundle:        LoadBundle(t),
		Engine:        engine,
		Sessions:      sessions,
		Authenticator: middleware.DefaultAuthenticator(),
		Offers:        offers.NewStaticService(),
		Content:       cms.NewStore(repoPath("content")),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ts := httptest.NewServer(httpserver.Router(cfg))
	t.Cleanup(ts.Close)
	return ts
}

// LoadBundle loads the real locale catalogs shipped with the repository.
func LoadBundle(t testing.TB) *i18n.Bundle {
	t.Helper()

	bundle, err := i18n.Load(repoPath("locales"), "bg", []string{"bg", "en"})
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	return bundle
}

// NewClient returns a redirect-following client with a cookie jar so the
// session survives across requests.
func NewClient(t testing.TB) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

// Login signs the client in through the login form. The passthrough
// authenticator accepts any non-empty token and grants the admin role.
func Login(t testing.TB, ts *httptest.Server, client *http.Client, locale, token string) {
	t.Helper()

	res, err := client.PostForm(ts.URL+"/"+locale+"/admin-login", url.Values{
		"id_token": {token},
	})
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login: unexpected status %d", res.StatusCode)
	}
}

// CSRFToken extracts the hidden csrf_token value from a rendered form.
func CSRFToken(t testing.TB, body []byte) string {
	t.Helper()

	doc := ParseHTML(t, body)
	token, ok := doc.Find(`input[name="csrf_token"]`).First().Attr("value")
	if !ok || token == "" {
		t.Fatalf("csrf token not found in page")
	}
	return token
}

// repoPath resolves a path relative to the repository root, independent of
// the package the test runs in.
func repoPath(parts ...string) string {
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "..", "..")
	return filepath.Join(append([]string{root}, parts...)...)
}
