package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()
	mgr, err := NewManager(Config{
		HashKey:  []byte("0123456789abcdef0123456789abcdef"),
		BlockKey: []byte("0123456789abcdef0123456789abcdef"),
		Now:      now,
	})
	require.NoError(t, err)
	return mgr
}

func roundTrip(t *testing.T, mgr *Manager, sess *Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, mgr.Save(rec, sess))
	req := httptest.NewRequest(http.MethodGet, "/bg/mb-admin/offers", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestManagerRequiresHashKey(t *testing.T) {
	t.Parallel()

	_, err := NewManager(Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t, nil)
	sess := mgr.New()
	sess.SetUser(&User{UID: "staff-1", Roles: []string{"admin"}})

	loaded, err := mgr.Load(roundTrip(t, mgr, sess))
	require.NoError(t, err)
	require.NotNil(t, loaded.User())
	require.Equal(t, "staff-1", loaded.User().UID)
	require.Equal(t, []string{"admin"}, loaded.User().Roles)
}

func TestSessionIdleExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := &now
	mgr := newTestManager(t, func() time.Time { return *clock })

	sess := mgr.New()
	sess.SetUser(&User{UID: "staff-1"})
	req := roundTrip(t, mgr, sess)

	later := now.Add(31 * time.Minute)
	clock = &later

	_, err := mgr.Load(req)
	require.ErrorIs(t, err, ErrExpired)
}

func TestSetUserRegeneratesID(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t, nil)
	sess := mgr.New()
	before := sess.ID()
	sess.SetUser(&User{UID: "staff-1"})
	require.NotEqual(t, before, sess.ID())
}

func TestFlashesPopOnce(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t, nil)
	sess := mgr.New()
	sess.AddFlash("error", "save failed")

	flashes := sess.PopFlashes()
	require.Len(t, flashes, 1)
	require.Equal(t, "error", flashes[0].Level)
	require.Nil(t, sess.PopFlashes())
}

func TestMissingCookieYieldsFreshSession(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/bg", nil)
	sess, err := mgr.Load(req)
	require.NoError(t, err)
	require.Nil(t, sess.User())
	require.NotEmpty(t, sess.ID())
}
