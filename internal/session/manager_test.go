package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo-service/internal/auth"
)

var testSecret = []byte(strings.Repeat("k", 32))

func newTestManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	st := NewMemoryStore()
	return NewManager(st, testSecret, time.Hour, CookieOptions{}), st
}

func requestWith(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", CookieName)
	return nil
}

func TestManager_LoadWithoutCookieIsAnonymousAndUnsaved(t *testing.T) {
	m, st := newTestManager(t)

	s, err := m.Load(requestWith())
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.IsLoggedIn())
	assert.Equal(t, 0, st.count())
}

func TestManager_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	m, st := newTestManager(t)

	s, err := m.Load(requestWith())
	require.NoError(t, err)
	s.Lockout.Attempts = 3

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(ctx, rec, s))
	assert.Equal(t, 1, st.count())

	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.NotEqual(t, s.ID, c.Value, "cookie carries the signed id")

	loaded, err := m.Load(requestWith(c))
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, 3, loaded.Lockout.Attempts)
}

func TestManager_TamperedCookieIsIgnored(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	s, err := m.Load(requestWith())
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, httptest.NewRecorder(), s))

	forged := &http.Cookie{Name: CookieName, Value: s.ID}
	_, ok := m.SessionID(requestWith(forged))
	assert.False(t, ok)

	loaded, err := m.Load(requestWith(forged))
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, loaded.ID)
}

func TestManager_CookieFromOtherSecretIsIgnored(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	other := NewManager(NewMemoryStore(), []byte(strings.Repeat("z", 32)), time.Hour, CookieOptions{})

	s, err := other.Load(requestWith())
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, other.Save(ctx, rec, s))

	_, ok := m.SessionID(requestWith(sessionCookie(t, rec)))
	assert.False(t, ok)
}

func TestManager_RenewRotatesID(t *testing.T) {
	ctx := context.Background()
	m, st := newTestManager(t)

	s, err := m.Load(requestWith())
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, httptest.NewRecorder(), s))
	oldID := s.ID

	s.User = &auth.Identity{UserID: "u1", Email: "a@x.com"}
	rec := httptest.NewRecorder()
	require.NoError(t, m.Renew(ctx, rec, s))

	assert.NotEqual(t, oldID, s.ID)
	gone, err := st.Get(ctx, oldID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	reloaded, err := m.Reload(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsLoggedIn())

	id, ok := m.SessionID(requestWith(sessionCookie(t, rec)))
	require.True(t, ok)
	assert.Equal(t, s.ID, id)
}

// deleteFailingStore is a MemoryStore whose Delete always fails.
type deleteFailingStore struct {
	*MemoryStore
}

func (deleteFailingStore) Delete(context.Context, string) error {
	return errors.New("store unavailable")
}

func TestManager_RenewKeepsOldSessionWhenDeleteFails(t *testing.T) {
	ctx := context.Background()
	st := deleteFailingStore{NewMemoryStore()}
	m := NewManager(st, testSecret, time.Hour, CookieOptions{})

	s, err := m.Load(requestWith())
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, httptest.NewRecorder(), s))
	oldID := s.ID

	s.User = &auth.Identity{UserID: "u1", Email: "a@x.com"}
	rec := httptest.NewRecorder()
	require.Error(t, m.Renew(ctx, rec, s))

	assert.Equal(t, oldID, s.ID)
	assert.Empty(t, rec.Result().Cookies(), "no authenticated cookie is issued")
	assert.Equal(t, 1, st.count())

	stored, err := st.Get(ctx, oldID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsLoggedIn())
}

func TestManager_ReloadMissing(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Reload(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_Destroy(t *testing.T) {
	ctx := context.Background()
	m, st := newTestManager(t)

	s, err := m.Load(requestWith())
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(ctx, rec, s))

	out := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, out, requestWith(sessionCookie(t, rec))))

	assert.Equal(t, 0, st.count())
	assert.Equal(t, -1, sessionCookie(t, out).MaxAge)
}
