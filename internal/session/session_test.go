package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonathan/cv-site/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_SetWithoutValidation(t *testing.T) {
	sel := NewSelector(theme.DefaultKey)

	assert.True(t, sel.Set("no-such-theme"))
	assert.Equal(t, "no-such-theme", sel.Current())
	assert.Equal(t, theme.DefaultKey, sel.Theme().Key)

	assert.True(t, sel.Set("google"))
	assert.Equal(t, "google", sel.Theme().Key)
}

func TestSelector_SetSameKeyIsNoChange(t *testing.T) {
	sel := NewSelector("clickhouse")
	assert.False(t, sel.Set("clickhouse"))
	assert.Equal(t, "clickhouse", sel.Current())
}

func TestStore_AcquireNewSessionReadsQuery(t *testing.T) {
	st := NewStore(time.Hour)

	id, sel, created := st.Acquire("", "clickhouse")
	require.True(t, created)
	assert.NotEmpty(t, id)
	assert.Equal(t, "clickhouse", sel.Current())

	_, sel, created = st.Acquire("", "bogus")
	require.True(t, created)
	assert.Equal(t, theme.DefaultKey, sel.Current())
	assert.Equal(t, 2, st.Len())
}

func TestStore_AcquireExistingIgnoresQuery(t *testing.T) {
	st := NewStore(time.Hour)
	id, sel, _ := st.Acquire("", "clickhouse")
	sel.Set("google")

	sameID, again, created := st.Acquire(id, "elastic")
	assert.False(t, created)
	assert.Equal(t, id, sameID)
	assert.Same(t, sel, again)
	assert.Equal(t, "google", again.Current())
}

func TestStore_UnknownIDCreatesSession(t *testing.T) {
	st := NewStore(time.Hour)
	id, _, created := st.Acquire("stale-id", "tinybird")
	assert.True(t, created)
	assert.NotEqual(t, "stale-id", id)
}

func TestStore_ExpiryAndSweep(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	id, _, _ := st.Acquire("", "google")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, st.Len())
	assert.Equal(t, 1, st.Sweep())
	assert.Equal(t, 0, st.Len())

	newID, sel, created := st.Acquire(id, "")
	assert.True(t, created)
	assert.NotEqual(t, id, newID)
	assert.Equal(t, theme.DefaultKey, sel.Current())
}

func TestStore_LookupNeverCreates(t *testing.T) {
	st := NewStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	_, ok := st.Lookup("")
	assert.False(t, ok)
	_, ok = st.Lookup("unknown")
	assert.False(t, ok)
	assert.Equal(t, 0, st.Len())

	id, _, _ := st.Acquire("", "elastic")
	sel, ok := st.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "elastic", sel.Current())

	now = now.Add(2 * time.Minute)
	_, ok = st.Lookup(id)
	assert.False(t, ok, "expired sessions are not returned")
}

func TestCookieRoundTrip(t *testing.T) {
	st := NewStore(time.Hour)
	cookie := st.Cookie("abc", "")
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, FromRequest(req))
	req.AddCookie(cookie)
	assert.Equal(t, "abc", FromRequest(req))
}
