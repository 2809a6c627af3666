package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderProviderReadsIdentity(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-Id", "user-1")
	r.Header.Set("X-User-Email", "jane@example.com")
	r.Header.Set("X-User-Meta", `{"first_name":"Jane","last_name":"Doe"}`)

	u, err := NewHeaderProvider().CurrentUser(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, "Doe", u.LastName)
}

func TestHeaderProviderNoIdentity(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := NewHeaderProvider().CurrentUser(r)
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestMiddlewareAttachesUserToContext(t *testing.T) {
	var got *User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	})

	handler := Middleware(NewHeaderProvider())(next)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-User-Id", "user-1")
	handler.ServeHTTP(httptest.NewRecorder(), r)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)

	got = nil
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got, "anonymous requests pass through without identity")
}
