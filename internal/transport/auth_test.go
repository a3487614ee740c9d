package transport_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncdesk/accountmap/internal/transport"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://issues.example.org", nil)
	require.NoError(t, err)
	return req
}

func TestBasicAuth(t *testing.T) {
	req := newRequest(t)
	auth := &transport.BasicAuth{Username: "svc", Password: "secret"}
	auth.Apply(req)

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "svc", user)
	assert.Equal(t, "secret", pass)
}

func TestBearerAuth(t *testing.T) {
	req := newRequest(t)
	auth := &transport.BearerAuth{Token: "tok123"}
	auth.Apply(req)

	assert.Equal(t, "Bearer tok123", req.Header.Get("Authorization"))
}

func TestNoAuth(t *testing.T) {
	req := newRequest(t)
	(&transport.NoAuth{}).Apply(req)

	assert.Empty(t, req.Header.Get("Authorization"))
}
