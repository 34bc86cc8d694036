package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerViaAPI(t *testing.T, server *httptest.Server, email string) authResponse {
	t.Helper()
	resp := postJSON(t, server.Client(), server.URL+"/auth/register", map[string]string{
		"first_name": "Jane", "last_name": "Doe", "email": email, "password": "password1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeJSON[authResponse](t, resp)
}

func TestBearerTokenGrantsAccess(t *testing.T) {
	server := newTestServer(t)
	registered := registerViaAPI(t, server, "jane@x.co")

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+registered.AccessToken)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	me := decodeJSON[userResponse](t, resp)
	assert.Equal(t, registered.User.ID, me.ID)
	assert.Equal(t, "jane@x.co", me.Email)
}

func TestRefreshTokenRejectedAsBearer(t *testing.T) {
	// A refresh token must not authorize API calls: the middleware checks
	// the "access" type claim.
	server := newTestServer(t)
	registered := registerViaAPI(t, server, "jane@x.co")

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+registered.RefreshToken)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	server := newTestServer(t)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "token"} {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/me", nil)
		require.NoError(t, err)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		resp, err := server.Client().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestLogoutAllRevokesSessions(t *testing.T) {
	server := newTestServer(t)
	registered := registerViaAPI(t, server, "jane@x.co")

	req, err := http.NewRequest(http.MethodPost, server.URL+"/auth/logout-all", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+registered.AccessToken)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The refresh token issued at registration is now revoked.
	refreshResp := postJSON(t, server.Client(), server.URL+"/auth/refresh", map[string]string{
		"refresh_token": registered.RefreshToken,
	})
	defer refreshResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
}
