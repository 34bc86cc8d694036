package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginRefreshFlow covers the full credential lifecycle:
// register, login, rotate the refresh token, reuse rejection, logout.
func TestRegisterLoginRefreshFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	email := uniqueEmail()
	registered := app.register(t, email)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, email, registered.User.Email)

	// Stored credential is a bcrypt hash, never the raw password.
	var stored string
	err := app.DB.QueryRow("SELECT password_hash FROM users WHERE email = $1", email).Scan(&stored)
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored)
	assert.True(t, len(stored) > 50)

	// Login issues a fresh pair.
	resp := app.postJSON(t, "/auth/login", "", map[string]string{
		"email": email, "password": "password1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := decodeJSON[authPayload](t, resp)
	assert.NotEmpty(t, loggedIn.RefreshToken)

	// Refresh rotates the token.
	resp = app.postJSON(t, "/auth/refresh", "", map[string]string{
		"refresh_token": loggedIn.RefreshToken,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := decodeJSON[tokenPairPayload](t, resp)
	assert.NotEqual(t, loggedIn.RefreshToken, rotated.RefreshToken)

	// The consumed token cannot be replayed.
	resp = app.postJSON(t, "/auth/refresh", "", map[string]string{
		"refresh_token": loggedIn.RefreshToken,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logout revokes the rotated token.
	resp = app.postJSON(t, "/auth/logout", "", map[string]string{
		"refresh_token": rotated.RefreshToken,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.postJSON(t, "/auth/refresh", "", map[string]string{
		"refresh_token": rotated.RefreshToken,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	email := uniqueEmail()
	app.register(t, email)

	resp := app.postJSON(t, "/auth/register", "", map[string]string{
		"first_name": "Jane", "last_name": "Doe", "email": email, "password": "password1",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	email := uniqueEmail()
	app.register(t, email)

	resp := app.postJSON(t, "/auth/login", "", map[string]string{
		"email": email, "password": "wrong-password",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithBearerToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	email := uniqueEmail()
	registered := app.register(t, email)

	req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/api/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+registered.AccessToken)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	me := decodeJSON[userPayload](t, resp)
	assert.Equal(t, registered.User.ID, me.ID)
	assert.Equal(t, email, me.Email)
}

// TestConcurrentRefreshSingleUse issues the same refresh token from
// several goroutines; the atomic consume in the repository must let
// exactly one succeed.
func TestConcurrentRefreshSingleUse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	registered := app.register(t, uniqueEmail())

	const attempts = 8
	results := make(chan int, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			resp := app.postJSON(t, "/auth/refresh", "", map[string]string{
				"refresh_token": registered.RefreshToken,
			})
			resp.Body.Close()
			results <- resp.StatusCode
		}()
	}

	succeeded := 0
	for i := 0; i < attempts; i++ {
		if <-results == http.StatusOK {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
}
