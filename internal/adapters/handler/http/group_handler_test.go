package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(t *testing.T, server *httptest.Server, token, method, path string, body any) *http.Response {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, server.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func TestGroupLifecycleViaAPI(t *testing.T) {
	server := newTestServer(t)

	admin := registerViaAPI(t, server, "admin@x.co")
	member := registerViaAPI(t, server, "member@x.co")

	// Admin creates a group.
	resp := authedRequest(t, server, admin.AccessToken, http.MethodPost, "/groups/", map[string]string{
		"name": "Hiking Crew",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	group := decodeJSON[groupResponse](t, resp)
	assert.Len(t, group.InvitationCode, 6)
	assert.Equal(t, admin.User.ID, group.AdminID)

	// Second user joins with the invitation code.
	resp = authedRequest(t, server, member.AccessToken, http.MethodPost, "/groups/join", map[string]string{
		"invitation_code": group.InvitationCode,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Both users see the group.
	resp = authedRequest(t, server, member.AccessToken, http.MethodGet, "/groups/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeJSON[groupsResponse](t, resp)
	require.Len(t, list.Groups, 1)
	assert.Equal(t, group.ID, list.Groups[0].ID)

	// Admin removes the member.
	resp = authedRequest(t, server, admin.AccessToken, http.MethodDelete,
		"/groups/"+strconv.Itoa(group.ID)+"/members/"+strconv.Itoa(member.User.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Admin deletes the group.
	resp = authedRequest(t, server, admin.AccessToken, http.MethodDelete, "/groups/"+strconv.Itoa(group.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestGroupRuleViolationsMapTo400(t *testing.T) {
	server := newTestServer(t)
	admin := registerViaAPI(t, server, "admin@x.co")

	// Blank name.
	resp := authedRequest(t, server, admin.AccessToken, http.MethodPost, "/groups/", map[string]string{
		"name": "",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown invitation code.
	resp = authedRequest(t, server, admin.AccessToken, http.MethodPost, "/groups/join", map[string]string{
		"invitation_code": "ZZZZZZ",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
