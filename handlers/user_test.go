package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)
	client := newClient(t, router)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  string
	}{
		{"not an email", "not-an-email", testPassword, "INVALID_EMAIL"},
		{"short password", "a@gmail.com", "hunter2", "PW_TOO_SHORT_8_MIN"},
		{"dictionary password", "a@gmail.com", "password123", "PW_TOO_SIMPLE"},
		{"own email as password", "someone@gmail.com", "someone@gmail.com1", "PW_TOO_SIMPLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := client.do("POST", "/api/register", gin.H{"email": tt.email, "password": tt.password})
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, tt.wantErr, decode[Response](t, w).Error)
		})
	}
}

func TestRegisterDuplicateLooksLikeSuccess(t *testing.T) {
	router := newTestRouter(t)
	client := newClient(t, router)

	first := client.do("POST", "/api/register", gin.H{"email": "dup@gmail.com", "password": testPassword})
	require.Equal(t, http.StatusOK, first.Code)

	second := client.do("POST", "/api/register", gin.H{"email": "dup@gmail.com", "password": testPassword})
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
}

func TestLoginSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)
	client := newClient(t, router)

	w := client.do("POST", "/api/register", gin.H{"email": "sess@gmail.com", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)

	// Anonymous status check is rejected
	w = client.do("GET", "/api/user/status", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong password, then an unknown address: both the same 401 body
	w = client.do("POST", "/api/login", gin.H{"email": "sess@gmail.com", "password": "wrong password"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	badUser := client.do("POST", "/api/login", gin.H{"email": "ghost@gmail.com", "password": "wrong password"})
	require.Equal(t, http.StatusUnauthorized, badUser.Code)
	require.Equal(t, w.Body.String(), badUser.Body.String())

	w = client.do("POST", "/api/login", gin.H{"email": "sess@gmail.com", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)

	w = client.do("GET", "/api/user/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[map[string]any](t, w)
	require.Equal(t, "sess@gmail.com", status["email"])

	w = client.do("POST", "/api/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = client.do("GET", "/api/user/status", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordResetEndToEnd(t *testing.T) {
	router := newTestRouter(t)
	client := newClient(t, router)

	w := client.do("POST", "/api/register", gin.H{"email": "forgetful@gmail.com", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)

	// Unknown addresses get the exact same answer as registered ones
	known := client.do("POST", "/api/password-reset", gin.H{"email": "forgetful@gmail.com"})
	require.Equal(t, http.StatusOK, known.Code)
	unknown := client.do("POST", "/api/password-reset", gin.H{"email": "ghost@gmail.com"})
	require.Equal(t, http.StatusOK, unknown.Code)
	require.Equal(t, known.Body.String(), unknown.Body.String())

	// Only the registered address got mail
	sent := emailer.Sent()
	require.Len(t, sent, 1)
	require.True(t, strings.HasPrefix(sent[0], "<forgetful@gmail.com>::"))
	idx := strings.LastIndex(sent[0], "/reset/")
	require.True(t, idx >= 0, "no reset link in %q", sent[0])
	token := strings.TrimSuffix(sent[0][idx+len("/reset/"):], "]")

	newPassword := "xK9#mQv2$pLw8ZrT"

	// Wrong token is rejected without saying why
	w = client.do("PUT", "/api/password-reset/definitely-wrong",
		gin.H{"email": "forgetful@gmail.com", "password": newPassword})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "reset rejected", decode[Response](t, w).Error)

	// Right token + wrong email is rejected identically
	w = client.do("PUT", "/api/password-reset/"+token,
		gin.H{"email": "ghost@gmail.com", "password": newPassword})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "reset rejected", decode[Response](t, w).Error)

	// The weak-password gate still applies during a reset
	w = client.do("PUT", "/api/password-reset/"+token,
		gin.H{"email": "forgetful@gmail.com", "password": "password123"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = client.do("PUT", "/api/password-reset/"+token,
		gin.H{"email": "forgetful@gmail.com", "password": newPassword})
	require.Equal(t, http.StatusOK, w.Code)

	// Token is single use
	w = client.do("PUT", "/api/password-reset/"+token,
		gin.H{"email": "forgetful@gmail.com", "password": newPassword})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Old password is dead, new one works
	w = client.do("POST", "/api/login", gin.H{"email": "forgetful@gmail.com", "password": testPassword})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = client.do("POST", "/api/login", gin.H{"email": "forgetful@gmail.com", "password": newPassword})
	require.Equal(t, http.StatusOK, w.Code)
}
