package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/blues/crowdhub/internal/auth"
	"github.com/blues/crowdhub/internal/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)
	user, _, err := logic.NewUserLogic(s.db).EnsureUser(context.Background(), "Ada", "ada@example.com", "correct-horse")
	require.NoError(t, err)

	w := s.get("/login")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="email"`)

	w = s.postForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "These credentials do not match our records.")
	assert.Nil(t, cookieNamed(w, auth.SessionCookie))

	w = s.postForm("/login", url.Values{"email": {"not-an-email"}, "password": {""}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "The email field must be a valid email address.")
	assert.Contains(t, w.Body.String(), "The password field is required.")

	w = s.postForm("/login", url.Values{"email": {"ADA@example.com"}, "password": {"correct-horse"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/campaigns", w.Header().Get("Location"))

	session := cookieNamed(w, auth.SessionCookie)
	require.NotNil(t, session)
	id, err := s.tokens.Parse(session.Value)
	require.NoError(t, err)
	assert.Equal(t, user.Id, id)

	w = s.get("/campaigns", session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log out")

	w = s.postForm("/logout", nil, session)
	require.Equal(t, http.StatusFound, w.Code)
	cleared := cookieNamed(w, auth.SessionCookie)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestAPILogin(t *testing.T) {
	s := newTestServer(t)
	user, _, err := logic.NewUserLogic(s.db).EnsureUser(context.Background(), "Ada", "ada@example.com", "correct-horse")
	require.NoError(t, err)

	w := s.sendJSON(http.MethodPost, "/api/v1/auth/login", `{"email":"ada@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data LoginResponse
	decodeResponse(t, w, &data)
	assert.Equal(t, user.Id, data.User.ID)
	id, err := s.tokens.Parse(data.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, id)

	w = s.sendJSON(http.MethodPost, "/api/v1/auth/login", `{"email":"ada@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.sendJSON(http.MethodPost, "/api/v1/auth/login", `{"email":"ada"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w, nil)
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "password")
}
