package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rajwen/domain"
	"rajwen/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserResolver struct {
	users map[uint]domain.User
}

func (s *stubUserResolver) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return user, nil
}

type stubTokenValidator struct {
	tokens map[string]string
}

func (s *stubTokenValidator) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", errors.New("token not found or expired")
	}
	return userID, nil
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	require.NoError(t, err)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	utils.InitJWT("test-secret")

	users := &stubUserResolver{users: map[uint]domain.User{
		7: {ID: 7, Name: "Asha", Role: domain.RoleUser},
	}}
	mw := AuthMiddleware(users)

	token, err := utils.GenerateJWT("7", domain.RoleUser)
	require.NoError(t, err)

	rec := doRequest(t, mw, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	utils.InitJWT("test-secret")

	users := &stubUserResolver{users: map[uint]domain.User{
		7: {ID: 7, Name: "Asha", Role: domain.RoleUser},
	}}
	mw := AuthMiddleware(users)

	knownUser, err := utils.GenerateJWT("7", domain.RoleUser)
	require.NoError(t, err)
	unknownUser, err := utils.GenerateJWT("42", domain.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"tampered token", "Bearer " + knownUser + "x"},
		{"unknown subject", "Bearer " + unknownUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, mw, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "message")
		})
	}
}

func TestAuthMiddlewareWithSessions(t *testing.T) {
	utils.InitJWT("test-secret")

	users := &stubUserResolver{users: map[uint]domain.User{
		7: {ID: 7, Name: "Asha", Role: domain.RoleUser},
	}}

	withSession, err := utils.GenerateJWT("7", domain.RoleUser)
	require.NoError(t, err)
	// different claims so the token differs from withSession
	loggedOut, err := utils.GenerateJWT("7", domain.RoleAdmin)
	require.NoError(t, err)

	sessions := &stubTokenValidator{tokens: map[string]string{withSession: "7"}}
	mw := AuthMiddlewareWithSessions(users, sessions)

	rec := doRequest(t, mw, "Bearer "+withSession)
	assert.Equal(t, http.StatusOK, rec.Code)

	// valid signature but no live session behind it
	rec = doRequest(t, mw, "Bearer "+loggedOut)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	mw := AdminOnly()

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		require.NoError(t, mw(okHandler)(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(domain.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, run(domain.RoleUser).Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}
