package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	userID string
	err    error
	seen   string
}

func (f *fakeValidator) ValidateToken(tokenString string) (string, error) {
	f.seen = tokenString
	return f.userID, f.err
}

func protected(t *testing.T, validator TokenValidator) (http.Handler, *string) {
	t.Helper()
	var gotUserID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserID(r)
		require.NoError(t, err)
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})
	return Auth(validator)(handler), &gotUserID
}

func TestAuthAllowsValidToken(t *testing.T) {
	validator := &fakeValidator{userID: "user-42"}
	handler, gotUserID := protected(t, validator)

	req := httptest.NewRequest(http.MethodGet, "/stories", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", *gotUserID)
	assert.Equal(t, "good-token", validator.seen)
}

func TestAuthCaseInsensitiveBearer(t *testing.T) {
	handler, _ := protected(t, &fakeValidator{userID: "user-42"})

	req := httptest.NewRequest(http.MethodGet, "/stories", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, _ := protected(t, &fakeValidator{userID: "user-42"})

	req := httptest.NewRequest(http.MethodGet, "/stories", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	handler, _ := protected(t, &fakeValidator{userID: "user-42"})

	for _, header := range []string{"good-token", "Basic abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/stories", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler, _ := protected(t, &fakeValidator{err: errors.New("token expired")})

	req := httptest.NewRequest(http.MethodGet, "/stories", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserIDWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/stories", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
