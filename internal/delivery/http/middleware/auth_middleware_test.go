package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "bastion/internal/delivery/context"
	"bastion/internal/domain/entity"
	"bastion/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionTokenService struct {
	validTokens map[string]int64
}

func (f *fakeSessionTokenService) GenerateAccessToken(userID int64) (string, error) {
	return "token-for-user", nil
}

func (f *fakeSessionTokenService) ValidateAccessToken(tokenString string) (int64, error) {
	userID, ok := f.validTokens[tokenString]
	if !ok {
		return 0, errors.New("invalid access token")
	}

	return userID, nil
}

func (f *fakeSessionTokenService) AccessTokenTTL() time.Duration {
	return time.Minute
}

type fakeRememberUsecase struct {
	login        *entity.RememberedLogin
	owner        *entity.User
	revokedToken string
}

func (f *fakeRememberUsecase) Create(_ context.Context, userID int64) (*usecase.RememberOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRememberUsecase) FindByRawToken(_ context.Context, rawToken string) (*entity.RememberedLogin, error) {
	if f.login == nil {
		return nil, errors.New("remembered login not found")
	}

	return f.login, nil
}

func (f *fakeRememberUsecase) Revoke(_ context.Context, rawToken string) error {
	f.revokedToken = rawToken

	return nil
}

func (f *fakeRememberUsecase) GetOwner(_ context.Context, _ *entity.RememberedLogin) (*entity.User, error) {
	if f.owner == nil {
		return nil, errors.New("owner missing")
	}

	return f.owner, nil
}

func runAuthenticate(t *testing.T, m *AuthMiddleware, configure func(req *http.Request)) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	configure(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	err := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	return rec, c, nextCalled
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	m := NewAuthMiddleware(
		&fakeSessionTokenService{validTokens: map[string]int64{"good-token": 42}},
		&fakeRememberUsecase{},
	)

	rec, c, nextCalled := runAuthenticate(t, m, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer good-token")
	})

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
	userID, ok := deliverycontext.GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)
}

func TestAuthMiddleware_NoCredentials(t *testing.T) {
	m := NewAuthMiddleware(
		&fakeSessionTokenService{validTokens: map[string]int64{}},
		&fakeRememberUsecase{},
	)

	rec, _, nextCalled := runAuthenticate(t, m, func(_ *http.Request) {})

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RememberCookieFallback(t *testing.T) {
	remember := &fakeRememberUsecase{
		login: &entity.RememberedLogin{UserID: 7, ExpiresAt: time.Now().Add(time.Hour)},
		owner: &entity.User{ID: 7},
	}
	m := NewAuthMiddleware(&fakeSessionTokenService{validTokens: map[string]int64{}}, remember)

	rec, c, nextCalled := runAuthenticate(t, m, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: deliverycontext.RememberMeCookie, Value: "raw-token"})
	})

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
	userID, ok := deliverycontext.GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, int64(7), userID)
	assert.Empty(t, remember.revokedToken)
}

func TestAuthMiddleware_ExpiredCookieIsRevoked(t *testing.T) {
	remember := &fakeRememberUsecase{
		login: &entity.RememberedLogin{UserID: 7, ExpiresAt: time.Now().Add(-time.Hour)},
		owner: &entity.User{ID: 7},
	}
	m := NewAuthMiddleware(&fakeSessionTokenService{validTokens: map[string]int64{}}, remember)

	rec, _, nextCalled := runAuthenticate(t, m, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: deliverycontext.RememberMeCookie, Value: "stale-token"})
	})

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "stale-token", remember.revokedToken)
}

func TestAuthMiddleware_UnknownCookie(t *testing.T) {
	m := NewAuthMiddleware(&fakeSessionTokenService{validTokens: map[string]int64{}}, &fakeRememberUsecase{})

	rec, _, nextCalled := runAuthenticate(t, m, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: deliverycontext.RememberMeCookie, Value: "unknown"})
	})

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
