package middleware

import (
	"net/http"
	"strings"

	deliverycontext "bastion/internal/delivery/context"
	"bastion/internal/domain/service"
	"bastion/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for session authentication.
// It accepts either a Bearer access token or, failing that, a remember-me
// cookie whose backing record is still valid.
type AuthMiddleware struct {
	sessionTokenSvc service.SessionTokenService
	rememberUc      usecase.RememberUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionTokenSvc service.SessionTokenService, rememberUc usecase.RememberUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessionTokenSvc: sessionTokenSvc, rememberUc: rememberUc}
}

// Authenticate resolves the requesting user and stores their ID on the
// context. Expired remembered logins are revoked on sight, so a stale cookie
// never authenticates twice.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID, ok := m.userIDFromBearer(c); ok {
			deliverycontext.SetUserID(c, userID)

			return next(c)
		}

		userID, err := m.userIDFromRememberCookie(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		}
		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}

func (m *AuthMiddleware) userIDFromBearer(c echo.Context) (int64, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return 0, false
	}

	userID, err := m.sessionTokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return 0, false
	}

	return userID, true
}

func (m *AuthMiddleware) userIDFromRememberCookie(c echo.Context) (int64, error) {
	cookie, err := c.Cookie(deliverycontext.RememberMeCookie)
	if err != nil || cookie.Value == "" {
		return 0, echo.ErrUnauthorized
	}

	ctx := c.Request().Context()

	login, err := m.rememberUc.FindByRawToken(ctx, cookie.Value)
	if err != nil {
		return 0, echo.ErrUnauthorized
	}

	if login.HasExpired() {
		// Lazy expiry: purge the stale record the moment it is presented.
		_ = m.rememberUc.Revoke(ctx, cookie.Value)

		return 0, echo.ErrUnauthorized
	}

	owner, err := m.rememberUc.GetOwner(ctx, login)
	if err != nil {
		return 0, echo.ErrUnauthorized
	}

	return owner.ID, nil
}
