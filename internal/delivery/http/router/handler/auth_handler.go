// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "bastion/internal/delivery/context"
	"bastion/internal/delivery/http/response"
	"bastion/internal/domain/entity"
	domainerrors "bastion/internal/domain/errors"
	"bastion/internal/domain/service"
	"bastion/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for signup, login and logout handlers.
type AuthHandler struct {
	credentialUc    usecase.CredentialUsecase
	rememberUc      usecase.RememberUsecase
	sessionTokenSvc service.SessionTokenService
	logger          *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(
	credentialUc usecase.CredentialUsecase,
	rememberUc usecase.RememberUsecase,
	sessionTokenSvc service.SessionTokenService,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		credentialUc:    credentialUc,
		rememberUc:      rememberUc,
		sessionTokenSvc: sessionTokenSvc,
		logger:          logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *userResponse `json:"user"`
}

// userResponse is the outward view of a user. The password hash never
// appears in any payload.
type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Surname:   user.Surname,
		Phone:     user.Phone,
		City:      user.City,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input signupRequest
	if err := bindStrictJSON(c, &input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	output, err := h.credentialUc.Save(c.Request().Context(), &usecase.SignupInput{
		Name:     input.Name,
		Surname:  input.Surname,
		Phone:    input.Phone,
		City:     input.City,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrValidationFailed) && output != nil {
			return response.ValidationFailed(c, output.User.Errors)
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(output.User), "User registered successfully")
}

// Login handles the password login request. When rememberMe is set, a
// persistent login token is minted and handed back as an HTTP-only cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()

	output, err := h.credentialUc.Authenticate(ctx, &usecase.AuthenticateInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	accessToken, err := h.sessionTokenSvc.GenerateAccessToken(output.User.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	if input.RememberMe {
		remembered, err := h.rememberUc.Create(ctx, output.User.ID)
		if err != nil {
			return errors.WithStack(err)
		}
		c.SetCookie(&http.Cookie{
			Name:     deliverycontext.RememberMeCookie,
			Value:    remembered.RawToken,
			Expires:  remembered.ExpiresAt,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return response.Success(c, http.StatusOK, &loginResponse{
		AccessToken: accessToken,
		User:        newUserResponse(output.User),
	}, "Login successful")
}

// Logout revokes the remembered login behind the client's cookie, if any,
// and clears the cookie. Logging out without a cookie succeeds silently.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(deliverycontext.RememberMeCookie)
	if err == nil && cookie.Value != "" {
		if err := h.rememberUc.Revoke(c.Request().Context(), cookie.Value); err != nil {
			return errors.WithStack(err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     deliverycontext.RememberMeCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
