package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "bastion/internal/delivery/context"
	"bastion/internal/delivery/http/response"
	domainerrors "bastion/internal/domain/errors"
	"bastion/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for profile and account validation handlers.
type AccountHandler struct {
	credentialUc usecase.CredentialUsecase
	logger       *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(credentialUc usecase.CredentialUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		credentialUc: credentialUc,
		logger:       logger,
	}
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateEmail answers the live availability check used by signup and
// profile forms. ignore_id excludes the caller's own account so keeping the
// current email reads as available.
func (h *AccountHandler) ValidateEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return response.BadRequest(c, "INVALID_INPUT", "email query parameter is required")
	}

	var ignoreID int64
	if raw := c.QueryParam("ignore_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "ignore_id must be an integer")
		}
		ignoreID = parsed
	}

	taken, err := h.credentialUc.EmailExists(c.Request().Context(), email, ignoreID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"available": !taken}, "Email availability checked")
}

// GetProfile returns the authenticated user's account data.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	user, err := h.credentialUc.FindByID(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "Profile retrieved successfully")
}

// UpdateProfile updates the authenticated user's account data. An empty
// password field leaves the stored password unchanged.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input updateProfileRequest
	if err := bindStrictJSON(c, &input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	output, err := h.credentialUc.Update(c.Request().Context(), &usecase.UpdateProfileInput{
		ID:       userID,
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

	return response.Success(c, http.StatusOK, newUserResponse(output.User), "Profile updated successfully")
}
