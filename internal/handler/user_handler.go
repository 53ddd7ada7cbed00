package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"newsportal/internal/auth"
	"newsportal/internal/service"
)

// UserHandler serves profile endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ProfileRequest carries the profile fields to change. Absent fields are kept.
type ProfileRequest struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

// ChangePasswordRequest represents a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return fail(errNoIdentity)
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), identity, service.ProfileInput{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, Message: "Profile updated successfully", User: user})
}

// ChangePassword godoc
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/change-password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return fail(errNoIdentity)
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidRequest(err)
	}

	if err := h.svc.ChangePassword(c.Request().Context(), identity, req.CurrentPassword, req.NewPassword); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Password changed successfully"})
}

// GetUser godoc
// @Summary Public profile
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetPublicProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}
