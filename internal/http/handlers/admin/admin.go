package admin

import (
	"errors"
	"time"

	"github.com/aangan-site/aangan-api/internal/http/response"
	"github.com/aangan-site/aangan-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the admin login result.
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// Login authenticates the admin and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "email and password are required", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid email or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":    admin.ID,
			"email": admin.Email,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// Me returns the authenticated admin's profile.
func (h *Handler) Me(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	admin, err := h.AdminRepo.GetByID(id)
	if err != nil || admin == nil {
		respondError(c, response.CodeInternal, "failed to fetch admin", err)
		return
	}

	response.Success(c, gin.H{
		"id":            admin.ID,
		"email":         admin.Email,
		"last_login_at": admin.LastLoginAt,
	})
}

// Logout revokes every token issued before now.
func (h *Handler) Logout(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(id); err != nil {
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	response.SuccessWithMsg(c, "logged out", nil)
}

// UpdatePasswordRequest is the password change payload.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdatePassword changes the admin password.
func (h *Handler) UpdatePassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "old and new passwords are required", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			respondError(c, response.CodeBadRequest, "current password is incorrect", nil)
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "admin not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to change password", err)
		return
	}

	response.SuccessWithMsg(c, "password updated", nil)
}
