package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/internal/application"
	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/response"
)

type UserHandler struct {
	Svc            *application.UserService
	Logger         *logrus.Logger
	Cookies        *helpers.Manager
	MaxUploadBytes int64
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookies *helpers.Manager, maxUpload int64) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: cookies, MaxUploadBytes: maxUpload}
}

type tokenMeta struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// signIn sets the cookie pair and answers with the user plus the access token
// for clients that use bearer headers.
func (h *UserHandler) signIn(c *gin.Context, status int, u *entity.User, pair application.TokenPair, msg string) {
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, status, u, msg, tokenMeta{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessTokenExpiry,
		RefreshExpiresAt: pair.RefreshTokenExpiry,
	})
}

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var in application.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	u, pair, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.signIn(c, http.StatusCreated, u, pair, "user registered")
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.signIn(c, http.StatusOK, u, pair, "login successful")
}

// Refresh POST /api/users/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	token := helpers.TokenFromRequest(c, helpers.RefreshCookie)
	u, pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.signIn(c, http.StatusOK, u, pair, "token refreshed")
}

// Logout POST /api/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), currentUser(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// GetProfile GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// UpdateProfile PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var in application.UpdateProfileInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), currentUser(c), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

// UploadPhoto PUT /api/users/profile/photo (multipart "file")
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	up, done, err := formUpload(c, h.MaxUploadBytes)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer done()
	u, err := h.Svc.UploadProfilePhoto(c.Request.Context(), currentUser(c), up)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile photo updated", nil)
}

// List GET /api/users (admin)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.List(c, users, "users")
}

// Delete DELETE /api/users/:id (admin)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

type resetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetInit POST /api/auth/reset/init
// Unknown emails get the same 200 answer.
func (h *UserHandler) ResetInit(c *gin.Context) {
	var req resetInitRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": true}, "if the email exists, a reset link has been sent", nil)
}

// ResetConfirm POST /api/auth/reset/confirm
func (h *UserHandler) ResetConfirm(c *gin.Context) {
	var in application.ResetPasswordInput
	if !bindJSON(c, &in) {
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), in); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}
