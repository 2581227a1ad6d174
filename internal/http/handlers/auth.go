package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/wishlist-backend/internal/domain"
	"github.com/yungbote/wishlist-backend/internal/http/response"
	"github.com/yungbote/wishlist-backend/internal/observability"
	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
	"github.com/yungbote/wishlist-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	metrics     *observability.Metrics
}

func NewAuthHandler(authService services.AuthService, m *observability.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

type userView struct {
	ID        uuid.UUID `json:"_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func viewUser(u *types.User, token string) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Token:     token,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.New(http.StatusBadRequest, apierr.CodeBadParams, fmt.Errorf("invalid JSON body: %w", err))
	}
	return nil
}

func (ah *AuthHandler) fail(c *gin.Context, event string, err error) {
	ah.metrics.IncAuthEvent(event, err)
	_ = c.Error(err)
}

// POST /sign-up
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Credentials struct {
			Email                string `json:"email"`
			Password             string `json:"password"`
			PasswordConfirmation string `json:"password_confirmation"`
		} `json:"credentials"`
	}
	if err := bindJSON(c, &req); err != nil {
		ah.fail(c, "sign_up", err)
		return
	}
	cr := req.Credentials
	user, err := ah.authService.RegisterUser(c.Request.Context(), cr.Email, cr.Password, cr.PasswordConfirmation)
	if err != nil {
		ah.fail(c, "sign_up", err)
		return
	}
	ah.metrics.IncAuthEvent("sign_up", nil)
	response.RespondCreated(c, gin.H{"user": viewUser(user, "")})
}

// POST /sign-in
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"credentials"`
	}
	if err := bindJSON(c, &req); err != nil {
		ah.fail(c, "sign_in", err)
		return
	}
	user, accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Credentials.Email, req.Credentials.Password)
	if err != nil {
		ah.fail(c, "sign_in", err)
		return
	}
	ah.metrics.IncAuthEvent("sign_in", nil)
	response.RespondCreated(c, gin.H{
		"user":          viewUser(user, accessToken),
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

// POST /refresh
func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := bindJSON(c, &req); err != nil {
		ah.fail(c, "refresh", err)
		return
	}
	accessToken, refreshToken, err := ah.authService.RefreshUser(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ah.fail(c, "refresh", err)
		return
	}
	ah.metrics.IncAuthEvent("refresh", nil)
	response.RespondOK(c, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_in":    int(ah.authService.GetAccessTTL().Seconds()),
	})
}

// PATCH /change-password
func (ah *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Passwords struct {
			Old string `json:"old"`
			New string `json:"new"`
		} `json:"passwords"`
	}
	if err := bindJSON(c, &req); err != nil {
		ah.fail(c, "change_password", err)
		return
	}
	if err := ah.authService.ChangePassword(c.Request.Context(), req.Passwords.Old, req.Passwords.New); err != nil {
		ah.fail(c, "change_password", err)
		return
	}
	ah.metrics.IncAuthEvent("change_password", nil)
	response.RespondNoContent(c)
}

// DELETE /sign-out
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
		ah.fail(c, "sign_out", err)
		return
	}
	ah.metrics.IncAuthEvent("sign_out", nil)
	response.RespondNoContent(c)
}
