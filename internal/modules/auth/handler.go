package auth

import (
	"errors"
	"net/http"

	"authbox/internal/domain"
	"authbox/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler wires the auth use cases to HTTP.
type Handler struct {
	register *RegistrationUseCase
	authUC   *AuthUseCase
	users    UserDirectory
}

func NewHandler(register *RegistrationUseCase, authUC *AuthUseCase, users UserDirectory) *Handler {
	return &Handler{register: register, authUC: authUC, users: users}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/verify-email", h.VerifyEmail)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.register.RegisterEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, RegisterResponse{
		Email:             result.Email,
		VerificationToken: result.VerificationToken,
		ExpiresAt:         result.ExpiresAt,
	})
}

// VerifyEmail activates the account and immediately issues a first token
// pair for the now-active user.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	entry, err := h.register.VerifyEmail(c.Request.Context(), VerifyEmailInput{
		Email:             req.Email,
		Code:              req.Code,
		VerificationToken: req.VerificationToken,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	auth, err := h.authUC.CreateAuthTokenForUser(c.Request.Context(), CreateUserTokenInput{
		UserID:    entry.UserID,
		IPAddress: clientIP(c),
		UserAgent: userAgent(c),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toTokenPair(auth))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	auth, err := h.authUC.Login(c.Request.Context(), LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
		IPAddress:  clientIP(c),
		UserAgent:  userAgent(c),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toTokenPair(auth))
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.authUC.RefreshFromToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toTokenPair(result.Auth))
}

func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.authUC.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            string(u.Role),
		Status:          string(u.Status),
		EmailVerifiedAt: u.EmailVerifiedAt,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		status := appErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		response.Error(c, status, appErr.Code, appErr.Message)
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}

func toTokenPair(a *domain.AuthResult) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:           a.AccessToken,
		RefreshToken:          a.RefreshToken,
		RefreshTokenExpiresAt: a.RefreshTokenExpiresAt,
		SessionID:             a.SessionID,
	}
}

func clientIP(c *gin.Context) *string {
	ip := c.ClientIP()
	if ip == "" {
		return nil
	}
	return &ip
}

func userAgent(c *gin.Context) *string {
	ua := c.Request.UserAgent()
	if ua == "" {
		return nil
	}
	return &ua
}
