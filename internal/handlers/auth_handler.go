package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"todoapp/internal/httpx"
	"todoapp/internal/middleware"
	"todoapp/internal/models"
	"todoapp/internal/services"
	"todoapp/internal/utils"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService}
}

// issueTokens signs a short-lived access JWT and stores a fresh opaque
// refresh token for the user.
func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) (access, refresh string, err error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTKey)
	if err != nil {
		return "", "", err
	}

	refresh, err = utils.NewRefreshToken(32)
	if err != nil {
		return "", "", err
	}
	if err := h.userService.UpdateRefresh(c.Request.Context(), user.ID, refresh, time.Now().Add(refreshTokenTTL)); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login][bind][err] %v", err)
		c.JSON(http.StatusUnprocessableEntity, httpx.BindingReport(err))
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	user, err := h.userService.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		log.Printf("[auth][login][err] lookup email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}
	if user == nil || h.authService.CheckPassword(user.PasswordHash, req.Password) != nil {
		log.Printf("[auth][login][deny] bad credentials email=%q", email)
		c.JSON(http.StatusUnprocessableEntity, httpx.Report("email", "The provided credentials are incorrect."))
		return
	}

	access, refresh, err := h.issueTokens(c, user)
	if err != nil {
		log.Printf("[auth][login][err] issue tokens userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate tokens"})
		return
	}
	log.Printf("[auth][login][ok] userID=%d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"token":         access,
		"refresh_token": refresh,
	})
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][register][bind][err] %v", err)
		c.JSON(http.StatusUnprocessableEntity, httpx.BindingReport(err))
		return
	}

	existing, err := h.userService.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Printf("[auth][register][err] lookup email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusUnprocessableEntity, httpx.Report("email", "The email has already been taken."))
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email}
	if err := h.userService.CreateUserWithPassword(c.Request.Context(), user, req.Password); err != nil {
		log.Printf("[auth][register][err] create email=%q: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	access, refresh, err := h.issueTokens(c, user)
	if err != nil {
		log.Printf("[auth][register][err] issue tokens userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate tokens"})
		return
	}
	log.Printf("[auth][register][ok] userID=%d", user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"user":          user,
		"token":         access,
		"refresh_token": refresh,
	})
}

// POST /refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, httpx.BindingReport(err))
		return
	}

	old := strings.TrimSpace(req.RefreshToken)
	user, err := h.userService.GetByRefreshToken(c.Request.Context(), old)
	if err != nil || user == nil || user.RefreshToken == nil || user.RefreshExpiresAt == nil || user.RefreshRevoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	if time.Now().After(*user.RefreshExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	// rotate refresh
	newRT, err := utils.NewRefreshToken(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate refresh token"})
		return
	}
	if _, err := h.userService.RotateRefresh(c.Request.Context(), old, newRT, time.Now().Add(refreshTokenTTL)); err != nil {
		log.Printf("[auth][refresh][err] rotate userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate refresh token"})
		return
	}

	claims := &middleware.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.JWTKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	log.Printf("[auth][refresh][ok] userID=%d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"token":         access,
		"refresh_token": newRT,
	})
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := currentUserID(c)

	if err := h.userService.ClearRefresh(c.Request.Context(), uid); err != nil {
		log.Printf("[auth][logout][err] userID=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	log.Printf("[auth][logout][ok] userID=%d", uid)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
