package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"minhasfinancas/internal/auth"
	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/middleware"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService services.UserServicer
	authManager *auth.Manager
	audit       services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, authManager *auth.Manager, audit services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, authManager: authManager, audit: audit}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email,max=255"`
	Password     string  `json:"password" binding:"required,min=8,max=128"`
	UseBiometric bool    `json:"use_biometric"`
	PhotoPath    *string `json:"photo_path"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// BiometricLoginRequest represents the biometric login request payload. The
// sensor challenge itself happens on the device; the request only names the
// user whose challenge succeeded.
type BiometricLoginRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// UpdateProfileRequest represents the profile update payload
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	UseBiometric *bool   `json:"use_biometric"`
	PhotoPath    *string `json:"photo_path"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	UseBiometric bool    `json:"use_biometric"`
	PhotoPath    *string `json:"photo_path,omitempty"`
	IsAdmin      bool    `json:"is_admin"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// StateResponse reports where a client stands in the authentication flow
type StateResponse struct {
	State     auth.State           `json:"state"`
	Biometric auth.BiometricStatus `json:"biometric"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		UseBiometric: user.UseBiometric,
		PhotoPath:    user.PhotoPath,
		IsAdmin:      user.IsAdmin,
	}
}

// State reports the authentication state
// @Summary     Get authentication state
// @Description Report whether setup or login is required and whether biometric login is available
// @Tags        auth
// @Produce     json
// @Success     200 {object} StateResponse "Current state"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/state [get]
func (h *AuthHandler) State(c *gin.Context) {
	state, err := h.authManager.State()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, StateResponse{
		State:     state,
		Biometric: h.authManager.BiometricStatus(),
	})
}

// Register handles user registration. The first registration is open and
// creates the admin; later registrations require an admin token.
// @Summary     Register a new user
// @Description Register a new user. Open for the first user; admin-only afterwards
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin required"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.userService.CountActiveUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}
	if count > 0 {
		if err := h.requireAdminToken(c); err != nil {
			respondWithError(c, err)
			return
		}
	}

	user, err := h.userService.CreateUser(req.Name, req.Email, req.Password, req.UseBiometric, req.PhotoPath)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.audit.Log(user.ID, "register", "user", user.ID, nil)

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// requireAdminToken checks the bearer token on an otherwise-open route.
func (h *AuthHandler) requireAdminToken(c *gin.Context) error {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return apperrors.ErrUnauthorized
	}
	claims, err := middleware.ParseToken(parts[1])
	if err != nil {
		return apperrors.ErrUnauthorized
	}
	if !claims.IsAdmin {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Only the admin can register new users")
	}
	return nil
}

// Login handles password login
// @Summary     Login user
// @Description Authenticate a user with email and password and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.authManager.LoginWithPassword(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// BiometricLogin handles biometric login
// @Summary     Login with biometrics
// @Description Authenticate a user whose device biometric challenge succeeded
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body BiometricLoginRequest true "Biometric login data"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Biometric login unavailable or not enabled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/biometric [post]
func (h *AuthHandler) BiometricLogin(c *gin.Context) {
	var req BiometricLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.authManager.LoginWithBiometric(req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}

// GetProfile returns the authenticated user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateProfile updates the authenticated user's profile
// @Summary     Update user profile
// @Description Update name, biometric preference, or photo of the authenticated user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Fields to update"
// @Success     200 {object} UserResponse "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UserUpdateFields{
		Name:         req.Name,
		UseBiometric: req.UseBiometric,
		PhotoPath:    req.PhotoPath,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "user", userID, nil)

	c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout clears the manager's session state
// @Summary     Logout
// @Description Clear the server-side session state
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Logged out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.authManager.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
