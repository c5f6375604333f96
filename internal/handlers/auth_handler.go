package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/middleware"
	"clinfin/internal/services"
)

// AuthHandler handles user registration and login.
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, auditService: auditService}
}

// CredentialsRequest represents an email/password pair.
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	IsApproved bool   `json:"is_approved"`
}

// LoginResponse is returned on a successful user login.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// Register handles new account creation
// @Summary     Register a user
// @Description Create an account that stays locked until an administrator approves it
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body CredentialsRequest true "Credentials"
// @Success     200 {object} MessageResponse "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate email"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Register(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("anonymous", 0, "REGISTER_USER", "user", user.ID, c.ClientIP(),
		map[string]interface{}{"email": user.Email})

	c.JSON(http.StatusOK, gin.H{"message": "Account created. Awaiting administrator approval."})
}

// Login handles user authentication
// @Summary     Log in
// @Description Authenticate an approved user and issue a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body CredentialsRequest true "Credentials"
// @Success     200 {object} LoginResponse "Authenticated"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     403 {object} ErrorResponse "Account not approved"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, middleware.RoleUser)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(middleware.RoleUser, user.ID, "LOGIN_USER", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User: UserResponse{
			ID:         user.ID,
			Email:      user.Email,
			IsApproved: user.IsApproved,
		},
	})
}
