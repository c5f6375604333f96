package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "clinfin/internal/errors"
	"clinfin/internal/middleware"
	"clinfin/internal/models"
	"clinfin/internal/services"
)

// AdminHandler handles administrator accounts and their authentication.
type AdminHandler struct {
	adminService services.AdminServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService services.AdminServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService, auditService: auditService}
}

// AdminResponse is the public view of an administrator account.
type AdminResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// AdminLoginResponse is returned on a successful administrator login.
type AdminLoginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Admin   AdminResponse `json:"admin"`
}

// CreateAdmin handles the creation of a new administrator
// @Summary     Create an administrator
// @Description Create an administrator account, up to the fixed maximum
// @Tags        admins
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CredentialsRequest true "Credentials"
// @Success     201 {object} AdminResponse "Administrator created"
// @Failure     400 {object} ErrorResponse "Invalid input, duplicate email or limit reached"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admins [post]
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	admin, err := h.adminService.CreateAdmin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	role, actorID := actor(c)
	h.auditService.Log(role, actorID, "CREATE_ADMIN", "admin", admin.ID, c.ClientIP(),
		map[string]interface{}{"email": admin.Email})

	c.JSON(http.StatusCreated, AdminResponse{ID: admin.ID, Email: admin.Email})
}

// Login handles administrator authentication
// @Summary     Administrator login
// @Description Authenticate an administrator and issue a token
// @Tags        admins
// @Accept      json
// @Produce     json
// @Param       request body CredentialsRequest true "Credentials"
// @Success     200 {object} AdminLoginResponse "Authenticated"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admins/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	admin, err := h.adminService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(admin.ID, admin.Email, middleware.RoleAdmin)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(middleware.RoleAdmin, admin.ID, "LOGIN_ADMIN", "admin", admin.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, AdminLoginResponse{
		Message: "Login successful",
		Token:   token,
		Admin:   AdminResponse{ID: admin.ID, Email: admin.Email},
	})
}

// ListAdmins handles the retrieval of all administrators
// @Summary     List administrators
// @Description Get all administrator accounts
// @Tags        admins
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  AdminResponse "Administrators"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admins [get]
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAdmins()
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]AdminResponse, 0, len(admins))
	for _, a := range admins {
		responses = append(responses, toAdminResponse(a))
	}

	c.JSON(http.StatusOK, responses)
}

// DeleteAdmin handles the deletion of an administrator
// @Summary     Delete an administrator
// @Description Delete an administrator account; the first administrator cannot be removed
// @Tags        admins
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Administrator ID"
// @Success     200 {object} MessageResponse "Administrator deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Protected administrator"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /admins/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.adminService.DeleteAdmin(id); err != nil {
		respondWithError(c, err)
		return
	}

	role, actorID := actor(c)
	h.auditService.Log(role, actorID, "DELETE_ADMIN", "admin", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Administrator deleted"})
}

func toAdminResponse(a models.Admin) AdminResponse {
	return AdminResponse{ID: a.ID, Email: a.Email}
}
