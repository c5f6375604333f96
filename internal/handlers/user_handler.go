package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinfin/internal/models"
	"clinfin/internal/services"
)

// UserHandler handles administration of user accounts.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

func toUserResponses(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, UserResponse{ID: u.ID, Email: u.Email, IsApproved: u.IsApproved})
	}
	return responses
}

// ListUsers handles the retrieval of all user accounts
// @Summary     List users
// @Description Get all user accounts, approved or not
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  UserResponse "Users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// ListPendingUsers handles the retrieval of accounts awaiting approval
// @Summary     List pending users
// @Description Get user accounts that have not been approved yet
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  UserResponse "Pending users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/pending [get]
func (h *UserHandler) ListPendingUsers(c *gin.Context) {
	users, err := h.userService.ListPendingUsers()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponses(users))
}

// ApproveUser handles the approval of a pending account
// @Summary     Approve a user
// @Description Mark a user account as approved so it can log in
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} UserResponse "Approved user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id}/approve [put]
func (h *UserHandler) ApproveUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.ApproveUser(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	role, actorID := actor(c)
	h.auditService.Log(role, actorID, "APPROVE_USER", "user", user.ID, c.ClientIP(),
		map[string]interface{}{"email": user.Email})

	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Email: user.Email, IsApproved: user.IsApproved})
}

// DeleteUser handles the deletion of a user account
// @Summary     Delete a user
// @Description Delete a user account by its ID
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Success     200 {object} MessageResponse "User deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondWithError(c, err)
		return
	}

	role, actorID := actor(c)
	h.auditService.Log(role, actorID, "DELETE_USER", "user", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
