package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tulipbilling/invoicing-api/internal/application/service"
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/request"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/response"
)

// UserHandler handles account management HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles listing all accounts
// @Summary List Users
// @Description List every account in the credential store
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Users retrieved successfully", gin.H{"users": users})
}

// Create handles account creation
// @Summary Create User
// @Description Create an admin or user account
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateUserRequest true "New account"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req request.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &service.CreateUserInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
		Role:     enum.Role(req.Role),
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", gin.H{"user": user})
}

// Delete handles account removal
// @Summary Delete User
// @Description Delete an account; master accounts cannot be deleted
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /users/{username} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "User deleted successfully", nil)
}

// ResetPassword handles password resets
// @Summary Reset Password
// @Description Set a new password for an account
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ResetPasswordRequest true "New password"
// @Success 200 {object} response.APIResponse
// @Router /users/{username}/password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.userService.ResetPassword(c.Request.Context(), c.Param("username"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Password reset successfully", nil)
}

// AssignLocation handles billing location assignment
// @Summary Assign Location
// @Description Set the billing location stamped onto the user's ledger rows
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.AssignLocationRequest true "Location"
// @Success 200 {object} response.APIResponse
// @Router /users/{username}/location [put]
func (h *UserHandler) AssignLocation(c *gin.Context) {
	var req request.AssignLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.userService.AssignLocation(c.Request.Context(), c.Param("username"), req.Location)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Location assigned successfully", nil)
}
