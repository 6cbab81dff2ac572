// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/usecase/user"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/dto"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/middleware"
)

// UserController handles user management endpoints.
type UserController struct {
	listUsersUseCase  *user.ListUsersUseCase
	getUserUseCase    *user.GetUserUseCase
	updateUserUseCase *user.UpdateUserUseCase
	deleteUserUseCase *user.DeleteUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	listUsersUseCase *user.ListUsersUseCase,
	getUserUseCase *user.GetUserUseCase,
	updateUserUseCase *user.UpdateUserUseCase,
	deleteUserUseCase *user.DeleteUserUseCase,
) *UserController {
	return &UserController{
		listUsersUseCase:  listUsersUseCase,
		getUserUseCase:    getUserUseCase,
		updateUserUseCase: updateUserUseCase,
		deleteUserUseCase: deleteUserUseCase,
	}
}

// List handles GET /users requests. Admin only.
func (c *UserController) List(ctx *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUsersUseCase.Execute(ctx.Request.Context(), user.ListUsersInput{
		RequesterID: requesterID,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Users))
}

// Get handles GET /users/:id requests. Self or admin.
func (c *UserController) Get(ctx *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid user ID",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.getUserUseCase.Execute(ctx.Request.Context(), user.GetUserInput{
		RequesterID: requesterID,
		UserID:      userID,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Update handles PUT /users/:id requests. Self or admin; the is_admin flag
// only changes when the requester is an admin.
func (c *UserController) Update(ctx *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid user ID",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.updateUserUseCase.Execute(ctx.Request.Context(), user.UpdateUserInput{
		RequesterID: requesterID,
		UserID:      userID,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		IsAdmin:     req.IsAdmin,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Delete handles DELETE /users/:id requests. Admin only; self-deletion is
// rejected.
func (c *UserController) Delete(ctx *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid user ID",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	_, err = c.deleteUserUseCase.Execute(ctx.Request.Context(), user.DeleteUserInput{
		RequesterID: requesterID,
		UserID:      userID,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleUserError maps user management errors to HTTP responses.
func (c *UserController) handleUserError(ctx *gin.Context, err error) {
	var userErr *domainerror.UserError
	if errors.As(err, &userErr) {
		ctx.JSON(c.getStatusCodeForUserError(userErr.Code), dto.ErrorResponse{
			Error: userErr.Message,
			Code:  string(userErr.Code),
		})
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := http.StatusBadRequest
		if authErr.Code == domainerror.ErrCodeUserNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrUserNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "User not found",
			Code:  string(domainerror.ErrCodeUserNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForUserError maps user error codes to HTTP status codes.
func (c *UserController) getStatusCodeForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeNotAuthorizedUsers:
		return http.StatusForbidden
	case domainerror.ErrCodeCannotDeleteSelf:
		return http.StatusBadRequest
	case domainerror.ErrCodeUsernameExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondUnauthenticated writes the standard missing-token response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Unauthorized",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
