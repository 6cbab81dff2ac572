// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/usecase/workitem"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/dto"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/middleware"
)

// WorkItemController handles work item endpoints.
type WorkItemController struct {
	createUseCase *workitem.CreateWorkItemUseCase
	listUseCase   *workitem.ListWorkItemsUseCase
	getUseCase    *workitem.GetWorkItemUseCase
	updateUseCase *workitem.UpdateWorkItemUseCase
	deleteUseCase *workitem.DeleteWorkItemUseCase
}

// NewWorkItemController creates a new work item controller instance.
func NewWorkItemController(
	createUseCase *workitem.CreateWorkItemUseCase,
	listUseCase *workitem.ListWorkItemsUseCase,
	getUseCase *workitem.GetWorkItemUseCase,
	updateUseCase *workitem.UpdateWorkItemUseCase,
	deleteUseCase *workitem.DeleteWorkItemUseCase,
) *WorkItemController {
	return &WorkItemController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /projects/:id/work-items requests.
func (c *WorkItemController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	var req dto.CreateWorkItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingWorkItemFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), workitem.CreateWorkItemInput{
		UserID:       userID,
		ProjectID:    projectID,
		WorkCode:     req.WorkCode,
		WorkName:     req.WorkName,
		BudgetAmount: req.BudgetAmount,
	})
	if err != nil {
		c.handleWorkItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToWorkItemResponse(output.WorkItem))
}

// List handles GET /projects/:id/work-items requests.
func (c *WorkItemController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), workitem.ListWorkItemsInput{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		c.handleWorkItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWorkItemListResponse(output.WorkItems))
}

// Get handles GET /work-items/:id requests.
func (c *WorkItemController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	workItemID, ok := parseWorkItemID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), workitem.GetWorkItemInput{
		UserID:     userID,
		WorkItemID: workItemID,
	})
	if err != nil {
		c.handleWorkItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.WorkItemDetailResponse{
		WorkItem: dto.ToWorkItemResponse(output.WorkItem),
		Payments: dto.ToPaymentListResponse(output.Payments).Payments,
	})
}

// Update handles PUT /work-items/:id requests.
func (c *WorkItemController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	workItemID, ok := parseWorkItemID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateWorkItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingWorkItemFields),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), workitem.UpdateWorkItemInput{
		UserID:       userID,
		WorkItemID:   workItemID,
		WorkCode:     req.WorkCode,
		WorkName:     req.WorkName,
		BudgetAmount: req.BudgetAmount,
	})
	if err != nil {
		c.handleWorkItemError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWorkItemResponse(output.WorkItem))
}

// Delete handles DELETE /work-items/:id requests.
func (c *WorkItemController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	workItemID, ok := parseWorkItemID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), workitem.DeleteWorkItemInput{
		UserID:     userID,
		WorkItemID: workItemID,
	}); err != nil {
		c.handleWorkItemError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ConstructionTypes handles GET /construction-types requests. The catalog is
// static, so no use case sits behind this endpoint.
func (c *WorkItemController) ConstructionTypes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToConstructionTypeListResponse(entity.ConstructionTypes()))
}

// parseWorkItemID extracts and validates the :id path parameter.
func parseWorkItemID(ctx *gin.Context) (uuid.UUID, bool) {
	workItemID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid work item ID",
			Code:  string(domainerror.ErrCodeMissingWorkItemFields),
		})
		return uuid.Nil, false
	}
	return workItemID, true
}

// handleWorkItemError maps work item errors to HTTP responses.
func (c *WorkItemController) handleWorkItemError(ctx *gin.Context, err error) {
	var workItemErr *domainerror.WorkItemError
	if errors.As(err, &workItemErr) {
		ctx.JSON(c.getStatusCodeForWorkItemError(workItemErr.Code), dto.ErrorResponse{
			Error: workItemErr.Message,
			Code:  string(workItemErr.Code),
		})
		return
	}

	var projectErr *domainerror.ProjectError
	if errors.As(err, &projectErr) {
		statusCode := http.StatusForbidden
		if projectErr.Code != domainerror.ErrCodeNotAuthorizedProject {
			statusCode = http.StatusBadRequest
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: projectErr.Message,
			Code:  string(projectErr.Code),
		})
		return
	}

	switch {
	case errors.Is(err, domainerror.ErrWorkItemNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Work item not found",
			Code:  string(domainerror.ErrCodeWorkItemNotFound),
		})
	case errors.Is(err, domainerror.ErrProjectNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Project not found",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

// getStatusCodeForWorkItemError maps work item error codes to HTTP status codes.
func (c *WorkItemController) getStatusCodeForWorkItemError(code domainerror.WorkItemErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidWorkItemBudget,
		domainerror.ErrCodeMissingWorkItemFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeWorkItemNotFound,
		domainerror.ErrCodeWorkItemNotInProject:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
