// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yosan-kanri/backend/internal/application/usecase/project"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/dto"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/middleware"
)

// ProjectController handles project endpoints.
type ProjectController struct {
	createUseCase         *project.CreateProjectUseCase
	listUseCase           *project.ListProjectsUseCase
	getUseCase            *project.GetProjectUseCase
	updateUseCase         *project.UpdateProjectUseCase
	deleteUseCase         *project.DeleteProjectUseCase
	rollupUseCase         *project.GetRollupUseCase
	managementCostUseCase *project.GetManagementCostUseCase
}

// NewProjectController creates a new project controller instance.
func NewProjectController(
	createUseCase *project.CreateProjectUseCase,
	listUseCase *project.ListProjectsUseCase,
	getUseCase *project.GetProjectUseCase,
	updateUseCase *project.UpdateProjectUseCase,
	deleteUseCase *project.DeleteProjectUseCase,
	rollupUseCase *project.GetRollupUseCase,
	managementCostUseCase *project.GetManagementCostUseCase,
) *ProjectController {
	return &ProjectController{
		createUseCase:         createUseCase,
		listUseCase:           listUseCase,
		getUseCase:            getUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		rollupUseCase:         rollupUseCase,
		managementCostUseCase: managementCostUseCase,
	}
}

// Create handles POST /projects requests.
func (c *ProjectController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingProjectFields),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), project.CreateProjectInput{
		UserID:               userID,
		Code:                 req.Code,
		Name:                 req.Name,
		ContractAmount:       req.ContractAmount,
		BudgetAmount:         req.BudgetAmount,
		CurrentBudgetAmount:  req.CurrentBudgetAmount,
		TargetManagementRate: decimal.NewFromFloat(req.TargetManagementRate),
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProjectResponse(output.Project))
}

// List handles GET /projects requests.
func (c *ProjectController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), project.ListProjectsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectListResponse(output.Projects))
}

// Get handles GET /projects/:id requests.
func (c *ProjectController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), project.GetProjectInput{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	resp := dto.ProjectDetailResponse{
		Project:   dto.ToProjectResponse(output.Project),
		WorkItems: dto.ToWorkItemListResponse(output.WorkItems).WorkItems,
		Rollup:    dto.ToProjectRollupResponse(output.Rollup),
	}
	ctx.JSON(http.StatusOK, resp)
}

// Update handles PUT /projects/:id requests.
func (c *ProjectController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingProjectFields),
		})
		return
	}

	input := project.UpdateProjectInput{
		UserID:              userID,
		ProjectID:           projectID,
		Code:                req.Code,
		Name:                req.Name,
		ContractAmount:      req.ContractAmount,
		BudgetAmount:        req.BudgetAmount,
		CurrentBudgetAmount: req.CurrentBudgetAmount,
	}
	if req.TargetManagementRate != nil {
		rate := decimal.NewFromFloat(*req.TargetManagementRate)
		input.TargetManagementRate = &rate
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectResponse(output.Project))
}

// Delete handles DELETE /projects/:id requests.
func (c *ProjectController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), project.DeleteProjectInput{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Rollup handles GET /projects/:id/rollup requests.
func (c *ProjectController) Rollup(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	output, err := c.rollupUseCase.Execute(ctx.Request.Context(), project.GetRollupInput{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProjectRollupResponse(output.Rollup))
}

// ManagementCost handles GET /projects/:id/management-cost requests.
func (c *ProjectController) ManagementCost(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	projectID, ok := parseProjectID(ctx)
	if !ok {
		return
	}

	output, err := c.managementCostUseCase.Execute(ctx.Request.Context(), project.GetManagementCostInput{
		UserID:    userID,
		ProjectID: projectID,
	})
	if err != nil {
		c.handleProjectError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToManagementCostResponse(output.ManagementCost))
}

// parseProjectID extracts and validates the :id path parameter. It writes the
// error response itself when the ID is malformed.
func parseProjectID(ctx *gin.Context) (uuid.UUID, bool) {
	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid project ID",
			Code:  string(domainerror.ErrCodeMissingProjectFields),
		})
		return uuid.Nil, false
	}
	return projectID, true
}

// handleProjectError maps project errors to HTTP responses.
func (c *ProjectController) handleProjectError(ctx *gin.Context, err error) {
	var projectErr *domainerror.ProjectError
	if errors.As(err, &projectErr) {
		ctx.JSON(c.getStatusCodeForProjectError(projectErr.Code), dto.ErrorResponse{
			Error: projectErr.Message,
			Code:  string(projectErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrProjectNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Project not found",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForProjectError maps project error codes to HTTP status codes.
func (c *ProjectController) getStatusCodeForProjectError(code domainerror.ProjectErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidProjectAmount,
		domainerror.ErrCodeMissingProjectFields,
		domainerror.ErrCodeInvalidManagementRate:
		return http.StatusBadRequest
	case domainerror.ErrCodeProjectNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedProject:
		return http.StatusForbidden
	case domainerror.ErrCodeProjectCodeExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
