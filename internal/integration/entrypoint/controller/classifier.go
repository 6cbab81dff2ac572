// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yosan-kanri/backend/internal/application/usecase/classification"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/dto"
)

// ClassifierController handles work-code classification endpoints.
type ClassifierController struct {
	suggestUseCase *classification.SuggestWorkCodeUseCase
}

// NewClassifierController creates a new classifier controller instance.
func NewClassifierController(suggestUseCase *classification.SuggestWorkCodeUseCase) *ClassifierController {
	return &ClassifierController{
		suggestUseCase: suggestUseCase,
	}
}

// Suggest handles POST /classifier/work-code requests.
func (c *ClassifierController) Suggest(ctx *gin.Context) {
	var req dto.SuggestWorkCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeClassifierEmptyDescription),
		})
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), classification.SuggestWorkCodeInput{
		Description: req.Description,
	})
	if err != nil {
		c.handleClassifierError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWorkCodeSuggestionResponse(output.Suggestion))
}

// handleClassifierError maps classifier errors to HTTP responses.
func (c *ClassifierController) handleClassifierError(ctx *gin.Context, err error) {
	var classifierErr *domainerror.ClassifierError
	if errors.As(err, &classifierErr) {
		ctx.JSON(c.getStatusCodeForClassifierError(classifierErr.Code), dto.ErrorResponse{
			Error: classifierErr.Message,
			Code:  string(classifierErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForClassifierError maps classifier error codes to HTTP status codes.
func (c *ClassifierController) getStatusCodeForClassifierError(code domainerror.ClassifierErrorCode) int {
	switch code {
	case domainerror.ErrCodeClassifierEmptyDescription:
		return http.StatusBadRequest
	case domainerror.ErrCodeClassifierUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeClassifierRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeClassifierBadResponse,
		domainerror.ErrCodeClassifierServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
