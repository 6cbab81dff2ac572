// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yosan-kanri/backend/internal/application/usecase/payment"
	"github.com/yosan-kanri/backend/internal/domain/entity"
	domainerror "github.com/yosan-kanri/backend/internal/domain/error"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/dto"
	"github.com/yosan-kanri/backend/internal/integration/entrypoint/middleware"
)

// PaymentController handles payment endpoints.
type PaymentController struct {
	recordUseCase *payment.RecordPaymentUseCase
	listUseCase   *payment.ListPaymentsUseCase
	updateUseCase *payment.UpdatePaymentUseCase
	deleteUseCase *payment.DeletePaymentUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	recordUseCase *payment.RecordPaymentUseCase,
	listUseCase *payment.ListPaymentsUseCase,
	updateUseCase *payment.UpdatePaymentUseCase,
	deleteUseCase *payment.DeletePaymentUseCase,
) *PaymentController {
	return &PaymentController{
		recordUseCase: recordUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Record handles POST /work-items/:id/payments requests.
func (c *PaymentController) Record(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	workItemID, ok := parseWorkItemID(ctx)
	if !ok {
		return
	}

	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := payment.RecordPaymentInput{
		UserID:       userID,
		WorkItemID:   workItemID,
		Year:         req.Year,
		Month:        req.Month,
		Contractor:   req.Contractor,
		Description:  req.Description,
		Category:     entity.PaymentCategory(req.Category),
		Amount:       req.Amount,
		ProgressRate: req.ProgressRate,
	}
	if req.ContractPaymentID != nil {
		contractID, err := uuid.Parse(*req.ContractPaymentID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid contract payment ID",
				Code:  string(domainerror.ErrCodeContractPaymentNotFound),
			})
			return
		}
		input.ContractPaymentID = &contractID
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RecordPaymentResponse{
		Payment:         dto.ToPaymentResponse(output.Payment),
		RemainingAmount: output.RemainingAmount,
	})
}

// List handles GET /work-items/:id/payments requests.
func (c *PaymentController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	workItemID, ok := parseWorkItemID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), payment.ListPaymentsInput{
		UserID:     userID,
		WorkItemID: workItemID,
	})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(output.Payments))
}

// Update handles PUT /payments/:id requests.
func (c *PaymentController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	paymentID, ok := parsePaymentID(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := payment.UpdatePaymentInput{
		UserID:      userID,
		PaymentID:   paymentID,
		Year:        req.Year,
		Month:       req.Month,
		Contractor:  req.Contractor,
		Description: req.Description,
		Amount:      req.Amount,
	}
	input.ProgressRate = req.ProgressRate

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RecordPaymentResponse{
		Payment:         dto.ToPaymentResponse(output.Payment),
		RemainingAmount: output.RemainingAmount,
	})
}

// Delete handles DELETE /payments/:id requests.
func (c *PaymentController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	paymentID, ok := parsePaymentID(ctx)
	if !ok {
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), payment.DeletePaymentInput{
		UserID:    userID,
		PaymentID: paymentID,
	})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeletePaymentResponse{
		RemainingAmount: output.RemainingAmount,
	})
}

// parsePaymentID extracts and validates the :id path parameter.
func parsePaymentID(ctx *gin.Context) (uuid.UUID, bool) {
	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payment ID",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return uuid.Nil, false
	}
	return paymentID, true
}

// handlePaymentError maps payment errors to HTTP responses.
func (c *PaymentController) handlePaymentError(ctx *gin.Context, err error) {
	var paymentErr *domainerror.PaymentError
	if errors.As(err, &paymentErr) {
		ctx.JSON(c.getStatusCodeForPaymentError(paymentErr.Code), dto.ErrorResponse{
			Error: paymentErr.Message,
			Code:  string(paymentErr.Code),
		})
		return
	}

	var projectErr *domainerror.ProjectError
	if errors.As(err, &projectErr) && projectErr.Code == domainerror.ErrCodeNotAuthorizedProject {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: projectErr.Message,
			Code:  string(projectErr.Code),
		})
		return
	}

	switch {
	case errors.Is(err, domainerror.ErrPaymentNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Payment not found",
			Code:  string(domainerror.ErrCodePaymentNotFound),
		})
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

// getStatusCodeForPaymentError maps payment error codes to HTTP status codes.
func (c *PaymentController) getStatusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeInvalidPaymentCategory,
		domainerror.ErrCodeInvalidPaymentPeriod,
		domainerror.ErrCodeMissingPaymentFields,
		domainerror.ErrCodeInvalidProgressRate,
		domainerror.ErrCodeContractPaymentMismatch:
		return http.StatusBadRequest
	case domainerror.ErrCodePaymentNotFound,
		domainerror.ErrCodeContractPaymentNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
