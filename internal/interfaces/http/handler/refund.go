package handler

import (
	financeapp "github.com/estatebooks/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RefundHandler handles refund installment API endpoints
type RefundHandler struct {
	BaseHandler
	refundService *financeapp.RefundService
}

// NewRefundHandler creates a new RefundHandler
func NewRefundHandler(refundService *financeapp.RefundService) *RefundHandler {
	return &RefundHandler{refundService: refundService}
}

// CreateSchedule godoc
// @Summary      Create a refund schedule
// @Description  Split an approved cancellation's refundable amount into monthly installments
// @Tags         refunds
// @Accept       json
// @Produce      json
// @Param        request body finance.CreateScheduleRequest true "Schedule request"
// @Success      201 {object} dto.Response{data=[]finance.RefundResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds/schedule [post]
func (h *RefundHandler) CreateSchedule(c *gin.Context) {
	var req financeapp.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	refunds, err := h.refundService.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, refunds)
}

// GetByID godoc
// @Summary      Get refund by ID
// @Tags         refunds
// @Produce      json
// @Param        id path string true "Refund ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.RefundResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds/{id} [get]
func (h *RefundHandler) GetByID(c *gin.Context) {
	refundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid refund ID format")
		return
	}

	refund, err := h.refundService.GetRefundByID(c.Request.Context(), refundID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}

// List godoc
// @Summary      List refunds
// @Tags         refunds
// @Produce      json
// @Param        cancellation_id query string false "Cancellation ID" format(uuid)
// @Param        sale_id query string false "Sale ID" format(uuid)
// @Param        approval_status query string false "Approval status" Enums(DRAFT, PENDING_ACCOUNTS, PENDING_HOF, APPROVED, REJECTED)
// @Param        payment_status query string false "Payment status" Enums(PENDING, PAID, CANCELLED)
// @Param        due_from query string false "Due date from (ISO 8601)" format(date-time)
// @Param        due_to query string false "Due date to (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]finance.RefundResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /refunds [get]
func (h *RefundHandler) List(c *gin.Context) {
	var filter financeapp.RefundListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.refundService.ListRefunds(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Submit godoc
// @Summary      Submit a refund for approval
// @Description  Move a draft refund installment into the first approval tier
// @Tags         refunds
// @Produce      json
// @Param        id path string true "Refund ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.RefundResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds/{id}/submit [post]
func (h *RefundHandler) Submit(c *gin.Context) {
	refundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid refund ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	refund, err := h.refundService.SubmitRefund(c.Request.Context(), refundID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}

// Approve godoc
// @Summary      Approve a refund
// @Description  Record the caller's approval tier decision on a pending refund
// @Tags         refunds
// @Accept       json
// @Produce      json
// @Param        id path string true "Refund ID" format(uuid)
// @Param        request body ApprovalDecisionRequest false "Decision remarks"
// @Success      200 {object} dto.Response{data=finance.RefundResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds/{id}/approve [post]
func (h *RefundHandler) Approve(c *gin.Context) {
	refundID, userID, role, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	refund, err := h.refundService.ApproveRefund(c.Request.Context(), refundID, userID, role, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}

// Reject godoc
// @Summary      Reject a refund
// @Description  Reject a pending refund; remarks are mandatory
// @Tags         refunds
// @Accept       json
// @Produce      json
// @Param        id path string true "Refund ID" format(uuid)
// @Param        request body ApprovalDecisionRequest true "Decision remarks"
// @Success      200 {object} dto.Response{data=finance.RefundResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds/{id}/reject [post]
func (h *RefundHandler) Reject(c *gin.Context) {
	refundID, userID, role, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	refund, err := h.refundService.RejectRefund(c.Request.Context(), refundID, userID, role, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}

// MarkPaid godoc
// @Summary      Mark a refund as paid
// @Description  Record the payout of an approved refund installment and post it to the ledger
// @Tags         refunds
// @Accept       json
// @Produce      json
// @Param        id path string true "Refund ID" format(uuid)
// @Param        request body finance.MarkPaidRequest true "Payment details"
// @Success      200 {object} dto.Response{data=finance.RefundResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /refunds/{id}/mark-paid [post]
func (h *RefundHandler) MarkPaid(c *gin.Context) {
	refundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid refund ID format")
		return
	}

	var req financeapp.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.PaidBy = &userID

	refund, err := h.refundService.MarkRefundAsPaid(c.Request.Context(), refundID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}
