package handler

import (
	financeapp "github.com/estatebooks/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles payment receipt API endpoints
type ReceiptHandler struct {
	BaseHandler
	receiptService *financeapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *financeapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// ApprovalDecisionRequest represents an approve/reject decision.
// Remarks are optional on approval and mandatory on rejection; the
// rejection rule is enforced by the workflow, not the binding.
// @Description Request body for an approval decision
type ApprovalDecisionRequest struct {
	Remarks string `json:"remarks" binding:"max=1000"`
}

// Create godoc
// @Summary      Create a new receipt
// @Description  Record an installment payment receipt in draft
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body finance.CreateReceiptRequest true "Receipt creation request"
// @Success      201 {object} dto.Response{data=finance.ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req financeapp.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetByID godoc
// @Summary      Get receipt by ID
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.ReceiptResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List godoc
// @Summary      List receipts
// @Tags         receipts
// @Produce      json
// @Param        search query string false "Search term (receipt number, client name)"
// @Param        sale_id query string false "Sale ID" format(uuid)
// @Param        client_id query string false "Client ID" format(uuid)
// @Param        approval_status query string false "Approval status" Enums(DRAFT, PENDING_ACCOUNTS, PENDING_HOF, APPROVED, REJECTED)
// @Param        from_date query string false "Receipt date from (ISO 8601)" format(date-time)
// @Param        to_date query string false "Receipt date to (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]finance.ReceiptResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	var filter financeapp.ReceiptListFilter
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

	items, total, err := h.receiptService.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a draft receipt
// @Description  Edit the reference and remarks of a receipt still in draft
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Param        request body finance.UpdateReceiptRequest true "Receipt update request"
// @Success      200 {object} dto.Response{data=finance.ReceiptResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req financeapp.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), receiptID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Submit godoc
// @Summary      Submit a receipt for approval
// @Description  Move a draft receipt into the first approval tier
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.ReceiptResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id}/submit [post]
func (h *ReceiptHandler) Submit(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	receipt, err := h.receiptService.SubmitReceipt(c.Request.Context(), receiptID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Approve godoc
// @Summary      Approve a receipt
// @Description  Record the caller's approval tier decision on a pending receipt
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Param        request body ApprovalDecisionRequest false "Decision remarks"
// @Success      200 {object} dto.Response{data=finance.ReceiptResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id}/approve [post]
func (h *ReceiptHandler) Approve(c *gin.Context) {
	receiptID, userID, role, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.ApproveReceipt(c.Request.Context(), receiptID, userID, role, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Reject godoc
// @Summary      Reject a receipt
// @Description  Reject a pending receipt; remarks are mandatory
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id path string true "Receipt ID" format(uuid)
// @Param        request body ApprovalDecisionRequest true "Decision remarks"
// @Success      200 {object} dto.Response{data=finance.ReceiptResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /receipts/{id}/reject [post]
func (h *ReceiptHandler) Reject(c *gin.Context) {
	receiptID, userID, role, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.RejectReceipt(c.Request.Context(), receiptID, userID, role, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

