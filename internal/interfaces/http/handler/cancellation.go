package handler

import (
	financeapp "github.com/estatebooks/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CancellationHandler handles sale cancellation API endpoints
type CancellationHandler struct {
	BaseHandler
	cancellationService *financeapp.CancellationService
}

// NewCancellationHandler creates a new CancellationHandler
func NewCancellationHandler(cancellationService *financeapp.CancellationService) *CancellationHandler {
	return &CancellationHandler{cancellationService: cancellationService}
}

// Create godoc
// @Summary      Request a sale cancellation
// @Description  Open a cancellation for a sale, fixing the refundable amount from what was paid
// @Tags         cancellations
// @Accept       json
// @Produce      json
// @Param        request body finance.CreateCancellationRequest true "Cancellation request"
// @Success      201 {object} dto.Response{data=finance.CancellationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cancellations [post]
func (h *CancellationHandler) Create(c *gin.Context) {
	var req financeapp.CreateCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	req.RequestedBy = &userID

	cancellation, err := h.cancellationService.CreateCancellation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, cancellation)
}

// GetByID godoc
// @Summary      Get cancellation by ID
// @Tags         cancellations
// @Produce      json
// @Param        id path string true "Cancellation ID" format(uuid)
// @Success      200 {object} dto.Response{data=finance.CancellationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cancellations/{id} [get]
func (h *CancellationHandler) GetByID(c *gin.Context) {
	cancellationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cancellation ID format")
		return
	}

	cancellation, err := h.cancellationService.GetCancellationByID(c.Request.Context(), cancellationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cancellation)
}

// List godoc
// @Summary      List cancellations
// @Tags         cancellations
// @Produce      json
// @Param        search query string false "Search term (cancellation number, sale number, client name)"
// @Param        sale_id query string false "Sale ID" format(uuid)
// @Param        status query string false "Cancellation status" Enums(PENDING, APPROVED, REJECTED, PARTIAL_REFUND, REFUNDED)
// @Param        from_date query string false "Requested from (ISO 8601)" format(date-time)
// @Param        to_date query string false "Requested to (ISO 8601)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]finance.CancellationResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /cancellations [get]
func (h *CancellationHandler) List(c *gin.Context) {
	var filter financeapp.CancellationListFilter
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

	items, total, err := h.cancellationService.ListCancellations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Approve godoc
// @Summary      Approve a cancellation
// @Description  Approve a pending cancellation, cancelling the sale and unlocking refund scheduling
// @Tags         cancellations
// @Accept       json
// @Produce      json
// @Param        id path string true "Cancellation ID" format(uuid)
// @Param        request body ApprovalDecisionRequest false "Decision remarks"
// @Success      200 {object} dto.Response{data=finance.CancellationResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cancellations/{id}/approve [post]
func (h *CancellationHandler) Approve(c *gin.Context) {
	cancellationID, userID, _, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	cancellation, err := h.cancellationService.ApproveCancellation(c.Request.Context(), cancellationID, userID, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cancellation)
}

// Reject godoc
// @Summary      Reject a cancellation
// @Description  Reject a pending cancellation; remarks are mandatory. The sale stays active.
// @Tags         cancellations
// @Accept       json
// @Produce      json
// @Param        id path string true "Cancellation ID" format(uuid)
// @Param        request body ApprovalDecisionRequest true "Decision remarks"
// @Success      200 {object} dto.Response{data=finance.CancellationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /cancellations/{id}/reject [post]
func (h *CancellationHandler) Reject(c *gin.Context) {
	cancellationID, userID, _, req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	cancellation, err := h.cancellationService.RejectCancellation(c.Request.Context(), cancellationID, userID, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cancellation)
}
