package handler

import (
	financeapp "github.com/estatebooks/backend/internal/application/finance"
	"github.com/estatebooks/backend/internal/domain/approval"
	"github.com/gin-gonic/gin"
)

// ApprovalQueueHandler exposes the role-keyed approval work queue
type ApprovalQueueHandler struct {
	BaseHandler
	queueService *financeapp.ApprovalQueueService
}

// NewApprovalQueueHandler creates a new ApprovalQueueHandler
func NewApprovalQueueHandler(queueService *financeapp.ApprovalQueueService) *ApprovalQueueHandler {
	return &ApprovalQueueHandler{queueService: queueService}
}

// GetQueue godoc
// @Summary      Get the approval queue
// @Description  List receipts, expenses and refunds awaiting the caller's approval tier, most recently submitted first
// @Tags         approvals
// @Produce      json
// @Success      200 {object} dto.Response{data=[]finance.QueueItem}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /approvals/queue [get]
func (h *ApprovalQueueHandler) GetQueue(c *gin.Context) {
	role := getActorRole(c)
	if role == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.queueService.GetQueue(c.Request.Context(), approval.Role(role))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}
