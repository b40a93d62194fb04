package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insurancelk_backend/internal/models"
	"insurancelk_backend/internal/repositories"
	"insurancelk_backend/internal/services"
	"insurancelk_backend/internal/services/dto"
	"insurancelk_backend/pkg/apperrors"
)

// AdminPaymentHandler serves the admin payment review surface.
type AdminPaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewAdminPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *AdminPaymentHandler {
	return &AdminPaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *AdminPaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/payments")
	{
		admin.GET("", h.GetAllPayments)
		admin.GET("/pending", h.GetPendingPayments)
		admin.GET("/search", h.SearchPayments)
		admin.GET("/stats", h.GetStatistics)
		admin.GET("/status/:status", h.GetPaymentsByStatus)
		admin.GET("/:paymentId", h.GetPayment)
		admin.POST("/:paymentId/approve", h.ApprovePayment)
		admin.POST("/:paymentId/reject", h.RejectPayment)
		admin.PUT("/:paymentId/status", h.UpdatePaymentStatus)
		admin.POST("/bulk/approve", h.BulkApprove)
	}
}

// GetAllPayments returns the full payment list together with the
// aggregate statistics so the admin dashboard needs a single call.
func (h *AdminPaymentHandler) GetAllPayments(c *gin.Context) {
	payments, err := h.paymentService.GetAllPayments()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	stats, err := h.paymentService.GetStatistics()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":   payments,
		"statistics": stats,
	})
}

func (h *AdminPaymentHandler) GetPendingPayments(c *gin.Context) {
	payments, err := h.paymentService.GetPaymentsByStatus(string(models.PaymentStatusPending))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *AdminPaymentHandler) GetPayment(c *gin.Context) {
	paymentID, ok := h.RequireParam(c, "paymentId")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(paymentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *AdminPaymentHandler) GetPaymentsByStatus(c *gin.Context) {
	status, ok := h.RequireParam(c, "status")
	if !ok {
		return
	}

	payments, err := h.paymentService.GetPaymentsByStatus(status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *AdminPaymentHandler) SearchPayments(c *gin.Context) {
	var criteria repositories.PaymentCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	payments, err := h.paymentService.SearchPayments(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *AdminPaymentHandler) GetStatistics(c *gin.Context) {
	stats, err := h.paymentService.GetStatistics()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminPaymentHandler) ApprovePayment(c *gin.Context) {
	paymentID, ok := h.RequireParam(c, "paymentId")
	if !ok {
		return
	}

	// comments are optional on approve, so an empty body is fine
	var req dto.ApprovePaymentRequest
	_ = c.ShouldBind(&req)

	payment, err := h.paymentService.ApprovePayment(paymentID, req.AdminComments)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *AdminPaymentHandler) RejectPayment(c *gin.Context) {
	paymentID, ok := h.RequireParam(c, "paymentId")
	if !ok {
		return
	}

	var req dto.RejectPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.paymentService.RejectPayment(paymentID, req.AdminComments)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// UpdatePaymentStatus moves a payment to APPROVED or REJECTED based on
// the requested status.
func (h *AdminPaymentHandler) UpdatePaymentStatus(c *gin.Context) {
	paymentID, ok := h.RequireParam(c, "paymentId")
	if !ok {
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	var (
		payment *dto.PaymentResponse
		err     error
	)
	switch models.PaymentStatus(req.Status) {
	case models.PaymentStatusApproved:
		payment, err = h.paymentService.ApprovePayment(paymentID, req.AdminComments)
	case models.PaymentStatusRejected:
		payment, err = h.paymentService.RejectPayment(paymentID, req.AdminComments)
	default:
		h.HandleServiceError(c, apperrors.NewBadRequestError("Status must be APPROVED or REJECTED"))
		return
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *AdminPaymentHandler) BulkApprove(c *gin.Context) {
	var req dto.BulkApproveRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.paymentService.BulkApprove(req.PaymentIDs, req.AdminComments)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
