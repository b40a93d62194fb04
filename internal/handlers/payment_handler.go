package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"insurancelk_backend/internal/services"
	"insurancelk_backend/internal/services/dto"
	"insurancelk_backend/pkg/apperrors"
)

// PaymentHandler serves the policyholder payment surface.
type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
	maxUploadSize  int64
	allowedTypes   []string
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService, maxUploadSize int64, allowedTypes []string) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
		maxUploadSize:  maxUploadSize,
		allowedTypes:   allowedTypes,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		payments.POST("", h.CreatePayment)
		payments.GET("/bank-details", h.GetBankDetails)
		payments.GET("/history/:userId", h.GetPaymentHistory)
		payments.GET("/pending/:userId", h.GetPendingPayments)
		payments.GET("/policies/:userId", h.GetUserPoliciesWithPayments)
		payments.GET("/:paymentId", h.GetPayment)
		payments.PUT("/:paymentId", h.UpdatePayment)
		payments.DELETE("/:paymentId", h.DeletePayment)
		payments.POST("/:paymentId/upload-slip", h.UploadBankSlip)
	}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.paymentService.CreatePayment(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
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

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	paymentID, ok := h.RequireParam(c, "paymentId")
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	payment, err := h.paymentService.UpdatePayment(paymentID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	paymentID, ok := h.RequireParam(c, "paymentId")
	if !ok {
		return
	}

	if err := h.paymentService.DeletePayment(paymentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

func (h *PaymentHandler) UploadBankSlip(c *gin.Context) {
	paymentID, ok := h.RequireParam(c, "paymentId")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Bank slip file is required"))
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		apperrors.HandleError(c, apperrors.NewBadRequestError(
			fmt.Sprintf("File exceeds the maximum allowed size of %d bytes", h.maxUploadSize)))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !h.typeAllowed(contentType) {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Unsupported file type: "+contentType))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.IOError(err, "Failed to read uploaded file"))
		return
	}
	defer file.Close()

	payment, err := h.paymentService.UploadBankSlip(c.Request.Context(), paymentID, fileHeader.Filename, contentType, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetPaymentHistory(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	payments, err := h.paymentService.GetPaymentHistory(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetPendingPayments(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	payments, err := h.paymentService.GetPendingPayments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetUserPoliciesWithPayments(c *gin.Context) {
	userID, ok := h.RequireParam(c, "userId")
	if !ok {
		return
	}

	policies, err := h.paymentService.GetUserPoliciesWithPayments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, policies)
}

func (h *PaymentHandler) GetBankDetails(c *gin.Context) {
	c.JSON(http.StatusOK, h.paymentService.GetBankDetails())
}

func (h *PaymentHandler) typeAllowed(contentType string) bool {
	if len(h.allowedTypes) == 0 {
		return true
	}
	for _, t := range h.allowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
