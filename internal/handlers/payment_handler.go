package handlers

import (
	"net/http"

	"payment-relay/internal/services"
	"payment-relay/pkg/common"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Payments *services.PaymentService
	Gateway  services.Gateway
}

func NewPaymentHandler(payments *services.PaymentService, gateway services.Gateway) *PaymentHandler {
	return &PaymentHandler{Payments: payments, Gateway: gateway}
}

type CreatePaymentRequest struct {
	Amount   int64                  `json:"amount"`
	Currency string                 `json:"currency"`
	UserID   string                 `json:"userId"`
	Metadata map[string]interface{} `json:"metadata"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	data, err := h.Payments.Create(services.CreatePaymentDTO{
		Amount:   req.Amount,
		Currency: req.Currency,
		UserID:   req.UserID,
		Metadata: req.Metadata,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

func (h *PaymentHandler) Status(c *gin.Context) {
	data, err := h.Payments.Status(c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(data))
}

type ListPaymentMethodsRequest struct {
	Currency string `json:"currency"`
}

func (h *PaymentHandler) ListPaymentMethods(c *gin.Context) {
	var req ListPaymentMethodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body", err.Error()))
		return
	}
	if req.Currency == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("currency is required", nil))
		return
	}

	result, err := h.Gateway.ListPaymentMethods(req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result.Raw))
}

type VerifyReceiverRequest struct {
	EmailOrPhone string `json:"email_or_phone"`
}

func (h *PaymentHandler) VerifyReceiver(c *gin.Context) {
	var req VerifyReceiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body", err.Error()))
		return
	}
	if req.EmailOrPhone == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("email_or_phone is required", nil))
		return
	}

	result, err := h.Gateway.VerifyReceiver(req.EmailOrPhone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(result.Raw))
}
