package handlers

import (
	"net/http"
	"strconv"

	"payment-relay/internal/services"
	"payment-relay/pkg/common"

	"github.com/gin-gonic/gin"
)

type WithdrawalHandler struct {
	Withdrawals *services.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{Withdrawals: withdrawals}
}

type CreateWithdrawalRequest struct {
	EmailOrPhone         string `json:"email_or_phone"`
	Currency             string `json:"currency"`
	Amount               int64  `json:"amount"`
	PaymentMethodID      int    `json:"payment_method_id"`
	MoncashAccountNumber string `json:"moncash_account_number"`
	UserID               string `json:"userId"`
	UserEmail            string `json:"userEmail"`
}

func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body", err.Error()))
		return
	}

	view, err := h.Withdrawals.Create(services.CreateWithdrawalDTO{
		EmailOrPhone:         req.EmailOrPhone,
		Currency:             req.Currency,
		Amount:               req.Amount,
		PaymentMethodID:      req.PaymentMethodID,
		MoncashAccountNumber: req.MoncashAccountNumber,
		UserID:               req.UserID,
		UserEmail:            req.UserEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"id":     view.ID,
		"status": view.Status,
	}))
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("limit must be an integer", nil))
			return
		}
		limit = parsed
	}

	views, err := h.Withdrawals.List(c.Query("status"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(views))
}

type ApproveWithdrawalRequest struct {
	AdminID string `json:"adminId"`
}

func (h *WithdrawalHandler) Approve(c *gin.Context) {
	var req ApproveWithdrawalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body", err.Error()))
			return
		}
	}

	view, err := h.Withdrawals.Approve(c.Param("id"), req.AdminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(view))
}

type RejectWithdrawalRequest struct {
	Reason  string `json:"reason"`
	AdminID string `json:"adminId"`
}

func (h *WithdrawalHandler) Reject(c *gin.Context) {
	var req RejectWithdrawalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body", err.Error()))
			return
		}
	}

	view, err := h.Withdrawals.Reject(c.Param("id"), req.Reason, req.AdminID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(view))
}

func (h *WithdrawalHandler) GetStatus(c *gin.Context) {
	view, err := h.Withdrawals.GetStatus(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(view))
}

func (h *WithdrawalHandler) Stats(c *gin.Context) {
	stats, err := h.Withdrawals.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(stats))
}
