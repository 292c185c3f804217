package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymflow/internal/models/request_models"
	"gymflow/internal/services"
	"gymflow/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// CreateOrder godoc
// @Summary Create a gateway order for a payment attempt
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateOrderRequest true "Order payload"
// @Success 200 {object} response_models.OrderResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /payment/order [post]
func (p *PaymentController) CreateOrder(c *gin.Context) {
	var req request_models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, err := currentAccountID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	resp, err := p.paymentService.CreateOrder(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyPayment godoc
// @Summary Verify a signed gateway confirmation and settle the payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.VerifyPaymentRequest true "Gateway confirmation"
// @Success 200 {object} response_models.VerifyPaymentResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /payment/verify [post]
func (p *PaymentController) VerifyPayment(c *gin.Context) {
	var req request_models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, err := currentAccountID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	resp, err := p.paymentService.VerifyPayment(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SubscriptionStatus godoc
// @Summary Report whether the caller's subscription is currently active
// @Tags Payments
// @Produce json
// @Success 200 {object} response_models.SubscriptionStatusResponse
// @Security BearerAuth
// @Router /payment/subscription/status [get]
func (p *PaymentController) SubscriptionStatus(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	resp, err := p.paymentService.GetSubscriptionStatus(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeactivateSubscription godoc
// @Summary Drop the caller's subscription window
// @Tags Payments
// @Produce json
// @Success 200 {object} response_models.DeactivateResponse
// @Security BearerAuth
// @Router /payment/subscription/deactivate [post]
func (p *PaymentController) DeactivateSubscription(c *gin.Context) {
	accountID, err := currentAccountID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	resp, err := p.paymentService.DeactivateSubscription(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecentPayments godoc
// @Summary List the 10 most recent payments system-wide
// @Tags Payments
// @Produce json
// @Success 200 {array} response_models.RecentPayment
// @Security BearerAuth
// @Router /payments/recent [get]
func (p *PaymentController) RecentPayments(c *gin.Context) {
	resp, err := p.paymentService.RecentPayments(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
