package handler

import (
	billingapp "github.com/bricksflow/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles plans, checkout and subscription status
type SubscriptionHandler struct {
	BaseHandler
	subscriptions *billingapp.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptions *billingapp.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Plans godoc
// @ID           listPlans
// @Summary      List purchasable plans
// @Tags         subscription
// @Produce      json
// @Success      200 {object} APIResponse[[]billingapp.PlanResponse]
// @Security     BearerAuth
// @Router       /subscription/plans [get]
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	h.Success(c, h.subscriptions.Plans())
}

// Status godoc
// @ID           getSubscriptionStatus
// @Summary      Subscription status of the caller's factory
// @Tags         subscription
// @Produce      json
// @Success      200 {object} APIResponse[factoryapp.SubscriptionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscription/status [get]
func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	status, err := h.subscriptions.Status(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// CreateOrder godoc
// @ID           createSubscriptionOrder
// @Summary      Start a checkout
// @Description  Creates a payment order for a plan. Mock mode returns a mock order without calling the gateway.
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreateOrderRequest true "Plan or amount"
// @Success      200 {object} APIResponse[billingapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscription/create-order [post]
func (h *SubscriptionHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req billingapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.subscriptions.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Complete godoc
// @ID           completeSubscriptionPayment
// @Summary      Complete a checkout
// @Description  Verifies the payment signature and activates the plan on the caller's factory
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CompletePaymentRequest true "Checkout result"
// @Success      200 {object} APIResponse[factoryapp.SubscriptionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscription/complete [post]
func (h *SubscriptionHandler) Complete(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req billingapp.CompletePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	status, err := h.subscriptions.Complete(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// Restore godoc
// @ID           restoreSubscription
// @Summary      Restore purchases
// @Description  Re-derives the subscription status from the stored plan
// @Tags         subscription
// @Produce      json
// @Success      200 {object} APIResponse[factoryapp.SubscriptionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscription/restore [post]
func (h *SubscriptionHandler) Restore(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	status, err := h.subscriptions.Restore(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}
