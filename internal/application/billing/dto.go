package billing

// PlanResponse describes a purchasable plan
type PlanResponse struct {
	ID            string `json:"id"`
	Days          int    `json:"days"`
	AmountInPaise int64  `json:"amount_in_paise"`
	Currency      string `json:"currency"`
}

// CreateOrderRequest starts a checkout for a plan
type CreateOrderRequest struct {
	AmountInPaise int64  `json:"amount_in_paise" binding:"omitempty,min=1"`
	PlanID        string `json:"plan_id" binding:"omitempty,oneof=monthly yearly"`
}

// OrderResponse is handed to the checkout widget
type OrderResponse struct {
	OrderID     string `json:"order_id"`
	RazorpayKey string `json:"razorpay_key"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

// CompletePaymentRequest carries the checkout result
type CompletePaymentRequest struct {
	PlanID            string `json:"plan_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
