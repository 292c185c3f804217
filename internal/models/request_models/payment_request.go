package request_models

type CreateOrderRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	Currency       string  `json:"currency"`
	MemberID       string  `json:"memberId"`
	IsSubscription bool    `json:"isSubscription"`
	PlanID         string  `json:"planId"`
}

// VerifyPaymentRequest carries the checkout confirmation exactly as the
// Razorpay client-side SDK hands it back.
type VerifyPaymentRequest struct {
	OrderID        string `json:"razorpay_order_id" binding:"required"`
	PaymentID      string `json:"razorpay_payment_id" binding:"required"`
	Signature      string `json:"razorpay_signature" binding:"required"`
	MemberID       string `json:"memberId"`
	IsSubscription bool   `json:"isSubscription"`
	PlanID         string `json:"planId"`
}
