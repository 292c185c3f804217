package response_models

import "github.com/google/uuid"

type OrderResponse struct {
	OrderID   string    `json:"orderId"`
	Amount    int64     `json:"amount"` // minor units, as the gateway reports it
	Currency  string    `json:"currency"`
	PaymentID uuid.UUID `json:"paymentId"`
}

type PaymentSummary struct {
	ID     uuid.UUID `json:"id"`
	Amount float64   `json:"amount"`
	Status string    `json:"status"`
}

type SubscriptionInfo struct {
	ValidTill     string `json:"validTill"`
	PlanID        string `json:"planId"`
	DaysRemaining int    `json:"daysRemaining"`
}

type VerifyPaymentResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	Payment      PaymentSummary    `json:"payment"`
	Subscription *SubscriptionInfo `json:"subscription,omitempty"`
}

type SubscriptionStatusResponse struct {
	IsActive      bool   `json:"isActive"`
	IsSubscribed  bool   `json:"isSubscribed"`
	ValidTill     string `json:"validTill,omitempty"`
	PlanID        string `json:"planId,omitempty"`
	DaysRemaining int    `json:"daysRemaining,omitempty"`
	Message       string `json:"message,omitempty"`
}

type DeactivateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RecentPayment struct {
	ID            uuid.UUID `json:"id"`
	Member        string    `json:"member"`
	User          string    `json:"user"`
	Amount        float64   `json:"amount"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	Plan          string    `json:"plan"`
	PaymentMethod string    `json:"paymentMethod"`
}
