package response_models

import "github.com/google/uuid"

type MemberResponse struct {
	ID       uuid.UUID        `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Payments []PaymentSummary `json:"payments"`
}
