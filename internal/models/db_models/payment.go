package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is one monetary transaction against the gateway. A row is created
// when an order is minted and moves created -> paid (or created -> failed)
// exactly once; settled rows are never rewound.
type Payment struct {
	BaseModel
	Amount   float64 // major currency units, not gateway paise
	Currency string  `gorm:"size:3;default:'INR'"`

	AccountID uuid.UUID  `gorm:"index"`
	MemberID  *uuid.UUID `gorm:"index"` // nil for subscription payments

	IsSubscription bool
	PlanID         *string `gorm:"size:32"`

	GatewayOrderID   string `gorm:"uniqueIndex"`
	GatewayPaymentID *string
	Status           PaymentStatus `gorm:"size:16;index;default:'created'"`

	// Raw gateway order snapshot kept for traceability
	Receipt datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account `gorm:"foreignKey:AccountID"`
	Member  *Member `gorm:"foreignKey:MemberID"`
}
