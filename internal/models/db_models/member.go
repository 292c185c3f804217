package db_models

import (
	"github.com/google/uuid"
)

// Member is a secondary gym profile managed (and paid for) by an account.
// Members never authenticate themselves.
type Member struct {
	BaseModel
	Name      string
	Email     string
	AccountID uuid.UUID `gorm:"index"`

	Account  Account   `gorm:"foreignKey:AccountID"`
	Payments []Payment `gorm:"foreignKey:MemberID"`
}
