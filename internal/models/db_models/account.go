package db_models

type AccountRole string

const (
	RoleUser  AccountRole = "user"
	RoleOwner AccountRole = "owner"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         AccountRole `gorm:"size:16;default:'user'"`

	// Subscription window. The account counts as subscribed only while
	// IsSubscribed is set AND SubscriptionValidTill (unix seconds) is in
	// the future.
	IsSubscribed          bool `gorm:"default:false"`
	SubscriptionValidTill *int64

	Members  []Member
	Payments []Payment
}
