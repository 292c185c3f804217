package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymflow/internal/models/db_models"
)

type MemberRepository interface {
	Insert(ctx context.Context, member *db_models.Member) error
	FindByIdAndAccount(ctx context.Context, id, accountID uuid.UUID) (*db_models.Member, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (m *memberRepository) Insert(ctx context.Context, member *db_models.Member) error {
	return m.db.WithContext(ctx).Create(member).Error
}

// FindByIdAndAccount scopes the lookup to the owning account so one account
// can never reference another account's member.
func (m *memberRepository) FindByIdAndAccount(ctx context.Context, id, accountID uuid.UUID) (*db_models.Member, error) {
	var member db_models.Member
	err := m.db.WithContext(ctx).
		First(&member, "id = ? AND account_id = ?", id, accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (m *memberRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Member, error) {
	var members []db_models.Member
	err := m.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
