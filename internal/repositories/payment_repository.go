package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymflow/internal/models/db_models"
)

type PaymentRepository interface {
	Insert(ctx context.Context, payment *db_models.Payment) error
	// FindByOrderAndAccount matches on the (gateway order id, account) pair;
	// the dual key is the authorization boundary for settlement.
	FindByOrderAndAccount(ctx context.Context, gatewayOrderID string, accountID uuid.UUID) (*db_models.Payment, error)
	LatestPaidSubscription(ctx context.Context, accountID uuid.UUID) (*db_models.Payment, error)
	Recent(ctx context.Context, limit int) ([]db_models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (p *paymentRepository) Insert(ctx context.Context, payment *db_models.Payment) error {
	return p.db.WithContext(ctx).Create(payment).Error
}

func (p *paymentRepository) FindByOrderAndAccount(ctx context.Context, gatewayOrderID string, accountID uuid.UUID) (*db_models.Payment, error) {
	var payment db_models.Payment
	err := p.db.WithContext(ctx).
		First(&payment, "gateway_order_id = ? AND account_id = ?", gatewayOrderID, accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (p *paymentRepository) LatestPaidSubscription(ctx context.Context, accountID uuid.UUID) (*db_models.Payment, error) {
	var payment db_models.Payment
	err := p.db.WithContext(ctx).
		Where("account_id = ? AND is_subscription = ? AND status = ?",
			accountID, true, db_models.PaymentStatusPaid).
		Order("created_at DESC").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (p *paymentRepository) Recent(ctx context.Context, limit int) ([]db_models.Payment, error) {
	var payments []db_models.Payment
	err := p.db.WithContext(ctx).
		Preload("Account").
		Preload("Member").
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
