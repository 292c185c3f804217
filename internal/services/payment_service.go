package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"gymflow/internal/catalog"
	"gymflow/internal/gateway"
	dbm "gymflow/internal/models/db_models"
	"gymflow/internal/models/request_models"
	"gymflow/internal/models/response_models"
	"gymflow/internal/repositories"
	"gymflow/pkg/utils"
)

const recentPaymentsLimit = 10

type PaymentServiceInterface interface {
	CreateOrder(ctx context.Context, accountID uuid.UUID, request request_models.CreateOrderRequest) (*response_models.OrderResponse, error)
	VerifyPayment(ctx context.Context, accountID uuid.UUID, request request_models.VerifyPaymentRequest) (*response_models.VerifyPaymentResponse, error)
	GetSubscriptionStatus(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionStatusResponse, error)
	DeactivateSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.DeactivateResponse, error)
	RecentPayments(ctx context.Context) ([]response_models.RecentPayment, error)
}

type paymentService struct {
	db       *gorm.DB
	gateway  gateway.Client
	cfg      gateway.Config
	accounts repositories.AccountRepository
	members  repositories.MemberRepository
	payments repositories.PaymentRepository
}

func NewPaymentService(
	db *gorm.DB,
	gw gateway.Client,
	cfg gateway.Config,
	accounts repositories.AccountRepository,
	members repositories.MemberRepository,
	payments repositories.PaymentRepository,
) PaymentServiceInterface {
	return &paymentService{
		db:       db,
		gateway:  gw,
		cfg:      cfg,
		accounts: accounts,
		members:  members,
		payments: payments,
	}
}

func (p *paymentService) CreateOrder(ctx context.Context, accountID uuid.UUID, request request_models.CreateOrderRequest) (*response_models.OrderResponse, error) {
	if request.Amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}

	currency := strings.ToUpper(request.Currency)
	if currency == "" {
		currency = "INR"
	}

	var memberID *uuid.UUID
	if request.MemberID != "" {
		id, err := uuid.Parse(request.MemberID)
		if err != nil {
			return nil, utils.ErrMemberNotFound
		}
		memberID = &id
	}

	// Gateway works in minor units; sub-paisa fractions are rounded away.
	amountMinor := int64(math.Round(request.Amount * 100))
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())

	order, err := p.gateway.CreateOrder(ctx, amountMinor, currency, receipt)
	if err != nil {
		// No payment row is written for a failed gateway call.
		return nil, fmt.Errorf("%w: %v", utils.ErrGateway, err)
	}

	var planID *string
	if request.PlanID != "" {
		planID = &request.PlanID
	}

	payment := &dbm.Payment{
		Amount:         request.Amount,
		Currency:       currency,
		AccountID:      accountID,
		MemberID:       memberID,
		IsSubscription: request.IsSubscription,
		PlanID:         planID,
		GatewayOrderID: order.ID,
		Status:         dbm.PaymentStatusCreated,
		Receipt: jsonRaw(map[string]any{
			"order_id":     order.ID,
			"receipt":      order.Receipt,
			"amount_minor": order.Amount,
			"provider":     p.cfg.ProviderName,
		}),
	}

	if err := p.payments.Insert(ctx, payment); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.OrderResponse{
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		PaymentID: payment.ID,
	}, nil
}

func (p *paymentService) VerifyPayment(ctx context.Context, accountID uuid.UUID, request request_models.VerifyPaymentRequest) (*response_models.VerifyPaymentResponse, error) {
	if !gateway.VerifySignature(p.cfg.KeySecret, request.OrderID, request.PaymentID, request.Signature) {
		return nil, utils.ErrInvalidSignature
	}

	payment, err := p.payments.FindByOrderAndAccount(ctx, request.OrderID, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if payment == nil {
		return nil, utils.ErrPaymentNotFound
	}

	// A replayed confirmation settles nothing twice: the expiry stays where
	// the first verification put it.
	if payment.Status == dbm.PaymentStatusPaid {
		return p.replayResponse(ctx, accountID, payment)
	}

	activateSubscription := request.IsSubscription && request.PlanID != ""

	var member *dbm.Member
	if !activateSubscription && request.MemberID != "" {
		id, parseErr := uuid.Parse(request.MemberID)
		if parseErr != nil {
			return nil, utils.ErrMemberNotFound
		}
		member, err = p.members.FindByIdAndAccount(ctx, id, accountID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if member == nil {
			return nil, utils.ErrMemberNotFound
		}
	}

	now := time.Now()
	var subscription *response_models.SubscriptionInfo

	// Settlement and its secondary effect commit together, so a paid row can
	// never be left without its subscription window.
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dbm.Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]interface{}{
				"gateway_payment_id": request.PaymentID,
				"status":             dbm.PaymentStatusPaid,
			}).Error; err != nil {
			return err
		}

		switch {
		case activateSubscription:
			days := catalog.Duration(request.PlanID)
			expiry := now.AddDate(0, 0, days)
			if err := tx.Model(&dbm.Account{}).
				Where("id = ?", accountID).
				Updates(map[string]interface{}{
					"is_subscribed":           true,
					"subscription_valid_till": expiry.Unix(),
				}).Error; err != nil {
				return err
			}
			subscription = &response_models.SubscriptionInfo{
				ValidTill:     utils.FormatRFC3339(expiry),
				PlanID:        request.PlanID,
				DaysRemaining: utils.DaysRemaining(expiry, now),
			}
			log.WithFields(log.Fields{
				"account_id": accountID,
				"plan_id":    request.PlanID,
				"valid_till": expiry,
			}).Info("subscription activated")

		case member != nil:
			if err := tx.Model(&dbm.Payment{}).
				Where("id = ?", payment.ID).
				Update("member_id", member.ID).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.VerifyPaymentResponse{
		Status:  "success",
		Message: "Payment verified successfully",
		Payment: response_models.PaymentSummary{
			ID:     payment.ID,
			Amount: payment.Amount,
			Status: string(dbm.PaymentStatusPaid),
		},
		Subscription: subscription,
	}, nil
}

// replayResponse answers a duplicate verification with the already-settled
// payment and, for subscription payments, the current window as stored.
func (p *paymentService) replayResponse(ctx context.Context, accountID uuid.UUID, payment *dbm.Payment) (*response_models.VerifyPaymentResponse, error) {
	resp := &response_models.VerifyPaymentResponse{
		Status:  "success",
		Message: "Payment already verified",
		Payment: response_models.PaymentSummary{
			ID:     payment.ID,
			Amount: payment.Amount,
			Status: string(payment.Status),
		},
	}

	if payment.IsSubscription {
		account, err := p.accounts.FindById(ctx, accountID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if account != nil && account.IsSubscribed && account.SubscriptionValidTill != nil {
			expiry := utils.FromUnixSeconds(*account.SubscriptionValidTill)
			planID := ""
			if payment.PlanID != nil {
				planID = *payment.PlanID
			}
			resp.Subscription = &response_models.SubscriptionInfo{
				ValidTill:     utils.FormatRFC3339(expiry),
				PlanID:        planID,
				DaysRemaining: utils.DaysRemaining(expiry, time.Now()),
			}
		}
	}

	return resp, nil
}

func (p *paymentService) GetSubscriptionStatus(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionStatusResponse, error) {
	account, err := p.accounts.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	now := time.Now()
	var expiry time.Time
	if account.SubscriptionValidTill != nil {
		expiry = utils.FromUnixSeconds(*account.SubscriptionValidTill)
	}

	// Active means the flag is set AND the expiry is in the future; neither
	// alone grants access.
	active := account.IsSubscribed && expiry.After(now)
	if !active {
		return &response_models.SubscriptionStatusResponse{
			IsActive:     false,
			IsSubscribed: account.IsSubscribed,
			ValidTill:    utils.FormatRFC3339(expiry),
			Message:      "No active subscription found",
		}, nil
	}

	planID := ""
	latest, err := p.payments.LatestPaidSubscription(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if latest != nil && latest.PlanID != nil {
		planID = *latest.PlanID
	}

	return &response_models.SubscriptionStatusResponse{
		IsActive:      true,
		IsSubscribed:  true,
		ValidTill:     utils.FormatRFC3339(expiry),
		PlanID:        planID,
		DaysRemaining: utils.DaysRemaining(expiry, now),
	}, nil
}

func (p *paymentService) DeactivateSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.DeactivateResponse, error) {
	err := p.db.WithContext(ctx).Model(&dbm.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"is_subscribed":           false,
			"subscription_valid_till": nil,
		}).Error
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.DeactivateResponse{
		Status:  "success",
		Message: "Subscription deactivated",
	}, nil
}

func (p *paymentService) RecentPayments(ctx context.Context) ([]response_models.RecentPayment, error) {
	payments, err := p.payments.Recent(ctx, recentPaymentsLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	rows := make([]response_models.RecentPayment, 0, len(payments))
	for _, payment := range payments {
		userName := payment.Account.Name
		if userName == "" {
			userName = "Guest"
		}
		memberName := userName
		if payment.Member != nil && payment.Member.Name != "" {
			memberName = payment.Member.Name
		}
		plan := "One-time Payment"
		if payment.PlanID != nil && *payment.PlanID != "" {
			plan = *payment.PlanID
		}

		rows = append(rows, response_models.RecentPayment{
			ID:            payment.ID,
			Member:        memberName,
			User:          userName,
			Amount:        payment.Amount,
			Date:          utils.FormatDate(utils.FromUnixSeconds(payment.CreatedAt)),
			Status:        string(payment.Status),
			Plan:          plan,
			PaymentMethod: "Card",
		})
	}
	return rows, nil
}

func jsonRaw(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
