package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gymflow/internal/catalog"
	"gymflow/internal/gateway"
	dbm "gymflow/internal/models/db_models"
	"gymflow/internal/models/request_models"
	"gymflow/internal/repositories"
	"gymflow/pkg/utils"
)

const testSecret = "test_key_secret"

type fakeGateway struct {
	calls   int
	failErr error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error) {
	f.calls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	return &gateway.Order{
		ID:       fmt.Sprintf("order_%d", f.calls),
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "gymflow.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&dbm.Account{}, &dbm.Member{}, &dbm.Payment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newPaymentService(t *testing.T) (PaymentServiceInterface, *gorm.DB, *fakeGateway) {
	t.Helper()

	db := newTestDB(t)
	gw := &fakeGateway{}
	cfg := gateway.Config{KeyID: "rzp_test_key", KeySecret: testSecret, ProviderName: "razorpay"}
	svc := NewPaymentService(db, gw, cfg,
		repositories.NewAccountRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewPaymentRepository(db))
	return svc, db, gw
}

func createAccount(t *testing.T, db *gorm.DB, email string) *dbm.Account {
	t.Helper()

	account := &dbm.Account{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "irrelevant",
		Role:         dbm.RoleUser,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func reloadAccount(t *testing.T, db *gorm.DB, id uuid.UUID) *dbm.Account {
	t.Helper()

	var account dbm.Account
	if err := db.First(&account, "id = ?", id).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	return &account
}

func reloadPayment(t *testing.T, db *gorm.DB, orderID string) *dbm.Payment {
	t.Helper()

	var payment dbm.Payment
	if err := db.First(&payment, "gateway_order_id = ?", orderID).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}
	return &payment
}

func countPayments(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&dbm.Payment{}).Count(&n).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	return n
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	svc, db, gw := newPaymentService(t)
	account := createAccount(t, db, "amount@mail.com")
	ctx := context.Background()

	for _, amount := range []float64{0, -499} {
		_, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{Amount: amount})
		if !errors.Is(err, utils.ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}

	if gw.calls != 0 {
		t.Fatalf("gateway contacted %d times for invalid amounts", gw.calls)
	}
	if n := countPayments(t, db); n != 0 {
		t.Fatalf("expected no payment rows, got %d", n)
	}
}

func TestCreateOrderGatewayFailureWritesNothing(t *testing.T) {
	svc, db, gw := newPaymentService(t)
	account := createAccount(t, db, "gwfail@mail.com")
	gw.failErr = errors.New("provider unavailable")

	_, err := svc.CreateOrder(context.Background(), account.ID, request_models.CreateOrderRequest{Amount: 499})
	if !errors.Is(err, utils.ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}
	if n := countPayments(t, db); n != 0 {
		t.Fatalf("expected no payment rows after gateway failure, got %d", n)
	}
}

func TestCreateOrderPersistsCreatedPayment(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "order@mail.com")

	resp, err := svc.CreateOrder(context.Background(), account.ID, request_models.CreateOrderRequest{
		Amount:         499,
		IsSubscription: true,
		PlanID:         "basic",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if resp.OrderID != "order_1" {
		t.Fatalf("unexpected order id %q", resp.OrderID)
	}
	if resp.Amount != 49900 {
		t.Fatalf("expected 49900 paise, got %d", resp.Amount)
	}
	if resp.Currency != "INR" {
		t.Fatalf("expected INR default, got %q", resp.Currency)
	}

	payment := reloadPayment(t, db, resp.OrderID)
	if payment.Status != dbm.PaymentStatusCreated {
		t.Fatalf("expected status created, got %q", payment.Status)
	}
	if payment.AccountID != account.ID {
		t.Fatal("payment not linked to the ordering account")
	}
	if payment.PlanID == nil || *payment.PlanID != "basic" {
		t.Fatalf("plan id not captured: %v", payment.PlanID)
	}
	if payment.GatewayPaymentID != nil {
		t.Fatal("gateway payment id must be empty before settlement")
	}
}

func TestVerifyTamperedSignatureMutatesNothing(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "tamper@mail.com")
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{
		Amount: 499, IsSubscription: true, PlanID: "basic",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.VerifyPayment(ctx, account.ID, request_models.VerifyPaymentRequest{
		OrderID:        resp.OrderID,
		PaymentID:      "pay_1",
		Signature:      gateway.SignPayload("wrong_secret", resp.OrderID, "pay_1"),
		IsSubscription: true,
		PlanID:         "basic",
	})
	if !errors.Is(err, utils.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	payment := reloadPayment(t, db, resp.OrderID)
	if payment.Status != dbm.PaymentStatusCreated {
		t.Fatalf("payment mutated on bad signature: %q", payment.Status)
	}
	if account := reloadAccount(t, db, account.ID); account.IsSubscribed {
		t.Fatal("account subscribed despite invalid signature")
	}
}

func TestVerifyOrderOfAnotherAccountNotFound(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	owner := createAccount(t, db, "owner@mail.com")
	intruder := createAccount(t, db, "intruder@mail.com")
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, owner.ID, request_models.CreateOrderRequest{
		Amount: 499, IsSubscription: true, PlanID: "basic",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.VerifyPayment(ctx, intruder.ID, request_models.VerifyPaymentRequest{
		OrderID:        resp.OrderID,
		PaymentID:      "pay_1",
		Signature:      gateway.SignPayload(testSecret, resp.OrderID, "pay_1"),
		IsSubscription: true,
		PlanID:         "basic",
	})
	if !errors.Is(err, utils.ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound for cross-account verify, got %v", err)
	}

	if payment := reloadPayment(t, db, resp.OrderID); payment.Status != dbm.PaymentStatusCreated {
		t.Fatalf("owner's payment mutated by intruder: %q", payment.Status)
	}
}

func TestVerifyActivatesSubscriptionEndToEnd(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "e2e@mail.com")
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{
		Amount: 499, IsSubscription: true, PlanID: "basic",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	verify, err := svc.VerifyPayment(ctx, account.ID, request_models.VerifyPaymentRequest{
		OrderID:        order.OrderID,
		PaymentID:      "pay_1",
		Signature:      gateway.SignPayload(testSecret, order.OrderID, "pay_1"),
		IsSubscription: true,
		PlanID:         "basic",
	})
	if err != nil {
		t.Fatalf("verify payment: %v", err)
	}

	if verify.Payment.Status != string(dbm.PaymentStatusPaid) {
		t.Fatalf("expected paid summary, got %q", verify.Payment.Status)
	}
	if verify.Subscription == nil {
		t.Fatal("expected subscription info on activation")
	}
	if d := verify.Subscription.DaysRemaining; d < 29 || d > 30 {
		t.Fatalf("daysRemaining %d not within 1 of 30", d)
	}

	payment := reloadPayment(t, db, order.OrderID)
	if payment.Status != dbm.PaymentStatusPaid {
		t.Fatalf("expected paid row, got %q", payment.Status)
	}
	if payment.GatewayPaymentID == nil || *payment.GatewayPaymentID != "pay_1" {
		t.Fatalf("gateway payment id not stored: %v", payment.GatewayPaymentID)
	}

	reloaded := reloadAccount(t, db, account.ID)
	if !reloaded.IsSubscribed || reloaded.SubscriptionValidTill == nil {
		t.Fatal("account not activated")
	}
	want := time.Now().AddDate(0, 0, 30).Unix()
	if got := *reloaded.SubscriptionValidTill; got < want-5 || got > want+5 {
		t.Fatalf("expiry %d not close to now+30d (%d)", got, want)
	}

	status, err := svc.GetSubscriptionStatus(ctx, account.ID)
	if err != nil {
		t.Fatalf("subscription status: %v", err)
	}
	if !status.IsActive {
		t.Fatal("expected active subscription")
	}
	if status.PlanID != "basic" {
		t.Fatalf("expected planId basic, got %q", status.PlanID)
	}
	if d := status.DaysRemaining; d < 29 || d > 30 {
		t.Fatalf("status daysRemaining %d not within 1 of 30", d)
	}
}

func TestDaysRemainingMatchesCatalogForAllPlans(t *testing.T) {
	ctx := context.Background()

	for _, plan := range catalog.List() {
		svc, db, _ := newPaymentService(t)
		account := createAccount(t, db, plan.ID+"@mail.com")

		order, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{
			Amount: plan.Price, IsSubscription: true, PlanID: plan.ID,
		})
		if err != nil {
			t.Fatalf("plan %s: create order: %v", plan.ID, err)
		}

		_, err = svc.VerifyPayment(ctx, account.ID, request_models.VerifyPaymentRequest{
			OrderID:        order.OrderID,
			PaymentID:      "pay_" + plan.ID,
			Signature:      gateway.SignPayload(testSecret, order.OrderID, "pay_"+plan.ID),
			IsSubscription: true,
			PlanID:         plan.ID,
		})
		if err != nil {
			t.Fatalf("plan %s: verify: %v", plan.ID, err)
		}

		status, err := svc.GetSubscriptionStatus(ctx, account.ID)
		if err != nil {
			t.Fatalf("plan %s: status: %v", plan.ID, err)
		}
		if d := status.DaysRemaining; d < plan.DurationDays-1 || d > plan.DurationDays {
			t.Fatalf("plan %s: daysRemaining %d not within 1 of %d", plan.ID, d, plan.DurationDays)
		}
	}
}

func TestVerifyUnknownPlanFallsBackTo30Days(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "fallback@mail.com")
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{
		Amount: 750, IsSubscription: true, PlanID: "gold",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	verify, err := svc.VerifyPayment(ctx, account.ID, request_models.VerifyPaymentRequest{
		OrderID:        order.OrderID,
		PaymentID:      "pay_1",
		Signature:      gateway.SignPayload(testSecret, order.OrderID, "pay_1"),
		IsSubscription: true,
		PlanID:         "gold",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verify.Subscription == nil || verify.Subscription.DaysRemaining != catalog.DefaultDurationDays {
		t.Fatalf("expected %d-day fallback window, got %+v", catalog.DefaultDurationDays, verify.Subscription)
	}
}

func TestVerifyReplayDoesNotExtendExpiry(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "replay@mail.com")
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{
		Amount: 499, IsSubscription: true, PlanID: "basic",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	req := request_models.VerifyPaymentRequest{
		OrderID:        order.OrderID,
		PaymentID:      "pay_1",
		Signature:      gateway.SignPayload(testSecret, order.OrderID, "pay_1"),
		IsSubscription: true,
		PlanID:         "basic",
	}

	if _, err := svc.VerifyPayment(ctx, account.ID, req); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	firstExpiry := *reloadAccount(t, db, account.ID).SubscriptionValidTill

	replay, err := svc.VerifyPayment(ctx, account.ID, req)
	if err != nil {
		t.Fatalf("replayed verify: %v", err)
	}
	if replay.Message != "Payment already verified" {
		t.Fatalf("unexpected replay message %q", replay.Message)
	}
	if replay.Subscription == nil || replay.Subscription.PlanID != "basic" {
		t.Fatalf("replay lost subscription info: %+v", replay.Subscription)
	}

	if got := *reloadAccount(t, db, account.ID).SubscriptionValidTill; got != firstExpiry {
		t.Fatalf("expiry moved on replay: %d -> %d", firstExpiry, got)
	}
}

func TestVerifyMemberPaymentStampsMember(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "memberpay@mail.com")
	ctx := context.Background()

	member := &dbm.Member{Name: "Gym Member", Email: "m@mail.com", AccountID: account.ID}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}

	order, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{Amount: 150})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	req := request_models.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_1",
		Signature: gateway.SignPayload(testSecret, order.OrderID, "pay_1"),
		MemberID:  member.ID.String(),
	}
	verify, err := svc.VerifyPayment(ctx, account.ID, req)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verify.Subscription != nil {
		t.Fatal("member payment must not touch the subscription")
	}

	payment := reloadPayment(t, db, order.OrderID)
	if payment.MemberID == nil || *payment.MemberID != member.ID {
		t.Fatalf("payment not stamped with member: %v", payment.MemberID)
	}
	if account := reloadAccount(t, db, account.ID); account.IsSubscribed {
		t.Fatal("member payment activated a subscription")
	}

	// replay must not create a second reference
	if _, err := svc.VerifyPayment(ctx, account.ID, req); err != nil {
		t.Fatalf("replayed verify: %v", err)
	}
	var n int64
	if err := db.Model(&dbm.Payment{}).Where("member_id = ?", member.ID).Count(&n).Error; err != nil {
		t.Fatalf("count member payments: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 member payment, got %d", n)
	}
}

func TestVerifyMemberOfAnotherAccountNotFound(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "payer@mail.com")
	other := createAccount(t, db, "other@mail.com")
	ctx := context.Background()

	foreign := &dbm.Member{Name: "Foreign", Email: "f@mail.com", AccountID: other.ID}
	if err := db.Create(foreign).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}

	order, err := svc.CreateOrder(ctx, account.ID, request_models.CreateOrderRequest{Amount: 150})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.VerifyPayment(ctx, account.ID, request_models.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_1",
		Signature: gateway.SignPayload(testSecret, order.OrderID, "pay_1"),
		MemberID:  foreign.ID.String(),
	})
	if !errors.Is(err, utils.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
	if payment := reloadPayment(t, db, order.OrderID); payment.Status != dbm.PaymentStatusCreated {
		t.Fatalf("payment settled despite foreign member: %q", payment.Status)
	}
}

func TestStatusExpiredSubscriptionInactive(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "expired@mail.com")

	past := time.Now().AddDate(0, 0, -1).Unix()
	if err := db.Model(&dbm.Account{}).Where("id = ?", account.ID).Updates(map[string]interface{}{
		"is_subscribed":           true,
		"subscription_valid_till": past,
	}).Error; err != nil {
		t.Fatalf("seed expired subscription: %v", err)
	}

	status, err := svc.GetSubscriptionStatus(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.IsActive {
		t.Fatal("expired subscription reported active")
	}
	if !status.IsSubscribed {
		t.Fatal("flag should still be reported for expired subscriptions")
	}
}

func TestDeactivateThenStatus(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "deactivate@mail.com")
	ctx := context.Background()

	validTill := time.Now().AddDate(0, 0, 30).Unix()
	if err := db.Model(&dbm.Account{}).Where("id = ?", account.ID).Updates(map[string]interface{}{
		"is_subscribed":           true,
		"subscription_valid_till": validTill,
	}).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	// deactivation is idempotent
	for i := 0; i < 2; i++ {
		if _, err := svc.DeactivateSubscription(ctx, account.ID); err != nil {
			t.Fatalf("deactivate #%d: %v", i+1, err)
		}
	}

	reloaded := reloadAccount(t, db, account.ID)
	if reloaded.IsSubscribed || reloaded.SubscriptionValidTill != nil {
		t.Fatalf("account still carries a window: subscribed=%v validTill=%v",
			reloaded.IsSubscribed, reloaded.SubscriptionValidTill)
	}

	status, err := svc.GetSubscriptionStatus(ctx, account.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.IsActive || status.IsSubscribed || status.ValidTill != "" {
		t.Fatalf("expected fully cleared status, got %+v", status)
	}
}

func TestRecentPaymentsLimitAndLabels(t *testing.T) {
	svc, db, _ := newPaymentService(t)
	account := createAccount(t, db, "recent@mail.com")
	ctx := context.Background()

	member := &dbm.Member{Name: "Billed Member", Email: "bm@mail.com", AccountID: account.ID}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}

	for i := 0; i < 12; i++ {
		req := request_models.CreateOrderRequest{Amount: float64(100 + i)}
		if i == 0 {
			req.IsSubscription = true
			req.PlanID = "pro"
		}
		if i == 1 {
			req.MemberID = member.ID.String()
		}
		if _, err := svc.CreateOrder(ctx, account.ID, req); err != nil {
			t.Fatalf("create order %d: %v", i, err)
		}
	}

	// push the member payment to the top of the feed; all rows otherwise
	// share the same creation second
	if err := db.Model(&dbm.Payment{}).Where("member_id = ?", member.ID).
		Update("created_at", time.Now().Unix()+60).Error; err != nil {
		t.Fatalf("bump member payment: %v", err)
	}

	rows, err := svc.RecentPayments(ctx)
	if err != nil {
		t.Fatalf("recent payments: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}

	sawOneTime, sawMember := false, false
	for _, row := range rows {
		if row.User != "Test User" {
			t.Fatalf("unexpected user label %q", row.User)
		}
		if row.PaymentMethod != "Card" {
			t.Fatalf("unexpected payment method %q", row.PaymentMethod)
		}
		if row.Date == "" {
			t.Fatal("missing formatted date")
		}
		if row.Plan == "One-time Payment" {
			sawOneTime = true
		}
		if row.Member == "Billed Member" {
			sawMember = true
		}
	}
	if !sawOneTime {
		t.Fatal("expected one-time payment label in recent rows")
	}
	if !sawMember {
		t.Fatal("expected member name join in recent rows")
	}
}
