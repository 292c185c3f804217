// Package gateway wraps the external payment provider. The workflow only
// depends on the Client interface, so tests substitute a fake without
// touching Razorpay.
package gateway

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

type Config struct {
	KeyID        string // public key id, e.g. rzp_test_xxx
	KeySecret    string // secret used both for API auth and signature HMAC
	ProviderName string // stored on payment records, "razorpay"
}

// Order is the provider-side order minted for one payment attempt.
type Order struct {
	ID       string
	Amount   int64 // minor units (paise)
	Currency string
	Receipt  string
}

type Client interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error)
}

type razorpayClient struct {
	api *razorpay.Client
}

func NewRazorpayClient(cfg Config) (Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("missing razorpay credentials")
	}
	return &razorpayClient{api: razorpay.NewClient(cfg.KeyID, cfg.KeySecret)}, nil
}

func (r *razorpayClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := r.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("razorpay order create: response has no order id")
	}

	return &Order{
		ID:       id,
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}
