package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// FeePayments creates payment intents for the dispatch fee when it is not
// waived. The client secret is handed to the web widget only.
type FeePayments interface {
	CreateDispatchFeeIntent(ctx context.Context, jobID string, amountCents int64) (string, error)
}

// StripeFeePayments is the production implementation.
type StripeFeePayments struct {
	logger *zap.Logger
}

func NewStripeFeePayments(logger *zap.Logger) *StripeFeePayments {
	return &StripeFeePayments{logger: logger}
}

func (p *StripeFeePayments) CreateDispatchFeeIntent(ctx context.Context, jobID string, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx
	params.AddMetadata("jobId", jobID)
	params.AddMetadata("purpose", "dispatch_fee")

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create dispatch fee intent: %w", err)
	}
	p.logger.Info("created dispatch fee intent",
		zap.String("jobId", jobID), zap.Int64("amountCents", amountCents))
	return pi.ClientSecret, nil
}

// NoFeePayments disables fee collection; bookings still succeed.
type NoFeePayments struct{}

func (NoFeePayments) CreateDispatchFeeIntent(context.Context, string, int64) (string, error) {
	return "", nil
}
