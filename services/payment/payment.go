package payment

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"medicore/models"
	"medicore/utils"
)

// Service creates payment intents for orders and appointment deposits.
// Charge capture and webhooks live with the payment provider; this service
// only creates the intent and records its reference.
type Service interface {
	CreateIntent(amount float64, currency, description string) (*models.Payment, error)
}

// StripePaymentService implements Service against the Stripe API.
// stripe.Key must be set once at startup.
type StripePaymentService struct{}

func (s *StripePaymentService) CreateIntent(amount float64, currency, description string) (*models.Payment, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(math.Round(amount * 100))),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent failed: %w", err)
	}

	utils.GetLogger().Info("payment intent created",
		zap.String("intentId", pi.ID),
		zap.Float64("amount", amount),
		zap.String("currency", currency))

	return &models.Payment{
		Method:         "card",
		Status:         models.PaymentPending,
		Amount:         amount,
		Currency:       currency,
		StripeIntentID: pi.ID,
	}, nil
}
