package payment

import (
	"context"
	"errors"

	"lawdesk/models"
)

var (
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrGatewayDisabled  = errors.New("payment gateway is not configured")
)

// Gateway opens hosted checkouts and reports on them.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, input models.CheckoutInput) (*models.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*models.PaymentEvent, error)
}
