package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lawdesk/models"
	"lawdesk/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Stripe refuses checkout sessions that expire sooner than this.
const minCheckoutExpiry = 30 * time.Minute

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

// NewStripeGateway builds a gateway for the given secret key. baseURL is the
// public site the hosted page returns to.
func NewStripeGateway(secretKey, webhookSecret, baseURL string) *StripeGateway {
	var api *client.API
	if secretKey != "" {
		api = &client.API{}
		api.Init(secretKey, nil)
	}
	base := strings.TrimRight(baseURL, "/")
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
		successURL:    base + "/booking/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     base + "/booking/cancelled",
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, input models.CheckoutInput) (*models.CheckoutSession, error) {
	if g.api == nil {
		return nil, ErrGatewayDisabled
	}

	expiresIn := time.Duration(input.ExpiresInSecs) * time.Second
	if expiresIn < minCheckoutExpiry {
		expiresIn = minCheckoutExpiry
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		// Card only: delayed methods would settle after the slot hold lapses.
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(input.BookingID),
		ExpiresAt:         stripe.Int64(time.Now().Add(expiresIn).Unix()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(input.Currency)),
					UnitAmount: stripe.Int64(input.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(input.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if input.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(input.CustomerEmail)
	}
	params.AddMetadata("bookingId", input.BookingID)
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	utils.GetLogger().Info("Checkout session created",
		zap.String("bookingId", input.BookingID),
		zap.String("sessionId", sess.ID))
	return toCheckoutSession(sess), nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	if g.api == nil {
		return nil, ErrGatewayDisabled
	}
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve checkout session %s: %w", sessionID, err)
	}
	return toCheckoutSession(sess), nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes checkout
// session events. Events of any other kind come back with an empty Session.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*models.PaymentEvent, error) {
	if g.webhookSecret == "" {
		return nil, ErrGatewayDisabled
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &models.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if !strings.HasPrefix(out.Type, "checkout.session.") || event.Data == nil {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session from event %s: %w", event.ID, err)
	}
	out.Session = *toCheckoutSession(&sess)
	return out, nil
}

func toCheckoutSession(sess *stripe.CheckoutSession) *models.CheckoutSession {
	bookingID := sess.Metadata["bookingId"]
	if bookingID == "" {
		bookingID = sess.ClientReferenceID
	}
	return &models.CheckoutSession{
		ID:        sess.ID,
		URL:       sess.URL,
		BookingID: bookingID,
		Paid:      sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Status:    string(sess.Status),
	}
}
