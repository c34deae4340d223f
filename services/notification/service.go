package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lawdesk/models"
	"lawdesk/utils"

	"go.uber.org/zap"
)

// DefaultNotificationService fans a notification out to every configured
// channel. A nil Mailer or Messenger disables that channel.
type DefaultNotificationService struct {
	mailer    Mailer
	messenger Messenger
	firmInbox string
	loc       *time.Location
}

func NewDefaultNotificationService(mailer Mailer, messenger Messenger, firmInbox string, loc *time.Location) *DefaultNotificationService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultNotificationService{
		mailer:    mailer,
		messenger: messenger,
		firmInbox: firmInbox,
		loc:       loc,
	}
}

type delivery struct {
	channel string
	send    func(ctx context.Context) error
}

func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, b *models.Booking) error {
	when := fmt.Sprintf("%s at %s (%s)", b.ConsultationDate.In(s.loc).Format("Monday 2 January 2006"), b.ConsultationTime, b.ConsultationDuration)

	var deliveries []delivery
	if s.mailer != nil {
		deliveries = append(deliveries, delivery{"email:client", func(ctx context.Context) error {
			body := fmt.Sprintf(
				"Dear %s,\n\nYour %s consultation is confirmed for %s.\nReference: %s\n\nWe look forward to speaking with you.\n",
				b.ClientName, b.PracticeArea, when, b.ID)
			return s.mailer.Send(ctx, []string{b.ClientEmail}, "Your consultation is confirmed", body)
		}})
		if s.firmInbox != "" {
			deliveries = append(deliveries, delivery{"email:firm", func(ctx context.Context) error {
				return s.mailer.Send(ctx, []string{s.firmInbox}, "New paid consultation: "+b.ClientName, bookingSummary(b, when))
			}})
		}
	}
	if s.messenger != nil {
		deliveries = append(deliveries, delivery{"telegram", func(ctx context.Context) error {
			return s.messenger.Send(ctx, "New paid consultation\n"+bookingSummary(b, when))
		}})
	}

	return s.fanOut(ctx, "booking_confirmed", b.ID, deliveries)
}

func (s *DefaultNotificationService) NotifyEnquiryReceived(ctx context.Context, e *models.Enquiry) error {
	var deliveries []delivery
	if s.mailer != nil && s.firmInbox != "" {
		deliveries = append(deliveries, delivery{"email:firm", func(ctx context.Context) error {
			subject := "New enquiry from " + e.Name
			if e.Subject != "" {
				subject += ": " + e.Subject
			}
			return s.mailer.Send(ctx, []string{s.firmInbox}, subject, enquirySummary(e))
		}})
	}
	if s.messenger != nil {
		deliveries = append(deliveries, delivery{"telegram", func(ctx context.Context) error {
			return s.messenger.Send(ctx, "New enquiry\n"+enquirySummary(e))
		}})
	}

	return s.fanOut(ctx, "enquiry_received", e.ID, deliveries)
}

// fanOut attempts every delivery and fails only when all of them failed.
func (s *DefaultNotificationService) fanOut(ctx context.Context, kind, id string, deliveries []delivery) error {
	logger := utils.GetLogger().With(zap.String("notification", kind), zap.String("id", id))
	if len(deliveries) == 0 {
		logger.Warn("No notification channels configured, skipping")
		return nil
	}

	var errs []error
	for _, d := range deliveries {
		if err := d.send(ctx); err != nil {
			logger.Error("Notification delivery failed", zap.String("channel", d.channel), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", d.channel, err))
			continue
		}
		logger.Info("Notification delivered", zap.String("channel", d.channel))
	}

	if len(errs) == len(deliveries) {
		return errors.Join(errs...)
	}
	return nil
}

func bookingSummary(b *models.Booking, when string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Client: %s <%s>\n", b.ClientName, b.ClientEmail)
	if b.ClientPhone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", b.ClientPhone)
	}
	fmt.Fprintf(&sb, "Practice area: %s\n", b.PracticeArea)
	fmt.Fprintf(&sb, "When: %s\n", when)
	fmt.Fprintf(&sb, "Paid: %.2f %s\n", float64(b.Amount)/100, strings.ToUpper(b.Currency))
	if b.Notes != "" {
		fmt.Fprintf(&sb, "Notes: %s\n", b.Notes)
	}
	fmt.Fprintf(&sb, "Reference: %s\n", b.ID)
	return sb.String()
}

func enquirySummary(e *models.Enquiry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s <%s>\n", e.Name, e.Email)
	if e.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s\n", e.Phone)
	}
	if e.Source != "" {
		fmt.Fprintf(&sb, "Page: %s\n", e.Source)
	}
	fmt.Fprintf(&sb, "\n%s\n", e.Message)
	return sb.String()
}
