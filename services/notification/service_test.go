package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"lawdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to []string, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeMessenger struct {
	sent []string
	err  error
}

func (m *fakeMessenger) Send(_ context.Context, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, text)
	return nil
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID:                   "bk-1",
		ClientName:           "Ada Lovelace",
		ClientEmail:          "ada@example.com",
		PracticeArea:         "family-law",
		ConsultationDate:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		ConsultationTime:     "09:00",
		ConsultationDuration: models.Duration60,
		Amount:               15000,
		Currency:             "gbp",
	}
}

func TestNotifyBookingConfirmedAllChannels(t *testing.T) {
	mailer := &fakeMailer{}
	messenger := &fakeMessenger{}
	svc := NewDefaultNotificationService(mailer, messenger, "desk@firm.example", time.UTC)

	require.NoError(t, svc.NotifyBookingConfirmed(context.Background(), testBooking()))

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, []string{"ada@example.com"}, mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "Monday 10 June 2024 at 09:00")
	assert.Equal(t, []string{"desk@firm.example"}, mailer.sent[1].to)
	assert.Contains(t, mailer.sent[1].body, "150.00 GBP")
	require.Len(t, messenger.sent, 1)
	assert.Contains(t, messenger.sent[0], "Ada Lovelace")
}

func TestFanOutFailurePolicy(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		mailer    Mailer
		messenger Messenger
		wantErr   bool
	}{
		{name: "no channels configured", wantErr: false},
		{name: "one of two channels fails", mailer: &fakeMailer{err: boom}, messenger: &fakeMessenger{}, wantErr: false},
		{name: "every channel fails", mailer: &fakeMailer{err: boom}, messenger: &fakeMessenger{err: boom}, wantErr: true},
		{name: "only configured channel fails", messenger: &fakeMessenger{err: boom}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDefaultNotificationService(tt.mailer, tt.messenger, "desk@firm.example", time.UTC)
			err := svc.NotifyBookingConfirmed(context.Background(), testBooking())
			if tt.wantErr {
				assert.ErrorIs(t, err, boom)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotifyEnquiryReceived(t *testing.T) {
	mailer := &fakeMailer{}
	messenger := &fakeMessenger{}
	svc := NewDefaultNotificationService(mailer, messenger, "desk@firm.example", nil)

	enquiry := &models.Enquiry{ID: "enq-1", Name: "Grace", Email: "grace@example.com", Subject: "Lease", Message: "Can you review my lease?"}
	require.NoError(t, svc.NotifyEnquiryReceived(context.Background(), enquiry))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "New enquiry from Grace: Lease", mailer.sent[0].subject)
	require.Len(t, messenger.sent, 1)
	assert.Contains(t, messenger.sent[0], "Can you review my lease?")
}

func TestNotifyEnquiryWithoutFirmInboxSkipsEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewDefaultNotificationService(mailer, nil, "", time.UTC)

	require.NoError(t, svc.NotifyEnquiryReceived(context.Background(), &models.Enquiry{ID: "enq-2"}))
	assert.Empty(t, mailer.sent)
}

func TestDisabledChannelConstructors(t *testing.T) {
	assert.Nil(t, NewSMTPMailer(SMTPConfig{}))

	messenger, err := NewTelegramMessenger("", 0)
	assert.NoError(t, err)
	assert.Nil(t, messenger)
}
