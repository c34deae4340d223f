package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"lawdesk/models"

	"github.com/hibiken/asynq"
)

// Task types handled by the notification worker.
const (
	TypeBookingConfirmed = "booking:confirmed"
	TypeEnquiryReceived  = "enquiry:received"
)

// QueueNotifications is the asynq queue every notification task goes to.
const QueueNotifications = "notifications"

const maxRetry = 5

func defaultOptions() []asynq.Option {
	return []asynq.Option{asynq.Queue(QueueNotifications), asynq.MaxRetry(maxRetry)}
}

func NewBookingConfirmedTask(bookingID string) (*asynq.Task, error) {
	b, err := json.Marshal(models.BookingNotificationPayload{BookingID: bookingID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingConfirmed, b, defaultOptions()...), nil
}

func NewEnquiryReceivedTask(enquiryID string) (*asynq.Task, error) {
	b, err := json.Marshal(models.EnquiryNotificationPayload{EnquiryID: enquiryID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEnquiryReceived, b, defaultOptions()...), nil
}

func ParseBookingConfirmed(task *asynq.Task) (models.BookingNotificationPayload, error) {
	var p models.BookingNotificationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeBookingConfirmed, err)
	}
	if p.BookingID == "" {
		return p, fmt.Errorf("invalid %s payload: missing bookingId", TypeBookingConfirmed)
	}
	return p, nil
}

func ParseEnquiryReceived(task *asynq.Task) (models.EnquiryNotificationPayload, error) {
	var p models.EnquiryNotificationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeEnquiryReceived, err)
	}
	if p.EnquiryID == "" {
		return p, fmt.Errorf("invalid %s payload: missing enquiryId", TypeEnquiryReceived)
	}
	return p, nil
}

// Enqueuer hands tasks to the queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task) error
}

type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) Enqueue(ctx context.Context, task *asynq.Task) error {
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	return nil
}
