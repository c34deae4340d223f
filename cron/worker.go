package cron

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "lawdesk/database/repository/booking"
	enquiryRepo "lawdesk/database/repository/enquiry"
	"lawdesk/models"
	"lawdesk/services/notification"
	"lawdesk/services/tasks"
	"lawdesk/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingLoader and EnquiryLoader are the reads the worker needs.
type BookingLoader interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

type EnquiryLoader interface {
	GetByID(ctx context.Context, id string) (*models.Enquiry, error)
}

// NotificationWorker consumes notification tasks from the queue.
type NotificationWorker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

func NewNotificationWorker(redisOpt asynq.RedisClientOpt, notifSvc notification.NotificationService, bookings BookingLoader, enquiries EnquiryLoader) *NotificationWorker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				tasks.QueueNotifications: 1,
			},
			Logger: newAsynqLogger(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingConfirmed, handleBookingConfirmed(notifSvc, bookings))
	mux.HandleFunc(tasks.TypeEnquiryReceived, handleEnquiryReceived(notifSvc, enquiries))

	return &NotificationWorker{srv: srv, mux: mux}
}

// Start runs the worker in the background.
func (w *NotificationWorker) Start() error {
	if err := w.srv.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start notification worker: %w", err)
	}
	utils.GetLogger().Info("Notification worker started", zap.String("queue", tasks.QueueNotifications))
	return nil
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleBookingConfirmed(notifSvc notification.NotificationService, bookings BookingLoader) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseBookingConfirmed(task)
		if err != nil {
			logger.Error("Dropping malformed task", zap.String("type", task.Type()), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				logger.Warn("Booking for notification no longer exists", zap.String("bookingId", p.BookingID))
				return fmt.Errorf("booking %s: %w", p.BookingID, asynq.SkipRetry)
			}
			return err
		}
		return notifSvc.NotifyBookingConfirmed(ctx, b)
	}
}

func handleEnquiryReceived(notifSvc notification.NotificationService, enquiries EnquiryLoader) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		p, err := tasks.ParseEnquiryReceived(task)
		if err != nil {
			logger.Error("Dropping malformed task", zap.String("type", task.Type()), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		e, err := enquiries.GetByID(ctx, p.EnquiryID)
		if err != nil {
			if errors.Is(err, enquiryRepo.ErrEnquiryNotFound) {
				logger.Warn("Enquiry for notification no longer exists", zap.String("enquiryId", p.EnquiryID))
				return fmt.Errorf("enquiry %s: %w", p.EnquiryID, asynq.SkipRetry)
			}
			return err
		}
		return notifSvc.NotifyEnquiryReceived(ctx, e)
	}
}

// asynqLogger routes the queue library's logs through zap.
type asynqLogger struct {
	s *zap.SugaredLogger
}

func newAsynqLogger() *asynqLogger {
	return &asynqLogger{s: utils.GetLogger().Named("asynq").Sugar()}
}

func (l *asynqLogger) Debug(args ...interface{}) { l.s.Debug(args...) }
func (l *asynqLogger) Info(args ...interface{})  { l.s.Info(args...) }
func (l *asynqLogger) Warn(args ...interface{})  { l.s.Warn(args...) }
func (l *asynqLogger) Error(args ...interface{}) { l.s.Error(args...) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.s.Fatal(args...) }
