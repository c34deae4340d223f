package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "lawdesk/database/repository/booking"
	"lawdesk/models"
	"lawdesk/services/payment"
	"lawdesk/utils"

	"github.com/hibiken/asynq"
)

type memoryRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	err      error

	setSessionErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memoryRepo) put(b models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = &b
}

func (r *memoryRepo) get(id string) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.bookings[id]
}

func (r *memoryRepo) find(from, to time.Time, match func(*models.Booking) bool) ([]models.BookingSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.BookingSlot
	for _, b := range r.bookings {
		if b.ConsultationDate.Before(from) || !b.ConsultationDate.Before(to) || !match(b) {
			continue
		}
		out = append(out, models.BookingSlot{ConsultationTime: b.ConsultationTime, ConsultationDuration: b.ConsultationDuration})
	}
	return out, nil
}

func (r *memoryRepo) FindConfirmedInRange(_ context.Context, from, to time.Time) ([]models.BookingSlot, error) {
	return r.find(from, to, func(b *models.Booking) bool { return b.Status == models.BookingStatusCompleted })
}

func (r *memoryRepo) FindHoldsInRange(_ context.Context, from, to, since time.Time) ([]models.BookingSlot, error) {
	return r.find(from, to, func(b *models.Booking) bool {
		return b.Status == models.BookingStatusPending && !b.CreatedAt.Before(since)
	})
}

func (r *memoryRepo) Create(_ context.Context, b *models.Booking) error {
	if r.err != nil {
		return r.err
	}
	r.put(*b)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepo) GetByPaymentSession(_ context.Context, sessionID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentSessionID == sessionID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *memoryRepo) SetPaymentSession(_ context.Context, id, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setSessionErr != nil {
		return r.setSessionErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentSessionID = sessionID
	return nil
}

func (r *memoryRepo) TransitionStatus(_ context.Context, id, from, to string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = at
	if to == models.BookingStatusCompleted {
		b.ConfirmedAt = &at
	}
	return true, nil
}

func (r *memoryRepo) ConfirmHeld(_ context.Context, id string, heldSince, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingStatusPending || b.CreatedAt.Before(heldSince) {
		return false, nil
	}
	b.Status = models.BookingStatusCompleted
	b.UpdatedAt = at
	b.ConfirmedAt = &at
	return true, nil
}

func (r *memoryRepo) ExpireStale(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Status == models.BookingStatusPending && b.CreatedAt.Before(cutoff) {
			b.Status = models.BookingStatusExpired
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) EnsureIndexes(context.Context) error { return nil }

type fakeLocker struct {
	busy bool
	keys []string
}

func (l *fakeLocker) WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.keys = append(l.keys, key)
	if l.busy {
		return utils.ErrLockNotAcquired
	}
	return fn(ctx)
}

type fakeGateway struct {
	inputs   []models.CheckoutInput
	sessions map[string]*models.CheckoutSession
	event    *models.PaymentEvent
	err      error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, input models.CheckoutInput) (*models.CheckoutSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.inputs = append(g.inputs, input)
	sess := &models.CheckoutSession{
		ID:        "cs_" + input.BookingID,
		URL:       "https://checkout.stripe.test/" + input.BookingID,
		BookingID: input.BookingID,
	}
	if g.sessions == nil {
		g.sessions = make(map[string]*models.CheckoutSession)
	}
	g.sessions[sess.ID] = sess
	return sess, nil
}

func (g *fakeGateway) GetCheckoutSession(_ context.Context, id string) (*models.CheckoutSession, error) {
	sess, ok := g.sessions[id]
	if !ok {
		return nil, payment.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (g *fakeGateway) ParseWebhook(_ []byte, signature string) (*models.PaymentEvent, error) {
	if signature != "valid" {
		return nil, payment.ErrInvalidSignature
	}
	return g.event, nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (e *fakeEnqueuer) Enqueue(_ context.Context, task *asynq.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.tasks = append(e.tasks, task)
	return nil
}

func (e *fakeEnqueuer) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}

var errStore = errors.New("connection refused")
