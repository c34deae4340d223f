package enquiry

import (
	"context"
	"fmt"
	"strings"
	"time"

	enquiryRepo "lawdesk/database/repository/enquiry"
	"lawdesk/models"
	"lawdesk/services/tasks"
	"lawdesk/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnquiryService records contact-form submissions.
type EnquiryService interface {
	Submit(ctx context.Context, req models.EnquiryRequest) (*models.Enquiry, error)
}

type DefaultEnquiryService struct {
	repo     enquiryRepo.EnquiryRepository
	enqueuer tasks.Enqueuer
	now      func() time.Time
}

func NewDefaultEnquiryService(repo enquiryRepo.EnquiryRepository, enqueuer tasks.Enqueuer) *DefaultEnquiryService {
	return &DefaultEnquiryService{repo: repo, enqueuer: enqueuer, now: time.Now}
}

// Submit stores the enquiry and queues the staff alert. The enquiry is kept
// even when the alert cannot be queued.
func (s *DefaultEnquiryService) Submit(ctx context.Context, req models.EnquiryRequest) (*models.Enquiry, error) {
	logger := utils.GetLogger()

	source := req.Source
	if source == "" {
		source = "contact"
	}
	e := &models.Enquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Source:    source,
		Status:    models.EnquiryStatusNew,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to save enquiry: %w", err)
	}

	task, err := tasks.NewEnquiryReceivedTask(e.ID)
	if err == nil {
		err = s.enqueuer.Enqueue(ctx, task)
	}
	if err != nil {
		logger.Error("Failed to enqueue enquiry notification", zap.String("enquiryId", e.ID), zap.Error(err))
	}

	logger.Info("Enquiry received", zap.String("enquiryId", e.ID), zap.String("source", e.Source))
	return e, nil
}
