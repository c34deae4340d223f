package enquiryRepo

import (
	"context"
	"errors"

	"lawdesk/models"
)

var ErrEnquiryNotFound = errors.New("enquiry not found")

// EnquiryRepository persists contact-form submissions.
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id string) (*models.Enquiry, error)
	EnsureIndexes(ctx context.Context) error
}
