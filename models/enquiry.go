package models

import "time"

const (
	EnquiryStatusNew      = "new"
	EnquiryStatusRead     = "read"
	EnquiryStatusArchived = "archived"
)

// Enquiry is a contact-form submission.
type Enquiry struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string    `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Source    string    `bson:"source" json:"source"` // contact, service or location page
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type EnquiryRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=40"`
	Subject string `json:"subject" binding:"omitempty,max=200"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
	Source  string `json:"source" binding:"omitempty,oneof=contact service location"`
}
