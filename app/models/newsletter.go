package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsletterSubscription records an email opt-in from the public site.
type NewsletterSubscription struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"email" validate:"required,email"`
	TermsAccepted bool      `gorm:"not null" json:"terms_accepted" validate:"required"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *NewsletterSubscription) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

func (n *NewsletterSubscription) Validate() error {
	v := validator.New()
	return v.Struct(n)
}
