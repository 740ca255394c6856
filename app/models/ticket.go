package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/internal/pkg/fint"
)

// Ticket is a local snapshot of a Fint ticket, kept for traceability and
// admin listings. The authoritative data lives upstream; snapshots are
// refreshed by webhook events and explicit syncs. The public tickets
// endpoint never reads from this table.
type Ticket struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID  string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"external_id"`
	Status      string         `gorm:"type:varchar(50);not null" json:"status"`
	QRURL       *string        `gorm:"type:varchar(512)" json:"qr_url"`
	PDFURL      *string        `gorm:"type:varchar(512)" json:"pdf_url"`
	EventName   string         `gorm:"type:varchar(255)" json:"event_name"`
	PurchasedAt *time.Time     `gorm:"type:timestamptz" json:"purchased_at"`
	UserEmail   string         `gorm:"type:varchar(200);index;not null" json:"user_email"`
	FirstName   *string        `gorm:"type:varchar(150)" json:"first_name"`
	LastName    *string        `gorm:"type:varchar(150)" json:"last_name"`
	Amount      string         `gorm:"type:varchar(50)" json:"amount"`
	Reference   string         `gorm:"type:varchar(100);index" json:"reference"`
	UserID      *string        `gorm:"type:uuid;index" json:"user_id"`
	RawData     datatypes.JSON `gorm:"type:jsonb" json:"-"` // full upstream payload
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TicketFromFint builds a snapshot from a unified upstream ticket. The raw
// payload is attached by the caller when available.
func TicketFromFint(src fint.Ticket, raw []byte) Ticket {
	t := Ticket{
		ExternalID:  src.ID,
		Status:      src.Status,
		QRURL:       src.QRURL,
		PDFURL:      src.PDFURL,
		EventName:   src.EventName,
		PurchasedAt: src.PurchasedAt,
		UserEmail:   src.UserEmail,
		FirstName:   src.FirstName,
		LastName:    src.LastName,
		Amount:      src.Amount,
		Reference:   src.Reference,
	}
	if len(raw) > 0 {
		t.RawData = datatypes.JSON(raw)
	}
	return t
}
