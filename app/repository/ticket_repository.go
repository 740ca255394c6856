package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ferialink/FeriaLink/app/models"
)

// ticketRepository implements the TicketRepository interface
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository instance
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Upsert(ticket *models.Ticket) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "qr_url", "pdf_url", "event_name", "purchased_at",
			"user_email", "first_name", "last_name", "amount", "reference",
			"raw_data", "updated_at",
		}),
	}).Create(ticket).Error
}

func (r *ticketRepository) GetByExternalID(externalID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.First(&ticket, "external_id = ?", externalID).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByUserEmail(email string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("user_email = ?", email).
		Order("purchased_at DESC NULLS LAST").Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) GetAll(limit, offset int) ([]models.Ticket, int64, error) {
	var total int64
	if err := r.db.Model(&models.Ticket{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []models.Ticket
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&tickets).Error
	return tickets, total, err
}
