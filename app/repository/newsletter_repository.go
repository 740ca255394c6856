package repository

import (
	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/app/models"
)

// newsletterRepository implements the NewsletterRepository interface
type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a new newsletter repository instance
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) Create(sub *models.NewsletterSubscription) error {
	return r.db.Create(sub).Error
}

func (r *newsletterRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.NewsletterSubscription{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *newsletterRepository) GetAll() ([]models.NewsletterSubscription, error) {
	var subs []models.NewsletterSubscription
	err := r.db.Order("created_at DESC").Find(&subs).Error
	return subs, err
}
