package repository

import (
	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/app/models"
)

// standRepository implements the StandRepository interface
type standRepository struct {
	db *gorm.DB
}

// NewStandRepository creates a new stand repository instance
func NewStandRepository(db *gorm.DB) StandRepository {
	return &standRepository{db: db}
}

func (r *standRepository) Create(stand *models.Stand) error {
	return r.db.Create(stand).Error
}

func (r *standRepository) Update(stand *models.Stand) error {
	return r.db.Save(stand).Error
}

func (r *standRepository) Delete(id string) error {
	return r.db.Delete(&models.Stand{}, "id = ?", id).Error
}

func (r *standRepository) GetByID(id string) (*models.Stand, error) {
	var stand models.Stand
	err := r.db.First(&stand, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &stand, nil
}

func (r *standRepository) GetAll(standType string) ([]models.Stand, error) {
	query := r.db.Order("name ASC")
	if standType != "" {
		query = query.Where("type = ?", standType)
	}

	var stands []models.Stand
	err := query.Find(&stands).Error
	return stands, err
}
