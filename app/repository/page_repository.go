package repository

import (
	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/app/models"
)

// pageRepository implements the PageRepository interface
type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new page repository instance
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(page *models.Page) error {
	return r.db.Create(page).Error
}

func (r *pageRepository) Update(page *models.Page) error {
	return r.db.Save(page).Error
}

func (r *pageRepository) Delete(id string) error {
	return r.db.Delete(&models.Page{}, "id = ?", id).Error
}

func (r *pageRepository) GetByID(id string) (*models.Page, error) {
	var page models.Page
	err := r.db.First(&page, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) GetBySlug(slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.Where("slug = ? AND visible = ?", slug, true).First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) GetAll() ([]models.Page, error) {
	var pages []models.Page
	err := r.db.Order("position ASC").Find(&pages).Error
	return pages, err
}

func (r *pageRepository) GetVisible() ([]models.Page, error) {
	var pages []models.Page
	err := r.db.Where("visible = ?", true).Order("position ASC").Find(&pages).Error
	return pages, err
}

func (r *pageRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Page{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
