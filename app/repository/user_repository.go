package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindOrCreateByProvider(provider, providerUserID, email, name, avatarURL string) (*models.User, error) {
	var account models.ProviderAccount
	err := r.db.Preload("User").
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&account).Error
	if err == nil {
		return &account.User, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First login via this provider: attach to an existing user with the
	// same email, or create a fresh attendee account.
	user, err := r.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Name:      name,
			Email:     email,
			Role:      models.ROLE_USER,
			Status:    models.STATUS_ACTIVE,
			AvatarURL: avatarURL,
		}
		if err := r.db.Create(user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	link := models.ProviderAccount{
		UserID:         user.ID,
		Provider:       provider,
		ProviderUserID: providerUserID,
	}
	if err := r.db.Create(&link).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) TouchLastLogin(id string, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}
