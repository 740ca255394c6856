package repository

import (
	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/app/models"
)

// programRepository implements the ProgramRepository interface
type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new program repository instance
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) CreateDay(day *models.EventDay) error {
	return r.db.Create(day).Error
}

func (r *programRepository) UpdateDay(day *models.EventDay) error {
	return r.db.Save(day).Error
}

func (r *programRepository) DeleteDay(id string) error {
	// Rooms are scoped to a day; drop them with it.
	if err := r.db.Delete(&models.Room{}, "day_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.EventDay{}, "id = ?", id).Error
}

func (r *programRepository) GetDays() ([]models.EventDay, error) {
	var days []models.EventDay
	err := r.db.Preload("Rooms").Order("position ASC, date ASC").Find(&days).Error
	return days, err
}

func (r *programRepository) GetDayByID(id string) (*models.EventDay, error) {
	var day models.EventDay
	err := r.db.Preload("Rooms").First(&day, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *programRepository) CreateTrack(track *models.Track) error {
	return r.db.Create(track).Error
}

func (r *programRepository) UpdateTrack(track *models.Track) error {
	return r.db.Save(track).Error
}

func (r *programRepository) DeleteTrack(id string) error {
	return r.db.Delete(&models.Track{}, "id = ?", id).Error
}

func (r *programRepository) GetTracks() ([]models.Track, error) {
	var tracks []models.Track
	err := r.db.Order("name ASC").Find(&tracks).Error
	return tracks, err
}

func (r *programRepository) CreateRoom(room *models.Room) error {
	return r.db.Create(room).Error
}

func (r *programRepository) UpdateRoom(room *models.Room) error {
	return r.db.Save(room).Error
}

func (r *programRepository) DeleteRoom(id string) error {
	return r.db.Delete(&models.Room{}, "id = ?", id).Error
}

func (r *programRepository) GetRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *programRepository) CreateSession(session *models.Session) error {
	return r.db.Create(session).Error
}

func (r *programRepository) UpdateSession(session *models.Session) error {
	return r.db.Save(session).Error
}

func (r *programRepository) DeleteSession(id string) error {
	return r.db.Delete(&models.Session{}, "id = ?", id).Error
}

func (r *programRepository) GetSessionByID(id string) (*models.Session, error) {
	var session models.Session
	err := r.db.Preload("Day").Preload("Track").Preload("Room").
		First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *programRepository) GetSessions(dayID string) ([]models.Session, error) {
	query := r.db.Preload("Day").Preload("Track").Preload("Room").
		Order("starts_at ASC")
	if dayID != "" {
		query = query.Where("day_id = ?", dayID)
	}

	var sessions []models.Session
	err := query.Find(&sessions).Error
	return sessions, err
}
