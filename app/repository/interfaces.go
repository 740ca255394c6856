package repository

import (
	"time"

	"github.com/ferialink/FeriaLink/app/models"
)

// PageRepository manages the dynamically-configurable navigation pages.
type PageRepository interface {
	Create(page *models.Page) error
	Update(page *models.Page) error
	Delete(id string) error
	GetByID(id string) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetAll() ([]models.Page, error)
	GetVisible() ([]models.Page, error)
	SlugExists(slug string) (bool, error)
}

// PostRepository manages feed posts.
type PostRepository interface {
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id string) error
	GetByID(id string) (*models.Post, error)
	GetAll() ([]models.Post, error)
	// GetPublished returns published posts, pinned first then newest
	// first, with offset pagination.
	GetPublished(limit, offset int) ([]models.Post, int64, error)
}

// ProgramRepository manages days, tracks, rooms and sessions.
type ProgramRepository interface {
	CreateDay(day *models.EventDay) error
	UpdateDay(day *models.EventDay) error
	DeleteDay(id string) error
	GetDays() ([]models.EventDay, error)
	GetDayByID(id string) (*models.EventDay, error)

	CreateTrack(track *models.Track) error
	UpdateTrack(track *models.Track) error
	DeleteTrack(id string) error
	GetTracks() ([]models.Track, error)

	CreateRoom(room *models.Room) error
	UpdateRoom(room *models.Room) error
	DeleteRoom(id string) error
	GetRooms() ([]models.Room, error)

	CreateSession(session *models.Session) error
	UpdateSession(session *models.Session) error
	DeleteSession(id string) error
	GetSessionByID(id string) (*models.Session, error)
	// GetSessions returns sessions ordered by start time, optionally
	// filtered by day.
	GetSessions(dayID string) ([]models.Session, error)
}

// StandRepository manages exhibitor stands.
type StandRepository interface {
	Create(stand *models.Stand) error
	Update(stand *models.Stand) error
	Delete(id string) error
	GetByID(id string) (*models.Stand, error)
	// GetAll returns stands ordered by name, optionally filtered by type.
	GetAll(standType string) ([]models.Stand, error)
}

// TicketRepository manages local snapshots of upstream tickets.
type TicketRepository interface {
	// Upsert inserts or refreshes a snapshot keyed by external id.
	Upsert(ticket *models.Ticket) error
	GetByExternalID(externalID string) (*models.Ticket, error)
	GetByUserEmail(email string) ([]models.Ticket, error)
	GetAll(limit, offset int) ([]models.Ticket, int64, error)
}

// NewsletterRepository manages newsletter opt-ins.
type NewsletterRepository interface {
	Create(sub *models.NewsletterSubscription) error
	EmailExists(email string) (bool, error)
	GetAll() ([]models.NewsletterSubscription, error)
}

// UserRepository manages application users and their OAuth identities.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// FindOrCreateByProvider resolves an OAuth identity to a user,
	// creating user and link on first login.
	FindOrCreateByProvider(provider, providerUserID, email, name, avatarURL string) (*models.User, error)
	TouchLastLogin(id string, at time.Time) error
}
