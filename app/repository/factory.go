package repository

import (
	"sync"

	"gorm.io/gorm"

	"github.com/ferialink/FeriaLink/internal/pkg/database"
)

// RepositoryFactory provides access to all repositories
type RepositoryFactory struct {
	db *gorm.DB

	pageRepo       PageRepository
	postRepo       PostRepository
	programRepo    ProgramRepository
	standRepo      StandRepository
	ticketRepo     TicketRepository
	newsletterRepo NewsletterRepository
	userRepo       UserRepository
}

var (
	globalFactory *RepositoryFactory
	factoryOnce   sync.Once
)

// NewRepositoryFactory creates a factory bound to the given DB handle.
func NewRepositoryFactory(db *gorm.DB) *RepositoryFactory {
	return &RepositoryFactory{
		db:             db,
		pageRepo:       NewPageRepository(db),
		postRepo:       NewPostRepository(db),
		programRepo:    NewProgramRepository(db),
		standRepo:      NewStandRepository(db),
		ticketRepo:     NewTicketRepository(db),
		newsletterRepo: NewNewsletterRepository(db),
		userRepo:       NewUserRepository(db),
	}
}

// GetGlobalFactory returns the process-wide factory bound to the default
// database connection.
func GetGlobalFactory() *RepositoryFactory {
	factoryOnce.Do(func() {
		globalFactory = NewRepositoryFactory(database.GetDB())
	})
	return globalFactory
}

func (f *RepositoryFactory) GetPageRepository() PageRepository { return f.pageRepo }

func (f *RepositoryFactory) GetPostRepository() PostRepository { return f.postRepo }

func (f *RepositoryFactory) GetProgramRepository() ProgramRepository { return f.programRepo }

func (f *RepositoryFactory) GetStandRepository() StandRepository { return f.standRepo }

func (f *RepositoryFactory) GetTicketRepository() TicketRepository { return f.ticketRepo }

func (f *RepositoryFactory) GetNewsletterRepository() NewsletterRepository { return f.newsletterRepo }

func (f *RepositoryFactory) GetUserRepository() UserRepository { return f.userRepo }
