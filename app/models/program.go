package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventDay is one day of the event program.
type EventDay struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Position  int       `gorm:"default:0" json:"position"`
	Rooms     []Room    `gorm:"foreignKey:DayID" json:"rooms,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Track groups sessions by topic across days.
type Track struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Room is a physical room, scoped to a day.
type Room struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	DayID     *string   `gorm:"type:uuid;index" json:"day_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Session is a talk or activity in the program.
type Session struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Abstract     string         `gorm:"type:text" json:"abstract"`
	DayID        *string        `gorm:"type:uuid;index" json:"day_id"`
	Day          *EventDay      `gorm:"foreignKey:DayID" json:"day,omitempty"`
	TrackID      *string        `gorm:"type:uuid;index" json:"track_id"`
	Track        *Track         `gorm:"foreignKey:TrackID" json:"track,omitempty"`
	RoomID       *string        `gorm:"type:uuid;index" json:"room_id"`
	Room         *Room          `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	StartsAt     time.Time      `gorm:"type:timestamptz;not null" json:"starts_at" validate:"required"`
	EndsAt       time.Time      `gorm:"type:timestamptz;not null" json:"ends_at" validate:"required"`
	IsPlenary    bool           `gorm:"default:false" json:"is_plenary"`
	MaterialsURL string         `gorm:"type:varchar(512)" json:"materials_url" validate:"omitempty,url"`
	Speaker      datatypes.JSON `gorm:"type:jsonb" json:"speaker"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Speaker is the embedded presenter info of a session.
type Speaker struct {
	Name      string `json:"name,omitempty"`
	Title     string `json:"title,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func (d *EventDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Session) Validate() error {
	v := validator.New()
	if err := v.Struct(s); err != nil {
		return err
	}
	if !s.EndsAt.After(s.StartsAt) {
		return ErrSessionEndsBeforeStart
	}
	return nil
}

// SetSpeaker marshals the presenter info into the JSON column.
func (s *Session) SetSpeaker(sp Speaker) error {
	raw, err := json.Marshal(sp)
	if err != nil {
		return err
	}
	s.Speaker = datatypes.JSON(raw)
	return nil
}

// DecodeSpeaker unmarshals the JSON column into the typed presenter info.
func (s *Session) DecodeSpeaker() (Speaker, error) {
	var sp Speaker
	if len(s.Speaker) == 0 {
		return sp, nil
	}
	err := json.Unmarshal(s.Speaker, &sp)
	return sp, err
}
