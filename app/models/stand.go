package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stand types mirror the kinds of exhibitors at the event.
const (
	StandTypeInstituto = "instituto"
	StandTypeCarrera   = "carrera"
	StandTypePrograma  = "programa"
	StandTypeCurso     = "curso"
	StandTypeSponsor   = "sponsor"
	StandTypeOtro      = "otro"
)

// Stand is an exhibitor booth shown on the stands page.
type Stand struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Type        string         `gorm:"type:varchar(50);not null" json:"type" validate:"required,oneof=instituto carrera programa curso sponsor otro"`
	Description string         `gorm:"type:text" json:"description"`
	LogoURL     string         `gorm:"type:varchar(512)" json:"logo_url" validate:"omitempty,url"`
	Links       datatypes.JSON `gorm:"type:jsonb" json:"links"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// StandLink is one labeled external link of a stand.
type StandLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func (s *Stand) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Stand) Validate() error {
	v := validator.New()
	return v.Struct(s)
}

// SetLinks marshals the labeled links into the JSON column.
func (s *Stand) SetLinks(links []StandLink) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return err
	}
	s.Links = datatypes.JSON(raw)
	return nil
}

// DecodeLinks unmarshals the JSON column into typed links.
func (s *Stand) DecodeLinks() ([]StandLink, error) {
	if len(s.Links) == 0 {
		return nil, nil
	}
	var links []StandLink
	err := json.Unmarshal(s.Links, &links)
	return links, err
}
