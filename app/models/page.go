package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Page types drive frontend dispatch: module pages render a built-in view,
// CUSTOM pages render their content blocks.
const (
	PageTypeFeed     = "FEED"
	PageTypePrograma = "PROGRAMA"
	PageTypeEntradas = "ENTRADAS"
	PageTypeStands   = "STANDS"
	PageTypeCustom   = "CUSTOM"
)

// Page is a navigable section of the app, configured by editors. Visible
// pages ordered by position make up the bottom navigation menu.
type Page struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Slug      string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"required,min=1,max=255"`
	Type      string         `gorm:"type:varchar(50);not null" json:"type" validate:"required,oneof=FEED PROGRAMA ENTRADAS STANDS CUSTOM"`
	Icon      string         `gorm:"type:varchar(100);not null" json:"icon" validate:"required"`
	Visible   bool           `gorm:"default:true" json:"visible"`
	Position  int            `gorm:"uniqueIndex;not null" json:"position"`
	Config    datatypes.JSON `gorm:"type:jsonb" json:"config"`
	Blocks    datatypes.JSON `gorm:"type:jsonb" json:"blocks"` // CUSTOM pages only
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// pageIcons is the static set of icon names the frontend ships. Icons are
// resolved by enumerated name, never by runtime reflection.
var pageIcons = map[string]bool{
	"Home":      true,
	"Calendar":  true,
	"Ticket":    true,
	"Store":     true,
	"Map":       true,
	"Info":      true,
	"Newspaper": true,
	"Users":     true,
	"Star":      true,
	"Link":      true,
}

// ValidPageIcon reports whether the icon name is part of the shipped set.
func ValidPageIcon(name string) bool {
	return pageIcons[name]
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Page) Validate() error {
	v := validator.New()
	if err := v.Struct(p); err != nil {
		return err
	}
	if !ValidPageIcon(p.Icon) {
		return ErrUnknownIcon
	}
	return nil
}

// MenuItem is the projection of a visible page into the navigation menu.
type MenuItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
	Icon string `json:"icon"`
}

// MenuItem returns the page's navigation entry.
func (p *Page) MenuItem() MenuItem {
	return MenuItem{
		Name: p.Title,
		Href: "/" + p.Slug,
		Icon: p.Icon,
	}
}
