package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post kinds. The body payload differs per kind; see PostBody.
const (
	PostKindTextImage = "TEXT_IMAGE"
	PostKindCarousel  = "CAROUSEL"
	PostKindYoutube   = "YOUTUBE"
	PostKindSpotify   = "SPOTIFY"
	PostKindLink      = "LINK"
)

// Post is a feed entry on the home page.
type Post struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Subtitle  string         `gorm:"type:varchar(255)" json:"subtitle" validate:"max=255"`
	Kind      string         `gorm:"type:varchar(50);not null" json:"kind" validate:"required,oneof=TEXT_IMAGE CAROUSEL YOUTUBE SPOTIFY LINK"`
	Body      datatypes.JSON `gorm:"type:jsonb" json:"body"`
	Pinned    bool           `gorm:"default:false" json:"pinned"`
	Published bool           `gorm:"default:true" json:"published"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostMedia is one image inside a TEXT_IMAGE or CAROUSEL body.
type PostMedia struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// PostBody is the kind-specific payload of a post.
type PostBody struct {
	Text      string      `json:"text,omitempty"`
	Medias    []PostMedia `json:"medias,omitempty"`
	YoutubeID string      `json:"youtubeId,omitempty"`
	SpotifyID string      `json:"spotifyId,omitempty"`
	LinkURL   string      `json:"linkUrl,omitempty"`
	LinkLabel string      `json:"linkLabel,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Post) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// SetBody marshals the kind-specific payload into the JSON column.
func (p *Post) SetBody(body PostBody) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	p.Body = datatypes.JSON(raw)
	return nil
}

// DecodeBody unmarshals the JSON column into the typed payload.
func (p *Post) DecodeBody() (PostBody, error) {
	var body PostBody
	if len(p.Body) == 0 {
		return body, nil
	}
	err := json.Unmarshal(p.Body, &body)
	return body, err
}
