package models

import (
	"time"

	"github.com/khaynem/WasteWise-Backend/pkg/utils"
	"gorm.io/gorm"
)

type Listing struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID        string   `gorm:"type:text;index" json:"user"`
	SellerName    string   `json:"sellerName"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Category      string   `json:"category"`
	ContactNumber string   `json:"contactNumber"`
	Location      string   `json:"location"`
	ImageLinks    []string `gorm:"serializer:json" json:"imageLinks"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = utils.GenerateID()
	}
	return nil
}

type ListingComment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ListingID  string `gorm:"type:text;index" json:"listingId"`
	Author     string `gorm:"type:text" json:"author"`
	AuthorName string `gorm:"default:'Anonymous'" json:"authorName"`
	Comment    string `json:"comment"`
}

func (c *ListingComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateID()
	}
	return nil
}

// ListingMetric aggregates favorites for one listing. LikedBy keeps the
// user ids so the toggle endpoint can report per-user liked state.
type ListingMetric struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ListingID string   `gorm:"type:text;uniqueIndex" json:"listingId"`
	Favorites int      `gorm:"default:0" json:"favorites"`
	LikedBy   []string `gorm:"serializer:json" json:"likedBy"`
}

func (m *ListingMetric) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateID()
	}
	return nil
}
