package models

import (
	"time"

	"github.com/khaynem/WasteWise-Backend/pkg/utils"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportResolved ReportStatus = "resolved"
)

// Default report coordinates: Olongapo City.
const (
	DefaultReportLat = 14.8292
	DefaultReportLng = 120.2828
)

type Report struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title        string       `json:"title"`
	Reporter     string       `gorm:"type:text;index" json:"reporter"`
	ReporterName string       `gorm:"default:'Anonymous'" json:"reporterName"`
	Images       []string     `gorm:"serializer:json" json:"image"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Lat          float64      `json:"lat"`
	Lng          float64      `json:"lng"`
	Date         time.Time    `json:"date"`
	Status       ReportStatus `gorm:"type:text;default:'pending'" json:"reportStatus"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.GenerateID()
	}
	if r.Lat == 0 && r.Lng == 0 {
		r.Lat = DefaultReportLat
		r.Lng = DefaultReportLng
	}
	return nil
}
