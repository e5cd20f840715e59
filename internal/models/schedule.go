package models

import (
	"github.com/khaynem/WasteWise-Backend/pkg/utils"
	"gorm.io/gorm"
)

// Schedule holds the collection days for one barangay, one entry per waste
// stream (e.g. Biodegradable on Monday).
type Schedule struct {
	ID       string          `gorm:"primaryKey;type:text" json:"id"`
	Barangay string          `gorm:"uniqueIndex" json:"barangay"`
	Entries  []ScheduleEntry `gorm:"foreignKey:ScheduleID" json:"type"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = utils.GenerateID()
	}
	return nil
}

type ScheduleEntry struct {
	ID         string `gorm:"primaryKey;type:text" json:"id"`
	ScheduleID string `gorm:"type:text;index" json:"-"`
	TypeName   string `json:"typeName"`
	Day        string `json:"day"`
}

func (e *ScheduleEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.GenerateID()
	}
	return nil
}
