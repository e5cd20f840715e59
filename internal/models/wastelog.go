package models

import (
	"time"

	"github.com/khaynem/WasteWise-Backend/pkg/utils"
	"gorm.io/gorm"
)

type WasteLog struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Recorder  string    `gorm:"type:text;index" json:"recorder"`
	WasteType string    `json:"wasteType"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Date      time.Time `json:"date"`
}

func (w *WasteLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = utils.GenerateID()
	}
	return nil
}
