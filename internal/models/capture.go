package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Capture is one capture attempt recorded in the journal
type Capture struct {
	ID            uuid.UUID      `gorm:"type:text;primaryKey" json:"id"`
	Timestamp     time.Time      `gorm:"not null;index" json:"timestamp"`
	Path          string         `json:"path,omitempty"`
	Strategy      string         `gorm:"index" json:"strategy,omitempty"` // "direct", "region" or "region-fallback"
	WindowTitle   string         `json:"window_title"`
	Width         int            `gorm:"not null;default:0" json:"width"`
	Height        int            `gorm:"not null;default:0" json:"height"`
	Left          int            `gorm:"not null;default:0" json:"left"`
	Top           int            `gorm:"not null;default:0" json:"top"`
	DisplayServer string         `json:"display_server"`
	Success       bool           `gorm:"not null;default:false;index" json:"success"`
	Error         string         `json:"error,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a random ID to new rows
func (c *Capture) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// StrategySummary counts captures per strategy
type StrategySummary struct {
	Strategy string `json:"strategy"`
	Count    int64  `json:"count"`
}

// History is the payload of the history command
type History struct {
	Captures    []*Capture        `json:"captures"`
	Strategies  []StrategySummary `json:"strategies"`
	Failures    int64             `json:"failures"`
	Since       time.Time         `json:"since"`
	GeneratedAt time.Time         `json:"generated_at"`
}
