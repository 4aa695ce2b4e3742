package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Source is a citation backing a news summary.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Stock is one tracked ticker symbol with its fetched news summary. The
// identifier is generated when the stock is added; a stock is never
// edited in place.
type Stock struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index" json:"-"`
	Symbol      string         `gorm:"not null" json:"symbol"`
	Name        string         `gorm:"not null" json:"name"`
	AddedAt     time.Time      `gorm:"not null" json:"addedAt"`
	NewsSummary string         `gorm:"type:text" json:"newsSummary"`
	Sources     datatypes.JSON `json:"sources"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"-"`
}
