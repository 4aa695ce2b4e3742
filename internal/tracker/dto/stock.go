package dto

import (
	"time"

	"sttock-tracker/internal/entity"
)

// AddStockRequest is the payload for tracking a new symbol.
type AddStockRequest struct {
	Symbol string `json:"symbol"`
}

// StockResponse is the wire shape of one tracked stock.
type StockResponse struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	AddedAt     time.Time       `json:"addedAt"`
	NewsSummary string          `json:"newsSummary"`
	Sources     []entity.Source `json:"sources"`
}

// StockNewsResult is the outcome of one news fetch: a short markdown
// summary and its deduplicated citations.
type StockNewsResult struct {
	Summary string          `json:"summary"`
	Sources []entity.Source `json:"sources"`
}
