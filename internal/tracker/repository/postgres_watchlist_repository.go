package repository

import (
	"context"

	"sttock-tracker/internal/entity"

	"gorm.io/gorm"
)

// NewPostgresWatchlistRepository creates a GORM-based collection store with
// rows scoped to the authenticated user.
func NewPostgresWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &postgresWatchlistRepository{db: db}
}

type postgresWatchlistRepository struct {
	db *gorm.DB
}

// List retrieves the user's tracked stocks, server-ordered newest first.
func (r *postgresWatchlistRepository) List(ctx context.Context, userID uint) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

// Save persists one new stock.
func (r *postgresWatchlistRepository) Save(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

// Remove deletes one stock by identifier within the user's scope. Deleting
// an id that does not exist is not an error.
func (r *postgresWatchlistRepository) Remove(ctx context.Context, userID uint, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Stock{}).Error
}
