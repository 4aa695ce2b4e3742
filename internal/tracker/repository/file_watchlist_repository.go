package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sttock-tracker/internal/entity"
	"sttock-tracker/pkg/common"
)

// NewFileWatchlistRepository creates a collection store backed by a single
// JSON array under a fixed file key. It is single-tenant: every caller
// shares one flat list regardless of user, which is the documented demo
// mode of the "file" storage driver. The whole array is rewritten on every
// mutation.
func NewFileWatchlistRepository(dataDir string) WatchlistRepository {
	return &fileWatchlistRepository{
		path: filepath.Join(dataDir, common.CollectionStorageKey+".json"),
	}
}

type fileWatchlistRepository struct {
	mu   sync.Mutex
	path string
}

func (r *fileWatchlistRepository) List(ctx context.Context, userID uint) ([]entity.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileWatchlistRepository) Save(ctx context.Context, stock *entity.Stock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		return err
	}

	updated := append([]entity.Stock{*stock}, current...)
	return r.store(updated)
}

func (r *fileWatchlistRepository) Remove(ctx context.Context, userID uint, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		return err
	}

	updated := make([]entity.Stock, 0, len(current))
	for _, stock := range current {
		if stock.ID != id {
			updated = append(updated, stock)
		}
	}
	return r.store(updated)
}

func (r *fileWatchlistRepository) load() ([]entity.Stock, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entity.Stock{}, nil
		}
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}

	var stocks []entity.Stock
	if err := json.Unmarshal(data, &stocks); err != nil {
		return nil, fmt.Errorf("failed to parse collection file: %w", err)
	}
	return stocks, nil
}

func (r *fileWatchlistRepository) store(stocks []entity.Stock) error {
	data, err := json.Marshal(stocks)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}
	return nil
}
