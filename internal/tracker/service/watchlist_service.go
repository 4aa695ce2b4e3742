package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"sttock-tracker/internal/entity"
	"sttock-tracker/internal/tracker/dto"
	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/internal/tracker/state"
	"sttock-tracker/pkg/logger"
	"sttock-tracker/pkg/utils"

	"gorm.io/datatypes"
)

// WatchlistService orchestrates the tracked-stock flows: bootstrap from
// the collection store, add (duplicate check, fetch news, persist, then
// insert) and optimistic remove with rollback.
type WatchlistService interface {
	List(ctx context.Context, userID uint) ([]dto.StockResponse, error)
	Add(ctx context.Context, userID uint, symbol string) (*dto.StockResponse, error)
	Remove(ctx context.Context, userID uint, id string) error
	Teardown(userID uint)
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(watchlistRepo repository.WatchlistRepository, newsRepo repository.NewsRepository, log *logger.Logger) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		newsRepo:      newsRepo,
		logger:        log,
		collections:   make(map[uint]*state.Collection),
	}
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	newsRepo      repository.NewsRepository
	logger        *logger.Logger

	mu          sync.Mutex
	collections map[uint]*state.Collection
}

// collection returns the user's in-memory collection, loading it from the
// store on first access. A failed load still yields a usable, empty
// collection; the error reports the distinguishable "retrieval failed"
// kind to the caller.
func (s *watchlistService) collection(ctx context.Context, userID uint) (*state.Collection, error) {
	s.mu.Lock()
	col, ok := s.collections[userID]
	if !ok {
		col = state.NewCollection()
		s.collections[userID] = col
	}
	s.mu.Unlock()

	if col.Loaded() {
		return col, nil
	}

	stocks, err := s.watchlistRepo.List(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load stock collection", logger.ErrorField(err), logger.Field("user_id", userID))
		col.Reset(nil)
		return col, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	col.Reset(stocks)
	return col, nil
}

// List returns the user's collection, newest first. A non-nil error means
// retrieval failed and the returned (empty) list is a fail-open default,
// not a legitimately empty collection.
func (s *watchlistService) List(ctx context.Context, userID uint) ([]dto.StockResponse, error) {
	col, err := s.collection(ctx, userID)
	return mapStocks(col.Stocks()), err
}

// Add tracks a new symbol: validate, reject duplicates before any network
// or store call, fetch the news summary, persist, and only then insert
// into the in-memory collection. Any failure leaves the collection
// unchanged.
func (s *watchlistService) Add(ctx context.Context, userID uint, symbol string) (*dto.StockResponse, error) {
	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return nil, ErrSymbolEmpty
	}

	// A load failure is deliberately not fatal here: the add then operates
	// against an empty in-memory collection, same as the bootstrapped UI.
	col, _ := s.collection(ctx, userID)

	if col.Contains(trimmed) {
		return nil, ErrSymbolTracked
	}

	news, err := s.newsRepo.FetchStockNews(ctx, trimmed)
	if err != nil {
		if errors.Is(err, repository.ErrAPIKeyMissing) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNewsFetch, err)
	}

	sourcesJSON, err := json.Marshal(news.Sources)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNewsFetch, err)
	}

	normalized := utils.NormalizeSymbol(trimmed)
	stock := entity.Stock{
		ID:          utils.NewStockID(),
		UserID:      userID,
		Symbol:      normalized,
		Name:        normalized,
		AddedAt:     time.Now().UTC(),
		NewsSummary: news.Summary,
		Sources:     datatypes.JSON(sourcesJSON),
	}

	if err := s.watchlistRepo.Save(ctx, &stock); err != nil {
		s.logger.Error("Failed to save stock", logger.ErrorField(err),
			logger.StringField("symbol", stock.Symbol), logger.Field("user_id", userID))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	col.Prepend(stock)

	response := mapStock(stock)
	return &response, nil
}

// Remove deletes a stock optimistically: the in-memory entry disappears
// before the store call, and the pre-removal snapshot is restored verbatim
// when the store fails. Removing an id the store does not hold is a no-op.
func (s *watchlistService) Remove(ctx context.Context, userID uint, id string) error {
	col, _ := s.collection(ctx, userID)

	snapshot := col.Snapshot()
	col.Remove(id)

	if err := s.watchlistRepo.Remove(ctx, userID, id); err != nil {
		s.logger.Error("Failed to remove stock", logger.ErrorField(err),
			logger.StringField("stock_id", id), logger.Field("user_id", userID))
		col.Restore(snapshot)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Teardown drops the user's in-memory collection, e.g. on logout.
func (s *watchlistService) Teardown(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, userID)
}

func mapStocks(stocks []entity.Stock) []dto.StockResponse {
	responses := make([]dto.StockResponse, 0, len(stocks))
	for _, stock := range stocks {
		responses = append(responses, mapStock(stock))
	}
	return responses
}

func mapStock(stock entity.Stock) dto.StockResponse {
	var sources []entity.Source
	if len(stock.Sources) > 0 {
		_ = json.Unmarshal(stock.Sources, &sources)
	}
	return dto.StockResponse{
		ID:          stock.ID,
		Symbol:      stock.Symbol,
		Name:        stock.Name,
		AddedAt:     stock.AddedAt,
		NewsSummary: stock.NewsSummary,
		Sources:     sources,
	}
}
