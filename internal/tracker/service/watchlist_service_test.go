package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"sttock-tracker/internal/entity"
	"sttock-tracker/internal/tracker/dto"
	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeWatchlistRepo struct {
	stocks      []entity.Stock
	listErr     error
	saveErr     error
	removeErr   error
	listCalls   int
	saveCalls   int
	removeCalls int
}

func (f *fakeWatchlistRepo) List(ctx context.Context, userID uint) ([]entity.Stock, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Stock(nil), f.stocks...), nil
}

func (f *fakeWatchlistRepo) Save(ctx context.Context, stock *entity.Stock) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stocks = append([]entity.Stock{*stock}, f.stocks...)
	return nil
}

func (f *fakeWatchlistRepo) Remove(ctx context.Context, userID uint, id string) error {
	f.removeCalls++
	if f.removeErr != nil {
		return f.removeErr
	}
	kept := f.stocks[:0]
	for _, s := range f.stocks {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	f.stocks = kept
	return nil
}

type fakeNewsRepo struct {
	result     *dto.StockNewsResult
	err        error
	fetchCalls int
}

func (f *fakeNewsRepo) FetchStockNews(ctx context.Context, symbol string) (*dto.StockNewsResult, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func newsResult() *dto.StockNewsResult {
	return &dto.StockNewsResult{
		Summary: "- A\n- B",
		Sources: []entity.Source{{Title: "X", URI: "http://a"}},
	}
}

func TestAddStock(t *testing.T) {
	store := &fakeWatchlistRepo{}
	news := &fakeNewsRepo{result: newsResult()}
	svc := NewWatchlistService(store, news, testLogger(t))

	stock, err := svc.Add(context.Background(), 1, "tcs")
	require.NoError(t, err)

	assert.Equal(t, "TCS", stock.Symbol)
	assert.Equal(t, "TCS", stock.Name)
	assert.Equal(t, "- A\n- B", stock.NewsSummary)
	require.Len(t, stock.Sources, 1)
	assert.Equal(t, "X", stock.Sources[0].Title)
	assert.Equal(t, "http://a", stock.Sources[0].URI)
	assert.NotEmpty(t, stock.ID)
	assert.False(t, stock.AddedAt.IsZero())

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "TCS", listed[0].Symbol)
}

func TestAddStockRejectsEmptySymbol(t *testing.T) {
	store := &fakeWatchlistRepo{}
	news := &fakeNewsRepo{result: newsResult()}
	svc := NewWatchlistService(store, news, testLogger(t))

	_, err := svc.Add(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrSymbolEmpty)
	assert.Zero(t, news.fetchCalls)
	assert.Zero(t, store.saveCalls)
}

func TestAddStockRejectsDuplicateWithoutAnyCalls(t *testing.T) {
	store := &fakeWatchlistRepo{stocks: []entity.Stock{{ID: "1", Symbol: "TCS", Name: "TCS"}}}
	news := &fakeNewsRepo{result: newsResult()}
	svc := NewWatchlistService(store, news, testLogger(t))

	// Prime the in-memory collection from the store.
	_, err := svc.List(context.Background(), 1)
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), 1, "tcs")
	assert.ErrorIs(t, err, ErrSymbolTracked)
	assert.Zero(t, news.fetchCalls)
	assert.Zero(t, store.saveCalls)

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestAddStockNewestFirst(t *testing.T) {
	store := &fakeWatchlistRepo{}
	news := &fakeNewsRepo{result: newsResult()}
	svc := NewWatchlistService(store, news, testLogger(t))

	for _, symbol := range []string{"tcs", "reliance", "infy"} {
		_, err := svc.Add(context.Background(), 1, symbol)
		require.NoError(t, err)
	}

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "INFY", listed[0].Symbol)
	assert.Equal(t, "RELIANCE", listed[1].Symbol)
	assert.Equal(t, "TCS", listed[2].Symbol)
}

func TestAddStockFetchFailureLeavesCollectionUnchanged(t *testing.T) {
	store := &fakeWatchlistRepo{}
	news := &fakeNewsRepo{err: errors.New("boom")}
	svc := NewWatchlistService(store, news, testLogger(t))

	_, err := svc.Add(context.Background(), 1, "tcs")
	assert.ErrorIs(t, err, ErrNewsFetch)
	assert.Zero(t, store.saveCalls)

	listed, listErr := svc.List(context.Background(), 1)
	require.NoError(t, listErr)
	assert.Empty(t, listed)
}

func TestAddStockMissingAPIKeyPassesThrough(t *testing.T) {
	store := &fakeWatchlistRepo{}
	news := &fakeNewsRepo{err: repository.ErrAPIKeyMissing}
	svc := NewWatchlistService(store, news, testLogger(t))

	_, err := svc.Add(context.Background(), 1, "tcs")
	assert.ErrorIs(t, err, repository.ErrAPIKeyMissing)
	assert.NotErrorIs(t, err, ErrNewsFetch)
}

func TestAddStockPersistFailureLeavesCollectionUnchanged(t *testing.T) {
	store := &fakeWatchlistRepo{saveErr: errors.New("disk full")}
	news := &fakeNewsRepo{result: newsResult()}
	svc := NewWatchlistService(store, news, testLogger(t))

	_, err := svc.Add(context.Background(), 1, "tcs")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 1, news.fetchCalls)

	// No orphaned in-memory entry.
	listed, listErr := svc.List(context.Background(), 1)
	require.NoError(t, listErr)
	assert.Empty(t, listed)
}

func TestRemoveStock(t *testing.T) {
	store := &fakeWatchlistRepo{stocks: []entity.Stock{
		{ID: "1", Symbol: "INFY", Name: "INFY"},
		{ID: "2", Symbol: "TCS", Name: "TCS"},
	}}
	svc := NewWatchlistService(store, &fakeNewsRepo{}, testLogger(t))

	require.NoError(t, svc.Remove(context.Background(), 1, "1"))

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "TCS", listed[0].Symbol)
}

func TestRemoveMissingStockIsNoOp(t *testing.T) {
	store := &fakeWatchlistRepo{stocks: []entity.Stock{{ID: "1", Symbol: "TCS", Name: "TCS"}}}
	svc := NewWatchlistService(store, &fakeNewsRepo{}, testLogger(t))

	require.NoError(t, svc.Remove(context.Background(), 1, "missing"))

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestRemoveRollsBackOnPersistFailure(t *testing.T) {
	store := &fakeWatchlistRepo{stocks: []entity.Stock{
		{ID: "1", Symbol: "INFY", Name: "INFY"},
		{ID: "2", Symbol: "TCS", Name: "TCS"},
		{ID: "3", Symbol: "WIPRO", Name: "WIPRO"},
	}}
	svc := NewWatchlistService(store, &fakeNewsRepo{}, testLogger(t))

	before, err := svc.List(context.Background(), 1)
	require.NoError(t, err)

	store.removeErr = errors.New("connection reset")
	err = svc.Remove(context.Background(), 1, "2")
	assert.ErrorIs(t, err, ErrPersistence)

	// The removed entry reappears in its original position.
	after, listErr := svc.List(context.Background(), 1)
	require.NoError(t, listErr)
	assert.Equal(t, before, after)
}

func TestListFailsDistinguishablyOnRetrievalError(t *testing.T) {
	store := &fakeWatchlistRepo{listErr: errors.New("connection refused")}
	svc := NewWatchlistService(store, &fakeNewsRepo{}, testLogger(t))

	listed, err := svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, listed)
}

func TestAddAfterFailedLoadOperatesOnEmptyCollection(t *testing.T) {
	store := &fakeWatchlistRepo{listErr: errors.New("connection refused")}
	news := &fakeNewsRepo{result: newsResult()}
	svc := NewWatchlistService(store, news, testLogger(t))

	_, err := svc.List(context.Background(), 1)
	require.Error(t, err)

	// The failed load is not retried and the add proceeds as if empty.
	stock, err := svc.Add(context.Background(), 1, "tcs")
	require.NoError(t, err)
	assert.Equal(t, "TCS", stock.Symbol)
	assert.Equal(t, 1, store.listCalls)
}

func TestTeardownReloadsFromStore(t *testing.T) {
	store := &fakeWatchlistRepo{}
	news := &fakeNewsRepo{result: newsResult()}
	svc := NewWatchlistService(store, news, testLogger(t))

	_, err := svc.Add(context.Background(), 1, "tcs")
	require.NoError(t, err)

	svc.Teardown(1)

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "TCS", listed[0].Symbol)
}

func TestStoredSourcesSurviveRoundTrip(t *testing.T) {
	sources := []entity.Source{{Title: "X", URI: "http://a"}}
	data, err := json.Marshal(sources)
	require.NoError(t, err)

	store := &fakeWatchlistRepo{stocks: []entity.Stock{{ID: "1", Symbol: "TCS", Name: "TCS", Sources: datatypes.JSON(data)}}}
	svc := NewWatchlistService(store, &fakeNewsRepo{}, testLogger(t))

	listed, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, sources, listed[0].Sources)
}
