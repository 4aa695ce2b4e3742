package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sttock-tracker/internal/tracker/dto"
	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/internal/tracker/service"
	"sttock-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWatchlistService struct {
	stocks  []dto.StockResponse
	listErr error
	addErr  error
	rmErr   error
}

func (f *fakeWatchlistService) List(ctx context.Context, userID uint) ([]dto.StockResponse, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.stocks, nil
}

func (f *fakeWatchlistService) Add(ctx context.Context, userID uint, symbol string) (*dto.StockResponse, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	stock := dto.StockResponse{ID: "1", Symbol: symbol, Name: symbol}
	return &stock, nil
}

func (f *fakeWatchlistService) Remove(ctx context.Context, userID uint, id string) error {
	return f.rmErr
}

func (f *fakeWatchlistService) Teardown(userID uint) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func perform(t *testing.T, svc service.WatchlistService, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := NewWatchlistHandler(svc, testLogger(t))
	handler.RegisterRoutes(e.Group("/stocks"))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListStocks(t *testing.T) {
	svc := &fakeWatchlistService{stocks: []dto.StockResponse{{ID: "1", Symbol: "TCS"}}}

	rec := perform(t, svc, http.MethodGet, "/stocks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []dto.StockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "TCS", listed[0].Symbol)
}

func TestListStocksFailsOpen(t *testing.T) {
	svc := &fakeWatchlistService{listErr: service.ErrPersistence}

	rec := perform(t, svc, http.MethodGet, "/stocks", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []dto.StockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestAddStock(t *testing.T) {
	rec := perform(t, &fakeWatchlistService{}, http.MethodPost, "/stocks", `{"symbol":"TCS"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var stock dto.StockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stock))
	assert.Equal(t, "TCS", stock.Symbol)
}

func TestAddStockStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty symbol", service.ErrSymbolEmpty, http.StatusBadRequest},
		{"duplicate", service.ErrSymbolTracked, http.StatusConflict},
		{"missing api key", repository.ErrAPIKeyMissing, http.StatusPreconditionFailed},
		{"fetch failure", service.ErrNewsFetch, http.StatusBadGateway},
		{"persistence failure", service.ErrPersistence, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeWatchlistService{addErr: tc.err}
			rec := perform(t, svc, http.MethodPost, "/stocks", `{"symbol":"TCS"}`)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestAddStockMissingAPIKeyCarriesCode(t *testing.T) {
	svc := &fakeWatchlistService{addErr: repository.ErrAPIKeyMissing}

	rec := perform(t, svc, http.MethodPost, "/stocks", `{"symbol":"TCS"}`)
	require.Equal(t, http.StatusPreconditionFailed, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeAPIKeyMissing, resp.Code)
}

func TestRemoveStock(t *testing.T) {
	rec := perform(t, &fakeWatchlistService{}, http.MethodDelete, "/stocks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRemoveStockPersistFailure(t *testing.T) {
	svc := &fakeWatchlistService{rmErr: service.ErrPersistence}

	rec := perform(t, svc, http.MethodDelete, "/stocks/1", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to delete stock.", resp.Error)
}
