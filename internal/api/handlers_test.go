package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lentabot/internal/models"
)

type stubScraper struct {
	products []models.Product
	offers   []models.StoreOffer
}

func (s *stubScraper) SearchProducts(ctx context.Context, query string) []models.Product {
	return s.products
}

func (s *stubScraper) StoreOffers(ctx context.Context, productID string) []models.StoreOffer {
	return s.offers
}

func newTestRouter(scraper *stubScraper) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(NewHandlers(scraper, logger))
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(&stubScraper{
		products: []models.Product{
			{ID: "111", Name: "Водка Талка", Volume: "0.5 л"},
		},
	})

	body := bytes.NewBufferString(`{"query":"водка"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "111", resp.Products[0].ID)
}

func TestSearchEndpointEmptyResultIsOK(t *testing.T) {
	router := newTestRouter(&stubScraper{})

	body := bytes.NewBufferString(`{"query":"нет такого"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Products)
}

func TestSearchEndpointValidation(t *testing.T) {
	router := newTestRouter(&stubScraper{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(`not json`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOffersEndpoint(t *testing.T) {
	router := newTestRouter(&stubScraper{
		offers: []models.StoreOffer{
			{Store: "ТК124", Address: "7-я Кожуховская 9", Price: 599},
		},
	})

	body := bytes.NewBufferString(`{"product_id":"123456"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp OffersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "ТК124", resp.Offers[0].Store)
}

func TestReportEndpoint(t *testing.T) {
	router := newTestRouter(&stubScraper{
		offers: []models.StoreOffer{
			{Store: "ТК124", Address: "7-я Кожуховская 9", Price: 599},
		},
	})

	body := bytes.NewBufferString(`{"product_id":"123456","title":"Водка Талка"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestReportEndpointNoOffers(t *testing.T) {
	router := newTestRouter(&stubScraper{})

	body := bytes.NewBufferString(`{"product_id":"123456"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubScraper{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
