package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"lentabot/internal/models"
	"lentabot/internal/report"
)

// Scraper is the slice of the scraper service the API needs. Operations
// follow the "slice, possibly empty, never an error" contract.
type Scraper interface {
	SearchProducts(ctx context.Context, query string) []models.Product
	StoreOffers(ctx context.Context, productID string) []models.StoreOffer
}

type Handlers struct {
	scraper Scraper
	logger  *slog.Logger
}

func NewHandlers(scraper Scraper, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper: scraper,
		logger:  logger.With("component", "api"),
	}
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}

// Search runs a catalog search. A scrape that finds nothing is still a 200
// with an empty list: the scraper's failure channel is its log, not this
// response.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		h.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	products := h.scraper.SearchProducts(r.Context(), req.Query)
	if products == nil {
		products = []models.Product{}
	}

	h.respondJSON(w, http.StatusOK, SearchResponse{
		Products: products,
		Count:    len(products),
	})
}

type OffersRequest struct {
	ProductID string `json:"product_id"`
}

type OffersResponse struct {
	Offers []models.StoreOffer `json:"offers"`
	Count  int                 `json:"count"`
}

// Offers collects per-store prices for one product.
func (h *Handlers) Offers(w http.ResponseWriter, r *http.Request) {
	var req OffersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProductID == "" {
		h.respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	offers := h.scraper.StoreOffers(r.Context(), req.ProductID)
	if offers == nil {
		offers = []models.StoreOffer{}
	}

	h.respondJSON(w, http.StatusOK, OffersResponse{
		Offers: offers,
		Count:  len(offers),
	})
}

type ReportRequest struct {
	Title     string `json:"title"`
	ProductID string `json:"product_id"`
}

// Report collects offers and streams them back as an XLSX workbook.
func (h *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProductID == "" {
		h.respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if req.Title == "" {
		req.Title = "Товар"
	}

	offers := h.scraper.StoreOffers(r.Context(), req.ProductID)
	if len(offers) == 0 {
		h.respondError(w, http.StatusNotFound, "no offers found for product")
		return
	}

	data, err := report.Build(req.Title, offers)
	if err != nil {
		h.logger.Error("failed to build report", "error", err, "product_id", req.ProductID)
		h.respondError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write report response", "error", err)
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
