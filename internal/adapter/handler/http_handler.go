package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lfmorais/stockledger/internal/core/domain"
	"github.com/lfmorais/stockledger/internal/core/report"
	"github.com/lfmorais/stockledger/internal/core/service"
	"github.com/lfmorais/stockledger/internal/core/store"
)

// Handler exposes the catalog, the ledger, the sale coordinator, and the
// reporting views over HTTP.
type Handler struct {
	catalog *store.Catalog
	ledger  *store.Ledger
	sales   *service.SaleService
	logger  *zap.Logger
}

func NewHandler(catalog *store.Catalog, ledger *store.Ledger, sales *service.SaleService, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		ledger:  ledger,
		sales:   sales,
		logger:  logger,
	}
}

type productRequest struct {
	Name          string          `json:"name"`
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	Brand         string          `json:"brand"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int             `json:"quantity"`
}

func (r productRequest) input() store.ProductInput {
	return store.ProductInput{
		Name:          r.Name,
		Size:          r.Size,
		Color:         r.Color,
		Brand:         r.Brand,
		PurchasePrice: r.PurchasePrice,
		SalePrice:     r.SalePrice,
		Quantity:      r.Quantity,
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.catalog.Create(c.Request.Context(), req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.catalog.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) RemoveProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	// Idempotent: removing an absent product still answers 204.
	if err := h.catalog.Remove(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type sellRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *Handler) Sell(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sale, err := h.sales.Sell(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// ListSales answers the filtered sales history, newest first, with the
// entry count and value total over the filtered view.
func (h *Handler) ListSales(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	filtered := report.Filter(h.ledger.List(), q)
	c.JSON(http.StatusOK, gin.H{
		"results": report.SortByDateDesc(filtered),
		"metadata": gin.H{
			"quantity": len(filtered),
			"total":    report.Total(filtered),
		},
	})
}

func (h *Handler) ClearSales(c *gin.Context) {
	if err := h.ledger.Clear(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ExportSales(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	filtered := report.SortByDateDesc(report.Filter(h.ledger.List(), q))
	data, err := report.ExportCSV(filtered)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales_report.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *Handler) ListBrands(c *gin.Context) {
	c.JSON(http.StatusOK, report.DistinctBrands(h.catalog.List()))
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func parseQuery(c *gin.Context) (report.Query, error) {
	q := report.Query{
		Text:  c.Query("text"),
		Brand: c.Query("brand"),
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return report.Query{}, domain.Validationf("invalid date %q, want YYYY-MM-DD", raw)
		}
		q.Day = &day
	}
	return q, nil
}

// writeError maps the error taxonomy onto HTTP statuses.
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Msg})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient stock",
			"available": stockErr.Available,
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyExport):
		c.JSON(http.StatusNotFound, gin.H{"error": "no sales to export"})
	default:
		h.logger.Error("request failed", zap.Error(err),
			zap.String("request_id", c.GetString("request_id")))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
