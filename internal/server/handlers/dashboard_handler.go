package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/service/export"
)

// DashboardService is what the read endpoints need.
type DashboardService interface {
	View(ctx context.Context, domain models.Domain, req models.FilterRequest) (*models.View, error)
	Catalog() models.Catalog
	Customers(ctx context.Context) []string
	CustomerRecords(ctx context.Context) []models.Customer
}

// DashboardHandler serves filtered, grouped ledger views.
type DashboardHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc DashboardService, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Catalog returns the filter and form option lists.
func (h *DashboardHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog())
}

// Customers lists distinct customer names.
func (h *DashboardHandler) Customers(c *gin.Context) {
	names := h.svc.Customers(c.Request.Context())
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"customers": names})
}

// CustomerRecords lists the full customer directory.
func (h *DashboardHandler) CustomerRecords(c *gin.Context) {
	records := h.svc.CustomerRecords(c.Request.Context())
	if records == nil {
		records = []models.Customer{}
	}
	c.JSON(http.StatusOK, gin.H{"customers": records})
}

// View answers GET /api/:domain with the filtered view.
func (h *DashboardHandler) View(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view)
}

// Export answers GET /api/:domain/export with the view as an XLSX workbook.
func (h *DashboardHandler) Export(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, view); err != nil {
		h.logger.Error("failed exporting view", zap.String("domain", string(view.Domain)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to build export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(view)+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *DashboardHandler) view(c *gin.Context) (*models.View, bool) {
	domain, err := models.ParseDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}

	req := models.FilterRequestFromQuery(c.Request.URL.Query())
	view, err := h.svc.View(c.Request.Context(), domain, req)
	switch {
	case err == nil:
		return view, true
	case errors.Is(err, models.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownDomain):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("failed building view", zap.String("domain", string(domain)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to build view"})
	}
	return nil, false
}
