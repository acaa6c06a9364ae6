package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
)

const defaultSnapshotLimit = 12

// SnapshotStore lists archived weekly snapshots.
type SnapshotStore interface {
	LatestSnapshots(ctx context.Context, limit int64) ([]models.WeeklySnapshot, error)
}

// SnapshotHandler serves the weekly snapshot archive.
type SnapshotHandler struct {
	store  SnapshotStore
	logger *zap.Logger
}

// NewSnapshotHandler constructs the HTTP handler adapter.
func NewSnapshotHandler(store SnapshotStore, logger *zap.Logger) *SnapshotHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotHandler{store: store, logger: logger}
}

// List answers GET /api/snapshots?limit=n.
func (h *SnapshotHandler) List(c *gin.Context) {
	limit := int64(defaultSnapshotLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	snapshots, err := h.store.LatestSnapshots(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing snapshots", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "snapshot archive unavailable"})
		return
	}
	if snapshots == nil {
		snapshots = []models.WeeklySnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}
