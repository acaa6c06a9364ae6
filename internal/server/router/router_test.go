package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Arnold-CK/Anjo/internal/domain/models"
	"github.com/Arnold-CK/Anjo/internal/server/handlers"
	"github.com/Arnold-CK/Anjo/internal/server/router"
)

type stubDashboard struct{}

func (stubDashboard) View(_ context.Context, d models.Domain, req models.FilterRequest) (*models.View, error) {
	return &models.View{Domain: d, Filters: req}, nil
}

func (stubDashboard) Catalog() models.Catalog { return models.NewCatalog(time.Now()) }

func (stubDashboard) Customers(context.Context) []string { return []string{"Acme"} }

func (stubDashboard) CustomerRecords(context.Context) []models.Customer {
	return []models.Customer{{Name: "Acme"}}
}

type stubSnapshots struct{}

func (stubSnapshots) LatestSnapshots(context.Context, int64) ([]models.WeeklySnapshot, error) {
	return []models.WeeklySnapshot{{CostEntries: 1}}, nil
}

func newRouter(withSnapshots bool) http.Handler {
	h := router.Handlers{
		Dashboard: handlers.NewDashboardHandler(stubDashboard{}, nil),
		Entry:     handlers.NewEntryHandler(nil, nil),
	}
	if withSnapshots {
		h.Snapshots = handlers.NewSnapshotHandler(stubSnapshots{}, nil)
	}
	return router.New(h, nil)
}

func get(r http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := get(newRouter(false), "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestIDIsGeneratedOrEchoed(t *testing.T) {
	r := newRouter(false)

	w := get(r, "/healthz", nil)
	assert.Len(t, w.Header().Get(router.RequestIDHeader), 36)

	w = get(r, "/healthz", map[string]string{router.RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(router.RequestIDHeader))
}

func TestStaticRoutesWinOverDomainParam(t *testing.T) {
	r := newRouter(false)

	w := get(r, "/api/customers", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"customers":["Acme"]}`, w.Body.String())

	w = get(r, "/api/customers/records", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/api/harvests", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSnapshotsMountedOnlyWhenConfigured(t *testing.T) {
	w := get(newRouter(true), "/api/snapshots", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(newRouter(false), "/api/snapshots", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
