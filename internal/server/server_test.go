package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/dataset"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func fixture() *dataset.Tables {
	day := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC) }
	return &dataset.Tables{
		Restaurants: []models.Restaurant{
			{ID: "r1", City: "Dubai", Zone: "Marina", CuisineType: "Lebanese", Tier: "Premium"},
			{ID: "r2", City: "Sharjah", Zone: "Al Nahda", CuisineType: "Indian", Tier: "Budget"},
		},
		Orders: []models.Order{
			{ID: "o1", CustomerID: "c1", RestaurantID: "r1", OrderDatetime: day(1, 12), GrossAmount: 100, Status: models.OrderStatusDelivered},
			{ID: "o2", CustomerID: "c1", RestaurantID: "r2", OrderDatetime: day(2, 12), GrossAmount: 200, Status: models.OrderStatusDelivered},
			{ID: "o3", CustomerID: "c2", RestaurantID: "r2", OrderDatetime: day(3, 12), GrossAmount: 50, Status: models.OrderStatusCancelled},
		},
		DeliveryEvents: []models.DeliveryEvent{
			{OrderID: "o1", DeliveredTime: day(1, 13), EstimatedDeliveryTime: day(1, 13)},
			{OrderID: "o2", DeliveredTime: day(2, 14), EstimatedDeliveryTime: day(2, 13)},
		},
	}
}

func newTestServer(src dataset.Source) *Server {
	return New(dashboard.NewService(src))
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := get(t, newTestServer(dataset.Static(fixture())), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestExecutiveEndpoint(t *testing.T) {
	s := newTestServer(dataset.Static(fixture()))

	w := get(t, s, "/api/executive?city=Dubai,Sharjah&from=2024-01-01&to=2024-01-02")
	require.Equal(t, http.StatusOK, w.Code)

	var view dashboard.ExecutiveView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2, view.FilteredOrders)
	assert.InDelta(t, 300.0, view.GMV, 1e-9)
	assert.Equal(t, "300", view.Tiles[0].Value)

	w = get(t, s, "/api/executive?zone=Marina")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.InDelta(t, 100.0, view.GMV, 1e-9)
}

func TestManagerEndpoint(t *testing.T) {
	s := newTestServer(dataset.Static(fixture()))

	w := get(t, s, "/api/manager?prep_reduction=40&cancel_reduction=20")
	require.Equal(t, http.StatusOK, w.Code)

	var view dashboard.ManagerView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.InDelta(t, 50.0, view.OnTimeRate, 1e-9)
	assert.Equal(t, 15, view.Projection.PrepReduction)
	assert.InDelta(t, 57.5, view.Projection.ProjectedOnTime, 1e-9)
	assert.InDelta(t, 60.0, view.Projection.ProjectedGMVRecovery, 1e-9)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(dataset.Static(fixture()))

	for _, target := range []string{
		"/api/executive?from=yesterday",
		"/api/manager?prep_reduction=lots",
	} {
		w := get(t, s, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), "error")
	}
}

type brokenSource struct{}

func (brokenSource) Load(context.Context) (*dataset.Tables, error) {
	return nil, errors.New("orders.csv: missing required column \"order_id\"")
}

func TestLoadFailure(t *testing.T) {
	w := get(t, newTestServer(brokenSource{}), "/api/options")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "order_id")
}

func TestOptionsAndMetrics(t *testing.T) {
	s := newTestServer(dataset.Static(fixture()))

	w := get(t, s, "/api/options")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"zones":["Al Nahda","Marina"]`)

	get(t, s, "/api/executive")
	w = get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bitesdash_filtered_orders{view="executive"} 3`)
	assert.Contains(t, string(body), `bitesdash_view_compute_seconds_count{view="executive"} 1`)
}
