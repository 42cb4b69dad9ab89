package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/stayhaven/booking-backend/internal/property"
)

type stubService struct {
	listCalls  int
	lastFilter property.Filter
}

func (s *stubService) Create(_ context.Context, _ property.CreateRequest) (*property.Property, error) {
	return nil, property.ErrNotFound
}

func (s *stubService) GetByID(_ context.Context, _ string) (*property.Property, error) {
	return nil, property.ErrNotFound
}

func (s *stubService) List(_ context.Context, f property.Filter) ([]*property.Property, int, error) {
	s.listCalls++
	s.lastFilter = f
	return nil, 0, nil
}

func (s *stubService) Update(_ context.Context, _ string, _ property.UpdateRequest, _ string, _ bool) (*property.Property, error) {
	return nil, property.ErrNotFound
}

func (s *stubService) Delete(_ context.Context, _ string, _ string, _ bool) error {
	return property.ErrNotFound
}

func listProperties(t *testing.T, svc *stubService, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/v1/properties", NewHandler(svc).List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/properties"+query, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestListSortParamsAreWhitelisted(t *testing.T) {
	t.Run("known column and direction pass", func(t *testing.T) {
		svc := &stubService{}
		w := listProperties(t, svc, "?sort_by=price_per_night&sort_order=asc")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, svc.listCalls)
		assert.Equal(t, "price_per_night", svc.lastFilter.SortBy)
	})

	t.Run("sql in sort_by never reaches the repository", func(t *testing.T) {
		svc := &stubService{}
		payload := url.QueryEscape("(SELECT password_hash FROM users LIMIT 1)")
		w := listProperties(t, svc, "?sort_by="+payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, svc.listCalls)
	})

	t.Run("sql in sort_order never reaches the repository", func(t *testing.T) {
		svc := &stubService{}
		payload := url.QueryEscape("asc; DROP TABLE bookings--")
		w := listProperties(t, svc, "?sort_order="+payload)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, svc.listCalls)
	})
}
