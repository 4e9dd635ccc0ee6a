package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"movie-ticket-cart/internal/catalog"
	"movie-ticket-cart/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMovieCatalog for testing
type MockMovieCatalog struct {
	mock.Mock
}

func (m *MockMovieCatalog) Window(n int) []models.MovieRef {
	args := m.Called(n)
	return args.Get(0).([]models.MovieRef)
}

func (m *MockMovieCatalog) Len() int {
	return m.Called().Int(0)
}

func (m *MockMovieCatalog) PageSize() int {
	return m.Called().Int(0)
}

func (m *MockMovieCatalog) NextWindow(current int) int {
	return m.Called(current).Int(0)
}

func (m *MockMovieCatalog) Movie(id int64) (models.MovieRef, error) {
	args := m.Called(id)
	return args.Get(0).(models.MovieRef), args.Error(1)
}

func (m *MockMovieCatalog) Status() catalog.Status {
	return m.Called().Get(0).(catalog.Status)
}

func (m *MockMovieCatalog) LoadedAt() time.Time {
	return m.Called().Get(0).(time.Time)
}

var (
	shawshank = models.MovieRef{ID: 278, Title: "The Shawshank Redemption", Description: "Framed in the 1940s for the double murder of his wife and her lover."}
	godfather = models.MovieRef{ID: 238, Title: "The Godfather", Description: "Spanning the years 1945 to 1955."}
)

// testClient replays the session cookie between requests like a browser
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, handler http.Handler) *testClient {
	return &testClient{t: t, handler: handler, cookies: make(map[string]*http.Cookie)}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	for _, cookie := range rr.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}
	return rr
}

func (c *testClient) get(path string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func (c *testClient) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func newTestSessions(t *testing.T, pricing models.PricingTable) *CartSessions {
	t.Helper()
	store := sessions.NewFilesystemStore(t.TempDir(), []byte("test-secret-key"))
	store.MaxLength(0)
	return NewCartSessions(store, pricing, nil)
}

func newCartRouter(h *CartHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/cart", h.ViewCart)
	r.Post("/cart/add", h.AddTicket)
	r.Post("/cart/decrement", h.DecrementTicket)
	r.Post("/cart/remove", h.RemoveTicket)
	r.Post("/cart/clear", h.ClearCart)
	return r
}

func newLoadedCatalog(t *testing.T, movies ...models.MovieRef) *catalog.Service {
	t.Helper()
	svc := catalog.NewService(catalog.ProviderFunc(func(ctx context.Context) ([]models.MovieRef, error) {
		return movies, nil
	}), nil, catalog.DefaultPageSize)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}
