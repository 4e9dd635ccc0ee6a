package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-ticket-cart/internal/catalog"
	"movie-ticket-cart/internal/models"
	"movie-ticket-cart/web/templates/components"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublicRouter(h *PublicHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.HomePage)
	r.Get("/movies", h.MoviesFragment)
	r.Get("/health", h.Health)
	return r
}

func sampleMovies(n int) []models.MovieRef {
	movies := make([]models.MovieRef, n)
	for i := range movies {
		movies[i] = models.MovieRef{ID: int64(100 + i), Title: "Movie " + string(rune('A'+i))}
	}
	return movies
}

func TestPublicHandler_HomePage(t *testing.T) {
	movies := newLoadedCatalog(t, sampleMovies(7)...)
	h := NewPublicHandler(movies, newTestSessions(t, models.DefaultPricing()), "", nil, nil)
	client := newTestClient(t, newPublicRouter(h))

	rr := client.get("/", false)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "Movie A")
	assert.Contains(t, body, "Movie C")
	assert.NotContains(t, body, "Movie D", "first page only")
	assert.Contains(t, body, `hx-get="/movies?show=6"`)
	assert.Contains(t, body, components.EmptyCartText)
}

func TestPublicHandler_LoadMore(t *testing.T) {
	movies := newLoadedCatalog(t, sampleMovies(7)...)
	h := NewPublicHandler(movies, newTestSessions(t, models.DefaultPricing()), "", nil, nil)
	client := newTestClient(t, newPublicRouter(h))

	tests := []struct {
		query    string
		shows    string
		hides    string
		nextLink string
	}{
		{query: "", shows: "Movie C", hides: "Movie D", nextLink: `show=6"`},
		{query: "?show=6", shows: "Movie F", hides: "Movie G", nextLink: `show=7"`},
		{query: "?show=9", shows: "Movie G"},
		{query: "?show=-4", shows: "Movie A", hides: "Movie D", nextLink: `show=6"`},
		{query: "?show=abc", shows: "Movie A", hides: "Movie D", nextLink: `show=6"`},
	}

	for _, tt := range tests {
		t.Run("show"+tt.query, func(t *testing.T) {
			rr := client.get("/movies"+tt.query, true)
			require.Equal(t, http.StatusOK, rr.Code)

			body := rr.Body.String()
			assert.NotContains(t, body, "<!DOCTYPE html>", "fragment only")
			assert.Contains(t, body, tt.shows)
			if tt.hides != "" {
				assert.NotContains(t, body, tt.hides)
			}
			if tt.nextLink != "" {
				assert.Contains(t, body, tt.nextLink)
			} else {
				assert.NotContains(t, body, "Load more")
			}
		})
	}
}

func TestPublicHandler_CatalogPlaceholders(t *testing.T) {
	t.Run("failed load", func(t *testing.T) {
		svc := catalog.NewService(catalog.ProviderFunc(func(ctx context.Context) ([]models.MovieRef, error) {
			return nil, errors.New("connection refused")
		}), nil, 3)
		require.Error(t, svc.Load(context.Background()))

		h := NewPublicHandler(svc, newTestSessions(t, models.DefaultPricing()), "", nil, nil)
		rr := newTestClient(t, newPublicRouter(h)).get("/", false)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), components.MoviesUnavailableText)
	})

	t.Run("still loading", func(t *testing.T) {
		movies := new(MockMovieCatalog)
		movies.On("PageSize").Return(3)
		movies.On("Window", 3).Return([]models.MovieRef{})
		movies.On("Status").Return(catalog.StatusLoading)
		movies.On("Len").Return(0)
		movies.On("NextWindow", 0).Return(0)

		h := NewPublicHandler(movies, newTestSessions(t, models.DefaultPricing()), "", nil, nil)
		rr := newTestClient(t, newPublicRouter(h)).get("/movies", true)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), components.MoviesLoadingText)
		movies.AssertExpectations(t)
	})
}

func TestPublicHandler_Health(t *testing.T) {
	movies := new(MockMovieCatalog)
	loadedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	movies.On("Status").Return(catalog.StatusReady)
	movies.On("Len").Return(9)
	movies.On("LoadedAt").Return(loadedAt)

	h := NewPublicHandler(movies, newTestSessions(t, models.DefaultPricing()), "", nil, nil)
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ready", body["catalog"])
	assert.EqualValues(t, 9, body["movies"])
	assert.Equal(t, "2024-05-01T10:00:00Z", body["loaded_at"])
}

func TestParseShow(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"show=9", 9},
		{"show=1", 3},
		{"show=x", 3},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, parseShow(r, 3))
		})
	}
}
