package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"movie-ticket-cart/internal/catalog"
	"movie-ticket-cart/internal/models"
	"movie-ticket-cart/web/templates/components"
	"movie-ticket-cart/web/templates/pages"

	"go.uber.org/zap"
	"golang.org/x/text/message"
)

// MovieCatalog is the read side of the loaded catalog
type MovieCatalog interface {
	Window(n int) []models.MovieRef
	Len() int
	PageSize() int
	NextWindow(current int) int
	Movie(id int64) (models.MovieRef, error)
	Status() catalog.Status
	LoadedAt() time.Time
}

// PublicHandler serves the movie grid and the landing page
type PublicHandler struct {
	catalog       MovieCatalog
	carts         *CartSessions
	posterBaseURL string
	renderer
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(movies MovieCatalog, carts *CartSessions, posterBaseURL string, printer *message.Printer, logger *zap.Logger) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{
		catalog:       movies,
		carts:         carts,
		posterBaseURL: posterBaseURL,
		renderer:      renderer{printer: printer, logger: logger},
	}
}

// HomePage renders the movie grid next to the visitor's cart
func (h *PublicHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	_, engine, err := h.carts.Load(r)
	if err != nil {
		h.logger.Error("failed to load cart", zap.Error(err))
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	view := pages.HomeView{
		Movies: h.movieListView(r),
		Cart:   components.NewCartView(engine),
	}
	h.render(w, r, http.StatusOK, pages.Home(view))
}

// MoviesFragment renders the grid alone; "Load more" swaps it in place
func (h *PublicHandler) MoviesFragment(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, components.MovieList(h.movieListView(r)))
}

// Health reports liveness and the catalog state
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "ok",
		"catalog": h.catalog.Status(),
		"movies":  h.catalog.Len(),
	}
	if loadedAt := h.catalog.LoadedAt(); !loadedAt.IsZero() {
		response["loaded_at"] = loadedAt.UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", zap.Error(err))
	}
}

func (h *PublicHandler) movieListView(r *http.Request) components.MovieListView {
	show := parseShow(r, h.catalog.PageSize())
	movies := h.catalog.Window(show)

	return components.MovieListView{
		Movies:        movies,
		Status:        h.catalog.Status(),
		Shown:         len(movies),
		Total:         h.catalog.Len(),
		Next:          h.catalog.NextWindow(len(movies)),
		PosterBaseURL: h.posterBaseURL,
	}
}

// parseShow reads the "load more" counter, never below one page
func parseShow(r *http.Request, pageSize int) int {
	show, err := strconv.Atoi(r.URL.Query().Get("show"))
	if err != nil || show < pageSize {
		return pageSize
	}
	return show
}
