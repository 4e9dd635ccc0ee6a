package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"movie-ticket-cart/internal/cart"
	"movie-ticket-cart/internal/middleware"
	"movie-ticket-cart/internal/models"
	"movie-ticket-cart/web/templates/components"
	"movie-ticket-cart/web/templates/pages"

	"go.uber.org/zap"
	"golang.org/x/text/message"
)

// errBadRequest marks form input that could not be parsed at all
var errBadRequest = errors.New("bad request")

// CartHandler handles the ticket cart requests
type CartHandler struct {
	catalog MovieCatalog
	carts   *CartSessions
	renderer
}

// NewCartHandler creates a new cart handler
func NewCartHandler(movies MovieCatalog, carts *CartSessions, printer *message.Printer, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{
		catalog:  movies,
		carts:    carts,
		renderer: renderer{printer: printer, logger: logger},
	}
}

// ViewCart renders the cart; a fragment for HTMX, a page otherwise
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	_, engine, err := h.carts.Load(r)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	view := components.NewCartView(engine)
	if middleware.IsHTMXRequest(r) {
		h.render(w, r, http.StatusOK, components.Cart(view))
		return
	}
	h.render(w, r, http.StatusOK, pages.Layout("Cart", components.Cart(view)))
}

// AddTicket adds one ticket of ticket_type for movie_id
func (h *CartHandler) AddTicket(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(engine *cart.Engine) error {
		movieID, err := formMovieID(r)
		if err != nil {
			return err
		}
		category, err := models.ParseTicketCategory(r.FormValue("ticket_type"))
		if err != nil {
			return err
		}
		movie, err := h.catalog.Movie(movieID)
		if err != nil {
			return err
		}
		return engine.AddTicket(movie, category)
	})
}

// DecrementTicket takes one ticket of ticket_type off movie_id's row
func (h *CartHandler) DecrementTicket(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(engine *cart.Engine) error {
		movieID, err := formMovieID(r)
		if err != nil {
			return err
		}
		category, err := models.ParseTicketCategory(r.FormValue("ticket_type"))
		if err != nil {
			return err
		}
		return engine.DecrementTicket(movieID, category)
	})
}

// RemoveTicket removes a row by index, or by movie_id when no index is posted
func (h *CartHandler) RemoveTicket(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(engine *cart.Engine) error {
		if raw := strings.TrimSpace(r.FormValue("index")); raw != "" {
			index, err := strconv.Atoi(raw)
			if err != nil {
				return errBadRequest
			}
			return engine.RemoveTicket(index)
		}

		movieID, err := formMovieID(r)
		if err != nil {
			return err
		}
		return engine.RemoveMovie(movieID)
	})
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(engine *cart.Engine) error {
		engine.Reset()
		return nil
	})
}

// mutate runs one cart operation against the session's cart and answers with
// the updated cart. A failed operation leaves the stored cart untouched.
func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, op func(*cart.Engine) error) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	session, engine, err := h.carts.Load(r)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	if err := op(engine); err != nil {
		status, msg := cartErrorResponse(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("cart operation failed", zap.Error(err))
		}
		h.respond(w, r, status, engine, msg)
		return
	}

	if err := h.carts.Save(w, r, session, engine); err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	if !middleware.IsHTMXRequest(r) {
		middleware.HTMXRedirect(w, r, "/")
		return
	}
	h.respond(w, r, http.StatusOK, engine, "")
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, status int, engine *cart.Engine, errMsg string) {
	view := components.NewCartView(engine)
	view.Error = errMsg

	if middleware.IsHTMXRequest(r) {
		h.render(w, r, status, components.Cart(view))
		return
	}
	h.render(w, r, status, pages.Layout("Cart", components.Cart(view)))
}

// cartErrorResponse maps cart and catalog errors onto a status and a message for the visitor
func cartErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "The request was malformed. Please refresh the page and try again."
	case errors.Is(err, models.ErrInvalidCategory):
		return http.StatusUnprocessableEntity, "Unknown ticket type. Choose Child or Adult."
	case errors.Is(err, models.ErrMissingPrice):
		return http.StatusUnprocessableEntity, "Tickets of this type are not on sale right now."
	case errors.Is(err, models.ErrTicketLimit):
		return http.StatusUnprocessableEntity, "You have reached the ticket limit for this movie."
	case errors.Is(err, models.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity, "That cart row no longer exists."
	case errors.Is(err, models.ErrMovieNotFound):
		return http.StatusNotFound, "That movie is not showing."
	case errors.Is(err, models.ErrLineItemNotFound):
		return http.StatusNotFound, "That movie is not in your cart."
	}
	return http.StatusInternalServerError, "Something went wrong. Please try again."
}

func formMovieID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("movie_id")), 10, 64)
	if err != nil {
		return 0, errBadRequest
	}
	return id, nil
}

// handleSessionError handles session errors appropriately for HTMX vs regular requests
func (h *CartHandler) handleSessionError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("cart session error", zap.Error(err))
	if middleware.IsHTMXRequest(r) {
		h.render(w, r, http.StatusInternalServerError, components.ErrorBanner("Session error. Please refresh the page and try again."))
		return
	}
	http.Error(w, "Session error", http.StatusInternalServerError)
}
