package handlers

import (
	"fmt"
	"net/http"

	"movie-ticket-cart/internal/cart"
	"movie-ticket-cart/internal/middleware"
	"movie-ticket-cart/internal/models"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const cartSessionKey = "cart"

// CartSessions keeps each visitor's cart as a snapshot in their session
type CartSessions struct {
	store   sessions.Store
	pricing models.PricingTable
	logger  *zap.Logger
}

// NewCartSessions creates the session-backed cart loader
func NewCartSessions(store sessions.Store, pricing models.PricingTable, logger *zap.Logger) *CartSessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartSessions{
		store:   store,
		pricing: pricing.Clone(),
		logger:  logger,
	}
}

// Load rebuilds the request's cart engine from its session.
// A missing or unreadable cart yields an empty engine.
func (s *CartSessions) Load(r *http.Request) (*sessions.Session, *cart.Engine, error) {
	session, err := s.store.Get(r, middleware.SessionName)
	if session == nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	if err != nil {
		s.logger.Debug("starting a fresh session", zap.Error(err))
	}

	engine, err := cart.NewEngine(s.pricing, cart.WithLogger(s.logger.With(
		zap.String("request_id", middleware.GetRequestID(r.Context())),
	)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cart: %w", err)
	}

	data, _ := session.Values[cartSessionKey].(string)
	if data != "" {
		if err := engine.UnmarshalSnapshot(data); err != nil {
			s.logger.Warn("discarding unreadable cart", zap.Error(err))
		}
	}

	return session, engine, nil
}

// Save writes the engine's snapshot back to the session
func (s *CartSessions) Save(w http.ResponseWriter, r *http.Request, session *sessions.Session, engine *cart.Engine) error {
	data, err := engine.MarshalSnapshot()
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	session.Values[cartSessionKey] = data
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
