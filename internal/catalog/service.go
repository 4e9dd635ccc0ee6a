package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movie-ticket-cart/internal/models"

	"go.uber.org/zap"
)

// Status describes where the catalog load stands
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// DefaultPageSize is how many more movies each "load more" reveals
const DefaultPageSize = 3

// Service holds the movies loaded from a provider and serves them to handlers
type Service struct {
	provider Provider
	logger   *zap.Logger
	pageSize int

	mu       sync.RWMutex
	movies   []models.MovieRef
	byID     map[int64]int
	status   Status
	loadErr  error
	loadedAt time.Time
}

// NewService creates a catalog service. The catalog is empty until Load runs.
func NewService(provider Provider, logger *zap.Logger, pageSize int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		provider: provider,
		logger:   logger,
		pageSize: pageSize,
		byID:     make(map[int64]int),
		status:   StatusLoading,
	}
}

// Load fetches the catalog once. On failure the catalog stays empty and the
// error is logged and returned; there is no retry.
func (s *Service) Load(ctx context.Context) error {
	movies, err := s.provider.Movies(ctx)
	if err != nil {
		s.mu.Lock()
		s.status = StatusFailed
		s.loadErr = err
		s.mu.Unlock()
		s.logger.Error("failed to load movie catalog", zap.Error(err))
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	byID := make(map[int64]int, len(movies))
	for i, m := range movies {
		if _, dup := byID[m.ID]; !dup {
			byID[m.ID] = i
		}
	}

	s.mu.Lock()
	s.movies = movies
	s.byID = byID
	s.status = StatusReady
	s.loadErr = nil
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info("movie catalog loaded", zap.Int("movies", len(movies)))
	return nil
}

// LoadAsync starts Load in the background and returns a channel that is
// closed once it finishes. Callers are free to ignore the channel.
func (s *Service) LoadAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Load(ctx)
	}()
	return done
}

// Window returns the first n movies, the "load more" view of the catalog
func (s *Service) Window(n int) []models.MovieRef {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n > len(s.movies) {
		n = len(s.movies)
	}
	window := make([]models.MovieRef, n)
	copy(window, s.movies[:n])
	return window
}

// All returns every loaded movie
func (s *Service) All() []models.MovieRef {
	return s.Window(s.Len())
}

// Len returns the number of loaded movies
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// PageSize returns how many movies one "load more" adds
func (s *Service) PageSize() int {
	return s.pageSize
}

// NextWindow returns the window size after one more "load more", capped at the catalog size
func (s *Service) NextWindow(current int) int {
	next := current + s.pageSize
	if total := s.Len(); next > total {
		next = total
	}
	return next
}

// Movie looks up a movie by id
func (s *Service) Movie(id int64) (models.MovieRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return models.MovieRef{}, fmt.Errorf("%w: %d", models.ErrMovieNotFound, id)
	}
	return s.movies[i], nil
}

// Status reports the state of the last load
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the error of the last failed load
func (s *Service) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// LoadedAt returns when the catalog was last loaded successfully
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
