// Package catalog supplies the movies that tickets can be bought for.
package catalog

import (
	"context"

	"movie-ticket-cart/internal/models"
)

// Provider returns the current list of movies
type Provider interface {
	Movies(ctx context.Context) ([]models.MovieRef, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context) ([]models.MovieRef, error)

func (f ProviderFunc) Movies(ctx context.Context) ([]models.MovieRef, error) {
	return f(ctx)
}
