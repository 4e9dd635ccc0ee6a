package components

import (
	"context"
	"io"
	"strconv"

	"movie-ticket-cart/internal/catalog"
	"movie-ticket-cart/internal/models"

	"github.com/a-h/templ"
)

const (
	MoviesUnavailableText = "Movies are unavailable right now."
	MoviesLoadingText     = "Loading movies…"
)

// MovieListView is the visible window of the catalog
type MovieListView struct {
	Movies        []models.MovieRef
	Status        catalog.Status
	Shown         int
	Total         int
	Next          int
	PosterBaseURL string
}

// HasMore reports whether a "load more" button is needed
func (v MovieListView) HasMore() bool {
	return v.Shown < v.Total
}

// MovieList renders the catalog grid with its "load more" control
func MovieList(view MovieListView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<section id="movies" class="movies" aria-live="polite">`)

		switch {
		case view.Status == catalog.StatusLoading:
			hw.printf(`<p class="placeholder" hx-get="/movies?show=%s" hx-trigger="load delay:1s" hx-target="#movies" hx-swap="outerHTML">%s</p>`,
				strconv.Itoa(view.Shown), MoviesLoadingText)
		case len(view.Movies) == 0:
			hw.printf(`<p class="placeholder">%s</p>`, MoviesUnavailableText)
		default:
			hw.raw(`<div class="movie-grid">`)
			for _, movie := range view.Movies {
				hw.render(ctx, MovieCard(movie, view.PosterBaseURL))
			}
			hw.raw(`</div>`)

			if view.HasMore() {
				hw.printf(`<a class="btn btn-secondary" href="/?show=%s" hx-get="/movies?show=%s" hx-target="#movies" hx-swap="outerHTML">Load more</a>`,
					strconv.Itoa(view.Next), strconv.Itoa(view.Next))
			}
		}

		hw.raw(`</section>`)
		return hw.err
	})
}

// MovieCard renders one movie with its add-ticket buttons
func MovieCard(movie models.MovieRef, posterBaseURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		id := strconv.FormatInt(movie.ID, 10)

		hw.printf(`<article class="movie-card" id="movie-%s">`, id)
		if poster := movie.PosterURL(posterBaseURL); poster != "" {
			hw.printf(`<img src="%s" alt="%s poster" loading="lazy">`, poster, movie.Title)
		}
		hw.printf(`<h3>%s</h3><p class="overview">%s</p>`, movie.Title, movie.Description)

		hw.raw(`<div class="actions">`)
		for _, category := range models.TicketCategories {
			hw.render(ctx, cartButton("/cart/add", id, category, "Add "+category.String(), "btn btn-primary"))
		}
		hw.raw(`</div></article>`)
		return hw.err
	})
}

// cartButton is a one-button form posting a cart action for a movie.
// It works as a plain form without HTMX.
func cartButton(action, movieID string, category models.TicketCategory, label, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.printf(`<form method="post" action="%s" hx-post="%s" hx-target="#cart" hx-swap="outerHTML">`, action, action)
		hw.render(ctx, CSRFField())
		hw.printf(`<input type="hidden" name="movie_id" value="%s">`, movieID)
		if category != "" {
			hw.printf(`<input type="hidden" name="ticket_type" value="%s">`, category.String())
		}
		hw.printf(`<button type="submit" class="%s">%s</button></form>`, class, label)
		return hw.err
	})
}
