package models

import "strings"

// DefaultPosterBaseURL is where TMDB serves w500 poster images
const DefaultPosterBaseURL = "https://image.tmdb.org/t/p/w500"

// MovieRef is an immutable reference to a catalog entry.
// Line items keep a copy of it; nothing in the cart mutates it.
type MovieRef struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"overview"`
	PosterPath  string `json:"poster_path" db:"poster_path"`
}

// PosterURL joins the poster path onto the image base URL.
// It returns an empty string when the movie has no poster.
func (m MovieRef) PosterURL(baseURL string) string {
	if m.PosterPath == "" {
		return ""
	}
	if baseURL == "" {
		baseURL = DefaultPosterBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(m.PosterPath, "/")
}
