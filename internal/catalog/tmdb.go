package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"movie-ticket-cart/internal/models"
)

// TMDBConfig represents the TMDB API client configuration
type TMDBConfig struct {
	Token    string // v4 read access token, sent as a bearer credential
	BaseURL  string
	Language string
	Page     int
	Timeout  time.Duration
}

// TMDBClient fetches the top rated movie list from TMDB
type TMDBClient struct {
	config TMDBConfig
	client *http.Client
}

// NewTMDBClient creates a new TMDB client
func NewTMDBClient(config TMDBConfig) *TMDBClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.themoviedb.org/3"
	}
	if config.Language == "" {
		config.Language = "en-US"
	}
	if config.Page <= 0 {
		config.Page = 1
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return &TMDBClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// topRatedResponse is the subset of the TMDB list payload we use
type topRatedResponse struct {
	Page    int         `json:"page"`
	Results []tmdbMovie `json:"results"`
}

type tmdbMovie struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
}

// TMDBError represents an error response from TMDB
type TMDBError struct {
	StatusCode    int    `json:"-"`
	StatusMessage string `json:"status_message"`
	Code          int    `json:"status_code"`
}

func (e *TMDBError) Error() string {
	if e.StatusMessage == "" {
		return fmt.Sprintf("TMDB error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("TMDB error: HTTP %d: %s", e.StatusCode, e.StatusMessage)
}

// Movies fetches one page of top rated movies
func (c *TMDBClient) Movies(ctx context.Context) ([]models.MovieRef, error) {
	query := url.Values{}
	query.Set("language", c.config.Language)
	query.Set("page", strconv.Itoa(c.config.Page))
	listURL := c.config.BaseURL + "/movie/top_rated?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &TMDBError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(body, apiErr)
		return nil, apiErr
	}

	var list topRatedResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	movies := make([]models.MovieRef, 0, len(list.Results))
	for _, m := range list.Results {
		movies = append(movies, models.MovieRef{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Overview,
			PosterPath:  m.PosterPath,
		})
	}
	return movies, nil
}
