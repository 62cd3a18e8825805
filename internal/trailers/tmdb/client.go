package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Movie represents a single TMDB search match.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// SearchResponse models the TMDB paginated movie search response.
type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalResults int     `json:"total_results"`
}

// Video is one entry from a movie's videos listing.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideosResponse models the TMDB movie videos payload.
type VideosResponse struct {
	ID      int64   `json:"id"`
	Results []Video `json:"results"`
}

// Finder defines the TMDB operations trailer lookup needs.
type Finder interface {
	SearchMovie(ctx context.Context, query string) (*SearchResponse, error)
	MovieVideos(ctx context.Context, movieID int64) (*VideosResponse, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ Finder = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie searches TMDB for the supplied title.
func (c *Client) SearchMovie(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload SearchResponse
	if err := c.get(ctx, "/search/movie", params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie search: %w", err)
	}
	return &payload, nil
}

// MovieVideos fetches the videos listing for a movie.
func (c *Client) MovieVideos(ctx context.Context, movieID int64) (*VideosResponse, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload VideosResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), url.Values{}, &payload); err != nil {
		return nil, fmt.Errorf("tmdb movie videos: %w", err)
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb returned %d (latency=%v)", resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb response: %w", err)
	}
	return nil
}

// TrailerURL resolves a movie title to the YouTube watch URL of its first
// trailer: first search result, first video with type Trailer on YouTube.
// Returns empty when the movie or a suitable trailer does not exist.
func TrailerURL(ctx context.Context, finder Finder, title string) (string, error) {
	search, err := finder.SearchMovie(ctx, title)
	if err != nil {
		return "", err
	}
	if len(search.Results) == 0 || search.Results[0].ID <= 0 {
		return "", nil
	}

	videos, err := finder.MovieVideos(ctx, search.Results[0].ID)
	if err != nil {
		return "", err
	}
	for _, video := range videos.Results {
		if video.Type == "Trailer" && video.Site == "YouTube" && video.Key != "" {
			return "https://www.youtube.com/watch?v=" + video.Key, nil
		}
	}
	return "", nil
}
