// Package omdb is a thin client for the OMDb movie database. The REST layer
// proxies search and detail requests through it; payloads keep OMDb's field
// shape so the SPA consumes them unchanged.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/reelist/reelist/internal/common"
)

const defaultBaseURL = "https://www.omdbapi.com/"

// Client handles OMDb API interactions.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// MovieSummary is one result row from a title search.
type MovieSummary struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// SearchResult is the response shape of an OMDb `s=` query.
type SearchResult struct {
	Search       []MovieSummary `json:"Search"`
	TotalResults string         `json:"totalResults"`
	Response     string         `json:"Response"`
	Error        string         `json:"Error,omitempty"`
}

// MovieDetail is the response shape of an OMDb `i=` query.
type MovieDetail struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	Ratings  []struct {
		Source string `json:"Source"`
		Value  string `json:"Value"`
	} `json:"Ratings"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

// NewClient constructs a Client for the public OMDb endpoint.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL constructs a Client against a custom endpoint, used
// in tests to point at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Search runs a title search limited to movies. OMDb's "no results" response
// maps to common.ErrNotFound carrying OMDb's message.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", "movie")

	var result SearchResult
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}

	if result.Response == "False" {
		msg := result.Error
		if msg == "" {
			msg = "no movies found"
		}
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	}

	return &result, nil
}

// Detail fetches one movie by IMDb id with a short plot. An unknown id maps
// to common.ErrNotFound.
func (c *Client) Detail(ctx context.Context, imdbID string) (*MovieDetail, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "short")

	var result MovieDetail
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}

	if result.Response == "False" {
		msg := result.Error
		if msg == "" {
			msg = "movie not found"
		}
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, msg)
	}

	return &result, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("omdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("omdb response decode failed: %w", err)
	}

	return nil
}
