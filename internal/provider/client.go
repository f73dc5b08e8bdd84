package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BenBeattieHood/webjet-movie-comparer/internal/models"
)

const (
	// The upstreams are flaky by design: one immediate retry with a short
	// pause clears most failures, anything beyond that is the queue's job.
	fetchAttempts = 2
	fetchPause    = 1 * time.Second
)

// Client fetches catalog listings and item detail from the provider API.
// Both providers live behind one base URL, e.g.
// https://webjetapitest.azurewebsites.net/api.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	pause   time.Duration
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		pause:   fetchPause,
	}
}

// Catalog fetches the full item listing for one provider.
func (c *Client) Catalog(ctx context.Context, p Provider) ([]models.MovieSummary, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s/movies", c.baseURL, p))
	if err != nil {
		return nil, err
	}

	var list models.MovieListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode %s catalog: %w", p, err)
	}
	if list.Movies == nil {
		return nil, fmt.Errorf("no movies in %s catalog response", p)
	}
	return list.Movies, nil
}

// Detail fetches one item by provider-scoped id.
func (c *Client) Detail(ctx context.Context, p Provider, id string) (*models.MovieDetail, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%s/movie/%s", c.baseURL, p, id))
	if err != nil {
		return nil, err
	}

	var resp models.MovieDetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode %s movie %s: %w", p, id, err)
	}
	if resp.Movie == nil {
		return nil, fmt.Errorf("no movie in %s response for %s", p, id)
	}
	return resp.Movie, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.pause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-access-token", c.apiKey)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("fetch %s after %d attempts: %w", url, fetchAttempts, lastErr)
}
