// Package promptimg fetches a prompt image URL from the meme-image API.
//
// The API is imgflip-shaped: GET {base}/get_memes returns a candidate list
// and the client picks one uniformly at random. Any network error, non-2xx
// status, parse failure, empty list, or success=false surfaces as
// ErrUnavailable; callers abort the dependent operation rather than proceed
// without a prompt.
package promptimg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnavailable means the provider could not supply a prompt URL.
var ErrUnavailable = errors.New("prompt image provider unavailable")

// Fetcher is what the game service depends on; tests substitute a stub.
type Fetcher interface {
	FetchPromptURL(ctx context.Context) (string, error)
}

// Client talks to the real API with a bounded per-request timeout.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

type memesResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Memes []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"memes"`
	} `json:"data"`
}

// FetchPromptURL returns one image URL chosen uniformly from the provider's
// candidate list.
func (c *Client) FetchPromptURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_memes", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("prompt image fetch failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.log.Warn("prompt image fetch: bad status", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body memesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn("prompt image fetch: decode failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !body.Success || len(body.Data.Memes) == 0 {
		return "", fmt.Errorf("%w: empty result set", ErrUnavailable)
	}

	pick := body.Data.Memes[rand.IntN(len(body.Data.Memes))]
	if pick.URL == "" {
		return "", fmt.Errorf("%w: candidate without url", ErrUnavailable)
	}
	return pick.URL, nil
}
