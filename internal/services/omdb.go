package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/popcorn/internal/models"
	"github.com/desertthunder/popcorn/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.omdbapi.com/"

var _ Catalog = (*OMDbService)(nil)

// OMDbService implements [Catalog] against the OMDb API.
type OMDbService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// searchResponse is the envelope of a title search.
type searchResponse struct {
	Response string         `json:"Response"`
	Search   []models.Movie `json:"Search"`
	Error    string         `json:"Error"`
}

// detailResponse is the envelope of a lookup by imdbID.
type detailResponse struct {
	models.MovieDetail
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// NewOMDbService creates a new OMDb catalog client.
//
// A nil client gets a default one with the configured timeout; a non-positive rate limit disables throttling.
func NewOMDbService(cfg shared.CatalogConfig, client *http.Client, logger *log.Logger) *OMDbService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if client == nil {
		timeout := time.Duration(cfg.Timeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &OMDbService{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     shared.WithLogger(logger, "component", "omdb"),
	}
}

// Name returns the provider name.
func (s *OMDbService) Name() string {
	return "OMDb"
}

// Search performs a title search.
func (s *OMDbService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("s", query)

	var resp searchResponse
	if err := s.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	if resp.Response == "False" {
		s.logger.Debug("search returned no match", "query", query, "error", resp.Error)
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, resp.Error)
	}

	if resp.Search == nil {
		return []models.Movie{}, nil
	}

	s.logger.Debug("search complete", "query", query, "results", len(resp.Search))
	return resp.Search, nil
}

// Details fetches the full record for imdbID.
func (s *OMDbService) Details(ctx context.Context, imdbID string) (*models.MovieDetail, error) {
	if imdbID == "" {
		return nil, fmt.Errorf("%w: imdbID is required", shared.ErrMissingArgument)
	}

	params := url.Values{}
	params.Set("i", imdbID)

	var resp detailResponse
	if err := s.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	if resp.Response == "False" {
		return nil, fmt.Errorf("%w: %s", shared.ErrMovieNotFound, resp.Error)
	}

	return &resp.MovieDetail, nil
}

// get waits for the limiter, performs the request and decodes the JSON body into out.
func (s *OMDbService) get(ctx context.Context, params url.Values, out any) error {
	if s.apiKey == "" {
		return shared.ErrAPIKeyMissing
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("apikey", s.apiKey)
	reqURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request aborted: %w", ctxErr)
		}
		s.logger.Error("HTTP request failed", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("unexpected status", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", shared.ErrNetwork, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("request aborted: %w", ctxErr)
		}
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrNetwork, err)
	}

	return nil
}
