package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/amaumene/mediamatch/internal/cache"
	"github.com/amaumene/mediamatch/internal/config"
	"github.com/amaumene/mediamatch/internal/constants"
	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/metrics"
	"github.com/amaumene/mediamatch/internal/models"
	"github.com/amaumene/mediamatch/pkg/httputil"
	"github.com/amaumene/mediamatch/pkg/logger"
	"github.com/amaumene/mediamatch/pkg/ratelimiter"
	"github.com/amaumene/mediamatch/pkg/security"
)

// User-facing messages for metadata API failures.
const (
	msgServiceError = "An error occurred with the movie service"
	msgNoResponse   = "No response from movie service"
)

const breakerName = "tmdb"

// TMDB is the client for the movie metadata API.
type TMDB struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	cache        cache.Cache[int, models.MovieItem]
	rateLimiter  ratelimiter.RateLimiter
	breaker      *gobreaker.CircuitBreaker[interface{}]
	httpClient   *http.Client
	logger       logger.Logger
	validator    *security.APIKeyValidator
}

// NewTMDB builds a client. detailCache may be nil to disable detail caching.
func NewTMDB(cfg config.TMDBConfig, detailCache cache.Cache[int, models.MovieItem], log logger.Logger) *TMDB {
	if log == nil {
		log = logger.Nop()
	}
	validator := security.NewAPIKeyValidator()

	apiKey := validator.SanitizeAPIKey(cfg.APIKey)
	switch {
	case apiKey == "":
		log.Warn("[TMDB] no API key configured, requests will be rejected by the service")
	case !validator.IsValidTMDBKey(apiKey):
		log.Warnf("[TMDB] API key has an unexpected format (key: %s)", validator.MaskAPIKey(apiKey))
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.TMDBRequestTimeout
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.DefaultTMDBBaseURL
	}
	imageBaseURL := cfg.ImageBaseURL
	if imageBaseURL == "" {
		imageBaseURL = constants.DefaultTMDBImageBaseURL
	}

	return &TMDB{
		apiKey:       apiKey,
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		cache:        detailCache,
		rateLimiter:  ratelimiter.NewTokenBucket(float64(cfg.RateLimit), cfg.RateBurst),
		breaker:      newBreaker(log),
		httpClient:   httputil.NewHTTPClient(timeout),
		logger:       log,
		validator:    validator,
	}
}

func newBreaker(log logger.Logger) *gobreaker.CircuitBreaker[interface{}] {
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: constants.BreakerMaxRequests,
		Interval:    constants.BreakerInterval,
		Timeout:     constants.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < constants.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= constants.BreakerFailureRatio
		},
		// API-level rejections (bad key, unknown id) say nothing about availability.
		IsSuccessful: func(err error) bool {
			var statusErr *httputil.StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("[TMDB] circuit breaker %s: %s -> %s", name, from, to)
			metrics.SetBreakerState(name, int(to))
		},
	}
	return gobreaker.NewCircuitBreaker[interface{}](settings)
}

// Trending returns one page of the weekly trending movies.
func (t *TMDB) Trending(ctx context.Context, page int) (models.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	return t.fetchPage(ctx, "trending", "/trending/movie/week", params)
}

// Search returns one page of movies matching query.
func (t *TMDB) Search(ctx context.Context, query string, page int) (models.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(normalizePage(page)))
	return t.fetchPage(ctx, "search", "/search/movie", params)
}

// Discover returns popular, sufficiently voted movies carrying all of genreIDs.
func (t *TMDB) Discover(ctx context.Context, genreIDs []int, page int) (models.MoviePage, error) {
	if len(genreIDs) == 0 {
		return models.MoviePage{Movies: []models.MovieItem{}, Page: 1}, nil
	}
	ids := make([]string, len(genreIDs))
	for i, id := range genreIDs {
		ids[i] = strconv.Itoa(id)
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	// comma-joined: TMDB requires every listed genre
	params.Set("with_genres", strings.Join(ids, ","))
	params.Set("sort_by", "popularity.desc")
	params.Set("vote_count.gte", strconv.Itoa(constants.MoodDiscoverMinVotes))
	return t.fetchPage(ctx, "discover", "/discover/movie", params)
}

// MovieDetails fetches a movie with its credits. Results are cached per id.
func (t *TMDB) MovieDetails(ctx context.Context, id int) (models.MovieItem, error) {
	if t.cache != nil {
		if item, ok := t.cache.Get(id); ok {
			metrics.RecordCacheLookup(true)
			return item.Clone(), nil
		}
		metrics.RecordCacheLookup(false)
	}

	var (
		details models.TMDBMovieDetails
		credits models.TMDBCredits
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return t.getJSON(gctx, "details", fmt.Sprintf("/movie/%d", id), nil, &details)
	})
	g.Go(func() error {
		return t.getJSON(gctx, "credits", fmt.Sprintf("/movie/%d/credits", id), nil, &credits)
	})
	if err := g.Wait(); err != nil {
		return models.MovieItem{}, err
	}

	item := t.formatDetails(details, credits)
	if t.cache != nil {
		t.cache.Set(id, item.Clone())
	}
	return item, nil
}

func (t *TMDB) fetchPage(ctx context.Context, endpoint, path string, params url.Values) (models.MoviePage, error) {
	var resp models.TMDBMovieResponse
	if err := t.getJSON(ctx, endpoint, path, params, &resp); err != nil {
		return models.MoviePage{}, err
	}

	movies := make([]models.MovieItem, 0, len(resp.Results))
	for _, m := range resp.Results {
		movies = append(movies, t.formatMovie(m))
	}
	t.logger.Debugf("[TMDB] %s page %d/%d: %d movies", endpoint, resp.Page, resp.TotalPages, len(movies))

	return models.MoviePage{
		Movies:     movies,
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
	}, nil
}

// getJSON performs one throttled, breaker-guarded GET and maps failures to
// network errors carrying the user-facing message.
func (t *TMDB) getJSON(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	if err := t.rateLimiter.Wait(ctx); err != nil {
		return apperrors.NewNetworkError(msgNoResponse, err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)
	requestURL := t.baseURL + path + "?" + params.Encode()

	start := time.Now()
	_, err := t.breaker.Execute(func() (interface{}, error) {
		return nil, httputil.GetJSON(ctx, t.httpClient, requestURL, out)
	})
	if err == nil {
		metrics.RecordTMDBRequest(endpoint, http.StatusOK, time.Since(start))
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.RecordTMDBRejected(endpoint)
		t.logger.Warnf("[TMDB] %s request rejected: %v", endpoint, err)
		return apperrors.NewNetworkError(msgNoResponse, err)
	}

	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		metrics.RecordTMDBRequest(endpoint, statusErr.StatusCode, time.Since(start))
		message := serviceMessage(statusErr.Body)
		t.logger.Errorf("[TMDB] %s request failed with status %d: %s", endpoint, statusErr.StatusCode, message)
		return apperrors.NewNetworkError(message, err)
	}

	metrics.RecordTMDBRequest(endpoint, 0, time.Since(start))
	t.logger.Errorf("[TMDB] %s request failed: %v", endpoint, err)
	return apperrors.NewNetworkError(msgNoResponse, err)
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
