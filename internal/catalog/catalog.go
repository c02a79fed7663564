// Package catalog holds the working list of movies shown to the viewer and
// the filter, sort, pagination and selection state around it.
package catalog

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/metrics"
	"github.com/amaumene/mediamatch/internal/models"
	"github.com/amaumene/mediamatch/internal/mood"
	"github.com/amaumene/mediamatch/pkg/logger"
)

// Source is the movie metadata provider.
type Source interface {
	Trending(ctx context.Context, page int) (models.MoviePage, error)
	Search(ctx context.Context, query string, page int) (models.MoviePage, error)
	Discover(ctx context.Context, genreIDs []int, page int) (models.MoviePage, error)
	MovieDetails(ctx context.Context, id int) (models.MovieItem, error)
}

type feed int

const (
	feedTrending feed = iota
	feedSearch
	feedMood
)

// State is a point-in-time snapshot for presentation.
type State struct {
	Items         []models.MovieItem `json:"items"`
	Total         int                `json:"total"`
	Mood          models.Mood        `json:"mood,omitempty"`
	Genres        []int              `json:"genres"`
	SortBy        SortKey            `json:"sortBy"`
	SortDirection SortDirection      `json:"sortDirection"`
	Page          int                `json:"page"`
	TotalPages    int                `json:"totalPages"`
	HasMore       bool               `json:"hasMore"`
	Query         string             `json:"query,omitempty"`
	BrowseMood    models.Mood        `json:"browseMood,omitempty"`
	Loading       bool               `json:"loading"`
	DetailLoading bool               `json:"detailLoading"`
	Error         string             `json:"error,omitempty"`
	Selected      *models.MovieItem  `json:"selected,omitempty"`
}

// Catalog is safe for concurrent use. Fetches run without holding the lock;
// their results are applied only if no list-resetting operation started since.
type Catalog struct {
	mu     sync.Mutex
	source Source
	logger logger.Logger

	items  []models.MovieItem
	filter filter

	sortKey SortKey
	sortDir SortDirection

	page       int
	totalPages int
	loading    bool
	lastErr    string

	feed       feed
	query      string
	browseMood models.Mood
	generation uint64

	selected      *models.MovieItem
	detailOpen    bool
	detailLoading bool
	selectSeq     uint64
}

func New(source Source, log logger.Logger) *Catalog {
	if log == nil {
		log = logger.Nop()
	}
	return &Catalog{
		source:  source,
		logger:  log,
		items:   []models.MovieItem{},
		sortKey: SortPopularity,
		sortDir: Descending,
		filter:  filter{genres: map[int]struct{}{}},
	}
}

// LoadTrending fetches a page of trending movies. Page 1 replaces the list
// and applies the active sort, later pages are appended.
func (c *Catalog) LoadTrending(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	if page == 1 {
		c.generation++
		c.items = []models.MovieItem{}
		c.page, c.totalPages = 0, 0
		c.feed = feedTrending
		c.query = ""
		c.browseMood = ""
		metrics.CatalogItems.Set(0)
	}
	gen := c.generation
	c.loading = true
	c.mu.Unlock()

	result, err := c.source.Trending(ctx, page)
	return c.apply(gen, page, page == 1, result, err, "trending")
}

// Search replaces the list with the first page of results for query.
// A blank query does nothing.
func (c *Catalog) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.feed = feedSearch
	c.query = query
	c.browseMood = ""
	c.loading = true
	c.mu.Unlock()

	result, err := c.source.Search(ctx, query, 1)
	return c.apply(gen, 1, true, result, err, "search")
}

// BrowseByMood replaces the list with popular movies from the mood's discovery genres.
func (c *Catalog) BrowseByMood(ctx context.Context, m models.Mood) error {
	genres := mood.Genres(m)
	if genres == nil {
		return c.fail(apperrors.NewValidationError("Unknown mood: " + string(m)))
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.feed = feedMood
	c.query = ""
	c.browseMood = m
	c.loading = true
	c.mu.Unlock()

	result, err := c.source.Discover(ctx, genres, 1)
	return c.apply(gen, 1, true, result, err, "discover")
}

// LoadMore appends the next page of the active feed. It does nothing while a
// load is in flight or when the last page has been reached.
func (c *Catalog) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || c.page >= c.totalPages {
		c.mu.Unlock()
		return nil
	}
	gen := c.generation
	next := c.page + 1
	active, query, browseMood := c.feed, c.query, c.browseMood
	c.loading = true
	c.mu.Unlock()

	var (
		result models.MoviePage
		err    error
		label  string
	)
	switch active {
	case feedSearch:
		label = "search"
		result, err = c.source.Search(ctx, query, next)
	case feedMood:
		label = "discover"
		result, err = c.source.Discover(ctx, mood.Genres(browseMood), next)
	default:
		label = "trending"
		result, err = c.source.Trending(ctx, next)
	}
	return c.apply(gen, next, false, result, err, label)
}

// apply commits a fetch result unless the list was reset since it started.
func (c *Catalog) apply(gen uint64, page int, replace bool, result models.MoviePage, err error, label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debugf("[Catalog] discarding stale %s page %d", label, page)
		return nil
	}
	c.loading = false

	if err != nil {
		c.lastErr = apperrors.Message(err)
		if replace {
			c.items = []models.MovieItem{}
			c.page, c.totalPages = 0, 0
		}
		c.logger.Warnf("[Catalog] %s page %d failed: %v", label, page, err)
		metrics.CatalogItems.Set(float64(len(c.items)))
		return err
	}

	c.lastErr = ""
	if replace {
		c.items = append([]models.MovieItem{}, result.Movies...)
		if label == "trending" {
			sortItems(c.items, c.sortKey, c.sortDir)
		}
	} else {
		c.items = append(c.items, result.Movies...)
	}
	c.page = page
	if result.Page > 0 {
		c.page = result.Page
	}
	c.totalPages = result.TotalPages
	metrics.CatalogItems.Set(float64(len(c.items)))

	c.logger.Debugf("[Catalog] %s page %d/%d applied, %d items held", label, c.page, c.totalPages, len(c.items))
	return nil
}

// SetMood activates a mood filter. Setting the active mood again keeps it set.
func (c *Catalog) SetMood(m models.Mood) error {
	if m == "" {
		c.ClearMoodFilter()
		return nil
	}
	if !mood.Known(m) {
		return c.fail(apperrors.NewValidationError("Unknown mood: " + string(m)))
	}
	c.mu.Lock()
	c.filter.mood = m
	c.mu.Unlock()
	return nil
}

func (c *Catalog) ClearMoodFilter() {
	c.mu.Lock()
	c.filter.mood = ""
	c.mu.Unlock()
}

// SetGenres replaces the genre filter. An empty list disables it.
func (c *Catalog) SetGenres(ids []int) {
	genres := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		genres[id] = struct{}{}
	}
	c.mu.Lock()
	c.filter.genres = genres
	c.mu.Unlock()
}

// SetSort re-orders the held list in place.
func (c *Catalog) SetSort(key SortKey, dir SortDirection) {
	key, _ = ParseSortKey(string(key))
	dir, _ = ParseSortDirection(string(dir))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey, c.sortDir = key, dir
	sortItems(c.items, key, dir)
}

// SelectItem fetches details for id, merges them into the matching list entry
// and opens the detail view.
func (c *Catalog) SelectItem(ctx context.Context, id int) error {
	c.mu.Lock()
	c.selectSeq++
	seq := c.selectSeq
	c.detailLoading = true
	c.mu.Unlock()

	details, err := c.source.MovieDetails(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.selectSeq {
		return nil
	}
	c.detailLoading = false

	if err != nil {
		c.lastErr = apperrors.Message(err)
		c.detailOpen = false
		c.selected = nil
		c.logger.Warnf("[Catalog] details for %d failed: %v", id, err)
		return err
	}

	c.lastErr = ""
	merged := details
	matched := false
	for _, idx := range c.indexesOf(id) {
		entry := details.Clone()
		entry.UserRating = c.items[idx].UserRating
		if !matched {
			merged.UserRating = entry.UserRating
			matched = true
		}
		c.items[idx] = entry
	}
	c.selected = &merged
	c.detailOpen = true
	return nil
}

// CloseDetail closes the detail view.
func (c *Catalog) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectSeq++
	c.detailOpen = false
	c.detailLoading = false
	c.selected = nil
}

// Rate sets the viewer's rating on a held item. Local only.
func (c *Catalog) Rate(id int, value int) error {
	if value < 1 || value > 5 {
		return c.fail(apperrors.NewValidationError("Rating must be between 1 and 5"))
	}

	c.mu.Lock()
	matches := c.indexesOf(id)
	if len(matches) == 0 {
		c.mu.Unlock()
		return c.fail(apperrors.NewNotFoundError("Movie not found"))
	}
	for _, idx := range matches {
		rating := value
		c.items[idx].UserRating = &rating
	}
	if c.selected != nil && c.selected.ID == id {
		selected := value
		c.selected.UserRating = &selected
	}
	c.lastErr = ""
	c.mu.Unlock()
	return nil
}

// Items returns the filtered view: a subsequence of All.
func (c *Catalog) Items() []models.MovieItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.apply(c.items)
}

// All returns the unfiltered list.
func (c *Catalog) All() []models.MovieItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.MovieItem, len(c.items))
	for i := range c.items {
		out[i] = c.items[i].Clone()
	}
	return out
}

func (c *Catalog) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page < c.totalPages
}

func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the message of the last failed operation, empty after a success.
func (c *Catalog) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Selected returns the item shown in the detail view, if open.
func (c *Catalog) Selected() (models.MovieItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detailOpen || c.selected == nil {
		return models.MovieItem{}, false
	}
	return c.selected.Clone(), true
}

func (c *Catalog) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Items:         c.filter.apply(c.items),
		Total:         len(c.items),
		Mood:          c.filter.mood,
		Genres:        c.filter.genreList(),
		SortBy:        c.sortKey,
		SortDirection: c.sortDir,
		Page:          c.page,
		TotalPages:    c.totalPages,
		HasMore:       c.page < c.totalPages,
		Query:         c.query,
		BrowseMood:    c.browseMood,
		Loading:       c.loading,
		DetailLoading: c.detailLoading,
		Error:         c.lastErr,
	}
	if c.detailOpen && c.selected != nil {
		selected := c.selected.Clone()
		st.Selected = &selected
	}
	return st
}

// indexesOf lists every position holding id. Overlapping provider pages can
// put the same movie in the list more than once.
func (c *Catalog) indexesOf(id int) []int {
	var out []int
	for i := range c.items {
		if c.items[i].ID == id {
			out = append(out, i)
		}
	}
	return out
}

func (c *Catalog) fail(err error) error {
	c.mu.Lock()
	c.lastErr = apperrors.Message(err)
	c.mu.Unlock()
	return err
}
