package catalog

import (
	"sort"
	"strings"

	"github.com/amaumene/mediamatch/internal/models"
)

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
	SortYear       SortKey = "year"
	SortTitle      SortKey = "title"
	SortVotes      SortKey = "votes"
	SortRuntime    SortKey = "runtime"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortKey maps user input to a key; unknown input yields popularity.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortPopularity, SortRating, SortYear, SortTitle, SortVotes, SortRuntime:
		return k, true
	case "vote_count", "votecount":
		return SortVotes, true
	default:
		return SortPopularity, false
	}
}

// ParseSortDirection maps user input to a direction; unknown input yields descending.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, true
	default:
		return Descending, false
	}
}

// compareBy orders a before b (<0), after (>0) or equal (0) on key alone.
func compareBy(key SortKey, a, b *models.MovieItem) int {
	switch key {
	case SortRating:
		return compareFloat(a.Rating, b.Rating)
	case SortYear:
		return compareInt(a.Year, b.Year)
	case SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortVotes:
		return compareInt(a.VoteCount, b.VoteCount)
	case SortRuntime:
		return compareInt(a.Runtime, b.Runtime)
	default:
		return compareFloat(a.Popularity, b.Popularity)
	}
}

// sortItems orders items in place. Ties on key fall back to ID so that the
// order is total: descending is the exact reverse of ascending.
func sortItems(items []models.MovieItem, key SortKey, dir SortDirection) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		c := compareBy(key, a, b)
		if c == 0 {
			c = compareInt(a.ID, b.ID)
		}
		if dir == Ascending {
			return c < 0
		}
		return c > 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
