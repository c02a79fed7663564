package catalog

import (
	"sort"

	"github.com/amaumene/mediamatch/internal/models"
)

// filter holds the active mood and genre selections. Both conditions are
// ANDed when both are set.
type filter struct {
	mood   models.Mood
	genres map[int]struct{}
}

func (f *filter) matches(item *models.MovieItem) bool {
	if f.mood != "" && !item.HasMood(f.mood) {
		return false
	}
	if len(f.genres) > 0 && !item.HasAnyGenre(f.genres) {
		return false
	}
	return true
}

// apply returns copies of the matching items in list order.
func (f *filter) apply(items []models.MovieItem) []models.MovieItem {
	out := make([]models.MovieItem, 0, len(items))
	for i := range items {
		if f.matches(&items[i]) {
			out = append(out, items[i].Clone())
		}
	}
	return out
}

func (f *filter) genreList() []int {
	out := make([]int, 0, len(f.genres))
	for id := range f.genres {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
