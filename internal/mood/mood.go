// Package mood maps TMDB genres to mood tags and mood tags back to genres.
//
// The two directions are kept as separate literal tables. They are not inverses
// of each other: the reverse table drives "browse by mood" discovery queries, the
// forward table tags individual movies.
package mood

import (
	"sort"

	"github.com/amaumene/mediamatch/internal/models"
)

// Browsable moods offered by the mood picker.
const (
	Happy            models.Mood = "happy"
	Sad              models.Mood = "sad"
	Excited          models.Mood = "excited"
	Relaxed          models.Mood = "relaxed"
	Romantic         models.Mood = "romantic"
	Mysterious       models.Mood = "mysterious"
	Intense          models.Mood = "intense"
	Magical          models.Mood = "magical"
	Dramatic         models.Mood = "dramatic"
	Funny            models.Mood = "funny"
	Adventurous      models.Mood = "adventurous"
	MindBending      models.Mood = "mind-bending"
	ActionPacked     models.Mood = "action-packed"
	Spooky           models.Mood = "spooky"
	ThoughtProvoking models.Mood = "thought-provoking"
)

// Tags that only appear through genre derivation.
const (
	Dark        models.Mood = "dark"
	Informative models.Mood = "informative"
	Emotional   models.Mood = "emotional"
	Reflective  models.Mood = "reflective"
	Suspenseful models.Mood = "suspenseful"
)

// genreMoods is the forward table: TMDB genre ID -> moods.
var genreMoods = map[int][]models.Mood{
	28:    {Excited, Intense},              // Action
	12:    {Excited, Adventurous},          // Adventure
	16:    {Happy, Relaxed},                // Animation
	35:    {Happy, Funny},                  // Comedy
	80:    {Intense, Dark},                 // Crime
	99:    {ThoughtProvoking, Informative}, // Documentary
	18:    {Emotional, Reflective},         // Drama
	10751: {Happy, Relaxed},                // Family
	14:    {Excited, Magical},              // Fantasy
	36:    {ThoughtProvoking, Reflective},  // History
	27:    {Intense, Dark},                 // Horror
	10402: {Happy, Relaxed},                // Music
	9648:  {Intense, Mysterious},           // Mystery
	10749: {Romantic, Emotional},           // Romance
	878:   {MindBending, Excited},          // Science Fiction
	53:    {Intense, Suspenseful},          // Thriller
	10752: {Intense, Emotional},            // War
	37:    {Adventurous, Intense},          // Western
}

// moodGenres is the reverse table used for discovery: mood -> TMDB genre IDs.
var moodGenres = map[models.Mood][]int{
	Happy:            {35, 16, 10751},
	Sad:              {18, 10749},
	Excited:          {28, 12, 878},
	Relaxed:          {35, 10751},
	ThoughtProvoking: {99, 36, 18},
	Romantic:         {10749, 35},
	Intense:          {53, 27, 80},
	Mysterious:       {9648, 80},
	Magical:          {14, 16},
	Dramatic:         {18, 36},
	Funny:            {35},
	Adventurous:      {12, 28},
	MindBending:      {878, 9648},
	ActionPacked:     {28, 53},
	Spooky:           {27, 9648},
}

// browsable keeps the picker order stable.
var browsable = []models.Mood{
	Happy, Sad, Excited, Relaxed, Romantic, Mysterious, Intense, Magical,
	Dramatic, Funny, Adventurous, MindBending, ActionPacked, Spooky, ThoughtProvoking,
}

// Derive returns the union of moods mapped from genreIDs, without duplicates.
// The result is sorted, so it does not depend on the order of genreIDs.
func Derive(genreIDs []int) []models.Mood {
	seen := make(map[models.Mood]struct{})
	out := []models.Mood{}
	for _, id := range genreIDs {
		for _, m := range genreMoods[id] {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Genres returns the discovery genres for a mood, or nil for an unknown mood.
func Genres(m models.Mood) []int {
	ids, ok := moodGenres[m]
	if !ok {
		return nil
	}
	return append([]int(nil), ids...)
}

// Browsable returns the moods offered for browsing, in display order.
func Browsable() []models.Mood {
	return append([]models.Mood(nil), browsable...)
}

// Known reports whether m can be used as a filter: any browsable mood or any derived tag.
func Known(m models.Mood) bool {
	if _, ok := moodGenres[m]; ok {
		return true
	}
	for _, moods := range genreMoods {
		for _, candidate := range moods {
			if candidate == m {
				return true
			}
		}
	}
	return false
}
