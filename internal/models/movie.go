package models

// MediaTypeMovie is the media type tag carried by every catalog item.
const MediaTypeMovie = "movie"

// Mood is a qualitative descriptor derived from genres.
type Mood string

// CastMember is a cast entry attached to a movie by a detail fetch.
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Image     string `json:"image,omitempty"`
}

// MovieItem is one entry of the catalog.
// Extended fields (runtime, director, cast...) are only set after a detail fetch.
type MovieItem struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	MediaType   string   `json:"type"`
	Rating      float64  `json:"rating"`
	Poster      string   `json:"image"`
	GenreIDs    []int    `json:"genre"`
	GenreNames  []string `json:"genreNames,omitempty"`
	Moods       []Mood   `json:"mood"`
	Description string   `json:"description"`
	Year        int      `json:"year,omitempty"`
	Popularity  float64  `json:"popularity"`
	VoteCount   int      `json:"voteCount"`
	UserRating  *int     `json:"userRating"`

	Runtime  int          `json:"runtime,omitempty"`
	Director string       `json:"director,omitempty"`
	Cast     []CastMember `json:"cast,omitempty"`
	Language string       `json:"language,omitempty"`
	Budget   int64        `json:"budget,omitempty"`
	Revenue  int64        `json:"revenue,omitempty"`
}

// HasMood reports whether the item carries mood m.
func (m *MovieItem) HasMood(mood Mood) bool {
	for _, candidate := range m.Moods {
		if candidate == mood {
			return true
		}
	}
	return false
}

// HasAnyGenre reports whether the item carries at least one genre of the set.
func (m *MovieItem) HasAnyGenre(genres map[int]struct{}) bool {
	for _, id := range m.GenreIDs {
		if _, ok := genres[id]; ok {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the item.
func (m MovieItem) Clone() MovieItem {
	out := m
	out.GenreIDs = append([]int(nil), m.GenreIDs...)
	out.GenreNames = append([]string(nil), m.GenreNames...)
	out.Moods = append([]Mood(nil), m.Moods...)
	out.Cast = append([]CastMember(nil), m.Cast...)
	if m.UserRating != nil {
		rating := *m.UserRating
		out.UserRating = &rating
	}
	return out
}

// MoviePage is one page of movies from the metadata API.
type MoviePage struct {
	Movies     []MovieItem
	Page       int
	TotalPages int
}
