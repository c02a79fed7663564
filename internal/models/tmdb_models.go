// Package models defines data structures for TMDB API responses and the application domain.
package models

// TMDBMovie is a movie record as returned by list endpoints (trending, search, discover).
type TMDBMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}

// TMDBMovieResponse is one page of a list endpoint.
type TMDBMovieResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type TMDBGenre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TMDBMovieDetails is the /movie/{id} record.
type TMDBMovieDetails struct {
	ID               int         `json:"id"`
	IMDBId           string      `json:"imdb_id"`
	Title            string      `json:"title"`
	OriginalTitle    string      `json:"original_title"`
	Overview         string      `json:"overview"`
	PosterPath       string      `json:"poster_path"`
	BackdropPath     string      `json:"backdrop_path"`
	ReleaseDate      string      `json:"release_date"`
	Runtime          int         `json:"runtime"`
	VoteAverage      float64     `json:"vote_average"`
	VoteCount        int         `json:"vote_count"`
	Popularity       float64     `json:"popularity"`
	Genres           []TMDBGenre `json:"genres"`
	OriginalLanguage string      `json:"original_language"`
	Budget           int64       `json:"budget"`
	Revenue          int64       `json:"revenue"`
}

// TMDBErrorBody is the JSON body TMDB returns with non-2xx statuses.
type TMDBErrorBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
