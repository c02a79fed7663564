package services

import (
	"strconv"

	"github.com/goccy/go-json"

	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/internal/models"
	"github.com/amaumene/mediamatch/internal/mood"
)

const unknownDirector = "Unknown"

func (t *TMDB) formatMovie(m models.TMDBMovie) models.MovieItem {
	genres := append([]int{}, m.GenreIDs...)
	return models.MovieItem{
		ID:          m.ID,
		Title:       m.Title,
		MediaType:   models.MediaTypeMovie,
		Rating:      m.VoteAverage / 2,
		Poster:      t.posterURL(m.PosterPath),
		GenreIDs:    genres,
		Moods:       mood.Derive(genres),
		Description: m.Overview,
		Year:        extractYearFromDate(m.ReleaseDate),
		Popularity:  m.Popularity,
		VoteCount:   m.VoteCount,
		Language:    m.OriginalLanguage,
	}
}

func (t *TMDB) formatDetails(d models.TMDBMovieDetails, c models.TMDBCredits) models.MovieItem {
	genreIDs := make([]int, 0, len(d.Genres))
	genreNames := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genreIDs = append(genreIDs, g.ID)
		genreNames = append(genreNames, g.Name)
	}

	director, ok := c.Director()
	if !ok {
		director = unknownDirector
	}

	castSize := len(c.Cast)
	if castSize > constants.MaxCastMembers {
		castSize = constants.MaxCastMembers
	}
	cast := make([]models.CastMember, 0, castSize)
	for _, actor := range c.Cast[:castSize] {
		member := models.CastMember{
			ID:        actor.ID,
			Name:      actor.Name,
			Character: actor.Character,
		}
		if actor.ProfilePath != "" {
			member.Image = t.imageBaseURL + actor.ProfilePath
		}
		cast = append(cast, member)
	}

	return models.MovieItem{
		ID:          d.ID,
		Title:       d.Title,
		MediaType:   models.MediaTypeMovie,
		Rating:      d.VoteAverage / 2,
		Poster:      t.posterURL(d.PosterPath),
		GenreIDs:    genreIDs,
		GenreNames:  genreNames,
		Moods:       mood.Derive(genreIDs),
		Description: d.Overview,
		Year:        extractYearFromDate(d.ReleaseDate),
		Popularity:  d.Popularity,
		VoteCount:   d.VoteCount,
		Runtime:     d.Runtime,
		Director:    director,
		Cast:        cast,
		Language:    d.OriginalLanguage,
		Budget:      d.Budget,
		Revenue:     d.Revenue,
	}
}

func (t *TMDB) posterURL(path string) string {
	if path == "" {
		return constants.PlaceholderPoster
	}
	return t.imageBaseURL + path
}

// extractYearFromDate reads the year of a YYYY-MM-DD date, 0 when absent or malformed.
func extractYearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// serviceMessage extracts status_message from a TMDB error body.
func serviceMessage(body []byte) string {
	var errBody models.TMDBErrorBody
	if len(body) > 0 && json.Unmarshal(body, &errBody) == nil && errBody.StatusMessage != "" {
		return errBody.StatusMessage
	}
	return msgServiceError
}
