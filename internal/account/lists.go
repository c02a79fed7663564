package account

import (
	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/metrics"
	"github.com/amaumene/mediamatch/internal/models"
)

// AddToWatchlist appends movie to the watchlist. Callers check IsInWatchlist
// first; repeated adds produce repeated entries.
func (a *Account) AddToWatchlist(movie models.MovieItem) (err error) {
	defer func() { metrics.RecordAccountOperation("add_watchlist", err) }()

	a.mu.Lock()
	defer a.mu.Unlock()

	userID, err := a.requireSessionLocked()
	if err != nil {
		return a.failLocked(err)
	}
	a.watchlist = append(a.watchlist, models.WatchlistEntry{
		Movie:   movie.Clone(),
		AddedAt: a.now(),
		AddedBy: userID,
	})
	a.succeedLocked()
	return nil
}

// RemoveFromWatchlist drops every watchlist entry for movieID.
func (a *Account) RemoveFromWatchlist(movieID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSessionLocked(); err != nil {
		return a.failLocked(err)
	}
	a.watchlist = withoutWatchlist(a.watchlist, movieID)
	a.succeedLocked()
	return nil
}

// AddToWatched records movie as watched with rating. Any watchlist entry for
// the movie is removed and any earlier watched entry is replaced, leaving
// exactly one.
func (a *Account) AddToWatched(movie models.MovieItem, rating int) (err error) {
	defer func() { metrics.RecordAccountOperation("add_watched", err) }()

	if !validRating(rating) {
		return a.fail(apperrors.NewValidationError(MsgInvalidRating))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	userID, err := a.requireSessionLocked()
	if err != nil {
		return a.failLocked(err)
	}
	a.watchlist = withoutWatchlist(a.watchlist, movie.ID)
	a.watched = append(withoutWatched(a.watched, movie.ID), models.WatchedEntry{
		Movie:      movie.Clone(),
		WatchedAt:  a.now(),
		WatchedBy:  userID,
		UserRating: rating,
	})
	a.succeedLocked()
	return nil
}

func (a *Account) RemoveFromWatched(movieID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSessionLocked(); err != nil {
		return a.failLocked(err)
	}
	a.watched = withoutWatched(a.watched, movieID)
	a.succeedLocked()
	return nil
}

// UpdateMovieRating changes the rating of a watched movie.
func (a *Account) UpdateMovieRating(movieID, rating int) error {
	if !validRating(rating) {
		return a.fail(apperrors.NewValidationError(MsgInvalidRating))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSessionLocked(); err != nil {
		return a.failLocked(err)
	}
	updated := false
	for i := range a.watched {
		if a.watched[i].Movie.ID == movieID {
			a.watched[i].UserRating = rating
			updated = true
		}
	}
	if !updated {
		return a.failLocked(apperrors.NewNotFoundError("Movie not found in watched list"))
	}
	a.succeedLocked()
	return nil
}

func (a *Account) IsInWatchlist(movieID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.watchlist {
		if e.Movie.ID == movieID {
			return true
		}
	}
	return false
}

func (a *Account) IsWatched(movieID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range a.watched {
		if e.Movie.ID == movieID {
			return true
		}
	}
	return false
}

func (a *Account) Watchlist() []models.WatchlistEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.WatchlistEntry, len(a.watchlist))
	for i, e := range a.watchlist {
		e.Movie = e.Movie.Clone()
		out[i] = e
	}
	return out
}

func (a *Account) Watched() []models.WatchedEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.WatchedEntry, len(a.watched))
	for i, e := range a.watched {
		e.Movie = e.Movie.Clone()
		out[i] = e
	}
	return out
}

func withoutWatchlist(entries []models.WatchlistEntry, movieID int) []models.WatchlistEntry {
	out := make([]models.WatchlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.Movie.ID != movieID {
			out = append(out, e)
		}
	}
	return out
}

func withoutWatched(entries []models.WatchedEntry, movieID int) []models.WatchedEntry {
	out := make([]models.WatchedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Movie.ID != movieID {
			out = append(out, e)
		}
	}
	return out
}
