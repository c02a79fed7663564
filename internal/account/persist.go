package account

import (
	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/internal/database"
	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/models"
)

// userState is the document stored under constants.UserStateKey.
type userState struct {
	User            *models.Session         `json:"user"`
	IsAuthenticated bool                    `json:"isAuthenticated"`
	Watchlist       []models.WatchlistEntry `json:"watchlist"`
	WatchedMovies   []models.WatchedEntry   `json:"watchedMovies"`
	Reviews         []models.Review         `json:"reviews"`
	Following       []models.FollowedUser   `json:"following"`
}

func (a *Account) restore() error {
	var st userState
	found, err := database.LoadDocument(a.store, constants.UserStateKey, &st)
	if err != nil {
		return apperrors.NewInternalError("Failed to restore user state", err)
	}
	if !found || st.User == nil {
		return nil
	}

	a.session = st.User
	if st.Watchlist != nil {
		a.watchlist = st.Watchlist
	}
	if st.WatchedMovies != nil {
		a.watched = st.WatchedMovies
	}
	if st.Reviews != nil {
		a.reviews = st.Reviews
	}
	if st.Following != nil {
		a.following = st.Following
	}
	a.logger.Infof("[Account] restored session for user %s", st.User.ID)
	return nil
}

// persistLocked writes the user state document wholesale. A write failure is
// logged; the in-memory state stays authoritative.
func (a *Account) persistLocked() {
	st := userState{
		User:            a.session,
		IsAuthenticated: a.session != nil,
		Watchlist:       a.watchlist,
		WatchedMovies:   a.watched,
		Reviews:         a.reviews,
		Following:       a.following,
	}
	if err := database.SaveDocument(a.store, constants.UserStateKey, st); err != nil {
		a.logger.Errorf("[Account] failed to persist user state: %v", err)
	}
}

// loadDirectory reads the full account directory; a missing document is an empty directory.
func (a *Account) loadDirectory() ([]models.UserAccount, error) {
	users := []models.UserAccount{}
	if _, err := database.LoadDocument(a.store, constants.DirectoryKey, &users); err != nil {
		a.logger.Errorf("[Account] failed to read directory: %v", err)
		return nil, apperrors.NewInternalError("Failed to read account directory", err)
	}
	return users, nil
}

func (a *Account) saveDirectory(users []models.UserAccount) error {
	if err := database.SaveDocument(a.store, constants.DirectoryKey, users); err != nil {
		a.logger.Errorf("[Account] failed to write directory: %v", err)
		return apperrors.NewInternalError("Failed to save account directory", err)
	}
	return nil
}

// Directory returns the public projections of every registered account.
func (a *Account) Directory() ([]models.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	users, err := a.loadDirectory()
	if err != nil {
		return nil, err
	}
	out := make([]models.Session, 0, len(users))
	for _, u := range users {
		out = append(out, models.SessionFrom(u))
	}
	return out, nil
}
