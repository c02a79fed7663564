package account

import (
	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/metrics"
	"github.com/amaumene/mediamatch/internal/models"
)

// Follow adds a directory user to the session's following list.
// Following someone already followed is a no-op.
func (a *Account) Follow(userID string) (err error) {
	defer func() { metrics.RecordAccountOperation("follow", err) }()

	a.mu.Lock()
	defer a.mu.Unlock()

	selfID, err := a.requireSessionLocked()
	if err != nil {
		return a.failLocked(err)
	}
	if userID == selfID {
		return a.failLocked(apperrors.NewValidationError("You cannot follow yourself"))
	}
	for _, f := range a.following {
		if f.ID == userID {
			a.lastErr = ""
			return nil
		}
	}

	users, err := a.loadDirectory()
	if err != nil {
		return a.failLocked(err)
	}
	idx := findByID(users, userID)
	if idx < 0 {
		return a.failLocked(apperrors.NewNotFoundError(MsgUserNotFound))
	}

	a.following = append(a.following, models.FollowedUser{
		ID:         users[idx].ID,
		Name:       users[idx].Name,
		Avatar:     users[idx].Avatar,
		FollowedAt: a.now(),
	})
	a.succeedLocked()
	return nil
}

func (a *Account) Unfollow(userID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSessionLocked(); err != nil {
		return a.failLocked(err)
	}
	out := make([]models.FollowedUser, 0, len(a.following))
	for _, f := range a.following {
		if f.ID != userID {
			out = append(out, f)
		}
	}
	a.following = out
	a.succeedLocked()
	return nil
}

func (a *Account) Following() []models.FollowedUser {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.FollowedUser{}, a.following...)
}
