package account

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/internal/database"
	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/models"
	"github.com/amaumene/mediamatch/pkg/security"
)

func TestMain(m *testing.M) {
	security.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func newTestAccount(t *testing.T, store database.BlobStore) *Account {
	t.Helper()
	n := 0
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a, err := New(store, nil,
		WithClock(func() time.Time { clock = clock.Add(time.Minute); return clock }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	require.NoError(t, err)
	return a
}

func TestAnnScenario(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())

	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	s, ok := a.Session()
	require.True(t, ok)
	assert.Equal(t, "Ann", s.Name)
	assert.Contains(t, s.Avatar, "name=Ann")

	a.Logout()
	_, ok = a.Session()
	assert.False(t, ok)

	err := a.Login("ann@x.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	assert.Equal(t, MsgInvalidPassword, a.LastError())

	require.NoError(t, a.Login("ann@x.com", "secret1"))
	assert.Empty(t, a.LastError())
	s, ok = a.Session()
	require.True(t, ok)
	assert.Equal(t, "Ann", s.Name)
}

func TestRegisterValidation(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())

	cases := []struct {
		name, email, password, msg string
	}{
		{"", "ann@x.com", "secret1", MsgFillAllFields},
		{"Ann", "", "secret1", MsgFillAllFields},
		{"  ", "ann@x.com", "secret1", MsgFillAllFields},
		{"Ann", "ann@x.com", "", MsgFillAllFields},
		{"Ann", "ann@x.com", "12345", MsgPasswordTooShort},
		{"Ann", "not-an-email", "secret1", MsgInvalidEmail},
		{"Ann", "ann @x.com", "secret1", MsgInvalidEmail},
		{"Ann", "bad", "123", MsgPasswordTooShort},
	}
	for _, tc := range cases {
		err := a.Register(tc.name, tc.email, tc.password)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		assert.Equal(t, tc.msg, apperrors.Message(err), "%+v", tc)
		assert.Equal(t, tc.msg, a.LastError())
	}
	assert.False(t, a.IsAuthenticated())
}

func TestDuplicateRegistrationLeavesDirectoryUnchanged(t *testing.T) {
	store := database.NewMemory()
	a := newTestAccount(t, store)
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	require.NoError(t, a.Register("Bob", "bob@x.com", "secret2"))

	before, err := store.Get(constants.DirectoryKey)
	require.NoError(t, err)

	err = a.Register("Other Ann", "ANN@x.com", "secret3")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, MsgEmailTaken, a.LastError())

	after, err := store.Get(constants.DirectoryKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	dir, err := a.Directory()
	require.NoError(t, err)
	assert.Len(t, dir, 2)

	s, _ := a.Session()
	assert.Equal(t, "Bob", s.Name, "session untouched by the failed registration")
}

func TestPasswordsAreHashed(t *testing.T) {
	store := database.NewMemory()
	a := newTestAccount(t, store)
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))

	var users []models.UserAccount
	_, err := database.LoadDocument(store, constants.DirectoryKey, &users)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEqual(t, "secret1", users[0].PasswordHash)
	ok, err := security.CheckPassword(users[0].PasswordHash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	raw, err := store.Get(constants.UserStateKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), users[0].PasswordHash)
}

func TestWrongPasswordLeavesSessionUnchanged(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	require.NoError(t, a.Register("Bob", "bob@x.com", "secret2"))
	require.NoError(t, a.AddToWatchlist(models.MovieItem{ID: 1, Title: "Alpha"}))

	before, _ := a.Session()
	err := a.Login("ann@x.com", "nope")
	require.Error(t, err)

	after, ok := a.Session()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.True(t, a.IsInWatchlist(1))

	err = a.Login("nobody@x.com", "secret1")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, MsgUserNotFound, a.LastError())

	err = a.Login("", "")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	store := database.NewMemory()
	a := newTestAccount(t, store)
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	registered, _ := a.Session()
	a.Logout()

	require.NoError(t, a.Login("ann@x.com", "secret1"))
	s, _ := a.Session()
	assert.True(t, s.LastLogin.After(registered.LastLogin))

	dir, err := a.Directory()
	require.NoError(t, err)
	assert.Equal(t, s.LastLogin, dir[0].LastLogin)
}

func TestAddToWatched(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))

	m := models.MovieItem{ID: 7, Title: "Heat"}
	require.NoError(t, a.AddToWatchlist(m))
	require.NoError(t, a.AddToWatchlist(m))
	require.NoError(t, a.AddToWatchlist(models.MovieItem{ID: 8}))
	assert.Len(t, a.Watchlist(), 3)

	require.NoError(t, a.AddToWatched(m, 3))
	require.NoError(t, a.AddToWatched(m, 5))

	assert.False(t, a.IsInWatchlist(7))
	assert.True(t, a.IsInWatchlist(8))
	assert.True(t, a.IsWatched(7))

	count := 0
	for _, e := range a.Watched() {
		if e.Movie.ID == 7 {
			count++
			assert.Equal(t, 5, e.UserRating)
			assert.Equal(t, "id-1", e.WatchedBy)
		}
	}
	assert.Equal(t, 1, count)

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(a.AddToWatched(m, 0)))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(a.AddToWatched(m, 6)))
}

func TestWatchedUpdatesAndRemovals(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	require.NoError(t, a.AddToWatched(models.MovieItem{ID: 1}, 2))

	require.NoError(t, a.UpdateMovieRating(1, 4))
	assert.Equal(t, 4, a.Watched()[0].UserRating)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(a.UpdateMovieRating(2, 4)))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(a.UpdateMovieRating(1, 9)))

	require.NoError(t, a.RemoveFromWatched(1))
	assert.False(t, a.IsWatched(1))

	require.NoError(t, a.AddToWatchlist(models.MovieItem{ID: 3}))
	require.NoError(t, a.RemoveFromWatchlist(3))
	assert.False(t, a.IsInWatchlist(3))
}

func TestSessionScopedOperationsRequireSession(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	m := models.MovieItem{ID: 1}

	errs := []error{
		a.AddToWatchlist(m),
		a.RemoveFromWatchlist(1),
		a.AddToWatched(m, 3),
		a.RemoveFromWatched(1),
		a.UpdateMovieRating(1, 3),
		a.LikeReview("x"),
		a.Follow("x"),
		a.Unfollow("x"),
		a.UpdateProfile(ProfileUpdate{}),
		a.DeleteAccount("secret1"),
	}
	_, err := a.AddReview(1, ReviewInput{Text: "t", Rating: 3})
	errs = append(errs, err)
	_, err = a.AddComment("x", "hi")
	errs = append(errs, err)

	for i, err := range errs {
		require.Error(t, err, "operation %d", i)
		assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err), "operation %d", i)
	}
	assert.Equal(t, MsgNotAuthenticated, a.LastError())
	assert.False(t, a.IsInWatchlist(1))
}

func TestLogoutClearsCollections(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	require.NoError(t, a.AddToWatchlist(models.MovieItem{ID: 1}))
	require.NoError(t, a.AddToWatched(models.MovieItem{ID: 2}, 4))
	_, err := a.AddReview(2, ReviewInput{Text: "good", Rating: 4})
	require.NoError(t, err)

	a.Logout()
	assert.Empty(t, a.Watchlist())
	assert.Empty(t, a.Watched())
	assert.Empty(t, a.Reviews())
	assert.Empty(t, a.Following())

	dir, err := a.Directory()
	require.NoError(t, err)
	assert.Len(t, dir, 1)
}

func TestStateIsRestored(t *testing.T) {
	store := database.NewMemory()
	a := newTestAccount(t, store)
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	require.NoError(t, a.AddToWatchlist(models.MovieItem{ID: 11, Title: "Saved"}))

	restored := newTestAccount(t, store)
	s, ok := restored.Session()
	require.True(t, ok)
	assert.Equal(t, "Ann", s.Name)
	assert.True(t, restored.IsInWatchlist(11))
	assert.Equal(t, "Saved", restored.Watchlist()[0].Movie.Title)
}

func TestRestoreCorruptState(t *testing.T) {
	store := database.NewMemory()
	require.NoError(t, store.Put(constants.UserStateKey, []byte("{broken")))
	_, err := New(store, nil)
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Bob", "bob@x.com", "secret2"))
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))

	name, bio := "Annie", "likes noir"
	require.NoError(t, a.UpdateProfile(ProfileUpdate{Name: &name, Bio: &bio}))
	s, _ := a.Session()
	assert.Equal(t, "Annie", s.Name)
	assert.Equal(t, "likes noir", s.Bio)
	assert.Equal(t, "ann@x.com", s.Email)

	dir, err := a.Directory()
	require.NoError(t, err)
	assert.Equal(t, "Annie", dir[1].Name)

	taken := "bob@x.com"
	err = a.UpdateProfile(ProfileUpdate{Email: &taken})
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	invalid := "nope"
	err = a.UpdateProfile(ProfileUpdate{Email: &invalid})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	empty := " "
	err = a.UpdateProfile(ProfileUpdate{Name: &empty})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	require.NoError(t, a.UpdateFavoriteGenres([]int{18, 80}))
	s, _ = a.Session()
	assert.Equal(t, []int{18, 80}, s.FavoriteGenres)

	a.Logout()
	require.NoError(t, a.Login("ann@x.com", "secret1"))
	s, _ = a.Session()
	assert.Equal(t, "Annie", s.Name)
	assert.Equal(t, []int{18, 80}, s.FavoriteGenres)
}

func TestDeleteAccount(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))

	err := a.DeleteAccount("wrong")
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(err))
	assert.True(t, a.IsAuthenticated())

	require.NoError(t, a.DeleteAccount("secret1"))
	assert.False(t, a.IsAuthenticated())

	dir, err := a.Directory()
	require.NoError(t, err)
	assert.Empty(t, dir)

	err = a.Login("ann@x.com", "secret1")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestReviewsLikesAndComments(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))

	r, err := a.AddReview(550, ReviewInput{Text: "  great  ", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "great", r.Text)
	_, err = a.AddReview(551, ReviewInput{Text: "meh", Rating: 2})
	require.NoError(t, err)

	_, err = a.AddReview(550, ReviewInput{Text: "x", Rating: 0})
	assert.Equal(t, MsgInvalidRating, apperrors.Message(err))

	for i := 0; i < 3; i++ {
		require.NoError(t, a.LikeReview(r.ID))
	}
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(a.LikeReview("missing")))

	c, err := a.AddComment(r.ID, "agreed")
	require.NoError(t, err)
	assert.Equal(t, "id-1", c.UserID)

	_, err = a.AddComment(r.ID, "   ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	_, err = a.AddComment("missing", "hi")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	reviews := a.ReviewsForMovie(550)
	require.Len(t, reviews, 1)
	assert.Equal(t, 3, reviews[0].Likes)
	require.Len(t, reviews[0].Comments, 1)
	assert.Equal(t, "agreed", reviews[0].Comments[0].Text)
	assert.Len(t, a.Reviews(), 2)
}

func TestFollow(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Bob", "bob@x.com", "secret2"))
	bob, _ := a.Session()
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	ann, _ := a.Session()

	require.NoError(t, a.Follow(bob.ID))
	require.NoError(t, a.Follow(bob.ID))
	following := a.Following()
	require.Len(t, following, 1)
	assert.Equal(t, "Bob", following[0].Name)

	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(a.Follow(ann.ID)))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(a.Follow("ghost")))

	require.NoError(t, a.Unfollow(bob.ID))
	assert.Empty(t, a.Following())
}

func TestSwitchingUserDropsCollections(t *testing.T) {
	a := newTestAccount(t, database.NewMemory())
	require.NoError(t, a.Register("Bob", "bob@x.com", "secret2"))
	require.NoError(t, a.Register("Ann", "ann@x.com", "secret1"))
	require.NoError(t, a.AddToWatchlist(models.MovieItem{ID: 1}))

	require.NoError(t, a.Login("ann@x.com", "secret1"))
	assert.True(t, a.IsInWatchlist(1), "same user keeps collections")

	require.NoError(t, a.Login("bob@x.com", "secret2"))
	assert.False(t, a.IsInWatchlist(1))
}
