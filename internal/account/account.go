// Package account manages registration, the signed-in session and the
// session's personal collections: watchlist, watched movies, reviews and
// followed users.
//
// Every fallible operation returns an error whose message is also held and
// readable through LastError until the next successful operation.
package account

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amaumene/mediamatch/internal/constants"
	"github.com/amaumene/mediamatch/internal/database"
	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/metrics"
	"github.com/amaumene/mediamatch/internal/models"
	"github.com/amaumene/mediamatch/internal/validation"
	"github.com/amaumene/mediamatch/pkg/logger"
	"github.com/amaumene/mediamatch/pkg/security"
)

// User-facing messages.
const (
	MsgFillAllFields    = "Please fill in all fields"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgInvalidEmail     = "Please enter a valid email"
	MsgEmailTaken       = "Email already registered"
	MsgUserNotFound     = "User not found"
	MsgInvalidPassword  = "Invalid password"
	MsgNotAuthenticated = "Not authenticated"
	MsgInvalidRating    = "Rating must be between 1 and 5"
)

type registerInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,simple_email"`
	Password string `validate:"required,min=6"`
}

type loginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// ProfileUpdate carries the profile fields to change; nil fields are left as they are.
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email" validate:"omitnil,simple_email"`
	Avatar         *string `json:"avatar"`
	Bio            *string `json:"bio"`
	FavoriteGenres *[]int  `json:"favoriteGenres"`
}

// Account is safe for concurrent use.
type Account struct {
	mu     sync.Mutex
	store  database.BlobStore
	logger logger.Logger
	now    func() time.Time
	newID  func() string

	session   *models.Session
	watchlist []models.WatchlistEntry
	watched   []models.WatchedEntry
	reviews   []models.Review
	following []models.FollowedUser
	lastErr   string
}

type Option func(*Account)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Account) { a.now = now }
}

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(gen func() string) Option {
	return func(a *Account) { a.newID = gen }
}

// New builds an Account over store and restores the persisted user state.
func New(store database.BlobStore, log logger.Logger, opts ...Option) (*Account, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &Account{
		store:  store,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.resetCollections()

	if err := a.restore(); err != nil {
		return nil, err
	}
	return a, nil
}

// Register creates a directory entry and signs it in.
func (a *Account) Register(name, email, password string) (err error) {
	defer func() { metrics.RecordAccountOperation("register", err) }()

	in := registerInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if verr := validation.ValidateStruct(&in); verr != nil {
		return a.fail(registerValidationError(verr))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadDirectory()
	if err != nil {
		return a.failLocked(err)
	}
	if findByEmail(users, in.Email) >= 0 {
		return a.failLocked(apperrors.NewConflictError(MsgEmailTaken))
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return a.failLocked(apperrors.NewInternalError("Failed to secure password", err))
	}

	now := a.now()
	user := models.UserAccount{
		ID:             a.newID(),
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		Avatar:         fmt.Sprintf(constants.AvatarURLTemplate, url.QueryEscape(in.Name)),
		FavoriteGenres: []int{},
		JoinedAt:       now,
		LastLogin:      now,
	}
	if err := a.saveDirectory(append(users, user)); err != nil {
		return a.failLocked(err)
	}

	a.establishLocked(user)
	a.logger.Infof("[Account] registered user %s", user.ID)
	return nil
}

func registerValidationError(verr *validation.RequestValidationError) error {
	switch {
	case verr.HasTag("required"):
		return apperrors.NewValidationError(MsgFillAllFields)
	case verr.HasTag("min"):
		return apperrors.NewValidationError(MsgPasswordTooShort)
	default:
		return apperrors.NewValidationError(MsgInvalidEmail)
	}
}

// Login verifies credentials and establishes the session. A failed login
// never alters the current session.
func (a *Account) Login(email, password string) (err error) {
	defer func() { metrics.RecordAccountOperation("login", err) }()

	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if verr := validation.ValidateStruct(&in); verr != nil {
		return a.fail(apperrors.NewValidationError(MsgFillAllFields))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, err := a.loadDirectory()
	if err != nil {
		return a.failLocked(err)
	}
	idx := findByEmail(users, in.Email)
	if idx < 0 {
		return a.failLocked(apperrors.NewNotFoundError(MsgUserNotFound))
	}

	ok, err := security.CheckPassword(users[idx].PasswordHash, in.Password)
	if err != nil {
		a.logger.Errorf("[Account] stored credential for %s is unreadable: %v", users[idx].ID, err)
		return a.failLocked(apperrors.NewAuthError(MsgInvalidPassword))
	}
	if !ok {
		return a.failLocked(apperrors.NewAuthError(MsgInvalidPassword))
	}

	users[idx].LastLogin = a.now()
	if err := a.saveDirectory(users); err != nil {
		return a.failLocked(err)
	}

	a.establishLocked(users[idx])
	a.logger.Infof("[Account] user %s logged in", users[idx].ID)
	return nil
}

// Logout clears the session and its collections. The directory is untouched.
func (a *Account) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		a.logger.Infof("[Account] user %s logged out", a.session.ID)
	}
	a.logoutLocked()
	metrics.RecordAccountOperation("logout", nil)
}

func (a *Account) logoutLocked() {
	a.session = nil
	a.resetCollections()
	a.lastErr = ""
	a.persistLocked()
}

// UpdateProfile merges the given fields into the directory entry and the session.
func (a *Account) UpdateProfile(update ProfileUpdate) (err error) {
	defer func() { metrics.RecordAccountOperation("update_profile", err) }()

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return a.fail(apperrors.NewValidationError(MsgFillAllFields))
		}
		update.Name = &name
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		update.Email = &email
	}
	if verr := validation.ValidateStruct(&update); verr != nil {
		return a.fail(apperrors.NewValidationError(MsgInvalidEmail))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return a.failLocked(apperrors.NewAuthError(MsgNotAuthenticated))
	}
	users, err := a.loadDirectory()
	if err != nil {
		return a.failLocked(err)
	}
	idx := findByID(users, a.session.ID)
	if idx < 0 {
		return a.failLocked(apperrors.NewNotFoundError(MsgUserNotFound))
	}

	if update.Email != nil {
		if other := findByEmail(users, *update.Email); other >= 0 && other != idx {
			return a.failLocked(apperrors.NewConflictError(MsgEmailTaken))
		}
	}

	user := users[idx]
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.FavoriteGenres != nil {
		user.FavoriteGenres = append([]int{}, (*update.FavoriteGenres)...)
	}
	users[idx] = user

	if err := a.saveDirectory(users); err != nil {
		return a.failLocked(err)
	}

	session := models.SessionFrom(user)
	a.session = &session
	a.lastErr = ""
	a.persistLocked()
	return nil
}

// UpdateFavoriteGenres replaces the session's favourite genres.
func (a *Account) UpdateFavoriteGenres(genres []int) error {
	if genres == nil {
		genres = []int{}
	}
	return a.UpdateProfile(ProfileUpdate{FavoriteGenres: &genres})
}

// DeleteAccount removes the signed-in user's directory entry and logs out.
func (a *Account) DeleteAccount(password string) (err error) {
	defer func() { metrics.RecordAccountOperation("delete_account", err) }()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return a.failLocked(apperrors.NewAuthError(MsgNotAuthenticated))
	}
	users, err := a.loadDirectory()
	if err != nil {
		return a.failLocked(err)
	}
	idx := findByID(users, a.session.ID)
	if idx < 0 {
		return a.failLocked(apperrors.NewNotFoundError(MsgUserNotFound))
	}
	ok, err := security.CheckPassword(users[idx].PasswordHash, password)
	if err != nil || !ok {
		return a.failLocked(apperrors.NewAuthError(MsgInvalidPassword))
	}

	users = append(users[:idx], users[idx+1:]...)
	if err := a.saveDirectory(users); err != nil {
		return a.failLocked(err)
	}

	a.logger.Infof("[Account] deleted user %s", a.session.ID)
	a.logoutLocked()
	return nil
}

// Session returns the signed-in user, if any.
func (a *Account) Session() (models.Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return models.Session{}, false
	}
	s := *a.session
	s.FavoriteGenres = append([]int{}, a.session.FavoriteGenres...)
	return s, true
}

func (a *Account) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil
}

// LastError returns the message of the last failed operation, empty after a success.
func (a *Account) LastError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// establishLocked signs user in. Signing in as someone else drops the
// previous user's collections.
func (a *Account) establishLocked(user models.UserAccount) {
	if a.session != nil && a.session.ID != user.ID {
		a.resetCollections()
	}
	session := models.SessionFrom(user)
	a.session = &session
	a.lastErr = ""
	a.persistLocked()
}

func (a *Account) resetCollections() {
	a.watchlist = []models.WatchlistEntry{}
	a.watched = []models.WatchedEntry{}
	a.reviews = []models.Review{}
	a.following = []models.FollowedUser{}
}

// requireSessionLocked returns the signed-in user id or an auth error.
func (a *Account) requireSessionLocked() (string, error) {
	if a.session == nil {
		return "", apperrors.NewAuthError(MsgNotAuthenticated)
	}
	return a.session.ID, nil
}

func (a *Account) fail(err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failLocked(err)
}

func (a *Account) failLocked(err error) error {
	a.lastErr = apperrors.Message(err)
	return err
}

func (a *Account) succeedLocked() {
	a.lastErr = ""
	a.persistLocked()
}

func findByEmail(users []models.UserAccount, email string) int {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return i
		}
	}
	return -1
}

func findByID(users []models.UserAccount, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func validRating(rating int) bool {
	return rating >= constants.MinRating && rating <= constants.MaxRating
}
