package models

import "time"

// UserAccount is a directory entry. PasswordHash never leaves the directory document.
type UserAccount struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"passwordHash"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio"`
	FavoriteGenres []int     `json:"favoriteGenres"`
	JoinedAt       time.Time `json:"joinedDate"`
	LastLogin      time.Time `json:"lastLogin"`
}

// Session is the password-free projection of the logged-in account.
type Session struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Avatar         string    `json:"avatar"`
	Bio            string    `json:"bio"`
	FavoriteGenres []int     `json:"favoriteGenres"`
	JoinedAt       time.Time `json:"joinedDate"`
	LastLogin      time.Time `json:"lastLogin"`
}

// SessionFrom projects a directory entry into a session.
func SessionFrom(u UserAccount) Session {
	return Session{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Avatar:         u.Avatar,
		Bio:            u.Bio,
		FavoriteGenres: append([]int{}, u.FavoriteGenres...),
		JoinedAt:       u.JoinedAt,
		LastLogin:      u.LastLogin,
	}
}

// WatchlistEntry is a movie snapshot the user intends to watch.
type WatchlistEntry struct {
	Movie   MovieItem `json:"movie"`
	AddedAt time.Time `json:"addedAt"`
	AddedBy string    `json:"addedBy"`
}

// WatchedEntry is a movie snapshot the user has watched and rated.
type WatchedEntry struct {
	Movie      MovieItem `json:"movie"`
	WatchedAt  time.Time `json:"watchedAt"`
	WatchedBy  string    `json:"watchedBy"`
	UserRating int       `json:"userRating"`
	Review     string    `json:"review"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Review is a user's rated write-up of a movie.
type Review struct {
	ID        string    `json:"id"`
	MovieID   int       `json:"movieId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// FollowedUser is a directory user the session follows.
type FollowedUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Avatar     string    `json:"avatar"`
	FollowedAt time.Time `json:"followedAt"`
}
