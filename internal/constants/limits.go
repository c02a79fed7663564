// Package constants defines numerical limits used by the state containers.
package constants

// Limits for user input and list presentation
const (
	MinRating = 1
	MaxRating = 5

	// Number of cast members kept from a credits response
	MaxCastMembers = 5

	// Minimum vote count for mood discovery results
	MoodDiscoverMinVotes = 100
)
