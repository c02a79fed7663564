package account

import (
	"strings"

	apperrors "github.com/amaumene/mediamatch/internal/errors"
	"github.com/amaumene/mediamatch/internal/metrics"
	"github.com/amaumene/mediamatch/internal/models"
	"github.com/amaumene/mediamatch/internal/validation"
)

const (
	msgReviewNotFound = "Review not found"
	msgEmptyComment   = "Comment cannot be empty"
	msgReviewTooLong  = "Review is too long"
)

// ReviewInput is the author-supplied part of a review.
type ReviewInput struct {
	Text   string `json:"text" validate:"max=5000"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

// AddReview appends a review by the signed-in user and returns it.
func (a *Account) AddReview(movieID int, in ReviewInput) (review models.Review, err error) {
	defer func() { metrics.RecordAccountOperation("add_review", err) }()

	in.Text = strings.TrimSpace(in.Text)
	if verr := validation.ValidateStruct(&in); verr != nil {
		if !validRating(in.Rating) {
			return models.Review{}, a.fail(apperrors.NewValidationError(MsgInvalidRating))
		}
		return models.Review{}, a.fail(apperrors.NewValidationError(msgReviewTooLong))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	userID, err := a.requireSessionLocked()
	if err != nil {
		return models.Review{}, a.failLocked(err)
	}
	review = models.Review{
		ID:        a.newID(),
		MovieID:   movieID,
		UserID:    userID,
		Text:      in.Text,
		Rating:    in.Rating,
		CreatedAt: a.now(),
		Comments:  []models.Comment{},
	}
	a.reviews = append(a.reviews, review)
	a.succeedLocked()
	return review, nil
}

// LikeReview increments a review's like count. There is no unlike.
func (a *Account) LikeReview(reviewID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireSessionLocked(); err != nil {
		return a.failLocked(err)
	}
	idx := a.reviewIndex(reviewID)
	if idx < 0 {
		return a.failLocked(apperrors.NewNotFoundError(msgReviewNotFound))
	}
	a.reviews[idx].Likes++
	a.succeedLocked()
	return nil
}

// AddComment appends a comment by the signed-in user to a review.
func (a *Account) AddComment(reviewID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, a.fail(apperrors.NewValidationError(msgEmptyComment))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	userID, err := a.requireSessionLocked()
	if err != nil {
		return models.Comment{}, a.failLocked(err)
	}
	idx := a.reviewIndex(reviewID)
	if idx < 0 {
		return models.Comment{}, a.failLocked(apperrors.NewNotFoundError(msgReviewNotFound))
	}
	comment := models.Comment{
		ID:        a.newID(),
		UserID:    userID,
		Text:      text,
		CreatedAt: a.now(),
	}
	a.reviews[idx].Comments = append(a.reviews[idx].Comments, comment)
	a.succeedLocked()
	return comment, nil
}

// ReviewsForMovie returns the held reviews for movieID in creation order.
func (a *Account) ReviewsForMovie(movieID int) []models.Review {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := []models.Review{}
	for _, r := range a.reviews {
		if r.MovieID == movieID {
			out = append(out, copyReview(r))
		}
	}
	return out
}

func (a *Account) Reviews() []models.Review {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Review, len(a.reviews))
	for i, r := range a.reviews {
		out[i] = copyReview(r)
	}
	return out
}

func (a *Account) reviewIndex(id string) int {
	for i := range a.reviews {
		if a.reviews[i].ID == id {
			return i
		}
	}
	return -1
}

func copyReview(r models.Review) models.Review {
	r.Comments = append([]models.Comment{}, r.Comments...)
	return r
}
