package memory

import (
	"sync"

	"clientbot/internal/models"
	"clientbot/internal/storage"
)

// Reviews is the in-memory review moderation queue.
type Reviews struct {
	mu      sync.RWMutex
	reviews []models.Review
	nextID  int
}

// NewReviews creates an empty review store.
func NewReviews() *Reviews {
	return &Reviews{reviews: make([]models.Review, 0), nextID: 1}
}

// AddReview stores a new review and returns its id. The caller sets
// the status; the review flow always submits models.ReviewPending.
func (r *Reviews) AddReview(review models.Review) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = r.nextID
	r.nextID++
	r.reviews = append(r.reviews, review)
	return review.ID
}

// SetReviewStatus transitions a review to the given moderation status.
func (r *Reviews) SetReviewStatus(id int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews[i].Status = status
			return nil
		}
	}
	return storage.ErrNotFound
}

// Approved returns reviews visible to customers.
func (r *Reviews) Approved() []models.Review {
	return r.byStatus(models.ReviewApproved)
}

// Pending returns reviews awaiting moderation.
func (r *Reviews) Pending() []models.Review {
	return r.byStatus(models.ReviewPending)
}

func (r *Reviews) byStatus(status string) []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Review
	for _, review := range r.reviews {
		if review.Status == status {
			out = append(out, review)
		}
	}
	return out
}

// Snapshot returns a copy of all reviews for backup.
func (r *Reviews) Snapshot() []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Review, len(r.reviews))
	copy(out, r.reviews)
	return out
}

// Restore replaces the store contents with the given reviews.
func (r *Reviews) Restore(reviews []models.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews = make([]models.Review, len(reviews))
	copy(r.reviews, reviews)

	r.nextID = 1
	for _, review := range reviews {
		if review.ID >= r.nextID {
			r.nextID = review.ID + 1
		}
	}
}
