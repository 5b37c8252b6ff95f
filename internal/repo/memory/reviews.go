package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/logixshuvo/parcelhub/internal/domain/review"
)

type ReviewsRepo struct {
	mu    sync.RWMutex
	items []review.Review
}

func NewReviewsRepo() *ReviewsRepo {
	return &ReviewsRepo{}
}

func (r *ReviewsRepo) Create(_ context.Context, req review.CreateRequest) (review.Review, error) {
	rev := review.Review{
		ID:            uuid.NewString(),
		UserName:      req.UserName,
		UserImage:     req.UserImage,
		Rating:        req.Rating.Float64(),
		Feedback:      req.Feedback,
		DeliveryManID: req.DeliveryManID,
		ReviewDate:    time.Now().UTC(),
	}

	r.mu.Lock()
	r.items = append(r.items, rev)
	r.mu.Unlock()

	return rev, nil
}

func (r *ReviewsRepo) ListByDeliveryman(_ context.Context, deliveryManID string) ([]review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]review.Review, 0)

	for _, rev := range r.items {
		if rev.DeliveryManID == deliveryManID {
			out = append(out, rev)
		}
	}

	return out, nil
}

func (r *ReviewsRepo) AverageRating(_ context.Context, deliveryManID string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := 0.0
	n := 0

	for _, rev := range r.items {
		if rev.DeliveryManID == deliveryManID {
			sum += rev.Rating
			n++
		}
	}

	if n == 0 {
		return 0, review.ErrNoReviews
	}

	return sum / float64(n), nil
}
