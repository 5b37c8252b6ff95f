package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logixshuvo/parcelhub/internal/domain/review"
)

type ReviewsRepo struct {
	pool *pgxpool.Pool
}

func NewReviewsRepo(pool *pgxpool.Pool) *ReviewsRepo {
	return &ReviewsRepo{pool: pool}
}

func (r *ReviewsRepo) Create(ctx context.Context, req review.CreateRequest) (review.Review, error) {
	rev := review.Review{
		ID:            uuid.NewString(),
		UserName:      req.UserName,
		UserImage:     req.UserImage,
		Rating:        req.Rating.Float64(),
		Feedback:      req.Feedback,
		DeliveryManID: req.DeliveryManID,
		ReviewDate:    time.Now().UTC(),
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO reviews (id, user_name, user_image, rating, feedback, delivery_man_id, review_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rev.ID, rev.UserName, rev.UserImage, rev.Rating, rev.Feedback, rev.DeliveryManID, rev.ReviewDate,
	)

	if err != nil {
		return review.Review{}, err
	}

	return rev, nil
}

func (r *ReviewsRepo) ListByDeliveryman(ctx context.Context, deliveryManID string) ([]review.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_name, user_image, rating, feedback, delivery_man_id, review_date
		 FROM reviews
		 WHERE delivery_man_id = $1
		 ORDER BY review_date ASC, id ASC`,
		deliveryManID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]review.Review, 0)

	for rows.Next() {
		var rev review.Review

		err = rows.Scan(&rev.ID, &rev.UserName, &rev.UserImage, &rev.Rating, &rev.Feedback, &rev.DeliveryManID, &rev.ReviewDate)

		if err != nil {
			return nil, err
		}

		out = append(out, rev)
	}

	return out, rows.Err()
}

// AverageRating fails with ErrNoReviews when nothing matches rather than
// averaging an empty set to zero.
func (r *ReviewsRepo) AverageRating(ctx context.Context, deliveryManID string) (float64, error) {
	var (
		avg   *float64
		count int
	)

	err := r.pool.QueryRow(ctx,
		`SELECT AVG(rating), COUNT(*) FROM reviews WHERE delivery_man_id = $1`,
		deliveryManID,
	).Scan(&avg, &count)

	if err != nil {
		return 0, err
	}

	if count == 0 || avg == nil {
		return 0, review.ErrNoReviews
	}

	return *avg, nil
}
