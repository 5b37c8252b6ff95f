package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/domain/review"
)

// ReviewBook is the review store as the review endpoints see it.
type ReviewBook interface {
	Create(ctx context.Context, req review.CreateRequest) (review.Review, error)
	ListByDeliveryman(ctx context.Context, deliveryManID string) ([]review.Review, error)
	AverageRating(ctx context.Context, deliveryManID string) (float64, error)
}

type ReviewsHandler struct {
	reviews ReviewBook
}

func NewReviewsHandler(reviews ReviewBook) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews}
}

func (h *ReviewsHandler) Create(ctx *gin.Context) {
	var req review.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	r, err := h.reviews.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not save review")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"insertedId":   r.ID,
	})
}

func (h *ReviewsHandler) ListByDeliveryman(ctx *gin.Context) {
	deliveryManID := ctx.Param("deliveryManId")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	reviews, err := h.reviews.ListByDeliveryman(cctx, deliveryManID)

	if err != nil {
		RespondInternal(ctx, "Could not list reviews")
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}

func (h *ReviewsHandler) Average(ctx *gin.Context) {
	deliveryManID := ctx.Param("deliveryManId")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	avg, err := h.reviews.AverageRating(cctx, deliveryManID)

	if err != nil {
		if errors.Is(err, review.ErrNoReviews) {
			RespondNotFound(ctx, "No reviews found for this deliveryman")
			return
		}

		RespondInternal(ctx, "Could not compute average rating")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"deliveryManId": deliveryManID,
		"averageRating": avg,
	})
}
