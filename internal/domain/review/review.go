package review

import (
	"errors"
	"time"

	"github.com/logixshuvo/parcelhub/internal/utils"
)

type Review struct {
	ID            string    `json:"id"`
	UserName      string    `json:"userName"`
	UserImage     string    `json:"userImage,omitempty"`
	Rating        float64   `json:"rating"`
	Feedback      string    `json:"feedback,omitempty"`
	DeliveryManID string    `json:"deliveryManId"`
	ReviewDate    time.Time `json:"reviewDate"`
}

var ErrNoReviews = errors.New("no reviews found")

// CreateRequest accepts the rating as a number or a numeric string; anything
// else fails the bind.
type CreateRequest struct {
	UserName      string       `json:"userName" binding:"required,max=120"`
	UserImage     string       `json:"userImage" binding:"omitempty,max=500"`
	Rating        utils.Number `json:"rating" binding:"required,gte=0,lte=5"`
	Feedback      string       `json:"feedback" binding:"omitempty,max=2000"`
	DeliveryManID string       `json:"deliveryManId" binding:"required"`
}
