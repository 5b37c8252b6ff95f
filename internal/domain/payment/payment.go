package payment

import (
	"time"

	"github.com/logixshuvo/parcelhub/internal/utils"
)

type Payment struct {
	ID            string    `json:"id"`
	Email         string    `json:"email,omitempty"`
	ParcelID      string    `json:"parcelId,omitempty"`
	Charge        float64   `json:"charge"`
	TransactionID string    `json:"transactionId,omitempty"`
	PaidAt        time.Time `json:"paidAt"`
}

type CreateIntentRequest struct {
	Charge utils.Number `json:"charge" binding:"required,gt=0"`
}

type RecordRequest struct {
	Email         string       `json:"email" binding:"omitempty,email"`
	ParcelID      string       `json:"parcelId" binding:"omitempty"`
	Charge        utils.Number `json:"charge" binding:"required,gt=0"`
	TransactionID string       `json:"transactionId" binding:"omitempty,max=200"`
}

type UpdateStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required,oneof=unpaid paid"`
}
