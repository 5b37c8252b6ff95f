package parcel

import (
	"errors"
	"time"
)

const (
	StatusPending   = "pending"
	StatusAssigned  = "assigned"
	StatusInTransit = "in-transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"

	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Parcel struct {
	ID                  string     `json:"id"`
	OwnerEmail          string     `json:"ownerEmail"`
	OwnerName           string     `json:"ownerName,omitempty"`
	ParcelType          string     `json:"parcelType,omitempty"`
	WeightKg            float64    `json:"weightKg,omitempty"`
	ReceiverName        string     `json:"receiverName,omitempty"`
	ReceiverPhone       string     `json:"receiverPhone,omitempty"`
	DeliveryAddress     string     `json:"deliveryAddress,omitempty"`
	BookingDate         time.Time  `json:"bookingDate"`
	DeliveryStatus      string     `json:"deliveryStatus"`
	DeliveryManID       *string    `json:"deliveryManId,omitempty"`
	ApproxDeliveryDate  *time.Time `json:"approximateDeliveryDate,omitempty"`
	PaymentStatus       string     `json:"paymentStatus"`
	Price               float64    `json:"price,omitempty"`
}

var ErrNotFound = errors.New("parcel not found")

// KnownStatus reports whether s is one of the delivery statuses the ledger
// understands. Upstream accepted any string here; we reject unknown ones at
// the boundary instead.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type BookRequest struct {
	OwnerEmail      string     `json:"ownerEmail" binding:"required,email"`
	OwnerName       string     `json:"ownerName" binding:"omitempty,max=120"`
	ParcelType      string     `json:"parcelType" binding:"omitempty,max=80"`
	WeightKg        float64    `json:"weightKg" binding:"omitempty,gt=0"`
	ReceiverName    string     `json:"receiverName" binding:"omitempty,max=120"`
	ReceiverPhone   string     `json:"receiverPhone" binding:"omitempty,max=30"`
	DeliveryAddress string     `json:"deliveryAddress" binding:"omitempty,max=300"`
	BookingDate     *time.Time `json:"bookingDate"`
	Price           float64    `json:"price" binding:"omitempty,gte=0"`
}

type UpdateStatusRequest struct {
	DeliveryStatus string `json:"deliveryStatus" binding:"required,oneof=pending assigned in-transit delivered cancelled"`
}

// AdminUpdateRequest is the only path that assigns a deliveryman.
type AdminUpdateRequest struct {
	DeliveryStatus     string     `json:"deliveryStatus" binding:"omitempty,oneof=pending assigned in-transit delivered cancelled"`
	DeliveryManID      *string    `json:"deliveryManId"`
	ApproxDeliveryDate *time.Time `json:"approximateDeliveryDate"`
}

// ReplaceRequest is a full-document replace by the owner. There is no id
// field on purpose: a client-supplied id is discarded, never written.
type ReplaceRequest struct {
	OwnerEmail      string     `json:"ownerEmail" binding:"required,email"`
	OwnerName       string     `json:"ownerName" binding:"omitempty,max=120"`
	ParcelType      string     `json:"parcelType" binding:"omitempty,max=80"`
	WeightKg        float64    `json:"weightKg" binding:"omitempty,gt=0"`
	ReceiverName    string     `json:"receiverName" binding:"omitempty,max=120"`
	ReceiverPhone   string     `json:"receiverPhone" binding:"omitempty,max=30"`
	DeliveryAddress string     `json:"deliveryAddress" binding:"omitempty,max=300"`
	BookingDate     *time.Time `json:"bookingDate"`
	DeliveryStatus  string     `json:"deliveryStatus" binding:"omitempty,oneof=pending assigned in-transit delivered cancelled"`
	PaymentStatus   string     `json:"paymentStatus" binding:"omitempty,oneof=unpaid paid"`
	Price           float64    `json:"price" binding:"omitempty,gte=0"`
}

// DateStat is one calendar-day bucket of the booking stats report.
type DateStat struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Booked    int    `json:"booked"`
	Delivered int    `json:"delivered"`
}
