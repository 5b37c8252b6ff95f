package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/domain/parcel"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
)

// Ledger is the parcel store as the parcel endpoints see it.
type Ledger interface {
	Create(ctx context.Context, req parcel.BookRequest) (parcel.Parcel, error)
	ListAll(ctx context.Context) ([]parcel.Parcel, error)
	ListByOwnerEmail(ctx context.Context, email string) ([]parcel.Parcel, error)
	ListAssignedTo(ctx context.Context, deliveryManID string) ([]parcel.Parcel, error)
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) (bool, error)
	AdminUpdate(ctx context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error)
	Replace(ctx context.Context, id string, req parcel.ReplaceRequest) (bool, error)
	Delete(ctx context.Context, id string) error
	CountDeliveredBy(ctx context.Context, deliveryManID string) (int, error)
	BookingStatsByDate(ctx context.Context) ([]parcel.DateStat, error)
}

// UserReader is the slice of the directory the parcel endpoints need.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type ParcelsHandler struct {
	ledger    Ledger
	directory UserReader
}

func NewParcelsHandler(ledger Ledger, directory UserReader) *ParcelsHandler {
	return &ParcelsHandler{ledger: ledger, directory: directory}
}

func (h *ParcelsHandler) Book(ctx *gin.Context) {
	var req parcel.BookRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.ledger.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not book parcel")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"insertedId":   p.ID,
	})
}

func (h *ParcelsHandler) ListAll(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	parcels, err := h.ledger.ListAll(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list parcels")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, parcels)
}

func (h *ParcelsHandler) ListByOwner(ctx *gin.Context) {
	email := ctx.Query("email")

	if email == "" {
		RespondBadRequest(ctx, "email query parameter is required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	parcels, err := h.ledger.ListByOwnerEmail(cctx, email)

	if err != nil {
		RespondInternal(ctx, "Could not list parcels")
		return
	}

	ctx.JSON(http.StatusOK, parcels)
}

// MyAssigned lists the parcels assigned to a deliveryman, addressed by
// email. The email must resolve to a directory user holding the
// deliveryman role.
func (h *ParcelsHandler) MyAssigned(ctx *gin.Context) {
	email := ctx.Query("email")

	if email == "" {
		RespondBadRequest(ctx, "email query parameter is required", nil)
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.directory.GetByEmail(cctx, email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "Deliveryman not found")
			return
		}

		RespondInternal(ctx, "Could not resolve deliveryman")
		return
	}

	if u.Role != user.RoleDeliveryman {
		RespondNotFound(ctx, "Deliveryman not found")
		return
	}

	parcels, err := h.ledger.ListAssignedTo(cctx, u.ID)

	if err != nil {
		RespondInternal(ctx, "Could not list assigned parcels")
		return
	}

	ctx.JSON(http.StatusOK, parcels)
}

func (h *ParcelsHandler) UpdateStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	var req parcel.UpdateStatusRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	modified, err := h.ledger.UpdateStatus(cctx, id, req.DeliveryStatus)

	if err != nil {
		RespondInternal(ctx, "Could not update status")
		return
	}

	count := 0

	if modified {
		count = 1
	}

	ctx.JSON(http.StatusOK, gin.H{"success": modified, "modifiedCount": count})
}

func (h *ParcelsHandler) AdminUpdate(ctx *gin.Context) {
	id := ctx.Param("id")

	var req parcel.AdminUpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.ledger.AdminUpdate(cctx, id, req)

	if err != nil {
		if errors.Is(err, parcel.ErrNotFound) {
			RespondNotFound(ctx, "Parcel not found")
			return
		}

		RespondInternal(ctx, "Could not update parcel")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ParcelsHandler) Replace(ctx *gin.Context) {
	id := ctx.Param("id")

	// bind into a typed request that simply has no id field, so a client
	// supplied _id/id can never reach the store
	var req parcel.ReplaceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	modified, err := h.ledger.Replace(cctx, id, req)

	if err != nil {
		RespondInternal(ctx, "Could not replace parcel")
		return
	}

	count := 0

	if modified {
		count = 1
	}

	ctx.JSON(http.StatusOK, gin.H{"modifiedCount": count})
}

func (h *ParcelsHandler) Cancel(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.ledger.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, parcel.ErrNotFound) {
			RespondNotFound(ctx, "Parcel not found")
			return
		}

		RespondInternal(ctx, "Could not cancel parcel")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}

func (h *ParcelsHandler) DeliveredCount(ctx *gin.Context) {
	deliveryManID := ctx.Param("deliveryManId")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	count, err := h.ledger.CountDeliveredBy(cctx, deliveryManID)

	if err != nil {
		RespondInternal(ctx, "Could not count delivered parcels")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func (h *ParcelsHandler) UpdatePaymentStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	var req struct {
		PaymentStatus string `json:"paymentStatus" binding:"required,oneof=unpaid paid"`
	}

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	modified, err := h.ledger.UpdatePaymentStatus(cctx, id, req.PaymentStatus)

	if err != nil {
		RespondInternal(ctx, "Could not update payment status")
		return
	}

	count := 0

	if modified {
		count = 1
	}

	ctx.JSON(http.StatusOK, gin.H{"success": modified, "modifiedCount": count})
}
