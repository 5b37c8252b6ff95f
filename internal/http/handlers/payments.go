package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/domain/payment"
	"github.com/logixshuvo/parcelhub/internal/payments"
)

// PaymentBook is the payment store as the payment endpoints see it.
type PaymentBook interface {
	Create(ctx context.Context, req payment.RecordRequest) (payment.Payment, error)
	List(ctx context.Context) ([]payment.Payment, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type PaymentsHandler struct {
	payments PaymentBook
	gateway  payments.IntentCreator
}

func NewPaymentsHandler(book PaymentBook, gateway payments.IntentCreator) *PaymentsHandler {
	return &PaymentsHandler{payments: book, gateway: gateway}
}

// CreateIntent asks the card processor for a client secret. The charge
// arrives as a loose numeric so string-typed amounts from older clients
// still work.
func (h *PaymentsHandler) CreateIntent(ctx *gin.Context) {
	var req payment.CreateIntentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	secret, err := h.gateway.CreateIntent(cctx, req.Charge.Float64())

	if err != nil {
		RespondInternal(ctx, "Could not create payment intent")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

func (h *PaymentsHandler) Record(ctx *gin.Context) {
	var req payment.RecordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.payments.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not record payment")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"insertedId":   p.ID,
	})
}

// TotalRevenue reports 0 on an empty payment set rather than erroring.
func (h *PaymentsHandler) TotalRevenue(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	total, err := h.payments.TotalRevenue(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not compute total revenue")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"totalRevenue": total})
}

func (h *PaymentsHandler) List(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	records, err := h.payments.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list payments")
		return
	}

	ctx.JSON(http.StatusOK, records)
}
