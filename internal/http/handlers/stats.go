package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
)

type StatsHandler struct {
	directory Directory
	ledger    Ledger
	payments  PaymentBook
}

func NewStatsHandler(directory Directory, ledger Ledger, payments PaymentBook) *StatsHandler {
	return &StatsHandler{directory: directory, ledger: ledger, payments: payments}
}

// BookingStats groups bookings by calendar day, oldest day first.
func (h *StatsHandler) BookingStats(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	stats, err := h.ledger.BookingStatsByDate(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not aggregate booking stats")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"bookingsByDate": stats})
}

// AdminStats is the dashboard rollup: directory headcounts plus ledger and
// revenue totals in one response.
func (h *StatsHandler) AdminStats(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	users, err := h.directory.CountAll(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not aggregate stats")
		return
	}

	deliverymen, err := h.directory.CountByRole(cctx, user.RoleDeliveryman)

	if err != nil {
		RespondInternal(ctx, "Could not aggregate stats")
		return
	}

	stats, err := h.ledger.BookingStatsByDate(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not aggregate stats")
		return
	}

	parcels := 0
	delivered := 0

	for _, s := range stats {
		parcels += s.Booked
		delivered += s.Delivered
	}

	revenue, err := h.payments.TotalRevenue(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not aggregate stats")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users":            users,
		"deliverymen":      deliverymen,
		"parcels":          parcels,
		"parcelsDelivered": delivered,
		"totalRevenue":     revenue,
	})
}
