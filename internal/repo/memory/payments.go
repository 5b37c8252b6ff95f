package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/logixshuvo/parcelhub/internal/domain/payment"
)

type PaymentsRepo struct {
	mu    sync.RWMutex
	items []payment.Payment
}

func NewPaymentsRepo() *PaymentsRepo {
	return &PaymentsRepo{}
}

func (r *PaymentsRepo) Create(_ context.Context, req payment.RecordRequest) (payment.Payment, error) {
	p := payment.Payment{
		ID:            uuid.NewString(),
		Email:         req.Email,
		ParcelID:      req.ParcelID,
		Charge:        req.Charge.Float64(),
		TransactionID: req.TransactionID,
		PaidAt:        time.Now().UTC(),
	}

	r.mu.Lock()
	r.items = append(r.items, p)
	r.mu.Unlock()

	return p, nil
}

func (r *PaymentsRepo) List(_ context.Context) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]payment.Payment, len(r.items))
	copy(records, r.items)

	// newest first, matching the SQL-backed store
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PaidAt.After(records[j].PaidAt)
	})

	return records, nil
}

func (r *PaymentsRepo) TotalRevenue(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0.0

	for _, p := range r.items {
		total += p.Charge
	}

	return total, nil
}
