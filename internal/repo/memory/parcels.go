package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/logixshuvo/parcelhub/internal/domain/parcel"
)

// ParcelsRepo is the in-memory parcel ledger used by tests.
type ParcelsRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]parcel.Parcel
}

func NewParcelsRepo() *ParcelsRepo {
	return &ParcelsRepo{items: make(map[string]parcel.Parcel)}
}

func (r *ParcelsRepo) Create(_ context.Context, req parcel.BookRequest) (parcel.Parcel, error) {
	now := time.Now().UTC()

	booked := now
	if req.BookingDate != nil {
		booked = req.BookingDate.UTC()
	}

	p := parcel.Parcel{
		ID:              uuid.NewString(),
		OwnerEmail:      req.OwnerEmail,
		OwnerName:       req.OwnerName,
		ParcelType:      req.ParcelType,
		WeightKg:        req.WeightKg,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		DeliveryAddress: req.DeliveryAddress,
		BookingDate:     booked,
		DeliveryStatus:  parcel.StatusPending,
		PaymentStatus:   parcel.PaymentUnpaid,
		Price:           req.Price,
	}

	r.mu.Lock()
	r.items[p.ID] = p
	r.order = append(r.order, p.ID)
	r.mu.Unlock()

	return p, nil
}

func (r *ParcelsRepo) list(filter func(parcel.Parcel) bool) []parcel.Parcel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]parcel.Parcel, 0)

	for _, id := range r.order {
		p, ok := r.items[id]

		if ok && filter(p) {
			out = append(out, p)
		}
	}

	return out
}

func (r *ParcelsRepo) ListAll(_ context.Context) ([]parcel.Parcel, error) {
	return r.list(func(parcel.Parcel) bool { return true }), nil
}

func (r *ParcelsRepo) ListByOwnerEmail(_ context.Context, email string) ([]parcel.Parcel, error) {
	return r.list(func(p parcel.Parcel) bool { return p.OwnerEmail == email }), nil
}

func (r *ParcelsRepo) ListAssignedTo(_ context.Context, deliveryManID string) ([]parcel.Parcel, error) {
	return r.list(func(p parcel.Parcel) bool {
		return p.DeliveryManID != nil && *p.DeliveryManID == deliveryManID
	}), nil
}

func (r *ParcelsRepo) UpdateStatus(_ context.Context, id, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]

	if !ok {
		return false, nil
	}

	p.DeliveryStatus = status
	r.items[id] = p

	return true, nil
}

func (r *ParcelsRepo) UpdatePaymentStatus(_ context.Context, id, status string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]

	if !ok {
		return false, nil
	}

	p.PaymentStatus = status
	r.items[id] = p

	return true, nil
}

func (r *ParcelsRepo) AdminUpdate(_ context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]

	if !ok {
		return parcel.Parcel{}, parcel.ErrNotFound
	}

	if req.DeliveryStatus != "" {
		p.DeliveryStatus = req.DeliveryStatus
	}

	if req.DeliveryManID != nil {
		p.DeliveryManID = req.DeliveryManID
	}

	if req.ApproxDeliveryDate != nil {
		p.ApproxDeliveryDate = req.ApproxDeliveryDate
	}

	r.items[id] = p

	return p, nil
}

func (r *ParcelsRepo) Replace(_ context.Context, id string, req parcel.ReplaceRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.items[id]

	if !ok {
		return false, nil
	}

	booked := time.Now().UTC()
	if req.BookingDate != nil {
		booked = req.BookingDate.UTC()
	}

	status := req.DeliveryStatus
	if status == "" {
		status = parcel.StatusPending
	}

	payStatus := req.PaymentStatus
	if payStatus == "" {
		payStatus = parcel.PaymentUnpaid
	}

	// id stays what it was; the request has no say in it
	r.items[id] = parcel.Parcel{
		ID:              old.ID,
		OwnerEmail:      req.OwnerEmail,
		OwnerName:       req.OwnerName,
		ParcelType:      req.ParcelType,
		WeightKg:        req.WeightKg,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		DeliveryAddress: req.DeliveryAddress,
		BookingDate:     booked,
		DeliveryStatus:  status,
		DeliveryManID:   old.DeliveryManID,
		PaymentStatus:   payStatus,
		Price:           req.Price,
	}

	return true, nil
}

func (r *ParcelsRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return parcel.ErrNotFound
	}

	delete(r.items, id)

	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *ParcelsRepo) CountDeliveredBy(_ context.Context, deliveryManID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0

	for _, p := range r.items {
		if p.DeliveryManID != nil && *p.DeliveryManID == deliveryManID && p.DeliveryStatus == parcel.StatusDelivered {
			n++
		}
	}

	return n, nil
}

func (r *ParcelsRepo) BookingStatsByDate(_ context.Context) ([]parcel.DateStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buckets := make(map[string]*parcel.DateStat)

	for _, id := range r.order {
		p, ok := r.items[id]

		if !ok {
			continue
		}

		day := p.BookingDate.UTC().Format("2006-01-02")

		b, ok := buckets[day]

		if !ok {
			b = &parcel.DateStat{Date: day}
			buckets[day] = b
		}

		b.Booked++

		if p.DeliveryStatus == parcel.StatusDelivered {
			b.Delivered++
		}
	}

	out := make([]parcel.DateStat, 0, len(buckets))

	for _, b := range buckets {
		out = append(out, *b)
	}

	// same ordering contract as the SQL report
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	return out, nil
}
