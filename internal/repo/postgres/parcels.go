package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logixshuvo/parcelhub/internal/domain/parcel"
	"github.com/logixshuvo/parcelhub/internal/observability"
)

const parcelColumns = `id, owner_email, owner_name, parcel_type, weight_kg,
	receiver_name, receiver_phone, delivery_address, booking_date,
	delivery_status, delivery_man_id, approx_delivery_date, payment_status, price`

// ParcelsRepo is the parcel ledger.
type ParcelsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewParcelsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ParcelsRepo {
	return &ParcelsRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *ParcelsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func scanParcel(row pgx.Row) (parcel.Parcel, error) {
	var p parcel.Parcel

	err := row.Scan(
		&p.ID, &p.OwnerEmail, &p.OwnerName, &p.ParcelType, &p.WeightKg,
		&p.ReceiverName, &p.ReceiverPhone, &p.DeliveryAddress, &p.BookingDate,
		&p.DeliveryStatus, &p.DeliveryManID, &p.ApproxDeliveryDate, &p.PaymentStatus, &p.Price,
	)

	return p, err
}

func (r *ParcelsRepo) Create(ctx context.Context, req parcel.BookRequest) (parcel.Parcel, error) {
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

	err := r.observe("parcels.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO parcels (`+parcelColumns+`)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			p.ID, p.OwnerEmail, p.OwnerName, p.ParcelType, p.WeightKg,
			p.ReceiverName, p.ReceiverPhone, p.DeliveryAddress, p.BookingDate,
			p.DeliveryStatus, p.DeliveryManID, p.ApproxDeliveryDate, p.PaymentStatus, p.Price,
		)

		return err
	})

	if err != nil {
		return parcel.Parcel{}, err
	}

	return p, nil
}

func (r *ParcelsRepo) listQuery(ctx context.Context, op, query string, args ...interface{}) ([]parcel.Parcel, error) {
	out := make([]parcel.Parcel, 0)

	err := r.observe(op, func() error {
		rows, err := r.pool.Query(ctx, query, args...)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			p, err := scanParcel(rows)

			if err != nil {
				return err
			}

			out = append(out, p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ParcelsRepo) ListAll(ctx context.Context) ([]parcel.Parcel, error) {
	return r.listQuery(ctx, "parcels.list_all",
		`SELECT `+parcelColumns+` FROM parcels ORDER BY booking_date ASC, id ASC`)
}

func (r *ParcelsRepo) ListByOwnerEmail(ctx context.Context, email string) ([]parcel.Parcel, error) {
	return r.listQuery(ctx, "parcels.list_by_owner",
		`SELECT `+parcelColumns+` FROM parcels WHERE owner_email = $1 ORDER BY booking_date ASC, id ASC`,
		email)
}

func (r *ParcelsRepo) ListAssignedTo(ctx context.Context, deliveryManID string) ([]parcel.Parcel, error) {
	return r.listQuery(ctx, "parcels.list_assigned",
		`SELECT `+parcelColumns+` FROM parcels WHERE delivery_man_id = $1 ORDER BY booking_date ASC, id ASC`,
		deliveryManID)
}

func (r *ParcelsRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	var tag pgconn.CommandTag

	err := r.observe("parcels.update_status", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE parcels SET delivery_status = $2 WHERE id = $1`, id, status)
		tag = t

		return err
	})

	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *ParcelsRepo) UpdatePaymentStatus(ctx context.Context, id, status string) (bool, error) {
	var tag pgconn.CommandTag

	err := r.observe("parcels.update_payment_status", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE parcels SET payment_status = $2 WHERE id = $1`, id, status)
		tag = t

		return err
	})

	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

// AdminUpdate is the only path that sets delivery_man_id.
func (r *ParcelsRepo) AdminUpdate(ctx context.Context, id string, req parcel.AdminUpdateRequest) (parcel.Parcel, error) {
	var p parcel.Parcel

	err := r.observe("parcels.admin_update", func() error {
		var err error

		p, err = scanParcel(r.pool.QueryRow(ctx,
			`UPDATE parcels
				SET delivery_status = COALESCE(NULLIF($2, ''), delivery_status),
						delivery_man_id = COALESCE($3, delivery_man_id),
						approx_delivery_date = COALESCE($4, approx_delivery_date)
			WHERE id = $1
			RETURNING `+parcelColumns,
			id, req.DeliveryStatus, req.DeliveryManID, req.ApproxDeliveryDate,
		))

		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return parcel.Parcel{}, parcel.ErrNotFound
		}

		return parcel.Parcel{}, err
	}

	return p, nil
}

// Replace overwrites the whole record except the id, which stays
// server-controlled no matter what the client sent.
func (r *ParcelsRepo) Replace(ctx context.Context, id string, req parcel.ReplaceRequest) (bool, error) {
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

	var tag pgconn.CommandTag

	err := r.observe("parcels.replace", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE parcels
				SET owner_email = $2,
						owner_name = $3,
						parcel_type = $4,
						weight_kg = $5,
						receiver_name = $6,
						receiver_phone = $7,
						delivery_address = $8,
						booking_date = $9,
						delivery_status = $10,
						payment_status = $11,
						price = $12
			WHERE id = $1`,
			id, req.OwnerEmail, req.OwnerName, req.ParcelType, req.WeightKg,
			req.ReceiverName, req.ReceiverPhone, req.DeliveryAddress, booked,
			status, payStatus, req.Price,
		)
		tag = t

		return err
	})

	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *ParcelsRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag

	err := r.observe("parcels.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM parcels WHERE id = $1`, id)
		tag = t

		return err
	})

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return parcel.ErrNotFound
	}

	return nil
}

func (r *ParcelsRepo) CountDeliveredBy(ctx context.Context, deliveryManID string) (int, error) {
	var n int

	err := r.observe("parcels.count_delivered", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM parcels WHERE delivery_man_id = $1 AND delivery_status = $2`,
			deliveryManID, parcel.StatusDelivered,
		).Scan(&n)
	})

	return n, err
}

// BookingStatsByDate buckets all parcels by the calendar day of booking_date.
// Buckets come back sorted by date ascending; upstream left the order
// undefined.
func (r *ParcelsRepo) BookingStatsByDate(ctx context.Context) ([]parcel.DateStat, error) {
	out := make([]parcel.DateStat, 0)

	err := r.observe("parcels.booking_stats", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT to_char(booking_date::date, 'YYYY-MM-DD') AS day,
							COUNT(*) AS booked,
							COUNT(*) FILTER (WHERE delivery_status = $1) AS delivered
			 FROM parcels
			 GROUP BY day
			 ORDER BY day ASC`,
			parcel.StatusDelivered)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var s parcel.DateStat

			err = rows.Scan(&s.Date, &s.Booked, &s.Delivered)

			if err != nil {
				return err
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}
