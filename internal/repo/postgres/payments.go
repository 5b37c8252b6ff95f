package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logixshuvo/parcelhub/internal/domain/payment"
)

type PaymentsRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentsRepo(pool *pgxpool.Pool) *PaymentsRepo {
	return &PaymentsRepo{pool: pool}
}

func (r *PaymentsRepo) Create(ctx context.Context, req payment.RecordRequest) (payment.Payment, error) {
	p := payment.Payment{
		ID:            uuid.NewString(),
		Email:         req.Email,
		ParcelID:      req.ParcelID,
		Charge:        req.Charge.Float64(),
		TransactionID: req.TransactionID,
		PaidAt:        time.Now().UTC(),
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments (id, email, parcel_id, charge, transaction_id, paid_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Email, p.ParcelID, p.Charge, p.TransactionID, p.PaidAt,
	)

	if err != nil {
		return payment.Payment{}, err
	}

	return p, nil
}

func (r *PaymentsRepo) List(ctx context.Context) ([]payment.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, parcel_id, charge, transaction_id, paid_at
		 FROM payments
		 ORDER BY paid_at DESC, id ASC`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]payment.Payment, 0)

	for rows.Next() {
		var p payment.Payment

		err := rows.Scan(&p.ID, &p.Email, &p.ParcelID, &p.Charge, &p.TransactionID, &p.PaidAt)

		if err != nil {
			return nil, err
		}

		records = append(records, p)
	}

	return records, rows.Err()
}

// TotalRevenue is 0 on an empty payment set, not an error.
func (r *PaymentsRepo) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64

	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(charge), 0) FROM payments`).Scan(&total)

	return total, err
}
