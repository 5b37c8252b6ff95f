package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
	"github.com/logixshuvo/parcelhub/internal/observability"
)

// UsersRepo is the identity directory: users keyed by email, role lookups
// resolved fresh on every call.
type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, name, email, role, phone, created_at
	         FROM users
	         WHERE email = $1`,
			email,
		).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0)

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, name, email, role, phone, created_at FROM users ORDER BY created_at ASC, id ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var u user.User

			err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.CreatedAt)

			if err != nil {
				return err
			}

			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Register inserts a user unless the email is already taken. The existence
// check mirrors the upstream check-then-insert flow; the unique index on
// email backstops it, so a concurrent duplicate insert surfaces as
// ErrEmailTaken rather than a second row.
func (r *UsersRepo) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	_, err := r.GetByEmail(ctx, req.Email)

	if err == nil {
		return user.User{}, user.ErrEmailTaken
	}

	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, err
	}

	role := req.Role

	if role == "" {
		role = user.RoleCustomer
	}

	u := user.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		Phone:     req.Phone,
		CreatedAt: time.Now().UTC(),
	}

	err = r.observe("users.register.insert", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO users (id, name, email, role, phone, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, u.Name, u.Email, u.Role, u.Phone, u.CreatedAt,
		)

		return err
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}

		return user.User{}, err
	}

	return u, nil
}

// SetRole returns false when the id is unknown or the role is unchanged.
func (r *UsersRepo) SetRole(ctx context.Context, id, role string) (bool, error) {
	var tag pgconn.CommandTag

	err := r.observe("users.set_role", func() error {
		t, err := r.pool.Exec(ctx,
			`UPDATE users SET role = $2 WHERE id = $1 AND role <> $2`, id, role)
		tag = t

		return err
	})

	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) (bool, error) {
	var tag pgconn.CommandTag

	err := r.observe("users.delete", func() error {
		t, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		tag = t

		return err
	})

	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *UsersRepo) CountAll(ctx context.Context) (int, error) {
	var n int

	err := r.observe("users.count_all", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	})

	return n, err
}

func (r *UsersRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int

	err := r.observe("users.count_by_role", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	})

	return n, err
}
