package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/domain/user"
)

// EnsureAdminUser makes sure the configured admin email exists in the
// directory with role admin. There is no password: identity arrives through
// the token endpoint, the directory only decides what the identity may do.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	var (
		id   string
		role string
	)

	err := pool.QueryRow(ctx, `SELECT id, role FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&id, &role)

	if err == nil {
		if role == user.RoleAdmin {
			return nil
		}

		_, err = pool.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, user.RoleAdmin)
		return err
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, name, email, role, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), cfg.AdminName, cfg.AdminEmail, user.RoleAdmin, "", time.Now().UTC(),
	)

	return err
}
