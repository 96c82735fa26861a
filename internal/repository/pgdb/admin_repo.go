package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/internal/repository/pgdb/converter"
	"github.com/shopline/storefront/pkg/e"
)

// AdminRepo читает учётные записи администраторов из PostgreSQL.
type AdminRepo struct {
	pool *pgxpool.Pool
	conv converter.AdminConverter
}

func NewAdminRepo(pool *pgxpool.Pool, conv converter.AdminConverter) *AdminRepo {
	return &AdminRepo{pool: pool, conv: conv}
}

func (a *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `
		SELECT id, username, password_hash
		FROM admins
		WHERE username = $1;
	`

	var model converter.AdminModel
	if err := a.pool.QueryRow(ctx, query, username).
		Scan(&model.ID, &model.Username, &model.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrAdminNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}
