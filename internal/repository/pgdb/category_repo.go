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
	"github.com/shopline/storefront/pkg/tr"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
// Мутации выполняются в транзакции из контекста, чтение идёт напрямую через пул.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO categories(name, type) VALUES ($1, $2)
		RETURNING id, name, type, created_at, updated_at;
	`

	var model converter.CategoryModel
	if err := tx.QueryRow(ctx, query, category.Name, category.Type).
		Scan(
			&model.ID, &model.Name, &model.Type, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Update обновляет категорию по id. Отсутствующий id — e.ErrCategoryNotFound.
func (c *CategoryRepo) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE categories
		SET name = $2, type = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, type, created_at, updated_at;
	`

	var model converter.CategoryModel
	if err := tx.QueryRow(ctx, query, category.ID, category.Name, category.Type).
		Scan(
			&model.ID, &model.Name, &model.Type, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCategoryNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Delete удаляет категорию по id. FK-нарушение транслируется в e.ErrCategoryInUse.
func (c *CategoryRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		if postgresForeignKey(err) {
			return e.ErrCategoryInUse
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.ErrCategoryNotFound
	}

	return nil
}

func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, type, created_at, updated_at
		FROM categories
		WHERE id = $1;
	`

	var model converter.CategoryModel
	if err := c.pool.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Name, &model.Type, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrCategoryNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, type, created_at, updated_at
		FROM categories
		ORDER BY id;
	`

	return c.queryCategories(ctx, query)
}

// Search ищет категории по подстроке имени без учёта регистра.
func (c *CategoryRepo) Search(ctx context.Context, search string) ([]domain.Category, error) {
	query := `
		SELECT id, name, type, created_at, updated_at
		FROM categories
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id;
	`

	return c.queryCategories(ctx, query, search)
}

func (c *CategoryRepo) queryCategories(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.CategoryModel, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Type, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), nil
}
