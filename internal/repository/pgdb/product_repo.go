package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/internal/repository/pgdb/converter"
	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/tr"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Create создаёт товар. Нарушение FK на categories — e.ErrUnknownCategory.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (name, price, manufacture_date, available_quantity, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, price, manufacture_date, available_quantity, category_id, created_at, updated_at;
	`

	var model converter.ProductModel
	if err := tx.QueryRow(ctx, query,
		product.Name, product.Price, product.ManufactureDate, product.AvailableQuantity, product.CategoryID,
	).Scan(
		&model.ID, &model.Name, &model.Price, &model.ManufactureDate,
		&model.AvailableQuantity, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if postgresForeignKey(err) {
			return nil, e.ErrUnknownCategory
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Update обновляет товар по id. Отсутствующий id — e.ErrProductNotFound.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET name = $2, price = $3, manufacture_date = $4, available_quantity = $5,
			category_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, price, manufacture_date, available_quantity, category_id, created_at, updated_at;
	`

	var model converter.ProductModel
	if err := tx.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.ManufactureDate,
		product.AvailableQuantity, product.CategoryID,
	).Scan(
		&model.ID, &model.Name, &model.Price, &model.ManufactureDate,
		&model.AvailableQuantity, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		if postgresForeignKey(err) {
			return nil, e.ErrUnknownCategory
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, price, manufacture_date, available_quantity, category_id, created_at, updated_at
		FROM products
		WHERE id = $1;
	`

	var model converter.ProductModel
	if err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Price, &model.ManufactureDate,
		&model.AvailableQuantity, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// List возвращает товары с разрешённым названием категории.
func (p *ProductRepo) List(ctx context.Context) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.price, pr.manufacture_date, pr.available_quantity,
			pr.category_id, cat.name
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		ORDER BY pr.id;
	`

	return p.queryProductsInfo(ctx, query)
}

// Search ищет товары по подстроке имени товара ИЛИ имени его категории (без учёта регистра).
func (p *ProductRepo) Search(ctx context.Context, search string) ([]usecase.ProductInfo, error) {
	query := `
		SELECT pr.id, pr.name, pr.price, pr.manufacture_date, pr.available_quantity,
			pr.category_id, cat.name
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.name ILIKE '%' || $1 || '%' OR cat.name ILIKE '%' || $1 || '%'
		ORDER BY pr.id;
	`

	return p.queryProductsInfo(ctx, query, search)
}

// CountByCategory возвращает количество товаров, ссылающихся на категорию.
func (p *ProductRepo) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	if err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1;`, categoryID,
	).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

func (p *ProductRepo) queryProductsInfo(ctx context.Context, query string, args ...any) ([]usecase.ProductInfo, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductInfo, 0)
	for rows.Next() {
		var product usecase.ProductInfo
		if err := rows.Scan(
			&product.ID, &product.Name, &product.Price, &product.ManufactureDate,
			&product.AvailableQuantity, &product.CategoryID, &product.CategoryName,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
