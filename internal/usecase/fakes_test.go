package usecase

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/pkg/e"
)

// Общие in-memory фейки для тестов юзкейсов.

type fakeLogger struct{}

func (fakeLogger) Debugf(format string, args ...any)            {}
func (fakeLogger) Infof(format string, args ...any)             {}
func (fakeLogger) Warnf(format string, args ...any)             {}
func (fakeLogger) Errorf(err error, format string, args ...any) {}

type fakeCategoryRepo struct {
	categories map[int64]*domain.Category
	nextID     int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*domain.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.nextID++
	created := *category
	created.ID = r.nextID
	r.categories[created.ID] = &created

	return &created, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) (*domain.Category, error) {
	stored, ok := r.categories[category.ID]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}

	stored.Name = category.Name
	stored.Type = category.Type

	return stored, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return e.ErrCategoryNotFound
	}

	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}

	return category, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, *category)
	}

	return out, nil
}

func (r *fakeCategoryRepo) Search(_ context.Context, query string) ([]domain.Category, error) {
	out := make([]domain.Category, 0)
	for _, category := range r.categories {
		if containsFold(category.Name, query) {
			out = append(out, *category)
		}
	}

	return out, nil
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
	byCat    map[int64]int64
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[int64]*domain.Product),
		byCat:    make(map[int64]int64),
	}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.nextID++
	created := *product
	created.ID = r.nextID
	r.products[created.ID] = &created
	r.byCat[created.CategoryID]++

	return &created, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	stored, ok := r.products[product.ID]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	r.byCat[stored.CategoryID]--
	r.byCat[product.CategoryID]++
	updated := *product
	r.products[product.ID] = &updated

	return &updated, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	stored, ok := r.products[id]
	if !ok {
		return e.ErrProductNotFound
	}

	r.byCat[stored.CategoryID]--
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return product, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]ProductInfo, error) {
	out := make([]ProductInfo, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, ProductInfo{
			ID:                product.ID,
			Name:              product.Name,
			Price:             product.Price,
			ManufactureDate:   product.ManufactureDate,
			AvailableQuantity: product.AvailableQuantity,
			CategoryID:        product.CategoryID,
		})
	}

	return out, nil
}

func (r *fakeProductRepo) Search(_ context.Context, query string) ([]ProductInfo, error) {
	out := make([]ProductInfo, 0)
	for _, product := range r.products {
		if containsFold(product.Name, query) {
			out = append(out, ProductInfo{ID: product.ID, Name: product.Name, Price: product.Price})
		}
	}

	return out, nil
}

func (r *fakeProductRepo) CountByCategory(_ context.Context, categoryID int64) (int64, error) {
	return r.byCat[categoryID], nil
}

type fakeAdminRepo struct {
	admins map[string]*domain.Admin
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	admin, ok := r.admins[username]
	if !ok {
		return nil, e.ErrAdminNotFound
	}

	return admin, nil
}

type fakeSessionRepo struct {
	carts  map[string][]domain.CartItem
	admins map[string]int64
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		carts:  make(map[string][]domain.CartItem),
		admins: make(map[string]int64),
	}
}

func (r *fakeSessionRepo) GetCart(_ context.Context, sessionID string) ([]domain.CartItem, error) {
	return r.carts[sessionID], nil
}

func (r *fakeSessionRepo) SaveCart(_ context.Context, sessionID string, items []domain.CartItem) error {
	r.carts[sessionID] = items
	return nil
}

func (r *fakeSessionRepo) AdminID(_ context.Context, sessionID string) (int64, error) {
	adminID, ok := r.admins[sessionID]
	if !ok {
		return 0, e.ErrUnauthenticated
	}

	return adminID, nil
}

func (r *fakeSessionRepo) BindAdmin(_ context.Context, sessionID string, adminID int64) error {
	r.admins[sessionID] = adminID
	return nil
}

func (r *fakeSessionRepo) UnbindAdmin(_ context.Context, sessionID string) error {
	delete(r.admins, sessionID)
	return nil
}

type fakeOutboxRepo struct {
	events []*OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	r.events = append(r.events, event)
	return event, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*OutboxEvent, error) {
	out := make([]*OutboxEvent, 0, limit)
	for _, event := range r.events {
		if event.Status != Pending {
			continue
		}
		event.Status = Processing
		out = append(out, event)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	for _, event := range r.events {
		if event.ID == id {
			event.Status = Processed
		}
	}

	return nil
}

// fakeTx реализует pgx.Tx поверх памяти, чтобы гонять inTx без базы.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeDB struct {
	lastTx *fakeTx
}

func (d *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	d.lastTx = &fakeTx{}
	return d.lastTx, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
