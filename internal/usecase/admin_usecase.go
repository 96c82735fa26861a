package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
)

// AdminUseCase реализует аутентификацию администратора и CRUD каталога.
// Каждая мутация выполняется в одной транзакции вместе с записью outbox-события:
// упавшая валидация или ошибка репозитория не оставляют частичных изменений.
type AdminUseCase struct {
	categoryRepo CategoryRepository
	productRepo  ProductRepository
	adminRepo    AdminRepository
	sessionRepo  SessionRepository
	outboxRepo   OutboxRepository
	dbPool       transaction.Transactional
	logger       logger.Logger
}

func NewAdminUC(
	categoryRepo CategoryRepository,
	productRepo ProductRepository,
	adminRepo AdminRepository,
	sessionRepo SessionRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		adminRepo:    adminRepo,
		sessionRepo:  sessionRepo,
		outboxRepo:   outboxRepo,
		dbPool:       dbPool,
		logger:       logger,
	}
}

// Authenticate сверяет пароль с bcrypt-хэшем и привязывает администратора к сессии.
// Несуществующий логин и неверный пароль неразличимы для вызывающего.
func (a *AdminUseCase) Authenticate(ctx context.Context, sessionID string, req *LoginReq) (*domain.Admin, error) {
	const op = "AdminUseCase.Authenticate"

	admin, err := a.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, e.ErrAdminNotFound) {
			return nil, e.ErrAdminNotFound
		}
		return nil, e.Wrap(op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		a.logger.Warnf("failed admin login attempt for %q", req.Username)
		return nil, e.ErrAdminNotFound
	}

	if err := a.sessionRepo.BindAdmin(ctx, sessionID, admin.ID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return admin, nil
}

// Logout снимает привязку администратора с сессии.
func (a *AdminUseCase) Logout(ctx context.Context, sessionID string) error {
	const op = "AdminUseCase.Logout"

	if err := a.sessionRepo.UnbindAdmin(ctx, sessionID); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// RequireAdmin возвращает id администратора сессии или e.ErrUnauthenticated.
func (a *AdminUseCase) RequireAdmin(ctx context.Context, sessionID string) (int64, error) {
	return a.sessionRepo.AdminID(ctx, sessionID)
}

func (a *AdminUseCase) AddCategory(ctx context.Context, req *CategoryReq) (*domain.Category, error) {
	const op = "AdminUseCase.AddCategory"

	if err := validateCategoryReq(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var category *domain.Category
	err := a.inTx(ctx, func(ctx context.Context) error {
		var err error
		category, err = a.categoryRepo.Create(ctx, domain.NewCategory(req.Name, req.Type))
		if err != nil {
			return err
		}

		return a.emitEvent(ctx, CategoryChanged, category.ID, "created", category)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

func (a *AdminUseCase) EditCategory(ctx context.Context, id int64, req *CategoryReq) (*domain.Category, error) {
	const op = "AdminUseCase.EditCategory"

	if err := validateCategoryReq(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var category *domain.Category
	err := a.inTx(ctx, func(ctx context.Context) error {
		updated := domain.NewCategory(req.Name, req.Type)
		updated.ID = id

		var err error
		category, err = a.categoryRepo.Update(ctx, updated)
		if err != nil {
			return err
		}

		return a.emitEvent(ctx, CategoryChanged, category.ID, "updated", category)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// DeleteCategory удаляет категорию. Категория с зависимыми товарами не удаляется
// (restrict), вызывающий получает e.ErrCategoryInUse.
func (a *AdminUseCase) DeleteCategory(ctx context.Context, id int64) error {
	const op = "AdminUseCase.DeleteCategory"

	err := a.inTx(ctx, func(ctx context.Context) error {
		dependents, err := a.productRepo.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if dependents > 0 {
			return e.ErrCategoryInUse
		}

		if err := a.categoryRepo.Delete(ctx, id); err != nil {
			return err
		}

		return a.emitEvent(ctx, CategoryChanged, id, "deleted", nil)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (a *AdminUseCase) AddProduct(ctx context.Context, req *ProductReq) (*domain.Product, error) {
	const op = "AdminUseCase.AddProduct"

	if err := a.validateProductReq(ctx, req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var product *domain.Product
	err := a.inTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = a.productRepo.Create(ctx, domain.NewProduct(
			req.Name, req.Price, req.ManufactureDate, req.AvailableQuantity, req.CategoryID,
		))
		if err != nil {
			return err
		}

		return a.emitEvent(ctx, ProductChanged, product.ID, "created", product)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

func (a *AdminUseCase) EditProduct(ctx context.Context, id int64, req *ProductReq) (*domain.Product, error) {
	const op = "AdminUseCase.EditProduct"

	if err := a.validateProductReq(ctx, req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var product *domain.Product
	err := a.inTx(ctx, func(ctx context.Context) error {
		updated := domain.NewProduct(req.Name, req.Price, req.ManufactureDate, req.AvailableQuantity, req.CategoryID)
		updated.ID = id

		var err error
		product, err = a.productRepo.Update(ctx, updated)
		if err != nil {
			return err
		}

		return a.emitEvent(ctx, ProductChanged, product.ID, "updated", product)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

func (a *AdminUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "AdminUseCase.DeleteProduct"

	err := a.inTx(ctx, func(ctx context.Context) error {
		if err := a.productRepo.Delete(ctx, id); err != nil {
			return err
		}

		return a.emitEvent(ctx, ProductChanged, id, "deleted", nil)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// inTx выполняет fn в pgx-транзакции, пробрасывая её в контекст для репозиториев.
func (a *AdminUseCase) inTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, a.dbPool)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = fn(ctx); err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

// emitEvent пишет outbox-событие в той же транзакции, что и мутация каталога.
func (a *AdminUseCase) emitEvent(ctx context.Context, eventType OutboxEventType, entityID int64, action string, entity any) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(map[string]any{
		"event_id":    eventID,
		"event_type":  eventType,
		"action":      action,
		"entity_id":   entityID,
		"entity":      entity,
		"occurred_at": time.Now().UnixNano(),
	})
	if err != nil {
		return err
	}

	_, err = a.outboxRepo.Create(ctx, NewOutboxEvent(eventID, eventType, entityID, payload))
	return err
}

func validateCategoryReq(req *CategoryReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrNameRequired
	}

	if strings.TrimSpace(req.Type) == "" {
		return e.ErrMissingFields
	}

	return nil
}

// validateProductReq проверяет поля товара и существование категории.
func (a *AdminUseCase) validateProductReq(ctx context.Context, req *ProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrNameRequired
	}

	if req.Price < 0 {
		return e.ErrInvalidPrice
	}

	if req.AvailableQuantity < 0 {
		return e.ErrInvalidQuantity
	}

	if req.ManufactureDate.IsZero() {
		return e.ErrInvalidDate
	}

	if _, err := a.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, e.ErrCategoryNotFound) {
			return e.ErrUnknownCategory
		}
		return err
	}

	return nil
}
