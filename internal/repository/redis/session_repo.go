package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"

	"github.com/shopline/storefront/internal/cfg"
	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/internal/repository/redis/converter"
	"github.com/shopline/storefront/pkg/clients"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
)

// SessionRepo хранит состояние сессии посетителя в Redis:
// корзину и привязку администратора. Ключи живут cfg.TTL и продлеваются при записи.
type SessionRepo struct {
	client *clients.RedisClient
	conv   converter.CartItemConverter
	cfg    *cfg.SessionCfg
	logger logger.Logger
}

func NewSessionRepo(client *clients.RedisClient, conv converter.CartItemConverter,
	cfg *cfg.SessionCfg, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCart возвращает корзину сессии. Отсутствующий ключ — пустая корзина, не ошибка.
func (s *SessionRepo) GetCart(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	data, err := s.client.Client.Get(ctx, s.cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return []domain.CartItem{}, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.CartItemRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		// Повреждённое значение считаем пустой корзиной, чтобы не блокировать сессию.
		s.logger.Warnf("corrupt cart payload for session %s: %v", sessionID, err)
		if err := s.client.Client.Del(context.Background(), s.cartKey(sessionID)).Err(); err != nil {
			s.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return []domain.CartItem{}, nil
	}

	return s.conv.ToArrEntity(models), nil
}

// SaveCart перезаписывает корзину сессии и продлевает её TTL.
func (s *SessionRepo) SaveCart(ctx context.Context, sessionID string, items []domain.CartItem) error {
	data, err := json.Marshal(s.conv.ToArrRedisModel(items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.cartKey(sessionID), data, s.cfg.TTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// AdminID возвращает id администратора, привязанного к сессии,
// или e.ErrUnauthenticated, если привязки нет.
func (s *SessionRepo) AdminID(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.client.Client.Get(ctx, s.adminKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return 0, e.ErrUnauthenticated
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	adminID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return adminID, nil
}

func (s *SessionRepo) BindAdmin(ctx context.Context, sessionID string, adminID int64) error {
	if err := s.client.Client.Set(ctx, s.adminKey(sessionID),
		strconv.FormatInt(adminID, 10), s.cfg.TTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) UnbindAdmin(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, s.adminKey(sessionID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// cartKey возвращает Redis-ключ корзины сессии
func (s *SessionRepo) cartKey(sessionID string) string {
	return fmt.Sprintf("session:%s:cart", sessionID)
}

// adminKey возвращает Redis-ключ привязки администратора
func (s *SessionRepo) adminKey(sessionID string) string {
	return fmt.Sprintf("session:%s:admin_id", sessionID)
}
