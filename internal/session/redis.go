package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vendora/internal/domain"

	"github.com/redis/go-redis/v9"
)

// cartTTL keeps cart lines across reloads; the cart is durable local
// state, unlike the session-scoped markers and toggle.
const cartTTL = 30 * 24 * time.Hour

type redisStore struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedis(client *redis.Client, sessionTTL time.Duration) Store {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &redisStore{client: client, sessionTTL: sessionTTL}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("session:%s:cart", sessionID)
}

func markerKey(sessionID, storeID string) string {
	return fmt.Sprintf("session:%s:viewed:%s", sessionID, storeID)
}

func coinsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:coins", sessionID)
}

func (s *redisStore) LoadCart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return lines, nil
}

func (s *redisStore) SaveCart(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return s.ClearCart(ctx, sessionID)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *redisStore) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *redisStore) HasViewMarker(ctx context.Context, sessionID, storeID string) (bool, error) {
	n, err := s.client.Exists(ctx, markerKey(sessionID, storeID)).Result()
	if err != nil {
		return false, fmt.Errorf("check view marker: %w", err)
	}
	return n > 0, nil
}

func (s *redisStore) SetViewMarker(ctx context.Context, sessionID, storeID string) error {
	if err := s.client.Set(ctx, markerKey(sessionID, storeID), "1", s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("set view marker: %w", err)
	}
	return nil
}

func (s *redisStore) CoinToggle(ctx context.Context, sessionID string) (bool, error) {
	raw, err := s.client.Get(ctx, coinsKey(sessionID)).Result()
	if err != nil {
		// Absent means the safe default: coins off.
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get coin toggle: %w", err)
	}
	return raw == "1", nil
}

func (s *redisStore) SetCoinToggle(ctx context.Context, sessionID string, on bool) error {
	if !on {
		if err := s.client.Del(ctx, coinsKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("unset coin toggle: %w", err)
		}
		return nil
	}
	if err := s.client.Set(ctx, coinsKey(sessionID), "1", s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("set coin toggle: %w", err)
	}
	return nil
}
