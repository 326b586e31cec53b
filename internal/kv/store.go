// Package kv is the durable key-value persistence the storefront services are built on.
// Every value is a JSON document stored under a stable namespace key.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Namespace keys.
const (
	KeyUsers       = "fitmeal_users"
	KeyCurrentUser = "fitmeal_current_user"
	KeyMeals       = "fitmeal_meals"
	KeyOrders      = "fitmeal_orders"
	KeyLogs        = "fitmeal_logs"
)

var ErrEmptyKey = errors.New("kv: key is required")

// Store is a last-write-wins key-value store. Get reports found=false for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes the value under key into dst. It reports false, leaving dst
// untouched, when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// List loads a JSON array namespace; absent keys yield an empty slice.
func List[T any](ctx context.Context, s Store, key string) ([]T, error) {
	var items []T
	if _, err := GetJSON(ctx, s, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
