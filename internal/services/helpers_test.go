package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/kv"
	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/session"
)

var (
	fixedNow       = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	errStoreFailed = errors.New("store unavailable")
)

func fixedClock() time.Time { return fixedNow }

// flakyStore fails writes to the keys listed in failSet.
type flakyStore struct {
	kv.Store
	mu      sync.Mutex
	failSet map[string]bool
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: kv.NewMemoryStore(), failSet: map[string]bool{}}
}

func (s *flakyStore) failWrites(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet[key] = fail
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.failSet[key]
	s.mu.Unlock()
	if fail {
		return errStoreFailed
	}
	return s.Store.Set(ctx, key, value)
}

type testServices struct {
	store    kv.Store
	accounts *AccountService
	catalog  *CatalogService
	tracker  *TrackerService
	orders   *OrderService
}

func newTestServices(t *testing.T, store kv.Store) *testServices {
	t.Helper()
	accounts := NewAccountService(store, session.New(store), &config.Config{})
	accounts.now = fixedClock
	catalog := NewCatalogService(store)
	tracker := NewTrackerService(store, time.UTC)
	tracker.now = fixedClock
	orders := NewOrderService(store, catalog, tracker)
	orders.now = fixedClock
	return &testServices{store: store, accounts: accounts, catalog: catalog, tracker: tracker, orders: orders}
}
