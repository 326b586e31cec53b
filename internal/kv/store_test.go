package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// Both backends must satisfy the same contract.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, KeyMeals); err != nil || found {
		t.Fatalf("get absent: found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, KeyMeals, []byte(`[1,2]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, KeyMeals, []byte(`[3]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	raw, found, err := s.Get(ctx, KeyMeals)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(raw) != `[3]` {
		t.Fatalf("value = %s, want [3]", raw)
	}

	if err := s.Delete(ctx, KeyMeals); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, KeyMeals); found {
		t.Fatal("expected key to be gone after delete")
	}
	if err := s.Delete(ctx, KeyMeals); err != nil {
		t.Fatalf("delete absent: %v", err)
	}

	if err := s.Set(ctx, "", []byte(`1`)); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("empty key: err = %v, want %v", err, ErrEmptyKey)
	}
}

func TestMemoryStoreContract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestSQLiteStoreContract(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	storeContract(t, s)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := SetJSON(ctx, s, KeyCurrentUser, "user_demo"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	var id string
	found, err := GetJSON(ctx, reopened, KeyCurrentUser, &id)
	if err != nil || !found {
		t.Fatalf("get after reopen: found=%v err=%v", found, err)
	}
	if id != "user_demo" {
		t.Fatalf("id = %q, want %q", id, "user_demo")
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte(`"a"`)
	if err := s.Set(ctx, KeyCurrentUser, buf); err != nil {
		t.Fatalf("set: %v", err)
	}
	buf[1] = 'b'

	raw, _, _ := s.Get(ctx, KeyCurrentUser)
	if string(raw) != `"a"` {
		t.Fatalf("stored value changed through caller buffer: %s", raw)
	}
}

func TestListAbsentKeyIsEmpty(t *testing.T) {
	items, err := List[string](context.Background(), NewMemoryStore(), KeyOrders)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("items = %#v, want empty non-nil slice", items)
	}
}

func TestGetJSONReportsCorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Set(ctx, KeyUsers, []byte(`{not json`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	var out []string
	if _, err := GetJSON(ctx, s, KeyUsers, &out); err == nil {
		t.Fatal("expected decode error")
	}
}
