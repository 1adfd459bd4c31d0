package store

import (
	"context"
	"testing"

	"github.com/telerec/seriekit/core"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if _, err := ms.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want not-found", err)
	}

	if err := ms.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := ms.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) = (%q, %v), want (v, nil)", got, err)
	}

	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := ms.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after Delete error = %v, want not-found", err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	if err := ms.HSet(ctx, "ratings:u1", "Lost", []byte("5")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	if err := ms.HSet(ctx, "ratings:u1", "Breaking Bad", []byte("4")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}

	got, err := ms.HGet(ctx, "ratings:u1", "Lost")
	if err != nil || string(got) != "5" {
		t.Errorf("HGet() = (%q, %v), want (5, nil)", got, err)
	}

	all, err := ms.HGetAll(ctx, "ratings:u1")
	if err != nil {
		t.Fatalf("HGetAll() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("HGetAll() returned %d fields, want 2", len(all))
	}

	if err := ms.HDel(ctx, "ratings:u1", "Lost"); err != nil {
		t.Fatalf("HDel() error = %v", err)
	}
	if _, err := ms.HGet(ctx, "ratings:u1", "Lost"); !core.IsStoreNotFound(err) {
		t.Errorf("HGet after HDel error = %v, want not-found", err)
	}
	// 删除不存在的字段静默成功
	if err := ms.HDel(ctx, "ratings:u1", "Nonexistent"); err != nil {
		t.Errorf("HDel(missing field) error = %v, want nil", err)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.ZAdd(ctx, "hot:series", 10, "Lost")
	ms.ZAdd(ctx, "hot:series", 30, "Breaking Bad")
	ms.ZAdd(ctx, "hot:series", 20, "The Island")

	got, err := ms.ZRange(ctx, "hot:series", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	want := []string{"Breaking Bad", "The Island"}
	if len(got) != len(want) {
		t.Fatalf("ZRange() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ZRange()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	score, err := ms.ZScore(ctx, "hot:series", "Lost")
	if err != nil || score != 10 {
		t.Errorf("ZScore(Lost) = (%v, %v), want (10, nil)", score, err)
	}
}
