package recall

import (
	"context"
	"testing"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/store"
)

func TestHot_FallbackNames(t *testing.T) {
	h := &Hot{Names: []string{"Lost", "Breaking Bad", ""}}

	items, err := h.Recall(context.Background(), &core.RecommendContext{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (empty names skipped)", len(items))
	}
	if items[0].Name != "Lost" {
		t.Errorf("items[0] = %q, want Lost", items[0].Name)
	}
	if got := items[0].Labels["recall_source"].Value; got != "hot" {
		t.Errorf("recall_source = %q, want hot", got)
	}
}

func TestHot_ZSetStore(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.ZAdd(ctx, "hot:series", 5, "Lost")
	ms.ZAdd(ctx, "hot:series", 9, "Breaking Bad")

	h := &Hot{Store: ms, Key: "hot:series", Names: []string{"Fallback Show"}}
	items, err := h.Recall(ctx, &core.RecommendContext{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	// ZRange 按热度降序
	if items[0].Name != "Breaking Bad" || items[1].Name != "Lost" {
		t.Errorf("got [%s %s], want [Breaking Bad Lost]", items[0].Name, items[1].Name)
	}
}

func TestHot_EmptyStoreFallsBack(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()

	h := &Hot{Store: ms, Key: "hot:series", Names: []string{"Fallback Show"}}
	items, err := h.Recall(context.Background(), &core.RecommendContext{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "Fallback Show" {
		t.Errorf("got %v, want fallback item", items)
	}
}

func TestHot_Limit(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()
	ctx := context.Background()

	ms.ZAdd(ctx, "hot:series", 3, "A")
	ms.ZAdd(ctx, "hot:series", 2, "B")
	ms.ZAdd(ctx, "hot:series", 1, "C")

	h := &Hot{Store: ms, Key: "hot:series", Limit: 2}
	items, err := h.Recall(ctx, &core.RecommendContext{})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2 (limit)", len(items))
	}
}
