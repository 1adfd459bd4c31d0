package recall

import (
	"context"
	"testing"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/engine"
)

func testEngine() *engine.Engine {
	return engine.NewEngine(map[string]map[string]float64{
		"Lost":         {"plane": 3, "island": 2, "crash": 1},
		"Breaking Bad": {"meth": 5, "chemistry": 2},
		"The Island":   {"island": 4, "beach": 2},
	})
}

func TestEngineRecall_Query(t *testing.T) {
	r := &EngineRecall{Provider: &StaticEngineProvider{E: testEngine()}}

	items, err := r.Recall(context.Background(), &core.RecommendContext{
		UserID: "u1",
		Query:  "island survival",
	})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("Recall() returned no items")
	}
	if items[0].Name != "The Island" {
		t.Errorf("top item = %q, want %q", items[0].Name, "The Island")
	}
	if got := items[0].Labels["recall_source"].Value; got != "engine" {
		t.Errorf("recall_source label = %q, want %q", got, "engine")
	}
	if got := items[0].Labels["signal"].Value; got != "query" {
		t.Errorf("signal label = %q, want %q", got, "query")
	}
	for i := 1; i < len(items); i++ {
		if items[i].Score > items[i-1].Score {
			t.Errorf("items not sorted: score[%d]=%v > score[%d]=%v",
				i, items[i].Score, i-1, items[i-1].Score)
		}
	}
}

func TestEngineRecall_ExcludeSeenDefault(t *testing.T) {
	r := &EngineRecall{Provider: &StaticEngineProvider{E: testEngine()}}

	// 纯推荐模式（无查询）：已评分剧集默认被排除。
	items, err := r.Recall(context.Background(), &core.RecommendContext{
		UserID:  "u1",
		Ratings: []core.Rating{{SeriesName: "Lost", Score: 5}},
	})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	for _, it := range items {
		if it.Name == "Lost" {
			t.Error("rated series should be excluded in pure recommendation mode")
		}
	}
	if len(items) == 0 {
		t.Fatal("expected similar series to be recommended")
	}
	if got := items[0].Labels["signal"].Value; got != "profile" {
		t.Errorf("signal label = %q, want %q", got, "profile")
	}

	// exclude_seen=false 显式关闭排除。
	items, err = r.Recall(context.Background(), &core.RecommendContext{
		UserID:  "u1",
		Ratings: []core.Rating{{SeriesName: "Lost", Score: 5}},
		Params:  map[string]any{"exclude_seen": false},
	})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	found := false
	for _, it := range items {
		if it.Name == "Lost" {
			found = true
		}
	}
	if !found {
		t.Error("Lost should be returned when exclude_seen=false")
	}
}

func TestEngineRecall_NilAndEmptyEngine(t *testing.T) {
	r := &EngineRecall{}
	items, err := r.Recall(context.Background(), &core.RecommendContext{Query: "island"})
	if err != nil || items != nil {
		t.Errorf("nil provider: got (%v, %v), want (nil, nil)", items, err)
	}

	r = &EngineRecall{Provider: &StaticEngineProvider{E: engine.NewEngine(nil)}}
	items, err = r.Recall(context.Background(), &core.RecommendContext{Query: "island"})
	if err != nil || items != nil {
		t.Errorf("empty engine: got (%v, %v), want (nil, nil)", items, err)
	}
}

func TestEngineRecall_SearchOptions(t *testing.T) {
	r := &EngineRecall{}

	tests := []struct {
		name      string
		rctx      *core.RecommendContext
		combined  bool
		wantTopN  int
		wantAlpha float64
		wantBeta  float64
		wantGamma float64
	}{
		{
			name:      "defaults",
			rctx:      &core.RecommendContext{Query: "x"},
			wantTopN:  engine.DefaultTopN,
			wantAlpha: 1.0,
			wantBeta:  1.0,
			wantGamma: 1.0,
		},
		{
			name:      "combined signals damp profile weight",
			rctx:      &core.RecommendContext{Query: "x"},
			combined:  true,
			wantTopN:  engine.DefaultTopN,
			wantAlpha: 1.0,
			wantBeta:  0.005,
			wantGamma: 0.005,
		},
		{
			name: "params override combined defaults",
			rctx: &core.RecommendContext{
				Query:  "x",
				Params: map[string]any{"beta": 0.5, "gamma": 0.25, "alpha": 2.0},
			},
			combined:  true,
			wantTopN:  engine.DefaultTopN,
			wantAlpha: 2.0,
			wantBeta:  0.5,
			wantGamma: 0.25,
		},
		{
			name: "top_n capped at max",
			rctx: &core.RecommendContext{
				Query:  "x",
				Params: map[string]any{"top_n": 100},
			},
			wantTopN:  engine.MaxTopN,
			wantAlpha: 1.0,
			wantBeta:  1.0,
			wantGamma: 1.0,
		},
		{
			name: "invalid numeric params fall back to defaults",
			rctx: &core.RecommendContext{
				Query:  "x",
				Params: map[string]any{"top_n": "lots", "alpha": "??"},
			},
			wantTopN:  engine.DefaultTopN,
			wantAlpha: 1.0,
			wantBeta:  1.0,
			wantGamma: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := r.searchOptions(tt.rctx, tt.combined)
			if opts.TopN != tt.wantTopN {
				t.Errorf("TopN = %d, want %d", opts.TopN, tt.wantTopN)
			}
			if opts.Alpha != tt.wantAlpha {
				t.Errorf("Alpha = %v, want %v", opts.Alpha, tt.wantAlpha)
			}
			if opts.Beta != tt.wantBeta {
				t.Errorf("Beta = %v, want %v", opts.Beta, tt.wantBeta)
			}
			if opts.Gamma != tt.wantGamma {
				t.Errorf("Gamma = %v, want %v", opts.Gamma, tt.wantGamma)
			}
		})
	}
}
