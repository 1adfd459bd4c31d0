package builders

import (
	"context"
	"testing"

	"github.com/telerec/seriekit/config"
	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/engine"
	"github.com/telerec/seriekit/pipeline"
	"github.com/telerec/seriekit/recall"
)

func testPipelineConfig() *pipeline.Config {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "search"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "recall.engine", Config: map[string]interface{}{}},
		{Type: "filter", Config: map[string]interface{}{
			"filters": []interface{}{
				map[string]interface{}{"type": "exclude", "names": []interface{}{"Banned Show"}},
			},
		}},
		{Type: "rerank.score_sort", Config: map[string]interface{}{}},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 5}},
	}
	return cfg
}

func TestBuildPipelineFromConfig(t *testing.T) {
	eng := engine.NewEngine(map[string]map[string]float64{
		"Lost":         {"island": 4, "plane": 2},
		"Breaking Bad": {"meth": 5},
	})
	SetEngineProvider(&recall.StaticEngineProvider{E: eng})

	cfg := testPipelineConfig()
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error = %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 4 {
		t.Fatalf("built %d nodes, want 4", len(p.Nodes))
	}

	items, err := p.Run(context.Background(), &core.RecommendContext{Query: "island"}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(items) == 0 || items[0].Name != "Lost" {
		t.Errorf("pipeline result = %v, want Lost first", items)
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.quantum"}}
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Error("unknown node type should fail validation")
	}
}

func TestBuildEngineNodeRequiresProvider(t *testing.T) {
	SetEngineProvider(nil)
	defer SetEngineProvider(nil)

	if _, err := BuildEngineNode(map[string]interface{}{}); err == nil {
		t.Error("BuildEngineNode without provider should fail")
	}
}

func TestBuildFanoutNode(t *testing.T) {
	eng := engine.NewEngine(map[string]map[string]float64{"Lost": {"island": 1}})
	SetEngineProvider(&recall.StaticEngineProvider{E: eng})

	node, err := BuildFanoutNode(map[string]interface{}{
		"sources": []interface{}{
			map[string]interface{}{"type": "engine"},
			map[string]interface{}{"type": "hot", "names": []interface{}{"Fallback Show"}},
		},
		"dedup":          true,
		"timeout":        2,
		"merge_strategy": "priority",
	})
	if err != nil {
		t.Fatalf("BuildFanoutNode() error = %v", err)
	}
	fanout, ok := node.(*recall.Fanout)
	if !ok {
		t.Fatalf("node type = %T, want *recall.Fanout", node)
	}
	if len(fanout.Sources) != 2 {
		t.Errorf("sources = %d, want 2", len(fanout.Sources))
	}
	if fanout.MergeStrategy != "priority" {
		t.Errorf("merge strategy = %q, want priority", fanout.MergeStrategy)
	}
}
