package postprocess

import (
	"context"
	"testing"

	"github.com/telerec/seriekit/core"
)

type fakeCatalog struct {
	meta map[string]core.SeriesMeta
}

func (c *fakeCatalog) Name() string { return "fake" }

func (c *fakeCatalog) TermCounts(context.Context) (map[string]map[string]float64, error) {
	return nil, nil
}

func (c *fakeCatalog) SeriesMeta(_ context.Context, names []string) (map[string]core.SeriesMeta, error) {
	out := make(map[string]core.SeriesMeta)
	for _, n := range names {
		if m, ok := c.meta[n]; ok {
			out[n] = m
		}
	}
	return out, nil
}

func TestMetaEnrichNode(t *testing.T) {
	node := &MetaEnrichNode{Catalog: &fakeCatalog{
		meta: map[string]core.SeriesMeta{
			"Lost": {Synopsis: "Plane crash survivors.", ImageURL: "https://img.example/lost.jpg"},
		},
	}}

	items := []*core.Item{core.NewItem("Lost"), core.NewItem("Unknown")}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].Meta["synopsis"] != "Plane crash survivors." {
		t.Errorf("synopsis = %v", out[0].Meta["synopsis"])
	}
	if out[0].Meta["image_url"] != "https://img.example/lost.jpg" {
		t.Errorf("image_url = %v", out[0].Meta["image_url"])
	}
	// 未知剧集不报错，元信息缺席
	if _, ok := out[1].Meta["synopsis"]; ok {
		t.Error("unknown series should have no synopsis")
	}
}

func TestMetaEnrichNode_NoCatalog(t *testing.T) {
	node := &MetaEnrichNode{}
	items := []*core.Item{core.NewItem("Lost")}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil || len(out) != 1 {
		t.Errorf("nil catalog should pass items through, got (%v, %v)", out, err)
	}
}
