package rerank

import (
	"context"
	"sort"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/pipeline"
)

// ScoreSortNode 按分数降序排序。
// 引擎召回自身有序，但 Fanout 合并多个召回源后顺序会被打乱，
// 截断前需要重新排一次。稳定排序：同分保持合并后的先后顺序。
type ScoreSortNode struct{}

func (n *ScoreSortNode) Name() string {
	return "rerank.score_sort"
}

func (n *ScoreSortNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *ScoreSortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) < 2 {
		return items, nil
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items, nil
}

var _ pipeline.Node = (*ScoreSortNode)(nil)
