package rerank

import (
	"context"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个剧集。
// 通常放在流水线末尾，用于限制返回结果数量。
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.EngineRecall{...},   // 引擎打分召回
//	        &filter.FilterNode{...},     // 过滤
//	        &rerank.ScoreSortNode{},     // 按分数排序
//	        &rerank.TopNNode{N: 10},     // 截取 Top 10
//	    },
//	}
type TopNNode struct {
	// N 要保留的剧集数量（Top N）
	// 如果 N <= 0，则返回所有剧集（不截断）
	// 如果 N > len(items)，则返回所有剧集
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	// 如果 N <= 0，不截断，返回所有剧集
	if n.N <= 0 {
		return items, nil
	}

	// 如果剧集数量小于等于 N，直接返回
	if len(items) <= n.N {
		return items, nil
	}

	// 截取前 N 个剧集
	return items[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
