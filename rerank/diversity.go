package rerank

import (
	"context"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/pipeline"
)

// Diversity 是一个简单的多样性 ReRank：按类型（genre）去重，保留首个出现的类型。
// 类型来源优先级：
// - label["genre"].Value
// - meta["genre"] (string)
type Diversity struct {
	LabelKey string // 默认 "genre"
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	key := n.LabelKey
	if key == "" {
		key = "genre"
	}

	seen := make(map[string]bool, 32)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		genre := ""
		if it.Labels != nil {
			if lbl, ok := it.Labels[key]; ok {
				genre = lbl.Value
			}
		}
		if genre == "" && it.Meta != nil {
			if v, ok := it.Meta[key]; ok {
				if s, ok := v.(string); ok {
					genre = s
				}
			}
		}

		// 没有类型信息的剧集不参与去重
		if genre == "" {
			out = append(out, it)
			continue
		}
		if seen[genre] {
			continue
		}
		seen[genre] = true
		out = append(out, it)
	}

	return out, nil
}

var _ pipeline.Node = (*Diversity)(nil)
