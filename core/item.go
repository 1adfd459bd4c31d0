package core

import "github.com/telerec/seriekit/pkg/utils"

// Item 是推荐链路中的统一承载结构：剧集名、分数、元信息、标签。
// Name 是剧集的唯一标识（引擎按名字索引行）；Score 用于排序决策；
// Labels 用于解释与策略驱动。
type Item struct {
	Name   string
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(name string) *Item {
	return &Item{
		Name:   name,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
