// Package postprocess 提供结果修饰节点：打分排序完成后补充展示信息。
package postprocess

import (
	"context"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/pipeline"
)

// MetaEnrichNode 给结果批量补充剧集元信息（简介、封面），写入 item.Meta。
// 放在截断之后执行，只为最终返回的条目查元信息。
type MetaEnrichNode struct {
	Catalog core.CatalogStore
}

func (n *MetaEnrichNode) Name() string {
	return "postprocess.meta"
}

func (n *MetaEnrichNode) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *MetaEnrichNode) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil || len(items) == 0 {
		return items, nil
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		if it != nil {
			names = append(names, it.Name)
		}
	}

	meta, err := n.Catalog.SeriesMeta(ctx, names)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		m, ok := meta[it.Name]
		if !ok {
			continue
		}
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		if m.Synopsis != "" {
			it.Meta["synopsis"] = m.Synopsis
		}
		if m.ImageURL != "" {
			it.Meta["image_url"] = m.ImageURL
		}
	}
	return items, nil
}

var _ pipeline.Node = (*MetaEnrichNode)(nil)
