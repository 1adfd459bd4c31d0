package core

import "github.com/telerec/seriekit/pkg/utils"

// RecommendContext 承载一次搜索/推荐请求的全部输入，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string // 使用 string 类型（通用，支持所有 ID 格式）
	Scene  string

	// Query 是自由文本查询；为空表示纯推荐请求（只依赖评分画像）。
	Query string

	// Ratings 是用户的评分历史，由上游（存储层）查询后填入。
	// 引擎只在本次请求内消费，不做任何持久化。
	Ratings []Rating

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：新用户、重度用户、冷启动等
	Labels map[string]utils.Label

	// Params 请求级上下文参数，包含：
	// - 请求参数：top_n, alpha, beta, gamma, exclude_seen, include_meta 等
	// - 数值参数可能来自 URL/JSON，类型不定，取值时经 pkg/conv 兜底到默认值
	Params map[string]any
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

// RatedNames 返回评分历史中出现过的剧集名集合（用于 exclude_seen 过滤）。
func (rctx *RecommendContext) RatedNames() map[string]struct{} {
	if len(rctx.Ratings) == 0 {
		return nil
	}
	names := make(map[string]struct{}, len(rctx.Ratings))
	for _, r := range rctx.Ratings {
		names[r.SeriesName] = struct{}{}
	}
	return names
}
