package filter

import (
	"context"

	"github.com/telerec/seriekit/core"
)

// RatedFilter 过滤掉用户已经评过分的剧集。
// 引擎召回自带 exclude_seen，这个过滤器服务于引擎之外的召回源
// （例如热门兜底），保证"看过的不再推"对整条流水线生效。
//
// 评分来源二选一：
//  1. 请求里已携带的 rctx.Ratings（零额外 IO）
//  2. Ratings 为空且配置了 Store 时，从 RatingStore 拉取
type RatedFilter struct {
	Store core.RatingStore
}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil {
		return false, nil
	}

	if len(rctx.Ratings) > 0 {
		for _, r := range rctx.Ratings {
			if r.SeriesName == item.Name {
				return true, nil
			}
		}
		return false, nil
	}

	if f.Store == nil || rctx.UserID == "" {
		return false, nil
	}
	ratings, err := f.Store.UserRatings(ctx, rctx.UserID)
	if err != nil {
		// 存储不可用时放行，不让过滤器拖垮整条流水线
		return false, nil
	}
	for _, r := range ratings {
		if r.SeriesName == item.Name {
			return true, nil
		}
	}
	return false, nil
}

var _ Filter = (*RatedFilter)(nil)
