package filter

import (
	"context"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/pkg/dsl"
)

// ExprFilter 是表达式过滤器，用 CEL 表达式描述过滤条件。
// 表达式返回 true 表示保留，false 表示过滤（与 DSL 的"匹配即通过"语义一致）。
//
// 示例：
//   - `item.score > 0.1` → 只保留分数高于 0.1 的剧集
//   - `label.recall_source != "hot"` → 剔除热门兜底来源
//   - `rctx.scene == "homepage" ? item.score > 0.5 : true` → 首页场景抬高门槛
type ExprFilter struct {
	// Expr 是 CEL 表达式；空表达式恒为保留。
	Expr string
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Expr == "" {
		return false, nil
	}
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}

	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		return false, err
	}
	return !keep, nil
}

var _ Filter = (*ExprFilter)(nil)
