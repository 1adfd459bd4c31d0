package recall

import (
	"context"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/engine"
	"github.com/telerec/seriekit/pipeline"
	"github.com/telerec/seriekit/pkg/conv"
	"github.com/telerec/seriekit/pkg/utils"
)

// combinedProfileWeight 是查询与画像同时出现时画像侧的默认权重。
const combinedProfileWeight = 0.005

// EngineProvider 提供当前生效的打分引擎。
// 服务层用 atomic.Pointer 实现：重建快照时整体换新实例，
// 正在进行的请求继续读旧实例（不会看到半成品索引）。
type EngineProvider interface {
	Engine() *engine.Engine
}

// EngineRecall 是 TF-IDF 引擎召回源：把请求里的查询文本与评分历史
// 变换进引擎的向量空间，对全量剧集打分并返回排好序的候选。
//
// 同时实现 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type EngineRecall struct {
	Provider EngineProvider

	// TopN 结果上限；<=0 时用请求参数 top_n（缺省 engine.DefaultTopN，
	// 封顶 engine.MaxTopN）。
	TopN int

	// ExcludeRated 为 true 时把已评分剧集加入排除集。
	// 请求参数 exclude_seen 优先；参数缺席时默认"查询为空才排除"
	// （纯推荐模式不应再推已看过的剧）。
	ExcludeRated bool
}

func (r *EngineRecall) Name() string        { return "recall.engine" }
func (r *EngineRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *EngineRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *EngineRecall) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Provider == nil || rctx == nil {
		return nil, nil
	}
	eng := r.Provider.Engine()
	if eng == nil || eng.Empty() {
		return nil, nil
	}

	var qv *engine.Vector
	if rctx.Query != "" {
		qv = eng.VectorizeQuery(rctx.Query)
	}
	profile := eng.ProfileFromRatings(rctx.Ratings)

	opts := r.searchOptions(rctx, qv != nil && !profile.Empty())

	results := eng.Search(qv, profile, opts)

	out := make([]*core.Item, 0, len(results))
	for _, res := range results {
		it := core.NewItem(res.Name)
		it.Score = res.Score
		it.PutLabel("recall_source", utils.Label{Value: "engine", Source: "recall"})
		it.PutLabel("signal", utils.Label{Value: signalLabel(qv, profile), Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// searchOptions 把请求参数兜底成引擎选项（非法数值回退默认值，不报错）。
//
// combined 表示查询与画像同时在场：此时画像权重默认压到 0.005，
// 避免口味画像淹没显式查询；单独使用任一信号时默认仍是 1.0。
func (r *EngineRecall) searchOptions(rctx *core.RecommendContext, combined bool) engine.SearchOptions {
	opts := engine.DefaultSearchOptions()
	if combined {
		opts.Beta = combinedProfileWeight
		opts.Gamma = combinedProfileWeight
	}

	topN := r.TopN
	if topN <= 0 {
		topN = int(conv.ConfigGetInt64(rctx.Params, "top_n", engine.DefaultTopN))
	}
	if topN > engine.MaxTopN {
		topN = engine.MaxTopN
	}
	opts.TopN = topN

	opts.Alpha = conv.ConfigGetFloat64(rctx.Params, "alpha", opts.Alpha)
	opts.Beta = conv.ConfigGetFloat64(rctx.Params, "beta", opts.Beta)
	opts.Gamma = conv.ConfigGetFloat64(rctx.Params, "gamma", opts.Gamma)

	excludeRated := r.ExcludeRated
	if rctx.Params != nil {
		if _, ok := rctx.Params["exclude_seen"]; ok {
			excludeRated = conv.ConfigGetBool(rctx.Params, "exclude_seen", excludeRated)
		} else if rctx.Query == "" {
			excludeRated = true
		}
	} else if rctx.Query == "" {
		excludeRated = true
	}
	if excludeRated {
		rated := rctx.RatedNames()
		if len(rated) > 0 {
			opts.Exclude = rated
		}
	}
	return opts
}

func signalLabel(qv *engine.Vector, p engine.Profile) string {
	switch {
	case qv != nil && !p.Empty():
		return "query+profile"
	case qv != nil:
		return "query"
	case !p.Empty():
		return "profile"
	default:
		return "none"
	}
}

var _ Source = (*EngineRecall)(nil)
var _ pipeline.Node = (*EngineRecall)(nil)

// StaticEngineProvider 是最简单的 Provider：固定返回同一个引擎实例。
// 适合测试与一次性脚本；在线服务请用 service.Recommender 的原子换入。
type StaticEngineProvider struct {
	E *engine.Engine
}

func (p *StaticEngineProvider) Engine() *engine.Engine { return p.E }
