package recall

import (
	"context"
	"encoding/json"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/pipeline"
	"github.com/telerec/seriekit/pkg/utils"
)

// Hot 是热门剧集召回源，支持从 Store 读取热门剧名列表。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按热度排序）
// - 否则从普通 key 读取 JSON 数组
// - 如果 Store 为空，使用内存中的 Names 作为 fallback
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
// 典型用法是挂在 Fanout 里给冷启动用户（无查询、无评分）兜底。
type Hot struct {
	Store core.Store
	Key   string   // 存储 key，例如 "hot:series"
	Names []string // fallback 内存列表
	Limit int      // ZRange 读取条数上限，<=0 时取 100
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	var names []string

	limit := r.Limit
	if limit <= 0 {
		limit = 100
	}

	// 优先从 Store 读取（支持 ZRange 或普通 Get）
	if r.Store != nil && r.Key != "" {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			// 有序集合：分数即热度，ZRange 取前 limit 个
			members, err := kvStore.ZRange(ctx, r.Key, 0, int64(limit-1))
			if err == nil && len(members) > 0 {
				names = members
			}
		} else {
			// 普通 key：读取 JSON 数组
			data, err := r.Store.Get(ctx, r.Key)
			if err == nil {
				var parsed []string
				if json.Unmarshal(data, &parsed) == nil {
					names = parsed
				}
			}
		}
	}

	// Fallback：使用内存 Names
	if len(names) == 0 {
		names = r.Names
	}

	out := make([]*core.Item, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		it := core.NewItem(name)
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

var _ Source = (*Hot)(nil)
var _ pipeline.Node = (*Hot)(nil)
