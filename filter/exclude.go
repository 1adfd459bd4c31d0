package filter

import (
	"context"
	"encoding/json"

	"github.com/telerec/seriekit/core"
)

// ExcludeFilter 是剧名排除过滤器：下架剧、版权剧、用户拉黑的剧都从结果里剔除。
// 支持两种数据源，命中任意一个即过滤：
//  1. Names：内存中的排除列表（进程级配置）
//  2. Store + Key：存储中的 JSON 数组；KeyPrefix 非空时再叠加按用户的
//     个人拉黑列表（key 为 {KeyPrefix}:{UserID}）
type ExcludeFilter struct {
	Names []string

	// Store 用于从存储中读取排除列表（可选）
	Store ExcludeStore

	// Key 是 Store 中的全局排除列表 key（可选）
	Key string

	// KeyPrefix 是按用户拉黑列表的 key 前缀（可选）
	KeyPrefix string
}

// ExcludeStore 是排除列表存储接口。
type ExcludeStore interface {
	// GetExcluded 获取排除的剧名列表
	GetExcluded(ctx context.Context, key string) ([]string, error)
}

// NewExcludeFilter 创建一个剧名排除过滤器。
func NewExcludeFilter(names []string, storeAdapter *StoreAdapter, key string) *ExcludeFilter {
	var store ExcludeStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &ExcludeFilter{
		Names: names,
		Store: store,
		Key:   key,
	}
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

func (f *ExcludeFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	// 从内存列表检查
	for _, name := range f.Names {
		if item.Name == name {
			return true, nil
		}
	}

	if f.Store == nil {
		return false, nil
	}

	// 全局排除列表
	if f.Key != "" {
		excluded, err := f.Store.GetExcluded(ctx, f.Key)
		if err == nil {
			for _, name := range excluded {
				if item.Name == name {
					return true, nil
				}
			}
		}
	}

	// 按用户拉黑列表
	if f.KeyPrefix != "" && rctx != nil && rctx.UserID != "" {
		blocked, err := f.Store.GetExcluded(ctx, f.KeyPrefix+":"+rctx.UserID)
		if err == nil {
			for _, name := range blocked {
				if item.Name == name {
					return true, nil
				}
			}
		}
	}

	return false, nil
}

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 排除列表以 JSON 字符串数组存储。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetExcluded 从 Store 读取排除列表。
func (a *StoreAdapter) GetExcluded(ctx context.Context, key string) ([]string, error) {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}

	return names, nil
}

var _ Filter = (*ExcludeFilter)(nil)
var _ ExcludeStore = (*StoreAdapter)(nil)
