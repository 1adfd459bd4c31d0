// Package builders 在 init 中注册所有内置 Node 的配置构建器。
// 配置驱动的入口处 import _ 本包即可启用：
//
//	import _ "github.com/telerec/seriekit/config/builders"
//
// 引擎、存储这类运行时依赖无法从 YAML 构建，需要在加载配置前
// 通过 SetEngineProvider / SetStore / SetRatingStore 注入。
package builders

import (
	"fmt"
	"sync"
	"time"

	"github.com/telerec/seriekit/config"
	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/filter"
	"github.com/telerec/seriekit/pipeline"
	"github.com/telerec/seriekit/pkg/conv"
	"github.com/telerec/seriekit/postprocess"
	"github.com/telerec/seriekit/recall"
	"github.com/telerec/seriekit/rerank"
)

func init() {
	config.Register("recall.engine", BuildEngineNode)
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.score_sort", BuildScoreSortNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("postprocess.meta", BuildMetaEnrichNode)
}

var (
	depsMu         sync.RWMutex
	engineProvider recall.EngineProvider
	kvStore        core.KeyValueStore
	ratingStore    core.RatingStore
	catalogStore   core.CatalogStore
)

// SetEngineProvider 注入打分引擎来源，recall.engine 节点依赖它。
func SetEngineProvider(p recall.EngineProvider) {
	depsMu.Lock()
	defer depsMu.Unlock()
	engineProvider = p
}

// SetStore 注入 KV 存储，recall.hot 与 filter 的 exclude 列表依赖它。
func SetStore(s core.KeyValueStore) {
	depsMu.Lock()
	defer depsMu.Unlock()
	kvStore = s
}

// SetRatingStore 注入评分存储，filter 的 rated 过滤器依赖它。
func SetRatingStore(s core.RatingStore) {
	depsMu.Lock()
	defer depsMu.Unlock()
	ratingStore = s
}

// SetCatalog 注入剧集目录，postprocess.meta 节点依赖它。
func SetCatalog(c core.CatalogStore) {
	depsMu.Lock()
	defer depsMu.Unlock()
	catalogStore = c
}

func BuildEngineNode(cfg map[string]interface{}) (pipeline.Node, error) {
	depsMu.RLock()
	provider := engineProvider
	depsMu.RUnlock()
	if provider == nil {
		return nil, fmt.Errorf("recall.engine requires an engine provider (call builders.SetEngineProvider first)")
	}
	return &recall.EngineRecall{
		Provider:     provider,
		TopN:         int(conv.ConfigGetInt64(cfg, "top_n", 0)),
		ExcludeRated: conv.ConfigGetBool(cfg, "exclude_rated", false),
	}, nil
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "engine":
			node, err := BuildEngineNode(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.EngineRecall))
		case "hot":
			node, err := BuildHotNode(sourceMap)
			if err != nil {
				return nil, err
			}
			sources = append(sources, node.(*recall.Hot))
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGetBool(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	names := conv.SliceAnyToString(cfg["names"])
	if names == nil {
		names = []string{}
	}
	depsMu.RLock()
	s := kvStore
	depsMu.RUnlock()

	hot := &recall.Hot{
		Names: names,
		Key:   conv.ConfigGet(cfg, "key", ""),
		Limit: int(conv.ConfigGetInt64(cfg, "limit", 0)),
	}
	if s != nil {
		hot.Store = s
	}
	return hot, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	depsMu.RLock()
	s := kvStore
	ratings := ratingStore
	depsMu.RUnlock()

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "exclude":
			names := conv.SliceAnyToString(filterMap["names"])
			if names == nil {
				names = []string{}
			}
			f := &filter.ExcludeFilter{
				Names:     names,
				Key:       conv.ConfigGet(filterMap, "key", ""),
				KeyPrefix: conv.ConfigGet(filterMap, "key_prefix", ""),
			}
			if s != nil {
				f.Store = filter.NewStoreAdapter(s)
			}
			filters = append(filters, f)
		case "rated":
			filters = append(filters, &filter.RatedFilter{Store: ratings})
		case "expr":
			filters = append(filters, &filter.ExprFilter{
				Expr: conv.ConfigGet(filterMap, "expr", ""),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildScoreSortNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.ScoreSortNode{}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildMetaEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	depsMu.RLock()
	c := catalogStore
	depsMu.RUnlock()
	if c == nil {
		return nil, fmt.Errorf("postprocess.meta requires a catalog (call builders.SetCatalog first)")
	}
	return &postprocess.MetaEnrichNode{Catalog: c}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	labelKey := conv.ConfigGet(cfg, "label_key", "genre")
	if labelKey == "" {
		labelKey = "genre"
	}
	return &rerank.Diversity{LabelKey: labelKey}, nil
}
