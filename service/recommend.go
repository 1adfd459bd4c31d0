// Package service 组装完整的搜索/推荐链路：目录快照 -> 引擎重建 -> Pipeline 执行。
// Recommender 是面向 web/API 层的门面，持有当前生效的引擎快照。
package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/engine"
	"github.com/telerec/seriekit/pipeline"
	"github.com/telerec/seriekit/pkg/conv"
	"github.com/telerec/seriekit/postprocess"
	"github.com/telerec/seriekit/recall"
	"github.com/telerec/seriekit/rerank"
)

// Request 是一次搜索/推荐请求。
// Query 与评分画像可以单独或同时出现；两者都缺席时返回空结果。
type Request struct {
	UserID string
	Scene  string
	Query  string

	// Params 透传请求级参数：top_n、alpha、beta、gamma、exclude_seen 等。
	// 非法值回退默认值，永不报错。
	Params map[string]any

	// IncludeMeta 为 true 时结果附带剧集元信息（简介、封面）。
	IncludeMeta bool
}

// ResultItem 是返回给调用方的单条结果。
type ResultItem struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`

	// 元信息仅在 IncludeMeta 时填充
	Synopsis string `json:"synopsis,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Response 是一次请求的完整应答。
type Response struct {
	RequestID string       `json:"request_id"`
	Results   []ResultItem `json:"results"`
}

// Recommender 是推荐服务门面。
//
// 引擎快照用 atomic.Pointer 持有：Rebuild 整体换新实例，
// 进行中的请求继续读旧快照，不会看到半成品索引。
type Recommender struct {
	catalog core.CatalogStore
	ratings core.RatingStore

	eng atomic.Pointer[engine.Engine]

	// extraNodes 插在引擎召回之后、排序截断之前（过滤、多样性等）。
	extraNodes []pipeline.Node
}

// Option 配置 Recommender。
type Option func(*Recommender)

// WithRatingStore 启用评分画像：请求带 UserID 时自动拉取评分历史。
func WithRatingStore(s core.RatingStore) Option {
	return func(r *Recommender) { r.ratings = s }
}

// WithNodes 追加自定义 Pipeline 节点（过滤、多样性重排等）。
func WithNodes(nodes ...pipeline.Node) Option {
	return func(r *Recommender) { r.extraNodes = append(r.extraNodes, nodes...) }
}

// NewRecommender 创建服务实例并完成首次引擎构建。
func NewRecommender(ctx context.Context, catalog core.CatalogStore, opts ...Option) (*Recommender, error) {
	r := &Recommender{catalog: catalog}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.Rebuild(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Engine 返回当前生效的引擎快照，实现 recall.EngineProvider。
func (r *Recommender) Engine() *engine.Engine {
	return r.eng.Load()
}

var _ recall.EngineProvider = (*Recommender)(nil)

// Rebuild 重新加载目录快照并整体换入新引擎。
// 旧引擎构建的画像/查询向量在新引擎上维度不匹配，会被打分层静默丢弃。
func (r *Recommender) Rebuild(ctx context.Context) error {
	counts, err := r.catalog.TermCounts(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	r.eng.Store(engine.NewEngine(counts))
	return nil
}

// Recommend 执行一次搜索/推荐请求。
func (r *Recommender) Recommend(ctx context.Context, req Request) (*Response, error) {
	resp := &Response{
		RequestID: uuid.NewString(),
		Results:   []ResultItem{},
	}

	rctx := &core.RecommendContext{
		UserID: req.UserID,
		Scene:  req.Scene,
		Query:  req.Query,
		Params: req.Params,
	}

	// 评分画像：带 UserID 且配置了评分存储时自动装载
	if r.ratings != nil && req.UserID != "" {
		ratings, err := r.ratings.UserRatings(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("load ratings: %w", err)
		}
		rctx.Ratings = ratings
	}

	items, err := r.buildPipeline(rctx, req.IncludeMeta).Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		res := ResultItem{Name: it.Name, Score: it.Score}
		if s, ok := it.Meta["synopsis"].(string); ok {
			res.Synopsis = s
		}
		if u, ok := it.Meta["image_url"].(string); ok {
			res.ImageURL = u
		}
		resp.Results = append(resp.Results, res)
	}
	return resp, nil
}

// buildPipeline 组装单次请求的执行链：
// 引擎召回 -> 自定义节点 -> 分数排序 -> TopN 截断 -> 元信息补充。
// 末端截断保证自定义节点（例如把热门兜底并进来）不会把结果撑回超限，
// 元信息放在截断之后，只为最终返回的条目查库。
func (r *Recommender) buildPipeline(rctx *core.RecommendContext, includeMeta bool) *pipeline.Pipeline {
	nodes := make([]pipeline.Node, 0, len(r.extraNodes)+4)
	nodes = append(nodes, &recall.EngineRecall{Provider: r})
	nodes = append(nodes, r.extraNodes...)
	if len(r.extraNodes) > 0 {
		topN := int(conv.ConfigGetInt64(rctx.Params, "top_n", engine.DefaultTopN))
		if topN > engine.MaxTopN {
			topN = engine.MaxTopN
		}
		nodes = append(nodes, &rerank.ScoreSortNode{}, &rerank.TopNNode{N: topN})
	}
	if includeMeta {
		nodes = append(nodes, &postprocess.MetaEnrichNode{Catalog: r.catalog})
	}
	return &pipeline.Pipeline{Nodes: nodes}
}

// RateSeries 写入/覆盖一条评分。分数在 1..5 之外时按最近边界收敛。
func (r *Recommender) RateSeries(ctx context.Context, userID, seriesName string, score float64) error {
	if r.ratings == nil {
		return fmt.Errorf("rating store not configured")
	}
	if userID == "" || seriesName == "" {
		return fmt.Errorf("user id and series name are required")
	}
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return r.ratings.SaveRating(ctx, userID, core.Rating{SeriesName: seriesName, Score: score})
}

// DeleteRating 删除一条评分；不存在时静默成功。
func (r *Recommender) DeleteRating(ctx context.Context, userID, seriesName string) error {
	if r.ratings == nil {
		return fmt.Errorf("rating store not configured")
	}
	return r.ratings.DeleteRating(ctx, userID, seriesName)
}
