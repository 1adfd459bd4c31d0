package core

import "context"

// SeriesMeta 是剧集的展示元信息，由下游（web 层）用来丰富结果。
// 引擎打分完全不依赖它。
type SeriesMeta struct {
	Synopsis string
	ImageURL string
}

// CatalogStore 是剧集目录的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 引擎消费的是完整物化的快照：{ 剧集名: { 词: 次数 } }
//   - 快照整体加载、整体重建，不支持增量更新
//
// 实现：
//   - store.SQLiteCatalog（series / series_terms 表）
//   - store.FileCatalog（data_word_frequency 目录，<series>.txt 词频文件）
type CatalogStore interface {
	// Name 返回目录后端名称（用于日志/监控）
	Name() string

	// TermCounts 加载全量词频快照。count 为有限非负数；非法条目由实现过滤。
	TermCounts(ctx context.Context) (map[string]map[string]float64, error)

	// SeriesMeta 批量获取剧集元信息；未知名字直接缺席，不报错。
	SeriesMeta(ctx context.Context, names []string) (map[string]SeriesMeta, error)
}

// RatingStore 是用户评分的领域接口。
type RatingStore interface {
	// UserRatings 获取某个用户的全部评分（顺序与写入顺序一致时最佳，但不强制）。
	UserRatings(ctx context.Context, userID string) ([]Rating, error)

	// SaveRating 新增或覆盖一条评分。
	SaveRating(ctx context.Context, userID string, rating Rating) error

	// DeleteRating 删除一条评分；不存在时静默成功。
	DeleteRating(ctx context.Context, userID, seriesName string) error
}

// 目录/评分错误定义（使用统一的 DomainError）
var (
	// ErrCatalogEmpty 表示快照里没有任何剧集或词表为空
	ErrCatalogEmpty = NewDomainError(ModuleCatalog, ErrorCodeNotFound, "catalog: empty snapshot")
)
