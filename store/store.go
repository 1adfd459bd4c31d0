package store

import "github.com/telerec/seriekit/core"

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store / core.KeyValueStore / core.CatalogStore / core.RatingStore 接口。
//
// 示例：
//   var kv core.KeyValueStore = NewMemoryStore()
//   var catalog core.CatalogStore = NewFileCatalog("data_word_frequency")

// ErrNotFound 是 key/字段不存在时返回的错误，等价于 core.ErrStoreNotFound。
var ErrNotFound = core.ErrStoreNotFound
