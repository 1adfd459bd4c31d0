// Package seriekit 是一个剧集搜索与推荐工具包（Series Recommender Kit）。
//
// 设计要点：
// - Engine-first: 核心是一个 TF-IDF 打分引擎（固定词表 + idf 权重 + L2 归一化的剧集矩阵），
//   构建后不可变，可被任意并发请求无锁读取；数据变化时整体重建并原子换入新实例
// - Pipeline 可组合: 引擎之外的业务逻辑通过 Node 串联（Recall → Filter → ReRank）
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 策略驱动
package seriekit

import "github.com/telerec/seriekit/pipeline"

// 轻量 facade：便于用户直接 import "seriekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
