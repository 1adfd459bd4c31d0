package engine

import (
	"math"
	"sort"
)

// Engine 持有一次构建的索引：固定词表、平滑 idf 权重、L2 归一化的剧集矩阵
// （行主序稀疏向量）以及 剧集名 <-> 行号 的映射。
//
// 生命周期：NewEngine 构建后不可变；快照变化时整体重建新实例。
// 所有字段只在构建期写入，之后任意并发读安全。
type Engine struct {
	names     []string
	nameToRow map[string]int

	vocab map[string]int // 词 -> 列索引
	terms []string       // 列索引 -> 词
	idf   []float64      // 列索引 -> 平滑 idf

	rows []*Vector // 每个剧集一行，tf×idf 后 L2 归一化
}

// NewEngine 从全量词频快照构建引擎。
//
// 构建步骤：
//  1. 剧集按名字排序固定行序（Go map 无序，排序保证重建可复现、平分时
//     的先后稳定）；词表按首次出现顺序固定列序
//  2. 每个剧集得到固定词表上的原始词频向量（非正 / 非有限的次数丢弃，
//     词做防御性规整，规整后重复的词合并计数）
//  3. 平滑 idf：idf(t) = ln((1+N)/(1+df(t))) + 1，N 为剧集数、df(t) 为
//     含词 t 的剧集数（平滑避免除零，且任何词 idf > 0）
//  4. 词频逐元素乘 idf 后对行 L2 归一化（范数为 0 的行保持全零）
//
// 空快照或空词表得到零行/零列的退化引擎，所有下游操作返回空结果而非报错。
func NewEngine(counts map[string]map[string]float64) *Engine {
	e := &Engine{
		nameToRow: make(map[string]int, len(counts)),
		vocab:     make(map[string]int),
	}

	e.names = make([]string, 0, len(counts))
	for name := range counts {
		e.names = append(e.names, name)
	}
	sort.Strings(e.names)

	// 规整后的每剧集词频 + 首次出现即分配列索引
	cleaned := make([]map[string]float64, len(e.names))
	for i, name := range e.names {
		e.nameToRow[name] = i
		row := make(map[string]float64, len(counts[name]))
		for term, c := range counts[name] {
			if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
				continue
			}
			t := NormalizeText(term)
			if t == "" {
				continue
			}
			row[t] += c
			if _, ok := e.vocab[t]; !ok {
				e.vocab[t] = len(e.terms)
				e.terms = append(e.terms, t)
			}
		}
		cleaned[i] = row
	}

	// 文档频率与平滑 idf
	df := make([]int, len(e.terms))
	for _, row := range cleaned {
		for t := range row {
			df[e.vocab[t]]++
		}
	}
	n := float64(len(e.names))
	e.idf = make([]float64, len(e.terms))
	for j := range e.idf {
		e.idf[j] = math.Log((1+n)/(1+float64(df[j]))) + 1
	}

	// tf×idf + 行 L2 归一化
	e.rows = make([]*Vector, len(e.names))
	dim := len(e.terms)
	for i, row := range cleaned {
		weights := make(map[int]float64, len(row))
		for t, c := range row {
			j := e.vocab[t]
			weights[j] = c * e.idf[j]
		}
		e.rows[i] = newVector(weights, dim).normalize()
	}

	return e
}

// Len 返回剧集（行）数。
func (e *Engine) Len() int { return len(e.rows) }

// VocabSize 返回词表（列）数。
func (e *Engine) VocabSize() int { return len(e.terms) }

// Empty 判断引擎是否退化（零行或零列）：此时所有打分操作直接返回空结果。
func (e *Engine) Empty() bool { return len(e.rows) == 0 || len(e.terms) == 0 }

// Names 返回行序下的全部剧集名（拷贝，调用方可随意改动）。
func (e *Engine) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// HasSeries 判断剧集是否在索引里。
func (e *Engine) HasSeries(name string) bool {
	_, ok := e.nameToRow[name]
	return ok
}
