package engine

import "sort"

// DefaultTopN 是未指定 top_n 时的默认返回条数；MaxTopN 是服务层的封顶值。
const (
	DefaultTopN = 10
	MaxTopN     = 15
)

// SearchOptions 控制一次打分请求。
// 三个信号权重默认都是 1.0（DefaultSearchOptions）；调用方可整体覆盖。
type SearchOptions struct {
	// TopN 结果上限：0 返回空列表，负数按 0 处理。
	TopN int

	// Alpha/Beta/Gamma 分别是 查询 / 吸引画像 / 排斥画像 的信号权重。
	// 排斥信号以负贡献计入（Gamma 越大，越像不喜欢的剧集越排后）。
	Alpha float64
	Beta  float64
	Gamma float64

	// Exclude 是要从结果中剔除的剧集名集合（例如已评分的剧集）。
	// 索引外的名字静默忽略。
	Exclude map[string]struct{}
}

// DefaultSearchOptions 返回默认选项：TopN=10，三个权重均为 1.0。
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{TopN: DefaultTopN, Alpha: 1.0, Beta: 1.0, Gamma: 1.0}
}

// Result 是一条打分结果：剧集名 + 归一化到 [0,1] 的分数。
type Result struct {
	Name  string
	Score float64
}

// Search 把可选的查询向量与画像合成一份排序结果。
//
// 算法：
//  1. 退化引擎（零行或零列）直接返回空
//  2. 每个维度匹配的信号按权重累加 cos 相似：
//     score += alpha·dot(q,row) + beta·dot(att,row) - gamma·dot(rep,row)；
//     维度不匹配的信号（对旧索引构建的过期画像）整体丢弃
//  3. 所有原始分数全为 0 → 空结果（"没有任何信号"区别于"没有匹配"）
//  4. 对全量分数做 min-max 归一化到 [0,1]；分数全部相等时一律归 0
//     （避免除零，也避免在没有区分度时报告高置信的第一名）。注意这保留了
//     源实现的行为：只有一个强匹配时它拿到 1.0，而不是被单独压平
//  5. 归一化之后剔除 Exclude 中的名字与分数 ≤ 0 的行
//  6. 按分数降序稳定排序（平分保持行序），截断到 max(0, TopN)
func (e *Engine) Search(query *Vector, profile Profile, opts SearchOptions) []Result {
	if e.Empty() {
		return nil
	}

	type signal struct {
		vec    *Vector
		weight float64
	}
	signals := make([]signal, 0, 3)
	if query != nil && query.Dim == len(e.terms) {
		signals = append(signals, signal{query, opts.Alpha})
	}
	if profile.Attraction != nil && profile.Attraction.Dim == len(e.terms) {
		signals = append(signals, signal{profile.Attraction, opts.Beta})
	}
	if profile.Repulsion != nil && profile.Repulsion.Dim == len(e.terms) {
		signals = append(signals, signal{profile.Repulsion, -opts.Gamma})
	}
	if len(signals) == 0 {
		return nil
	}

	scores := make([]float64, len(e.rows))
	for _, s := range signals {
		for i, row := range e.rows {
			scores[i] += s.weight * s.vec.Dot(row)
		}
	}

	any := false
	for _, s := range scores {
		if s != 0 {
			any = true
			break
		}
	}
	if !any {
		return nil
	}

	// min-max 归一化（见步骤 4）
	minS, maxS := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < minS {
			minS = s
		}
		if s > maxS {
			maxS = s
		}
	}
	if maxS == minS {
		return nil // 全部归 0，随后全部被 ≤0 过滤
	}

	out := make([]Result, 0, len(scores))
	for i, s := range scores {
		name := e.names[i]
		if _, excluded := opts.Exclude[name]; excluded {
			continue
		}
		norm := (s - minS) / (maxS - minS)
		if norm <= 0 {
			continue
		}
		out = append(out, Result{Name: name, Score: norm})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	topN := opts.TopN
	if topN < 0 {
		topN = 0
	}
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
