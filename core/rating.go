package core

import "math"

// Rating 是一条用户评分：剧集名 + 1~5 的整数分。
// 引擎不落盘评分，只在单次请求内消费；Score 以 float64 传入（上游可能来自
// JSON/DB 的数字类型），在映射权重前四舍五入到最近的整数。
type Rating struct {
	SeriesName string
	Score      float64
}

// 评分到权重的映射：
//
//	1/5 很差  -> -2.0（排斥）
//	2/5 差    -> -1.0（排斥）
//	3/5 中性  ->  0.0（不计入任何画像）
//	4/5 好    -> +1.0（吸引）
//	5/5 很好  -> +2.0（吸引）
//
// 1~5 之外的值一律视为中性。
var ratingWeights = map[int]float64{
	1: -2.0,
	2: -1.0,
	3: 0.0,
	4: 1.0,
	5: 2.0,
}

// Weight 返回评分的带符号权重：正为吸引、负为排斥、0 为中性（被忽略）。
func (r Rating) Weight() float64 {
	v := r.Score
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return ratingWeights[int(math.Round(v))]
}
