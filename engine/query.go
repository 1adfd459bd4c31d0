package engine

// VectorizeQuery 把自由文本查询映射进引擎的词表空间：
// 分词计频 -> 词表外的词静默忽略（贡献为零，不是错误）-> 乘固定 idf ->
// L2 归一化。词表与 idf 只复用、从不重拟合，保证查询向量与剧集行可比。
//
// 空查询或全 OOV 查询得到零向量；词表本身为空时短路返回零维向量。
func (e *Engine) VectorizeQuery(query string) *Vector {
	if len(e.terms) == 0 {
		return &Vector{Dim: 0}
	}
	counts := termCounts(query)
	if len(counts) == 0 {
		return &Vector{Dim: len(e.terms)}
	}
	weights := make(map[int]float64, len(counts))
	for t, c := range counts {
		j, ok := e.vocab[t]
		if !ok {
			continue
		}
		weights[j] = c * e.idf[j]
	}
	return newVector(weights, len(e.terms)).normalize()
}
