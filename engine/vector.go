package engine

import (
	"math"
	"sort"
)

// Vector 是词表空间上的稀疏向量：索引升序的 (index, value) 对 + 维度。
// 引擎的剧集行、查询向量、画像向量都用这一种表示；点积与归一化手写实现，
// 不依赖任何数值库。
type Vector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// newVector 从 列索引 -> 权重 的 map 构建稀疏向量（索引排序以支持归并点积）。
func newVector(weights map[int]float64, dim int) *Vector {
	v := &Vector{Dim: dim}
	if len(weights) == 0 {
		return v
	}
	v.Indices = make([]int, 0, len(weights))
	for idx := range weights {
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)
	v.Values = make([]float64, len(v.Indices))
	for i, idx := range v.Indices {
		v.Values[i] = weights[idx]
	}
	return v
}

// Nnz 返回非零元素个数。
func (v *Vector) Nnz() int { return len(v.Indices) }

// IsZero 判断是否为零向量（没有任何非零元素）。
func (v *Vector) IsZero() bool { return len(v.Indices) == 0 }

// Dot 计算与另一个稀疏向量的点积（双指针归并，要求两边索引均升序）。
// 两个 L2 归一化向量的点积即余弦相似度。
func (v *Vector) Dot(other *Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			sum += v.Values[i] * other.Values[j]
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm 返回欧几里得范数。
func (v *Vector) Norm() float64 {
	var ss float64
	for _, val := range v.Values {
		ss += val * val
	}
	return math.Sqrt(ss)
}

// normalize 原地 L2 归一化；零向量保持为零（不报错、不产生 NaN）。
func (v *Vector) normalize() *Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	for i := range v.Values {
		v.Values[i] /= n
	}
	return v
}
