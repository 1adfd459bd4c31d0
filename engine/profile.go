package engine

import "github.com/telerec/seriekit/core"

// Profile 是从评分历史构建的用户口味画像：
//   - Attraction：喜欢的剧集（4/5 分）的加权和，L2 归一化
//   - Repulsion：不喜欢的剧集（1/2 分）的加权和，L2 归一化
//
// 任一侧没有符合条件的评分时为 nil（"没有信号"），区别于零向量
// （"信号相互抵消"），打分器据此决定是否计入该信号。
type Profile struct {
	Attraction *Vector
	Repulsion  *Vector
}

// Empty 判断画像是否两侧都缺席。
func (p Profile) Empty() bool { return p.Attraction == nil && p.Repulsion == nil }

// ProfileFromRatings 按请求构建画像（不缓存、不持久化）。
//
// 评分 -> 权重见 core.Rating.Weight：1→排斥×2、2→排斥×1、3→中性（忽略）、
// 4→吸引×1、5→吸引×2。索引外的剧集名静默跳过。每一侧是对应剧集行向量的
// 幅值加权和，再做 L2 归一化。
func (e *Engine) ProfileFromRatings(ratings []core.Rating) Profile {
	if e.Empty() || len(ratings) == 0 {
		return Profile{}
	}

	dim := len(e.terms)
	att := make(map[int]float64)
	rep := make(map[int]float64)
	attCount, repCount := 0, 0

	for _, r := range ratings {
		row, ok := e.nameToRow[r.SeriesName]
		if !ok {
			continue
		}
		w := r.Weight()
		if w == 0 {
			continue
		}
		bucket := att
		if w < 0 {
			bucket = rep
			w = -w
			repCount++
		} else {
			attCount++
		}
		vec := e.rows[row]
		for i, idx := range vec.Indices {
			bucket[idx] += w * vec.Values[i]
		}
	}

	var p Profile
	if attCount > 0 {
		p.Attraction = newVector(att, dim).normalize()
	}
	if repCount > 0 {
		p.Repulsion = newVector(rep, dim).normalize()
	}
	return p
}
