package engine

import (
	"math"
	"testing"

	"github.com/telerec/seriekit/core"
)

func TestProfileFromRatings(t *testing.T) {
	e := NewEngine(testCounts())

	tests := []struct {
		name          string
		ratings       []core.Rating
		wantAttract   bool
		wantRepulse   bool
	}{
		{
			name:        "five maps to attraction",
			ratings:     []core.Rating{{SeriesName: "Lost", Score: 5}},
			wantAttract: true,
		},
		{
			name:        "one maps to repulsion",
			ratings:     []core.Rating{{SeriesName: "Lost", Score: 1}},
			wantRepulse: true,
		},
		{
			name:    "neutral three feeds neither side",
			ratings: []core.Rating{{SeriesName: "Lost", Score: 3}, {SeriesName: "Breaking Bad", Score: 3}},
		},
		{
			name:    "unknown series skipped silently",
			ratings: []core.Rating{{SeriesName: "Dexter", Score: 5}},
		},
		{
			name: "both buckets populated",
			ratings: []core.Rating{
				{SeriesName: "Lost", Score: 4},
				{SeriesName: "Breaking Bad", Score: 2},
			},
			wantAttract: true,
			wantRepulse: true,
		},
		{
			name:    "out of range score is neutral",
			ratings: []core.Rating{{SeriesName: "Lost", Score: 9}},
		},
		{
			name:    "no ratings",
			ratings: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := e.ProfileFromRatings(tt.ratings)
			if got := p.Attraction != nil; got != tt.wantAttract {
				t.Errorf("Attraction present = %v, want %v", got, tt.wantAttract)
			}
			if got := p.Repulsion != nil; got != tt.wantRepulse {
				t.Errorf("Repulsion present = %v, want %v", got, tt.wantRepulse)
			}
			for side, vec := range map[string]*Vector{"attraction": p.Attraction, "repulsion": p.Repulsion} {
				if vec == nil {
					continue
				}
				if n := vec.Norm(); math.Abs(n-1) > 1e-9 {
					t.Errorf("%s profile norm = %v, want 1", side, n)
				}
			}
		})
	}
}

// 分值决定幅度：5 分的剧集在画像里的权重是 4 分的两倍。
func TestProfileRatingMagnitude(t *testing.T) {
	e := NewEngine(testCounts())

	// 两个不相交的剧集：画像向量里两段的范数比 == 幅度比
	strong := e.ProfileFromRatings([]core.Rating{
		{SeriesName: "Lost", Score: 5},
		{SeriesName: "Breaking Bad", Score: 4},
	})
	if strong.Attraction == nil {
		t.Fatal("attraction profile missing")
	}

	lostRow := e.rows[e.nameToRow["Lost"]]
	bbRow := e.rows[e.nameToRow["Breaking Bad"]]
	simLost := strong.Attraction.Dot(lostRow)
	simBB := strong.Attraction.Dot(bbRow)
	if simLost <= simBB {
		t.Errorf("5-star series should dominate: sim(Lost)=%v sim(BB)=%v", simLost, simBB)
	}
	if ratio := simLost / simBB; math.Abs(ratio-2) > 1e-9 {
		t.Errorf("magnitude ratio = %v, want 2 (disjoint vocabularies)", ratio)
	}
}

// 对旧索引构建的画像在新索引上维度不匹配，会被打分器整体丢弃。
func TestStaleProfileDroppedOnRebuild(t *testing.T) {
	old := NewEngine(testCounts())
	stale := old.ProfileFromRatings([]core.Rating{{SeriesName: "Lost", Score: 5}})

	rebuilt := NewEngine(map[string]map[string]float64{
		"Lost":         {"plane": 3, "island": 2},
		"Breaking Bad": {"meth": 5},
	})
	if rebuilt.VocabSize() == old.VocabSize() {
		t.Fatal("test requires differing vocabulary sizes")
	}
	if got := rebuilt.Search(nil, stale, DefaultSearchOptions()); len(got) != 0 {
		t.Errorf("stale profile should be dropped, got %v", got)
	}
}
