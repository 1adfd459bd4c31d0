package store

import (
	"context"
	"testing"

	"github.com/telerec/seriekit/core"
)

func TestKVRatingStore(t *testing.T) {
	ms := NewMemoryStore()
	defer ms.Close()
	s := NewKVRatingStore(ms)
	ctx := context.Background()

	// 空用户返回空评分
	ratings, err := s.UserRatings(ctx, "u1")
	if err != nil {
		t.Fatalf("UserRatings() error = %v", err)
	}
	if len(ratings) != 0 {
		t.Errorf("UserRatings(new user) = %v, want empty", ratings)
	}

	if err := s.SaveRating(ctx, "u1", core.Rating{SeriesName: "Lost", Score: 5}); err != nil {
		t.Fatalf("SaveRating() error = %v", err)
	}
	if err := s.SaveRating(ctx, "u1", core.Rating{SeriesName: "Breaking Bad", Score: 2}); err != nil {
		t.Fatalf("SaveRating() error = %v", err)
	}

	ratings, err = s.UserRatings(ctx, "u1")
	if err != nil {
		t.Fatalf("UserRatings() error = %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("UserRatings() returned %d ratings, want 2", len(ratings))
	}
	// 按剧名排序
	if ratings[0].SeriesName != "Breaking Bad" || ratings[0].Score != 2 {
		t.Errorf("ratings[0] = %+v, want Breaking Bad/2", ratings[0])
	}
	if ratings[1].SeriesName != "Lost" || ratings[1].Score != 5 {
		t.Errorf("ratings[1] = %+v, want Lost/5", ratings[1])
	}

	// 覆盖写
	if err := s.SaveRating(ctx, "u1", core.Rating{SeriesName: "Lost", Score: 1}); err != nil {
		t.Fatalf("SaveRating(overwrite) error = %v", err)
	}
	ratings, _ = s.UserRatings(ctx, "u1")
	for _, r := range ratings {
		if r.SeriesName == "Lost" && r.Score != 1 {
			t.Errorf("Lost score = %v after overwrite, want 1", r.Score)
		}
	}

	// 其他用户互不影响
	other, _ := s.UserRatings(ctx, "u2")
	if len(other) != 0 {
		t.Errorf("UserRatings(u2) = %v, want empty", other)
	}

	if err := s.DeleteRating(ctx, "u1", "Lost"); err != nil {
		t.Fatalf("DeleteRating() error = %v", err)
	}
	ratings, _ = s.UserRatings(ctx, "u1")
	if len(ratings) != 1 || ratings[0].SeriesName != "Breaking Bad" {
		t.Errorf("after delete ratings = %v, want only Breaking Bad", ratings)
	}

	// 删除不存在的评分静默成功
	if err := s.DeleteRating(ctx, "u1", "Nonexistent"); err != nil {
		t.Errorf("DeleteRating(missing) error = %v, want nil", err)
	}
}
