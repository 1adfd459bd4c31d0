package store

import (
	"context"
	"sort"
	"strconv"

	"github.com/telerec/seriekit/core"
)

// KVRatingStore 基于 KeyValueStore 的 Hash 实现 core.RatingStore。
// 每个用户一个 Hash：key 为 "ratings:<userID>"，field 为剧名，value 为分数。
// 配合 MemoryStore 用于测试，配合 RedisStore 用于多实例部署下的共享评分。
type KVRatingStore struct {
	KV core.KeyValueStore

	// Prefix 是 Hash key 前缀，空时用 "ratings"。
	Prefix string
}

func NewKVRatingStore(kv core.KeyValueStore) *KVRatingStore {
	return &KVRatingStore{KV: kv}
}

func (s *KVRatingStore) key(userID string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "ratings"
	}
	return prefix + ":" + userID
}

func (s *KVRatingStore) UserRatings(ctx context.Context, userID string) ([]core.Rating, error) {
	fields, err := s.KV.HGetAll(ctx, s.key(userID))
	if err != nil {
		return nil, err
	}
	out := make([]core.Rating, 0, len(fields))
	for name, raw := range fields {
		score, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			continue // 脏数据直接跳过
		}
		out = append(out, core.Rating{SeriesName: name, Score: score})
	}
	// Hash 无序，按剧名排序保证可复现
	sort.Slice(out, func(i, j int) bool { return out[i].SeriesName < out[j].SeriesName })
	return out, nil
}

func (s *KVRatingStore) SaveRating(ctx context.Context, userID string, rating core.Rating) error {
	value := strconv.FormatFloat(rating.Score, 'f', -1, 64)
	return s.KV.HSet(ctx, s.key(userID), rating.SeriesName, []byte(value))
}

func (s *KVRatingStore) DeleteRating(ctx context.Context, userID, seriesName string) error {
	return s.KV.HDel(ctx, s.key(userID), seriesName)
}

var _ core.RatingStore = (*KVRatingStore)(nil)
