package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/telerec/seriekit/core"
)

// SQLiteCatalog 是 SQLite 实现的剧集目录 + 用户评分存储。
// 纯 Go 驱动（modernc.org/sqlite），无 CGO，单文件部署。
//
// 表结构：
//   - series(id, name, synopsis, image_url)
//   - series_terms(serie_id, term, count)，(serie_id, term) 唯一
//   - ratings(user_id, serie_id, score)，(user_id, serie_id) 唯一
type SQLiteCatalog struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS series (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT NOT NULL UNIQUE,
	synopsis  TEXT,
	image_url TEXT
);
CREATE TABLE IF NOT EXISTS series_terms (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	serie_id INTEGER NOT NULL REFERENCES series(id),
	term     TEXT NOT NULL,
	count    REAL NOT NULL DEFAULT 0,
	UNIQUE(serie_id, term)
);
CREATE INDEX IF NOT EXISTS idx_series_terms_serie ON series_terms(serie_id);
CREATE TABLE IF NOT EXISTS ratings (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id  TEXT NOT NULL,
	serie_id INTEGER NOT NULL REFERENCES series(id),
	score    REAL NOT NULL,
	UNIQUE(user_id, serie_id)
);
CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id);
`

// NewSQLiteCatalog 打开（或创建）SQLite 目录库并初始化表结构。
func NewSQLiteCatalog(path string) (*SQLiteCatalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite 单写者，连接池收紧避免 database is locked
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteCatalog{db: db}, nil
}

func (s *SQLiteCatalog) Name() string { return "sqlite" }

func (s *SQLiteCatalog) Close() error { return s.db.Close() }

// TermCounts 加载全量词频快照。只返回有词频数据的剧集；
// 非正数/NaN/Inf 的 count 在此处过滤，引擎拿到的快照保证干净。
func (s *SQLiteCatalog) TermCounts(ctx context.Context) (map[string]map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, t.term, t.count
		FROM series_terms t
		JOIN series s ON s.id = t.serie_id`)
	if err != nil {
		return nil, fmt.Errorf("query term counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]float64)
	for rows.Next() {
		var name, term string
		var count float64
		if err := rows.Scan(&name, &term, &count); err != nil {
			return nil, fmt.Errorf("scan term counts: %w", err)
		}
		if count <= 0 || math.IsNaN(count) || math.IsInf(count, 0) {
			continue
		}
		if out[name] == nil {
			out[name] = make(map[string]float64)
		}
		out[name][term] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate term counts: %w", err)
	}
	return out, nil
}

// SeriesMeta 批量获取剧集元信息；未知名字直接缺席。
func (s *SQLiteCatalog) SeriesMeta(ctx context.Context, names []string) (map[string]core.SeriesMeta, error) {
	out := make(map[string]core.SeriesMeta, len(names))
	if len(names) == 0 {
		return out, nil
	}

	stmt, err := s.db.PrepareContext(ctx,
		`SELECT COALESCE(synopsis, ''), COALESCE(image_url, '') FROM series WHERE name = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare meta query: %w", err)
	}
	defer stmt.Close()

	for _, name := range names {
		var meta core.SeriesMeta
		err := stmt.QueryRowContext(ctx, name).Scan(&meta.Synopsis, &meta.ImageURL)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("query meta for %q: %w", name, err)
		}
		out[name] = meta
	}
	return out, nil
}

// UpsertSeries 新增或更新一个剧集及其元信息，返回剧集 id。
func (s *SQLiteCatalog) UpsertSeries(ctx context.Context, name string, meta core.SeriesMeta) (int64, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO series (name, synopsis, image_url) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			synopsis  = CASE WHEN excluded.synopsis  != '' THEN excluded.synopsis  ELSE series.synopsis  END,
			image_url = CASE WHEN excluded.image_url != '' THEN excluded.image_url ELSE series.image_url END`,
		name, meta.Synopsis, meta.ImageURL)
	if err != nil {
		return 0, fmt.Errorf("upsert series %q: %w", name, err)
	}
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM series WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup series %q: %w", name, err)
	}
	return id, nil
}

// ImportTermCounts 整体写入一个剧集的词频（覆盖旧数据）。
// 词频文件导入、离线重算都走这里，单事务保证快照一致。
func (s *SQLiteCatalog) ImportTermCounts(ctx context.Context, name string, counts map[string]float64) error {
	id, err := s.UpsertSeries(ctx, name, core.SeriesMeta{})
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM series_terms WHERE serie_id = ?`, id); err != nil {
		return fmt.Errorf("clear terms for %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO series_terms (serie_id, term, count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare term insert: %w", err)
	}
	defer stmt.Close()

	for term, count := range counts {
		if term == "" || count <= 0 || math.IsNaN(count) || math.IsInf(count, 0) {
			continue
		}
		if _, err := stmt.ExecContext(ctx, id, term, count); err != nil {
			return fmt.Errorf("insert term %q: %w", term, err)
		}
	}
	return tx.Commit()
}

// RatingStore 实现

func (s *SQLiteCatalog) UserRatings(ctx context.Context, userID string) ([]core.Rating, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, r.score
		FROM ratings r
		JOIN series s ON s.id = r.serie_id
		WHERE r.user_id = ?
		ORDER BY s.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var out []core.Rating
	for rows.Next() {
		var r core.Rating
		if err := rows.Scan(&r.SeriesName, &r.Score); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteCatalog) SaveRating(ctx context.Context, userID string, rating core.Rating) error {
	id, err := s.UpsertSeries(ctx, rating.SeriesName, core.SeriesMeta{})
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ratings (user_id, serie_id, score) VALUES (?, ?, ?)
		ON CONFLICT(user_id, serie_id) DO UPDATE SET score = excluded.score`,
		userID, id, rating.Score)
	if err != nil {
		return fmt.Errorf("save rating: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) DeleteRating(ctx context.Context, userID, seriesName string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM ratings
		WHERE user_id = ? AND serie_id IN (SELECT id FROM series WHERE name = ?)`,
		userID, seriesName)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	return nil
}

var _ core.CatalogStore = (*SQLiteCatalog)(nil)
var _ core.RatingStore = (*SQLiteCatalog)(nil)
