package store

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/telerec/seriekit/core"
	"github.com/telerec/seriekit/engine"
)

// FileCatalog 从词频目录加载剧集快照，用于离线/本地开发场景。
// 目录里每个剧集一个 "<剧名>.txt"，每行一条 "词:次数"。
// 字幕统计脚本产出的就是这个格式。
type FileCatalog struct {
	Dir string
}

func NewFileCatalog(dir string) *FileCatalog {
	return &FileCatalog{Dir: dir}
}

func (c *FileCatalog) Name() string { return "file" }

func (c *FileCatalog) TermCounts(ctx context.Context) (map[string]map[string]float64, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	// 文件名排序，保证加载顺序可复现
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make(map[string]map[string]float64, len(names))
	for _, filename := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		series := strings.TrimSuffix(filename, filepath.Ext(filename))
		counts, err := c.loadFile(filepath.Join(c.Dir, filename))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filename, err)
		}
		if len(counts) > 0 {
			out[series] = counts
		}
	}
	return out, nil
}

// loadFile 解析单个词频文件。非法行（无冒号、数值解析失败、非正数）跳过，
// 同一个词归一化后重复出现时次数累加。
func (c *FileCatalog) loadFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	counts := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}

		term := strings.TrimSpace(line[:idx])
		// 字幕里常见的弯引号统一折叠成直引号
		term = strings.ReplaceAll(term, "’", "'")
		term = strings.ReplaceAll(term, "‘", "'")
		term = engine.NormalizeText(term)
		if term == "" {
			continue
		}

		count, err := strconv.ParseFloat(strings.TrimSpace(line[idx+1:]), 64)
		if err != nil || count <= 0 {
			continue
		}
		counts[term] += count
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// SeriesMeta 文件目录不携带元信息，统一返回空。
func (c *FileCatalog) SeriesMeta(ctx context.Context, names []string) (map[string]core.SeriesMeta, error) {
	return map[string]core.SeriesMeta{}, nil
}

var _ core.CatalogStore = (*FileCatalog)(nil)
