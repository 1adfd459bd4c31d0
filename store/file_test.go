package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileCatalog_TermCounts(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "Lost.txt", "island:42\nplane:10\ncrash:3\n")
	writeCatalogFile(t, dir, "Breaking Bad.txt", "meth:50\nchemistry:7\n")
	writeCatalogFile(t, dir, "notes.md", "ignored\n")

	c := NewFileCatalog(dir)
	counts, err := c.TermCounts(context.Background())
	if err != nil {
		t.Fatalf("TermCounts() error = %v", err)
	}

	if len(counts) != 2 {
		t.Fatalf("got %d series, want 2 (non-txt files ignored)", len(counts))
	}
	if counts["Lost"]["island"] != 42 {
		t.Errorf("Lost/island = %v, want 42", counts["Lost"]["island"])
	}
	if counts["Breaking Bad"]["meth"] != 50 {
		t.Errorf("Breaking Bad/meth = %v, want 50", counts["Breaking Bad"]["meth"])
	}
}

func TestFileCatalog_MalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "Messy.txt",
		"island:42\n"+
			"\n"+ // 空行
			"noseparator\n"+ // 无冒号
			"word:notanumber\n"+ // 数值非法
			"zero:0\n"+ // 非正数
			"negative:-3\n"+
			"Island:8\n") // 归一化后与 island 合并

	c := NewFileCatalog(dir)
	counts, err := c.TermCounts(context.Background())
	if err != nil {
		t.Fatalf("TermCounts() error = %v", err)
	}

	got := counts["Messy"]
	if len(got) != 1 {
		t.Fatalf("got %d terms %v, want 1", len(got), got)
	}
	if got["island"] != 50 {
		t.Errorf("island = %v, want 50 (42 + 8 merged after normalization)", got["island"])
	}
}

func TestFileCatalog_CurlyApostropheFolded(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "Quotes.txt", "don’t:5\ndon't:3\n")

	c := NewFileCatalog(dir)
	counts, err := c.TermCounts(context.Background())
	if err != nil {
		t.Fatalf("TermCounts() error = %v", err)
	}
	if got := counts["Quotes"]["don't"]; got != 8 {
		t.Errorf("don't = %v, want 8 (curly and straight apostrophes merged)", got)
	}
}

func TestFileCatalog_MissingDir(t *testing.T) {
	c := NewFileCatalog(filepath.Join(t.TempDir(), "nope"))
	if _, err := c.TermCounts(context.Background()); err == nil {
		t.Error("TermCounts() on missing dir should fail")
	}
}
