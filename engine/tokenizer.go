package engine

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern 匹配 Unicode 字母的最长连续段，允许单个内部撇号连接
// （"l'été" 是一个词，不拆成两个）。数字与下划线不参与成词。
var tokenPattern = regexp.MustCompile(`\pL+(?:'\pL+)*`)

// NormalizeText 把文本规整为可比较的形式：Unicode NFC + 小写。
// 变换是确定且全定义的：任何输入都有唯一输出，从不报错。
// 构建词频与查询向量化两侧必须使用同一套规整，保证词能对上。
func NormalizeText(text string) string {
	return strings.ToLower(norm.NFC.String(text))
}

// Tokenize 把原始文本切成规整后的词序列。空输入返回空序列，不是错误。
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	matches := tokenPattern.FindAllString(norm.NFC.String(text), -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]string, len(matches))
	for i, m := range matches {
		tokens[i] = strings.ToLower(m)
	}
	return tokens
}

// termCounts 统计文本的词频（查询向量化的第一步）。
func termCounts(text string) map[string]float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}
