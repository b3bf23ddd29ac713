package matching

import "strings"

const (
	// MatchThreshold 詞彙相似度需超過此值才算匹配
	MatchThreshold = 0.7

	exactSimilarity     = 1.0
	substringSimilarity = 0.8
)

// Normalize 食材名稱正規化：小寫並去除前後空白
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Similarity 計算兩個食材名稱的詞彙相似度，範圍 [0,1]。
// 完全相同為 1.0，互相包含為 0.8，否則為共同單字數除以較多的單字數。
// 空名稱永遠回傳 0，兩個空名稱也不視為相同，因此空名稱永遠不匹配。
func Similarity(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return exactSimilarity
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringSimilarity
	}

	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	common := 0
	for w := range wordsA {
		if wordsB[w] {
			common++
		}
	}
	return float64(common) / float64(max(len(wordsA), len(wordsB)))
}

// Matches 完全相同、互相包含，或相似度超過門檻時視為匹配；任一方為空名稱時不匹配
func Matches(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return false
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return Similarity(a, b) > MatchThreshold
}

func wordSet(s string) map[string]bool {
	words := strings.Fields(s)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
