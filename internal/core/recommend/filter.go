package recommend

import (
	"fmt"
	"math"
	"strings"

	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/core/recipe"
)

// 偏好扣分
const (
	DislikePenalty = 0.3
	TimePenalty    = 0.2
	ExcludedScore  = -1.0
)

// FilterResult 偏好過濾結果
type FilterResult struct {
	Passed          bool     `json:"passed"`
	Reasons         []string `json:"reasons"`
	ScoreAdjustment float64  `json:"score_adjustment"`
}

// Filter 依使用者偏好排除或扣分，詞表建立後不再變動
type Filter struct {
	meatTerms        []string
	animalTerms      []string
	vegetarianLabels map[string]bool
	veganLabels      map[string]bool
}

// NewFilter 以詞表建立過濾器
func NewFilter(vocab matching.Vocabulary) *Filter {
	return &Filter{
		meatTerms:        normalizeTerms(vocab.MeatTerms),
		animalTerms:      normalizeTerms(vocab.AnimalProductTerms),
		vegetarianLabels: termSet(vocab.VegetarianLabels),
		veganLabels:      termSet(vocab.VeganLabels),
	}
}

var defaultFilter = NewFilter(matching.DefaultVocabulary())

// ApplyPreferences 使用內建詞表過濾
func ApplyPreferences(r *recipe.Recipe, prefs *recipe.Preferences) FilterResult {
	return defaultFilter.Apply(r, prefs)
}

// Apply 檢查食譜是否符合偏好。
// 飲食限制與過敏為硬性排除，立即回傳；不喜歡的食材與時間上限為扣分。
// 檢查涵蓋所有食材，包含選用食材。
func (f *Filter) Apply(r *recipe.Recipe, prefs *recipe.Preferences) FilterResult {
	result := FilterResult{Passed: true, Reasons: make([]string, 0)}
	if prefs == nil {
		return result
	}

	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if n := matching.Normalize(ing.Name); n != "" {
			names = append(names, n)
		}
	}

	vegetarian, vegan := false, false
	for _, restriction := range prefs.DietaryRestrictions {
		label := matching.Normalize(restriction)
		vegetarian = vegetarian || f.vegetarianLabels[label]
		vegan = vegan || f.veganLabels[label]
	}

	if vegetarian {
		if name, term, ok := findTerm(names, f.meatTerms); ok {
			return excluded(fmt.Sprintf("contains meat (%s): %s", term, name))
		}
	}
	if vegan {
		if name, term, ok := findTerm(names, f.animalTerms); ok {
			return excluded(fmt.Sprintf("contains animal product (%s): %s", term, name))
		}
	}

	for _, allergy := range prefs.Allergies {
		a := matching.Normalize(allergy)
		if a == "" {
			continue
		}
		for _, name := range names {
			if strings.Contains(name, a) || strings.Contains(a, name) {
				return excluded(fmt.Sprintf("contains allergen %s: %s", a, name))
			}
		}
	}

	disliked := false
	for _, dislike := range prefs.DislikedIngredients {
		d := matching.Normalize(dislike)
		if d == "" {
			continue
		}
		for _, name := range names {
			if strings.Contains(name, d) {
				result.Reasons = append(result.Reasons, fmt.Sprintf("contains disliked ingredient: %s", d))
				disliked = true
				break
			}
		}
	}
	if disliked {
		result.ScoreAdjustment -= DislikePenalty
	}

	if exceeds(r.PreparationTime, prefs.MaxPrepTime) {
		result.ScoreAdjustment -= TimePenalty
		result.Reasons = append(result.Reasons, fmt.Sprintf("preparation time %d min exceeds %d min", r.PreparationTime, *prefs.MaxPrepTime))
	}
	if exceeds(r.CookingTime, prefs.MaxCookingTime) {
		result.ScoreAdjustment -= TimePenalty
		result.Reasons = append(result.Reasons, fmt.Sprintf("cooking time %d min exceeds %d min", r.CookingTime, *prefs.MaxCookingTime))
	}

	result.ScoreAdjustment = math.Max(ExcludedScore, result.ScoreAdjustment)
	return result
}

// exceeds 只有食譜時間與上限都大於 0 時才比較
func exceeds(minutes int, limit *int) bool {
	return limit != nil && *limit > 0 && minutes > 0 && minutes > *limit
}

func excluded(reason string) FilterResult {
	return FilterResult{Passed: false, Reasons: []string{reason}, ScoreAdjustment: ExcludedScore}
}

func findTerm(names, terms []string) (string, string, bool) {
	for _, name := range names {
		for _, term := range terms {
			if strings.Contains(name, term) {
				return name, term, true
			}
		}
	}
	return "", "", false
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := matching.Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func termSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range normalizeTerms(terms) {
		set[t] = true
	}
	return set
}
