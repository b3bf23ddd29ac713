package recommend

import (
	"math"
	"sort"

	"pantry-recommender/internal/core/matching"
	"pantry-recommender/internal/core/recipe"
	"pantry-recommender/internal/pkg/common"
)

// Ranker 對食譜目錄評分並排序，不保存狀態，可並行使用
type Ranker struct {
	evaluator *matching.Evaluator
	filter    *Filter
}

// NewRanker 創建排名器；參數為 nil 時使用內建詞表
func NewRanker(evaluator *matching.Evaluator, filter *Filter) *Ranker {
	if evaluator == nil {
		evaluator = matching.NewEvaluator(nil)
	}
	if filter == nil {
		filter = defaultFilter
	}
	return &Ranker{evaluator: evaluator, filter: filter}
}

// NewRankerFromVocabulary 由詞表建立評估器與過濾器
func NewRankerFromVocabulary(vocab matching.Vocabulary) *Ranker {
	return NewRanker(matching.NewEvaluator(matching.NewUnits(vocab.UnitGroups)), NewFilter(vocab))
}

// Evaluator 回傳排名器使用的可用性評估器
func (r *Ranker) Evaluator() *matching.Evaluator {
	return r.evaluator
}

// Rank 對快照中每個啟用的食譜評分，依 FinalScore 穩定降冪排序。
// 配對分數低於 MinMatchScore 或被偏好硬性排除的食譜不會出現在結果中，也不計入 TotalFound。
// 偏好調整直接加到配對分數上，不做下限截斷，因此 FinalScore 可能為負。
// 結果最多 Limit 筆；TotalFound 為截斷前的數量。
func (r *Ranker) Rank(snap recipe.Snapshot, opts Options) (Result, error) {
	if opts.Limit < 1 {
		return Result{}, common.NewValidationError("limit must be positive")
	}
	if math.IsNaN(opts.MinMatchScore) || opts.MinMatchScore < 0 || opts.MinMatchScore > 1 {
		return Result{}, common.NewValidationError("min_match_score must be between 0 and 1")
	}
	if err := snap.Validate(); err != nil {
		return Result{}, err
	}

	recs := make([]Recommendation, 0)
	for i := range snap.Catalog {
		rec := &snap.Catalog[i]
		if !rec.IsActive {
			continue
		}

		match := r.evaluator.Evaluate(rec, snap.Pantry)
		if match.MatchScore < opts.MinMatchScore {
			continue
		}

		base := match.MatchScore
		var filtered FilterResult
		if opts.IncludePreferences {
			filtered = r.filter.Apply(rec, snap.Preferences)
			if !filtered.Passed {
				continue
			}
			base += filtered.ScoreAdjustment
		}

		nutrition := NeutralNutrition()
		if opts.IncludeNutrition {
			nutrition = ScoreNutrition(rec, snap.Preferences)
		}

		recs = append(recs, Recommendation{
			RecipeID:             rec.ID,
			RecipeName:           rec.Name,
			Description:          rec.Description,
			TotalTime:            rec.Minutes(),
			Difficulty:           rec.Difficulty,
			Servings:             rec.Servings,
			ImageURL:             rec.ImageURL,
			FinalScore:           base*MatchWeight + nutrition.Score*NutritionWeight,
			MatchScore:           match.MatchScore,
			AdjustedScore:        base,
			PreferenceAdjustment: filtered.ScoreAdjustment,
			PreferenceReasons:    filtered.Reasons,
			NutritionScore:       nutrition.Score,
			CanCook:              match.CanCook,
			AvailableIngredients: match.AvailableCount,
			TotalIngredients:     match.TotalRequired,
			MissingIngredients:   match.MissingIngredients,
			PartialMatches:       match.PartialMatches,
			Calories:             nutrition.Calories,
			Proteins:             nutrition.Proteins,
			Carbs:                nutrition.Carbs,
			Fats:                 nutrition.Fats,
			GoalsMet:             nutrition.GoalsMet,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].FinalScore > recs[j].FinalScore
	})

	total := len(recs)
	if len(recs) > opts.Limit {
		recs = recs[:opts.Limit]
	}

	return Result{
		Recommendations: recs,
		TotalFound:      total,
		FiltersApplied:  opts,
	}, nil
}
