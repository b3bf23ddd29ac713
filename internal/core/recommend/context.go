package recommend

import (
	"fmt"
	"strings"
)

// 聊天情境使用的推薦參數
const (
	contextLimit         = 5
	contextMinMatchScore = 0.3
	contextMaxMissing    = 3
)

// ContextOptions 聊天情境的推薦參數
func ContextOptions() Options {
	return Options{
		Limit:              contextLimit,
		MinMatchScore:      contextMinMatchScore,
		IncludeNutrition:   true,
		IncludePreferences: true,
	}
}

// FormatContext 將推薦結果轉成聊天助理提示中使用的文字區塊
func FormatContext(recs []Recommendation) string {
	if len(recs) == 0 {
		return "No recipe recommendations are available for the current pantry."
	}

	var b strings.Builder
	b.WriteString("Recommended recipes based on the user's pantry:\n")
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s (score: %.2f)\n", i+1, rec.RecipeName, rec.FinalScore)
		fmt.Fprintf(&b, "   - Stock compatibility: %.0f%% (%d/%d ingredients)\n",
			rec.MatchScore*100, rec.AvailableIngredients, rec.TotalIngredients)

		if rec.CanCook {
			b.WriteString("   - Can be cooked now\n")
		} else if len(rec.MissingIngredients) > 0 {
			names := make([]string, 0, contextMaxMissing)
			for _, mi := range rec.MissingIngredients {
				if len(names) == contextMaxMissing {
					break
				}
				names = append(names, mi.Name)
			}
			line := strings.Join(names, ", ")
			if extra := len(rec.MissingIngredients) - len(names); extra > 0 {
				line += fmt.Sprintf(" (+%d more)", extra)
			}
			fmt.Fprintf(&b, "   - Missing: %s\n", line)
		}

		if rec.Calories != nil {
			fmt.Fprintf(&b, "   - Calories: %.0f kcal per serving\n", *rec.Calories)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
