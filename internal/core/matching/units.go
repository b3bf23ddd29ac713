package matching

import "strings"

// Units 判斷兩個單位字串是否屬於同一同義群組。
// 只做分類比較，不做數量換算：1 kg 與 1000 g 相容，但數量不會被換算後比較。
type Units struct {
	groups map[string][]int
}

// NewUnits 由同義群組建立不可變的單位表
func NewUnits(groups [][]string) *Units {
	u := &Units{groups: make(map[string][]int)}
	for i, group := range groups {
		for _, unit := range group {
			key := normalizeUnit(unit)
			if key == "" {
				continue
			}
			u.groups[key] = append(u.groups[key], i)
		}
	}
	return u
}

var defaultUnits = NewUnits(defaultUnitGroups)

// DefaultUnits 回傳內建單位表
func DefaultUnits() *Units {
	return defaultUnits
}

// Compatible 任一單位為空時視為相容；否則需完全相同或落在同一群組
func (u *Units) Compatible(a, b string) bool {
	a, b = normalizeUnit(a), normalizeUnit(b)
	if a == "" || b == "" {
		return true
	}
	if a == b {
		return true
	}
	for _, ga := range u.groups[a] {
		for _, gb := range u.groups[b] {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

// UnitsCompatible 使用內建單位表判斷相容性
func UnitsCompatible(a, b string) bool {
	return defaultUnits.Compatible(a, b)
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}
