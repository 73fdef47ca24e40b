package domain

import "strings"

// ConversationAnswers holds the four free-text interview answers
type ConversationAnswers struct {
	Mood    string `json:"mood"`
	Time    string `json:"time"`
	Skill   string `json:"skill"`
	Dietary string `json:"dietary"`
}

// Empty reports whether no answer carries any text
func (a ConversationAnswers) Empty() bool {
	return strings.TrimSpace(a.Mood) == "" && strings.TrimSpace(a.Time) == "" &&
		strings.TrimSpace(a.Skill) == "" && strings.TrimSpace(a.Dietary) == ""
}

// TimeCategory is a coarse cooking time budget
type TimeCategory string

const (
	TimeUnder30  TimeCategory = "under_30"
	Time30To60   TimeCategory = "30_to_60"
	TimeOver60   TimeCategory = "over_60"
	TimeAnything TimeCategory = ""
)

// Valid reports whether the category is a known value, empty is valid and means no constraint
func (t TimeCategory) Valid() bool {
	switch t {
	case TimeUnder30, Time30To60, TimeOver60, TimeAnything:
		return true
	}
	return false
}

// DietaryType is a dietary need expressed by the user
type DietaryType string

const (
	DietaryVegetarian DietaryType = "vegetarian"
	DietaryVegan      DietaryType = "vegan"
	DietaryGlutenFree DietaryType = "gluten_free"
	DietaryDairyFree  DietaryType = "dairy_free"
	DietaryNone       DietaryType = "none"
)

// Valid reports whether the dietary type is a known value, empty is valid and means no constraint
func (d DietaryType) Valid() bool {
	switch d {
	case DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryDairyFree, DietaryNone, "":
		return true
	}
	return false
}

// Restrictive reports whether the dietary type constrains the catalog
func (d DietaryType) Restrictive() bool {
	return d != "" && d != DietaryNone
}

// PreferenceVector is the normalized form of conversation answers.
// Empty string fields mean "no constraint".
type PreferenceVector struct {
	CuisineType     string       `json:"cuisine_type,omitempty"`
	TimeCategory    TimeCategory `json:"time_category,omitempty"`
	DifficultyLevel Difficulty   `json:"difficulty_level,omitempty"`
	DietaryType     DietaryType  `json:"dietary_type,omitempty"`
	IsFlexible      bool         `json:"is_flexible"`
}

// Unconstrained reports whether every categorical field is null
func (p PreferenceVector) Unconstrained() bool {
	return p.CuisineType == "" && p.TimeCategory == "" && p.DifficultyLevel == "" && !p.DietaryType.Restrictive()
}

// Normalized returns a copy with unknown enum values cleared and the flexibility invariant applied
func (p PreferenceVector) Normalized() PreferenceVector {
	res := p
	res.CuisineType = strings.TrimSpace(res.CuisineType)
	if !res.TimeCategory.Valid() {
		res.TimeCategory = ""
	}
	if res.DifficultyLevel.Rank() == 0 {
		res.DifficultyLevel = ""
	}
	if !res.DietaryType.Valid() {
		res.DietaryType = ""
	}
	if res.Unconstrained() {
		res.IsFlexible = true
	}
	return res
}

// FlexibleVector returns the all-null vector
func FlexibleVector() PreferenceVector {
	return PreferenceVector{IsFlexible: true}
}

// UserPreferences is the long-term profile context fed to the selector
type UserPreferences struct {
	SkillLevel          string `json:"skill_level,omitempty"`
	FavoriteCuisine     string `json:"favorite_cuisine,omitempty"`
	DietaryRestrictions string `json:"dietary_restrictions,omitempty"`
}

// Empty reports whether the profile carries no preference at all
func (u UserPreferences) Empty() bool {
	return u.SkillLevel == "" && u.FavoriteCuisine == "" && u.DietaryRestrictions == ""
}

// LongTerm projects the vector onto long-term preferences, null fields stay empty
func (p PreferenceVector) LongTerm() UserPreferences {
	res := UserPreferences{SkillLevel: string(p.DifficultyLevel), FavoriteCuisine: p.CuisineType}
	if p.DietaryType.Restrictive() {
		res.DietaryRestrictions = string(p.DietaryType)
	}
	return res
}
