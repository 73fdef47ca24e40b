package domain

import "strings"

// Difficulty represents recipe difficulty level
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank returns position of the difficulty on the easy..hard ladder, 0 for unknown values
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 0
	}
}

// Recipe represents a catalog recipe as stored
type Recipe struct {
	ID          int64
	Name        string
	Description string
	Difficulty  Difficulty
	PrepTime    int // minutes
	CookTime    int // minutes
	Servings    int
	CuisineType string
}

// Summary returns read-only projection of the recipe used by the resolver
func (r Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		CuisineType: r.CuisineType,
		Difficulty:  r.Difficulty,
		TotalTime:   r.PrepTime + r.CookTime,
		Description: r.Description,
	}
}

// RecipeSummary is a lightweight view of a catalog recipe
type RecipeSummary struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	CuisineType string     `json:"cuisine_type"`
	Difficulty  Difficulty `json:"difficulty"`
	TotalTime   int        `json:"total_time"` // prep + cook, minutes
	Description string     `json:"description"`
}

// Text returns lower-cased name and description, the haystack for keyword rules
func (r RecipeSummary) Text() string {
	return strings.ToLower(r.Name + " " + r.Description)
}

// ProgressStatus is the state of a recipe for a particular user
type ProgressStatus string

const (
	ProgressSaved      ProgressStatus = "saved"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)
