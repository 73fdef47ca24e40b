package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/cookscope/pkg/config"
	"github.com/umputun/cookscope/pkg/domain"
)

// Advisor uses LLM to normalize conversation answers and to pick recipes from a candidate pool
type Advisor struct {
	client *openai.Client
	config config.LLMConfig
}

// NewAdvisor creates a new LLM advisor
func NewAdvisor(cfg config.LLMConfig) *Advisor {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &Advisor{client: openai.NewClientWithConfig(clientConfig), config: cfg}
}

const normalizeSystemPrompt = `You convert a user's free-text answers about what they want to cook into structured preferences.
Respond with a single JSON object and nothing else:
{"cuisineType": string|null, "timeCategory": "under_30"|"30_to_60"|"over_60"|null,
 "difficultyLevel": "easy"|"medium"|"hard"|null,
 "dietaryType": "vegetarian"|"vegan"|"gluten_free"|"dairy_free"|"none"|null, "isFlexible": boolean}

Rules:
- cuisineType is a single cuisine name like "Italian", "Asian", "Mexican", "Mediterranean" or null if not stated.
- use null for anything the user did not express or said they don't care about.
- set isFlexible to true when the user is open to anything or gave no concrete preference.
- never invent values outside the allowed lists.`

const selectSystemPrompt = `You are a friendly cooking assistant. Pick recipes for the user from the provided candidates only
and write a short, warm taste profile (2-3 sentences) addressed to the user explaining the choice.
Respond with a single JSON object and nothing else: {"profile": string, "recipeIds": [number, ...]}`

// normalizeResponse is the model output for normalization, nulls are kept as nil
type normalizeResponse struct {
	CuisineType     *string `json:"cuisineType"`
	TimeCategory    *string `json:"timeCategory"`
	DifficultyLevel *string `json:"difficultyLevel"`
	DietaryType     *string `json:"dietaryType"`
	IsFlexible      bool    `json:"isFlexible"`
}

// selectResponse is the model output for selection
type selectResponse struct {
	Profile   string   `json:"profile"`
	RecipeIDs []flexID `json:"recipeIds"`
}

// flexID is a recipe id the model may give as a number or as a numeric string.
// Anything else decodes to 0 and is skipped.
type flexID int64

// UnmarshalJSON accepts 12, 12.0 and "12"
func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(data)), `"`))
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexID(id)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v == math.Trunc(v) {
		*f = flexID(v)
		return nil
	}
	*f = 0
	return nil
}

// Normalize converts free-text answers to a preference vector with a single model call.
// Any failure is returned as *domain.NormalizationError.
func (a *Advisor) Normalize(ctx context.Context, answers domain.ConversationAnswers) (domain.PreferenceVector, error) {
	prompt := a.buildNormalizePrompt(answers)
	content, err := a.complete(ctx, normalizeSystemPrompt, prompt, a.config.Temperature)
	if err != nil {
		return domain.PreferenceVector{}, &domain.NormalizationError{Err: err}
	}

	var resp normalizeResponse
	if err := decodeJSON(content, &resp); err != nil {
		return domain.PreferenceVector{}, &domain.NormalizationError{Err: err}
	}

	vec := domain.PreferenceVector{
		CuisineType:     nullable(resp.CuisineType),
		TimeCategory:    domain.TimeCategory(enumValue(resp.TimeCategory)),
		DifficultyLevel: domain.Difficulty(enumValue(resp.DifficultyLevel)),
		DietaryType:     domain.DietaryType(enumValue(resp.DietaryType)),
		IsFlexible:      resp.IsFlexible,
	}.Normalized()
	lgr.Printf("[DEBUG] normalized answers to %+v", vec)
	return vec, nil
}

// Select asks the model to pick req.Count recipes from the pool and to write a profile.
// Ids are returned as the model gave them, the caller validates them against the pool.
func (a *Advisor) Select(ctx context.Context, req domain.SelectRequest) (domain.Selection, error) {
	if len(req.Pool.Recipes) == 0 {
		return domain.Selection{}, &domain.SelectionError{Err: errors.New("empty candidate pool")}
	}

	temperature := a.config.Temperature
	if req.Preferences.IsFlexible {
		temperature = a.config.FlexibleTemperature
	}

	content, err := a.complete(ctx, selectSystemPrompt, a.buildSelectPrompt(req), temperature)
	if err != nil {
		return domain.Selection{}, &domain.SelectionError{Err: err}
	}

	var resp selectResponse
	if err := decodeJSON(content, &resp); err != nil {
		return domain.Selection{}, &domain.SelectionError{Err: err}
	}
	sel := domain.Selection{Profile: strings.TrimSpace(resp.Profile), RecipeIDs: make([]int64, 0, len(resp.RecipeIDs))}
	for _, id := range resp.RecipeIDs {
		if id > 0 {
			sel.RecipeIDs = append(sel.RecipeIDs, int64(id))
		}
	}
	lgr.Printf("[DEBUG] model selected %v from %d candidates", sel.RecipeIDs, len(req.Pool.Recipes))
	return sel, nil
}

// complete makes a single chat completion call bounded by the configured timeout
func (a *Advisor) complete(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       a.config.Model,
		Temperature: float32(temperature),
		MaxTokens:   a.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if a.config.UseJSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Advisor) buildNormalizePrompt(answers domain.ConversationAnswers) string {
	var sb strings.Builder
	sb.WriteString("User answers:\n")
	sb.WriteString(fmt.Sprintf("- What are you in the mood for? %s\n", orDash(answers.Mood)))
	sb.WriteString(fmt.Sprintf("- How much time do you have? %s\n", orDash(answers.Time)))
	sb.WriteString(fmt.Sprintf("- How comfortable are you in the kitchen? %s\n", orDash(answers.Skill)))
	sb.WriteString(fmt.Sprintf("- Any dietary needs? %s\n", orDash(answers.Dietary)))
	return sb.String()
}

func (a *Advisor) buildSelectPrompt(req domain.SelectRequest) string {
	var sb strings.Builder

	count := req.Count
	if count <= 0 {
		count = 3
	}

	sb.WriteString("Current answers (highest priority):\n")
	sb.WriteString(fmt.Sprintf("- mood: %s\n- time: %s\n- skill: %s\n- dietary: %s\n\n",
		orDash(req.Answers.Mood), orDash(req.Answers.Time), orDash(req.Answers.Skill), orDash(req.Answers.Dietary)))

	if !req.Profile.Empty() {
		sb.WriteString("Long-term profile (use only where it doesn't contradict the current answers):\n")
		if req.Profile.SkillLevel != "" {
			sb.WriteString(fmt.Sprintf("- skill level: %s\n", req.Profile.SkillLevel))
		}
		if req.Profile.FavoriteCuisine != "" {
			sb.WriteString(fmt.Sprintf("- favorite cuisine: %s\n", req.Profile.FavoriteCuisine))
		}
		if req.Profile.DietaryRestrictions != "" {
			sb.WriteString(fmt.Sprintf("- dietary restrictions: %s\n", req.Profile.DietaryRestrictions))
		}
		sb.WriteString("\n")
	}

	if len(req.Relaxed) > 0 {
		sb.WriteString(fmt.Sprintf("No recipe matched every preference, so the %s constraint was relaxed. "+
			"Mention this gently in the profile.\n\n", strings.Join(req.Relaxed, " and ")))
	}

	if req.Preferences.IsFlexible {
		sb.WriteString("The user is flexible: pick a diverse set with different cuisines and difficulty levels.\n\n")
	}

	sb.WriteString("Candidates (id|name|cuisine|difficulty|total minutes):\n")
	for _, rc := range req.Pool.Recipes {
		sb.WriteString(fmt.Sprintf("%d|%s|%s|%s|%d\n", rc.ID, rc.Name, rc.CuisineType, rc.Difficulty, rc.TotalTime))
	}

	sb.WriteString(fmt.Sprintf("\nPick exactly %d different recipe ids from the candidates above.", count))
	return sb.String()
}

// decodeJSON strips markdown fences and surrounding text and unmarshals the json object
func decodeJSON(content string, v any) error {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return errors.New("no json object found in response")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to parse json object response: %w", err)
	}
	return nil
}

// nullable returns trimmed value, treating "null" and similar words as empty
func nullable(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.TrimSpace(*s)
	switch strings.ToLower(v) {
	case "null", "none", "any", "anything", "n/a":
		return ""
	}
	return v
}

// enumValue lower-cases the value, unknown values are cleared later by Normalized
func enumValue(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	if v == "null" {
		return ""
	}
	return v
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return strings.TrimSpace(s)
}
