package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/serenpaths/seren/internal/types"
)

// Compile-time interface check
var _ Enricher = (*OpenAI)(nil)

// ChatService defines the interface for making chat completion API calls.
// This abstraction enables testing without calling the real OpenAI API.
type ChatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// OpenAI implements challenge enrichment using OpenAI's chat API.
type OpenAI struct {
	chat  ChatService
	model openai.ChatModel
}

// NewOpenAI creates an OpenAI-backed enricher.
func NewOpenAI(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		chat:  client.Chat.Completions,
		model: openai.ChatModel(model),
	}
}

// Enabled reports true; failures are handled per call.
func (o *OpenAI) Enabled() bool { return true }

// Name returns the chat model in use.
func (o *OpenAI) Name() string { return string(o.model) }

// enhancement is the JSON shape the model is asked to return when
// reworking an existing challenge.
type enhancement struct {
	EnhancedDescription string   `json:"enhanced_description"`
	Encouragement       string   `json:"encouragement"`
	Tips                []string `json:"tips"`
	ExpectedDiscovery   string   `json:"expected_discovery"`
}

// customChallenge is the JSON shape for a fully generated challenge.
type customChallenge struct {
	Title                  string `json:"title"`
	Category               string `json:"category"`
	Type                   string `json:"type"`
	Description            string `json:"description"`
	EstimatedTime          string `json:"estimated_time"`
	Encouragement          string `json:"encouragement"`
	AntiOptimizationReason string `json:"anti_optimization_reason"`
}

// EnhanceChallenge asks the model to personalize the challenge text and
// merges the fields it returns. The input is never modified on error.
func (o *OpenAI) EnhanceChallenge(ctx context.Context, ch types.EnhancedChallenge, profile types.UserProfile) (types.EnhancedChallenge, error) {
	content, err := o.complete(ctx, enhancementPrompt(ch, profile))
	if err != nil {
		return ch, err
	}

	var enh enhancement
	if err := parseJSONBlock(content, &enh); err != nil {
		return ch, fmt.Errorf("enhancement response: %w", err)
	}

	if enh.EnhancedDescription != "" {
		ch.Description = enh.EnhancedDescription
	}
	ch.Encouragement = enh.Encouragement
	ch.Tips = enh.Tips
	ch.ExpectedDiscovery = enh.ExpectedDiscovery
	ch.AIEnhanced = true
	return ch, nil
}

// SuggestChallenge asks the model for a fully original challenge at the
// given level.
func (o *OpenAI) SuggestChallenge(ctx context.Context, prefs types.UserPreferences, experiences []types.ExperienceRecord, level int) (*CustomChallenge, error) {
	content, err := o.complete(ctx, customChallengePrompt(prefs, experiences, level))
	if err != nil {
		return nil, err
	}

	var custom customChallenge
	if err := parseJSONBlock(content, &custom); err != nil {
		return nil, fmt.Errorf("custom challenge response: %w", err)
	}
	if custom.Title == "" {
		return nil, nil
	}

	discovery := custom.AntiOptimizationReason
	if discovery == "" {
		discovery = "A new experience proposed just for you"
	}

	return &CustomChallenge{
		Challenge: types.Challenge{
			Title:              custom.Title,
			Category:           custom.Category,
			Type:               custom.Type,
			Icon:               "Sparkles",
			Description:        custom.Description,
			EstimatedTime:      custom.EstimatedTime,
			SerendipityScore:   0.9,
			DiscoveryPotential: discovery,
			Level:              level,
			AIGenerated:        true,
		},
		Encouragement: custom.Encouragement,
	}, nil
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model: openai.F(o.model),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion failed: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseJSONBlock extracts the outermost JSON object from model output,
// tolerating surrounding prose or code fences.
func parseJSONBlock(content string, v any) error {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return fmt.Errorf("no JSON object found in response")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), v); err != nil {
		return fmt.Errorf("invalid JSON in response: %w", err)
	}
	return nil
}

func enhancementPrompt(ch types.EnhancedChallenge, profile types.UserProfile) string {
	var b strings.Builder
	b.WriteString("You personalize activity challenges for an anti-optimization recommender:\n")
	b.WriteString("the goal is unexpected positive discovery, not converging on what the user already likes.\n\n")
	fmt.Fprintf(&b, "Challenge: %s\nCategory: %s\nDescription: %s\n\n", ch.Title, ch.Category, ch.Description)
	fmt.Fprintf(&b, "User: %d past experiences, diversity score %.2f, recent categories: %s\n\n",
		profile.TotalExperiences, profile.DiversityScore, strings.Join(profile.RecentCategories, ", "))
	b.WriteString("Reply with a single JSON object and nothing else:\n")
	b.WriteString(`{"enhanced_description": "...", "encouragement": "...", "tips": ["...", "..."], "expected_discovery": "..."}`)
	return b.String()
}

func customChallengePrompt(prefs types.UserPreferences, experiences []types.ExperienceRecord, level int) string {
	levelHints := map[int]string{
		1: "a light 15-30 minute experience",
		2: "a 1-3 hour medium challenge",
		3: "a half-day or longer adventure",
	}

	recent := make([]string, 0, len(experiences))
	seen := map[string]bool{}
	for _, exp := range experiences {
		if exp.Category == "" || seen[exp.Category] {
			continue
		}
		seen[exp.Category] = true
		recent = append(recent, exp.Category)
	}

	var b strings.Builder
	b.WriteString("Invent one original real-world challenge that gives this user an unexpected discovery.\n\n")
	fmt.Fprintf(&b, "Interests: %s\n", strings.Join(prefs.Interests, ", "))
	fmt.Fprintf(&b, "Categories to avoid: %s\n", strings.Join(prefs.AvoidCategories, ", "))
	fmt.Fprintf(&b, "Categories already experienced: %s\n", strings.Join(recent, ", "))
	fmt.Fprintf(&b, "Target: level %d, %s\n\n", level, levelHints[level])
	b.WriteString("Reply with a single JSON object and nothing else:\n")
	b.WriteString(`{"title": "...", "category": "...", "type": "...", "description": "...", "estimated_time": "...", "encouragement": "...", "anti_optimization_reason": "..."}`)
	return b.String()
}
