// Package ai wraps the Gemini API behind three stateless prompt adapters:
// daily greeting, 7-day meal plan, and the counseling chat. The contract at
// this layer is strict: any failure from the API is swallowed and replaced
// with a fixed fallback (or an empty plan), never an error.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nestgirl/internal/model"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Fallbacks returned whenever the API misbehaves. Kept verbatim from the
// original app, persona included.
const (
	fallbackGreeting = "صباح الخير يا عزيزتي، يومك سعيد كقلبك! ✨"
	fallbackReply    = "عذراً يا عزيزتي، يبدو أن هناك ضغطاً بسيطاً في الاتصال. أنا معكِ دائماً."
)

// MealSlots are the four named meals of one plan day.
type MealSlots struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Snack     string `json:"snack"`
	Dinner    string `json:"dinner"`
}

// MealPlanDay is one day of a generated meal plan.
type MealPlanDay struct {
	Day   string    `json:"day"`
	Meals MealSlots `json:"meals"`
}

// Turn is one prior exchange in the counseling chat.
type Turn struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// generator is the slice of genai.Models the assistant uses; tests swap in
// a fake.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Assistant issues prompt requests against the Gemini API.
type Assistant struct {
	models        generator
	greetingModel string
	chatModel     string
	log           *zap.SugaredLogger
}

// New creates an Assistant backed by a real Gemini client.
func New(ctx context.Context, apiKey, greetingModel, chatModel string, log *zap.SugaredLogger) (*Assistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Assistant{
		models:        client.Models,
		greetingModel: greetingModel,
		chatModel:     chatModel,
		log:           log,
	}, nil
}

// firstName trims the profile name to its first word for the greeting.
func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// Greeting generates a short personalized welcome line. Low-latency model,
// high temperature; one sentence.
func (a *Assistant) Greeting(ctx context.Context, user *model.Profile) string {
	prompt := fmt.Sprintf(
		`أنتِ رفيقة ذكية لتطبيق "نست جيرل". رحبي بـ %s (حالتها: %s) بلهجة أردنية/عامية دافئة جداً. اجعليها تشعر بالراحة. جملة واحدة فقط أقل من 12 كلمة.`,
		user.Name, user.Status,
	)
	resp, err := a.models.GenerateContent(ctx, a.greetingModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.9),
	})
	if err != nil {
		a.log.Warnw("greeting generation failed", "error", err)
		return fallbackGreeting
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fmt.Sprintf("أهلاً بكِ مجدداً يا %s، في عائلتكِ نست جيرل. ✨", firstName(user.Name))
	}
	return text
}

// mealPlanSchema constrains the response to an array of day objects with
// the four meal slots, matching MealPlanDay.
func mealPlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"day": {Type: genai.TypeString, Description: "اسم اليوم (مثلاً: السبت)"},
				"meals": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"breakfast": {Type: genai.TypeString},
						"lunch":     {Type: genai.TypeString},
						"snack":     {Type: genai.TypeString},
						"dinner":    {Type: genai.TypeString},
					},
					Required: []string{"breakfast", "lunch", "snack", "dinner"},
				},
			},
			Required: []string{"day", "meals"},
		},
	}
}

// MealPlan generates a 7-day plan toward a free-text goal. The schema is
// enforced by the API; the parse re-checks it. Failures yield an empty plan.
func (a *Assistant) MealPlan(ctx context.Context, user *model.Profile, goal string) []MealPlanDay {
	height, weight := 0.0, 0.0
	if user.HeightCM != nil {
		height = *user.HeightCM
	}
	if user.WeightKG != nil {
		weight = *user.WeightKG
	}
	prompt := fmt.Sprintf(
		`بصفتكِ خبيرة تغذية، صممي جدولاً غذائياً لأسبوع كامل لـ %s (الطول: %.0f، الوزن: %.0f، الحالة: %s). الهدف هو: %s.`,
		user.Name, height, weight, user.Status, goal,
	)
	resp, err := a.models.GenerateContent(ctx, a.chatModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   mealPlanSchema(),
		ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		a.log.Warnw("meal plan generation failed", "error", err)
		return []MealPlanDay{}
	}

	var plan []MealPlanDay
	if err := json.Unmarshal([]byte(resp.Text()), &plan); err != nil {
		a.log.Warnw("meal plan response did not match schema", "error", err)
		return []MealPlanDay{}
	}
	return plan
}

// Chat answers one counseling message given the prior turns. The persona is
// pinned by a system instruction; thinking is enabled for better empathy.
func (a *Assistant) Chat(ctx context.Context, user *model.Profile, message string, history []Turn) string {
	system := fmt.Sprintf(
		`أنتِ "نستلي"، المستشارة النفسية والصديقة المقربة في تطبيق Nestgirl.
تتحدثين بلهجة أردنية عامية دافئة جداً (عامية بيضاء).
المستخدمة هي %s وحالتها %s.
كوني مستمعة، متعاطفة، ولا تقدمي نصائح طبية قاسية، بل كوني "الأخت" التي تستمع.
حافظي على السرية والخصوصية.`,
		user.Name, user.Status,
	)

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		var role genai.Role = genai.RoleModel
		if turn.Role == "user" {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := a.models.GenerateContent(ctx, a.chatModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.8),
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](4000)},
	})
	if err != nil {
		a.log.Warnw("chat generation failed", "error", err)
		return fallbackReply
	}
	if text := resp.Text(); text != "" {
		return text
	}
	return "أنا هنا لأسمعكِ يا غالية، كملي شو ببالك؟"
}
