package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fitness-coach-api/internal/nutrition"
	"lg/fitness-coach-api/internal/profile"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// suggestRequest is the request body for POST /api/food-log/suggest.
type suggestRequest struct {
	Description string `json:"description"`
	MealType    string `json:"meal_type"`
}

// suggestionResponse is the structured nutrition data returned by the AI,
// shaped like a food log entry so the client can post it back as-is.
// Confidence is 1-5 indicating how accurate the estimate is.
type suggestionResponse struct {
	Name        string  `json:"name"`
	MealType    string  `json:"meal_type"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	Confidence  int     `json:"confidence"`
}

// chatRequest is the request body for POST /api/coach/chat. History is the
// prior conversation, oldest first; the server holds no chat state.
type chatRequest struct {
	Message string          `json:"message"`
	History []openAIMessage `json:"history"`
}

// maxChatHistory caps how many prior messages are forwarded to the model.
const maxChatHistory = 20

/* ─── OpenAI prompt constants ────────────────────────────────────────── */

const foodSystemPrompt = `You are a nutrition assistant. Parse the food description and return a JSON object with:
- "name" (string, cleaned up title case)
- "serving_qty" (number)
- "serving_unit" (one of: g, ml, each, cup, tbsp, slice)
- "calories" (number, total for the full quantity)
- "protein_g" (number, total for the full quantity)
- "carbs_g" (number, total for the full quantity)
- "fat_g" (number, total for the full quantity)
- "confidence" (integer 1-5: 5=exact known nutritional data, 4=very close estimate, 3=reasonable estimate, 2=rough guess, 1=very uncertain)

Always provide your best estimate, even for unfamiliar or vague items. Use your knowledge of similar foods to approximate. Only return {"error": "unrecognized"} if the input is not food at all (e.g. random characters, non-food objects).
Return only valid JSON, no explanation.`

// coachSystemPromptTemplate takes the user's profile block, nutrition summary
// and current plan summary.
const coachSystemPromptTemplate = `You are a supportive fitness and nutrition coach. Keep answers short, practical and specific to the user below. Do not diagnose medical conditions; suggest seeing a professional for anything medical.

User profile:
%s
%s
Current workout plan: %s`

// coachContextFallback is used when no stored data is available.
const coachContextFallback = `No profile, food log or workout plan is available. Give general advice for a healthy adult and encourage the user to complete their profile.`

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat map[string]any  `json:"response_format,omitempty"`
}

// callOpenAI sends a chat completions request and returns the raw content string
// from the first choice. Uses raw net/http to avoid pulling in the OpenAI SDK.
// jsonMode asks the model for a JSON object instead of free text.
func callOpenAI(ctx context.Context, messages []openAIMessage, baseURL string, jsonMode bool) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := openAIRequest{
		Model:       "gpt-4o-mini",
		Messages:    messages,
		Temperature: 0,
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]any{"type": "json_object"}
	} else {
		reqBody.Temperature = 0.7
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	// Parse the response to extract choices[0].message.content
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// suggestFoodLogEntry handles POST /api/food-log/suggest.
// Accepts a free-text food description, calls OpenAI to parse it into
// structured nutrition data, and returns the suggestion. Nothing is saved.
func (h *Handler) suggestFoodLogEntry(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		apiError(c, http.StatusBadRequest, "description is required")
		return
	}
	meal := nutrition.Snack
	if req.MealType != "" {
		m, ok := nutrition.ParseMealType(req.MealType)
		if !ok {
			apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack")
			return
		}
		meal = m
	}

	messages := []openAIMessage{
		{Role: "system", Content: foodSystemPrompt},
		{Role: "user", Content: req.Description},
	}

	content, err := callOpenAI(c.Request.Context(), messages, h.openAIBaseURL, true)
	if err != nil {
		log.Printf("[suggest] OpenAI error: %v", err)
		apiError(c, http.StatusBadGateway, "openai request failed")
		return
	}

	// Check if the AI returned an "unrecognized" error
	var errorResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(content), &errorResp); err != nil {
		log.Printf("[suggest] Failed to parse OpenAI response: %v", err)
		apiError(c, http.StatusBadGateway, "openai request failed")
		return
	}
	if errorResp.Error == "unrecognized" {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}

	// Parse the suggestion
	var suggestion suggestionResponse
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		log.Printf("[suggest] Failed to parse suggestion JSON: %v", err)
		apiError(c, http.StatusBadGateway, "openai request failed")
		return
	}

	// Validate that we got a usable response (at minimum, name and calories)
	if suggestion.Name == "" || suggestion.Calories <= 0 {
		c.JSON(http.StatusOK, gin.H{"error": "unrecognized"})
		return
	}
	suggestion.MealType = string(meal)

	c.JSON(http.StatusOK, suggestion)
}

// coachChat handles POST /api/coach/chat. The reply is grounded in the user's
// profile metrics, 7-day nutrition analysis and latest workout plan.
func (h *Handler) coachChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		apiError(c, http.StatusBadRequest, "message is required")
		return
	}

	history := req.History
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	messages := []openAIMessage{{Role: "system", Content: h.buildCoachPrompt(c)}}
	for _, m := range history {
		// The client can't inject system messages.
		if m.Role == "user" || m.Role == "assistant" {
			messages = append(messages, m)
		}
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Message})

	reply, err := callOpenAI(c.Request.Context(), messages, h.openAIBaseURL, false)
	if err != nil {
		log.Printf("[coachChat] OpenAI error: %v", err)
		apiError(c, http.StatusBadGateway, "coach is unavailable, try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": strings.TrimSpace(reply)})
}

// buildCoachPrompt loads the user's profile, nutrition analysis and latest
// plan from the DB and builds the coach system prompt. Each part that can't
// be loaded is left out; with no DB at all the generic context is used.
func (h *Handler) buildCoachPrompt(c *gin.Context) string {
	if h.db == nil {
		return fmt.Sprintf(coachSystemPromptTemplate, coachContextFallback, "", "none")
	}
	userID := c.GetInt("user_id")

	p, err := h.engineProfile(c, userID)
	if err != nil {
		log.Printf("[coachChat] profile load failed for user %d: %v", userID, err)
		p = profile.UserProfile{UserID: userID}
	}

	summary := ""
	today, _ := parseDayParam("")
	if result, err := h.analyzeWeek(c, userID, today); err != nil {
		log.Printf("[coachChat] nutrition analysis failed for user %d: %v", userID, err)
	} else {
		summary = result.Summary()
	}

	plan := "none"
	row, err := queryOne[workoutPlanRow](h.db, c,
		`SELECT `+workoutPlanColumns+` FROM workout_plans
		 WHERE user_id = @userID ORDER BY created_at DESC LIMIT 1`,
		pgx.NamedArgs{"userID": userID})
	if err == nil {
		plan = row.Plan.Name + ". " + row.Plan.Summary
	}

	return fmt.Sprintf(coachSystemPromptTemplate, describeProfile(p), summary, plan)
}

// describeProfile renders the profile for the coach prompt. Fields the user
// hasn't set are reported as unknown rather than as defaults.
func describeProfile(p profile.UserProfile) string {
	var sb strings.Builder
	field := func(label, value string) {
		if value == "" {
			value = "unknown"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", label, value)
	}
	num := func(v float64, unit string) string {
		if v == 0 {
			return ""
		}
		return fmt.Sprintf("%.0f %s", v, unit)
	}

	age := ""
	if p.Age > 0 {
		age = fmt.Sprintf("%d years", p.Age)
	}
	field("Gender", string(p.Gender))
	field("Age", age)
	field("Weight", num(p.WeightKG, "kg"))
	field("Height", num(p.HeightCM, "cm"))
	field("Activity level", p.ActivityLevel)
	field("Fitness level", string(p.FitnessLevel))
	field("Goal", p.FitnessGoal)
	if m, ok := computeMetrics(p); ok {
		fmt.Fprintf(&sb, "- BMI: %.1f (%s)\n", m.BMI, m.BMICategory)
		fmt.Fprintf(&sb, "- Estimated TDEE: %d kcal\n", m.TDEE)
		fmt.Fprintf(&sb, "- Estimated body fat: %.1f%% (%s)\n", m.BodyFatPercent, m.BodyFatCategory)
	}
	return sb.String()
}
