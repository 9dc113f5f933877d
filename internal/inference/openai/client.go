package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/julianstephens/habitkit/internal/inference"
	"github.com/julianstephens/habitkit/internal/logger"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// SuggestHabits implements the inference.Client interface
func (client *Client) SuggestHabits(
	ctx context.Context,
	params inference.SuggestHabitsRequest,
) (inference.SuggestHabitsResponse, error) {
	var result inference.SuggestHabitsResponse
	if err := retry.Do(
		func() error {
			response, err := client.suggestHabits(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.SuggestHabitsResponse{}, err
	}
	return result, nil
}

const suggestSystemPrompt = `You are a habit coach helping someone design small, sustainable habits.

GOAL
Return ONLY a JSON array of suggested habits. For each suggestion include:
- "title": a short imperative habit name (e.g. "Stretch for 5 minutes")
- "description": one sentence describing the habit
- "rationale": one sentence explaining why this habit supports the user's goal
- "frequency": "daily" or "weekly"
- "time_of_day": "morning", "afternoon", "evening", or omit if any time works

RULES
- Suggest habits that are small and concrete, not vague aspirations
- Do not suggest habits the user already tracks (they are listed in the input)
- Respect the requested count exactly
- Prefer daily habits unless the goal clearly calls for a weekly cadence

STRICT OUTPUT: No text outside the JSON array.`

func (client *Client) suggestHabits(
	ctx context.Context,
	params inference.SuggestHabitsRequest,
) (inference.SuggestHabitsResponse, error) {
	userJSON, err := json.Marshal(params)
	if err != nil {
		return inference.SuggestHabitsResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.7,
		Messages: []Message{
			{Role: RoleSystem, Content: suggestSystemPrompt},
			{Role: RoleUser, Content: string(userJSON)},
		},
	}

	content, err := client.complete(ctx, requestBody)
	if err != nil {
		return inference.SuggestHabitsResponse{}, err
	}

	var decoded []inference.HabitSuggestion
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		logger.Error("failed to parse suggestion response", "error", err)
		return inference.SuggestHabitsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return inference.SuggestHabitsResponse{Suggestions: decoded}, nil
}

// AdviseReminder implements the inference.Client interface
func (client *Client) AdviseReminder(
	ctx context.Context,
	params inference.AdviseReminderRequest,
) (inference.AdviseReminderResponse, error) {
	var result inference.AdviseReminderResponse
	if err := retry.Do(
		func() error {
			response, err := client.adviseReminder(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.AdviseReminderResponse{}, err
	}
	return result, nil
}

const adviseSystemPrompt = `You decide whether right now is a good moment to remind someone about a habit.

The input describes one habit (title and preferred time of day if any), the current
time, and optionally what the person is doing right now.

GOAL
Return ONLY a JSON object:
{
  "should_remind": true or false,
  "reminder_text": "<one short, friendly sentence naming the habit>"
}

RULES
- If the habit has a preferred time of day, only remind within it
  (morning: 06:00-11:59, afternoon: 12:00-16:59, evening: 17:00-21:59)
- If the current activity is incompatible with the habit or hard to interrupt
  (driving, in a meeting, about to sleep), set should_remind to false
- When should_remind is false, leave reminder_text empty
- Keep reminder_text specific to the habit, not generic encouragement

Do NOT include any text outside the JSON.`

func (client *Client) adviseReminder(
	ctx context.Context,
	params inference.AdviseReminderRequest,
) (inference.AdviseReminderResponse, error) {
	userJSON, err := json.Marshal(params)
	if err != nil {
		return inference.AdviseReminderResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.3,
		Messages: []Message{
			{Role: RoleSystem, Content: adviseSystemPrompt},
			{Role: RoleUser, Content: string(userJSON)},
		},
	}

	content, err := client.complete(ctx, requestBody)
	if err != nil {
		return inference.AdviseReminderResponse{}, err
	}

	var decoded inference.AdviseReminderResponse
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		return inference.AdviseReminderResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	return decoded, nil
}

// complete posts a chat completion request and returns the first choice's content.
func (client *Client) complete(ctx context.Context, requestBody ChatCompletionRequest) (string, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	logger.Debug("chat completion response", "model", responseBody.Model, "tokens", responseBody.Usage.TotalTokens)

	return stripCodeFence(content), nil
}

// stripCodeFence removes a markdown code fence if the model wrapped its JSON in one.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
