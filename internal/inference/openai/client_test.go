package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resty.dev/v3"

	"github.com/julianstephens/habitkit/internal/inference"
)

func mockCompletion(content string) ChatCompletionResponse {
	return ChatCompletionResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1677652288,
		Model:   "gpt-4o-mini",
		Choices: []Choice{
			{
				Index:        0,
				Message:      ChoiceMessage{Role: RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
		Usage: Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}
}

func newTestClient(serverURL string) *Client {
	return &Client{
		httpClient:       resty.New().SetBaseURL(serverURL),
		model:            "gpt-4o-mini",
		maxRetryAttempts: 1,
	}
}

func TestClient_SuggestHabits(t *testing.T) {
	tests := []struct {
		name            string
		request         inference.SuggestHabitsRequest
		handler         func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantSuggestions []inference.HabitSuggestion
		wantErr         bool
		wantErrString   string
	}{
		{
			name: "success",
			request: inference.SuggestHabitsRequest{
				Goal:  "sleep better",
				Count: 2,
				Existing: []inference.ExistingHabit{
					{Title: "Meditate", Frequency: "daily", Streak: 4, Level: 2},
				},
			},
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/chat/completions" {
					t.Errorf("expected /chat/completions, got %s", r.URL.Path)
				}

				var reqBody ChatCompletionRequest
				if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if reqBody.Model != "gpt-4o-mini" {
					t.Errorf("expected model gpt-4o-mini, got %s", reqBody.Model)
				}
				var userMessage string
				for _, msg := range reqBody.Messages {
					if msg.Role == RoleUser {
						userMessage = msg.Content
					}
				}
				if !strings.Contains(userMessage, "sleep better") {
					t.Errorf("user message should contain the goal, got %s", userMessage)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(mockCompletion(`[
					{"title": "No screens after 10pm", "description": "Put devices away an hour before bed.", "rationale": "Blue light delays sleep onset.", "frequency": "daily", "time_of_day": "evening"},
					{"title": "Evening walk", "description": "Take a 15 minute walk after dinner.", "rationale": "Light activity improves sleep quality.", "frequency": "daily", "time_of_day": "evening"}
				]`))
			},
			wantSuggestions: []inference.HabitSuggestion{
				{Title: "No screens after 10pm", Description: "Put devices away an hour before bed.", Rationale: "Blue light delays sleep onset.", Frequency: "daily", TimeOfDay: "evening"},
				{Title: "Evening walk", Description: "Take a 15 minute walk after dinner.", Rationale: "Light activity improves sleep quality.", Frequency: "daily", TimeOfDay: "evening"},
			},
		},
		{
			name:    "fenced JSON is unwrapped",
			request: inference.SuggestHabitsRequest{Goal: "read more", Count: 1},
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(mockCompletion("```json\n[{\"title\": \"Read 10 pages\", \"description\": \"Read before bed.\", \"rationale\": \"Small daily reading compounds.\", \"frequency\": \"daily\"}]\n```"))
			},
			wantSuggestions: []inference.HabitSuggestion{
				{Title: "Read 10 pages", Description: "Read before bed.", Rationale: "Small daily reading compounds.", Frequency: "daily"},
			},
		},
		{
			name:    "server error",
			request: inference.SuggestHabitsRequest{Goal: "exercise", Count: 1},
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": {"message": "Internal server error"}}`))
			},
			wantErr: true,
		},
		{
			name:    "invalid JSON content",
			request: inference.SuggestHabitsRequest{Goal: "exercise", Count: 1},
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(mockCompletion("not json at all"))
			},
			wantErr:       true,
			wantErrString: "json.Unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.handler(t, w, r)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			got, err := client.SuggestHabits(context.Background(), tt.request)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErrString != "" && !strings.Contains(err.Error(), tt.wantErrString) {
					t.Errorf("expected error containing %q, got %v", tt.wantErrString, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got.Suggestions) != len(tt.wantSuggestions) {
				t.Fatalf("expected %d suggestions, got %d", len(tt.wantSuggestions), len(got.Suggestions))
			}
			for i, want := range tt.wantSuggestions {
				if got.Suggestions[i] != want {
					t.Errorf("suggestion %d: expected %+v, got %+v", i, want, got.Suggestions[i])
				}
			}
		})
	}
}

func TestClient_AdviseReminder(t *testing.T) {
	tests := []struct {
		name          string
		request       inference.AdviseReminderRequest
		handler       func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want          inference.AdviseReminderResponse
		wantErr       bool
		wantErrString string
	}{
		{
			name: "advises reminding now",
			request: inference.AdviseReminderRequest{
				HabitTitle:      "Stretch",
				TimeOfDay:       "morning",
				CurrentTime:     "07:30",
				CurrentActivity: "making coffee",
			},
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				var reqBody ChatCompletionRequest
				if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				var userMessage string
				for _, msg := range reqBody.Messages {
					if msg.Role == RoleUser {
						userMessage = msg.Content
					}
				}
				if !strings.Contains(userMessage, "Stretch") {
					t.Errorf("user message should contain the habit title, got %s", userMessage)
				}
				if !strings.Contains(userMessage, "07:30") || !strings.Contains(userMessage, "making coffee") {
					t.Errorf("user message should carry the current time and activity, got %s", userMessage)
				}

				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(mockCompletion(`{"should_remind": true, "reminder_text": "Time to stretch"}`))
			},
			want: inference.AdviseReminderResponse{
				ShouldRemind: true,
				ReminderText: "Time to stretch",
			},
		},
		{
			name: "declines outside the habit's window",
			request: inference.AdviseReminderRequest{
				HabitTitle:  "Stretch",
				TimeOfDay:   "morning",
				CurrentTime: "22:15",
			},
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(mockCompletion(`{"should_remind": false}`))
			},
			want: inference.AdviseReminderResponse{ShouldRemind: false},
		},
		{
			name:    "malformed response",
			request: inference.AdviseReminderRequest{HabitTitle: "Run", CurrentTime: "09:00"},
			handler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(mockCompletion("try reminding yourself at 7am"))
			},
			wantErr:       true,
			wantErrString: "json.Unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.handler(t, w, r)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			got, err := client.AdviseReminder(context.Background(), tt.request)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErrString != "" && !strings.Contains(err.Error(), tt.wantErrString) {
					t.Errorf("expected error containing %q, got %v", tt.wantErrString, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"json unmarshal", errString("json.Unmarshal(...) > unexpected end of JSON input"), true},
		{"connection refused", errString("dial tcp: connection refused"), true},
		{"server error", errString("response error 503: unavailable"), true},
		{"rate limit", errString("response error 429: too many requests"), true},
		{"client error", errString("response error 401: unauthorized"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain JSON", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with language", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.content); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
