package openrouter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/randomtoy/auradream/internal/adapters/llm/openrouter"
	"github.com/randomtoy/auradream/internal/domain"
)

const dreamText = "I was on a crowded train above the ocean and a door of light appeared."

const validContent = `{
  "symbolic_summary": "A journey over deep water toward an opening.",
  "emotions": {"Fear": 0.1, "Desire": 0.8, "Calm": 0.6, "Mystery": 0.3, "Connection": 0.5, "Transformation": 1.4},
  "tarot_shadow": "Something wants to be crossed.",
  "tarot_energy": "Bright and restless.",
  "tarot_guidance": "Walk toward the light slowly."
}`

func chatServer(t *testing.T, contents ...string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		content := contents[min(calls, len(contents)-1)]
		calls++
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestClient_Analyze_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": validContent}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "test-key", srv.URL+"/", "test-model", slog.Default(),
		openrouter.WithMaxTokens(600))

	out, err := client.Analyze(context.Background(), dreamText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Emotions.Desire() != 0.8 {
		t.Errorf("unexpected desire: %v", out.Emotions.Desire())
	}
	if out.Emotions.Transformation() != 1 {
		t.Errorf("expected clamped transformation 1, got %v", out.Emotions.Transformation())
	}
	if out.Tarot.Guidance != "Walk toward the light slowly." {
		t.Errorf("unexpected guidance: %s", out.Tarot.Guidance)
	}
	if out.Model != "test-model" || out.Source != domain.SourceLLM {
		t.Errorf("unexpected model/source: %s/%s", out.Model, out.Source)
	}

	if gotReq["model"] != "test-model" {
		t.Errorf("request model: %v", gotReq["model"])
	}
	if gotReq["max_tokens"] != float64(600) {
		t.Errorf("request max_tokens: %v", gotReq["max_tokens"])
	}
	msgs, _ := gotReq["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if user, _ := msgs[1].(map[string]any); user["content"] != dreamText {
		t.Errorf("user message should carry the dream text, got %v", user["content"])
	}
}

func TestClient_Analyze_CodeFence(t *testing.T) {
	srv, _ := chatServer(t, "```json\n"+validContent+"\n```")
	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	out, err := client.Analyze(context.Background(), dreamText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Emotions.Calm() != 0.6 {
		t.Errorf("unexpected calm: %v", out.Emotions.Calm())
	}
}

func TestClient_Analyze_BadJSON_Retry_Success(t *testing.T) {
	srv, calls := chatServer(t, "this is not json at all", validContent)
	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	out, err := client.Analyze(context.Background(), dreamText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *calls != 2 {
		t.Errorf("expected 2 calls (original + retry), got %d", *calls)
	}
	if out.Summary != "A journey over deep water toward an opening." {
		t.Errorf("unexpected summary: %s", out.Summary)
	}
}

func TestClient_Analyze_MissingEmotion_Retry_Failure(t *testing.T) {
	srv, _ := chatServer(t, `{"symbolic_summary":"x","emotions":{"Fear":0.5}}`)
	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Analyze(context.Background(), dreamText)
	if !errors.Is(err, domain.ErrInvalidLLMJSON) {
		t.Fatalf("expected ErrInvalidLLMJSON, got %v", err)
	}
	if !errors.Is(err, domain.ErrMissingEmotion) {
		t.Errorf("expected wrapped ErrMissingEmotion, got %v", err)
	}
}

func TestClient_Analyze_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Analyze(context.Background(), dreamText)
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
}

func TestClient_Analyze_FallbackModel(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		if req.Model == "primary" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": validContent}}},
		})
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "primary", slog.Default(),
		openrouter.WithFallbackModels("secondary"))

	out, err := client.Analyze(context.Background(), dreamText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Model != "secondary" {
		t.Errorf("expected secondary model, got %s", out.Model)
	}
	if len(models) != 2 || models[0] != "primary" || models[1] != "secondary" {
		t.Errorf("unexpected model sequence: %v", models)
	}
}
