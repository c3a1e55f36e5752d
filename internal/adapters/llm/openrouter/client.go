package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/randomtoy/auradream/internal/domain"
)

// Client implements ports.Analyzer via an OpenAI-compatible chat
// completions API (OpenRouter by default).
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	maxTokens      int
	logger         *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithFallbackModels lists models tried in order after the primary fails.
func WithFallbackModels(models ...string) Option {
	return func(c *Client) { c.fallbackModels = append(c.fallbackModels, models...) }
}

// WithMaxTokens caps the completion length. Zero leaves it to the provider.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// dreamJSON is the object the model is instructed to return.
type dreamJSON struct {
	SymbolicSummary string             `json:"symbolic_summary"`
	Emotions        map[string]float64 `json:"emotions"`
	TarotShadow     string             `json:"tarot_shadow"`
	TarotEnergy     string             `json:"tarot_energy"`
	TarotGuidance   string             `json:"tarot_guidance"`
}

func (c *Client) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := c.analyzeWithModel(ctx, text, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return domain.Analysis{}, lastErr
}

func (c *Client) analyzeWithModel(ctx context.Context, text, model string) (domain.Analysis, error) {
	content, err := c.callLLM(ctx, model, systemPrompt, text)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	out, err := parseDream(content)
	if err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return domain.Analysis{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		out, err = parseDream(content)
		if err != nil {
			return domain.Analysis{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}

	out.Model = model
	out.Source = domain.SourceLLM
	return out, nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:      c.maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// parseDream extracts the JSON object from content, tolerating markdown
// fences or prose around it, and validates the emotion block.
func parseDream(content string) (domain.Analysis, error) {
	raw := jsonObject.FindString(content)
	if raw == "" {
		return domain.Analysis{}, errors.New("no JSON object in response")
	}

	var d dreamJSON
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return domain.Analysis{}, err
	}
	if d.Emotions == nil {
		return domain.Analysis{}, errors.New(`missing "emotions" object`)
	}
	emotions, err := domain.EmotionsFromMap(d.Emotions)
	if err != nil {
		return domain.Analysis{}, err
	}

	return domain.Analysis{
		Summary:  strings.TrimSpace(d.SymbolicSummary),
		Emotions: emotions,
		Tarot: domain.TarotReading{
			Shadow:   strings.TrimSpace(d.TarotShadow),
			Energy:   strings.TrimSpace(d.TarotEnergy),
			Guidance: strings.TrimSpace(d.TarotGuidance),
		},
	}, nil
}

const dreamSchema = `{
  "symbolic_summary": "2-4 sentences explaining the main symbols and themes in the dream.",
  "emotions": {
    "Fear": 0.0-1.0,
    "Desire": 0.0-1.0,
    "Calm": 0.0-1.0,
    "Mystery": 0.0-1.0,
    "Connection": 0.0-1.0,
    "Transformation": 0.0-1.0
  },
  "tarot_shadow": "2-4 sentences describing the subconscious message of the dream.",
  "tarot_energy": "1-3 sentences describing the current aura energy.",
  "tarot_guidance": "1-3 sentences giving gentle, non-fatalistic advice."
}`

var systemPrompt = `You are a dream analysis assistant for an art-and-data project.

Given a short dream description, respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this schema:
` + dreamSchema + `

Rules:
- All emotion values must be floating-point numbers between 0.0 and 1.0.
- Include all six emotions.
- Tone: reflective, supportive, slightly poetic but still clear.
- Never provide medical, legal, or financial advice.`

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
%s`, badJSON, dreamSchema)
}
