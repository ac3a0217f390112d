package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdapter answers queries through the Google Generative Language
// API. Gemini does not always report token usage (never on the free
// tier); missing usage metadata is normalized to zero tokens.
type GeminiAdapter struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float32
	client      *http.Client
}

// NewGeminiAdapter creates a Gemini adapter from provider options.
func NewGeminiAdapter(opts Options) *GeminiAdapter {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := opts.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiAdapter{
		apiKey:      opts.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		client:      &http.Client{Timeout: opts.Timeout},
	}
}

func (a *GeminiAdapter) Name() string {
	return "gemini"
}

func (a *GeminiAdapter) Respond(ctx context.Context, query string) (Result, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": query}}},
		},
	}
	if a.maxTokens > 0 || a.temperature > 0 {
		generationConfig := map[string]interface{}{}
		if a.maxTokens > 0 {
			generationConfig["maxOutputTokens"] = a.maxTokens
		}
		if a.temperature > 0 {
			generationConfig["temperature"] = a.temperature
		}
		requestBody["generationConfig"] = generationConfig
	}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("Gemini API error: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
		UsageMetadata *struct {
			TotalTokenCount int `json:"totalTokenCount"`
		} `json:"usageMetadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("no candidates in response")
	}

	var reply strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		reply.WriteString(part.Text)
	}

	// Usage metadata is optional; its absence means zero, not an error.
	tokens := 0
	if response.UsageMetadata != nil {
		tokens = response.UsageMetadata.TotalTokenCount
	}
	return Result{Reply: reply.String(), Tokens: tokens}, nil
}
