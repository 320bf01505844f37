// Package llm wraps the OpenAI and Anthropic chat APIs behind a common
// provider interface.
package llm

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
)

// Provider is the interface for LLM providers.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
	IsConfigured() bool
}

// OpenAIProvider is an OpenAI chat completions provider.
type OpenAIProvider struct {
	Model   string
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider reading the key from
// the given environment variable.
func NewOpenAIProvider(model, apiKeyEnv string) *OpenAIProvider {
	return &OpenAIProvider{
		Model:   model,
		APIKey:  os.Getenv(apiKeyEnv),
		BaseURL: "https://api.openai.com",
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (o *OpenAIProvider) IsConfigured() bool {
	return o.APIKey != ""
}

// Generate sends a prompt to OpenAI and returns the response text.
func (o *OpenAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if o.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	body := map[string]any{
		"model": o.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"max_completion_tokens": maxTokens,
		"temperature":           0.7,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.BaseURL+"/v1/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	return result.Choices[0].Message.Content, nil
}

// AnthropicProvider is an Anthropic messages API provider.
type AnthropicProvider struct {
	Model   string
	APIKey  string
	BaseURL string
	client  *http.Client
}

// NewAnthropicProvider creates a new Anthropic provider reading the key
// from the given environment variable.
func NewAnthropicProvider(model, apiKeyEnv string) *AnthropicProvider {
	return &AnthropicProvider{
		Model:   model,
		APIKey:  os.Getenv(apiKeyEnv),
		BaseURL: "https://api.anthropic.com",
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// IsConfigured checks if the API key is set.
func (a *AnthropicProvider) IsConfigured() bool {
	return a.APIKey != ""
}

// Generate sends a prompt to Anthropic and returns the response text.
func (a *AnthropicProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if a.APIKey == "" {
		return "", fmt.Errorf("Anthropic API key not configured")
	}

	body := map[string]any{
		"model":      a.Model,
		"max_tokens": maxTokens,
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": userPrompt},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.BaseURL+"/v1/messages", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Anthropic API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Content) == 0 {
		return "", fmt.Errorf("no content in Anthropic response")
	}

	return result.Content[0].Text, nil
}

// CreateProvider picks a provider based on configuration and available
// API keys. Anthropic wins when both keys are set unless the preference
// says otherwise.
func CreateProvider(preferred, openaiModel, openaiKeyEnv, anthropicModel, anthropicKeyEnv string) Provider {
	anthropic := NewAnthropicProvider(anthropicModel, anthropicKeyEnv)
	openai := NewOpenAIProvider(openaiModel, openaiKeyEnv)

	if strings.ToLower(preferred) == "openai" && openai.IsConfigured() {
		log.Printf("Using OpenAI with model: %s", openaiModel)
		return openai
	}
	if anthropic.IsConfigured() {
		log.Printf("Using Anthropic with model: %s", anthropicModel)
		return anthropic
	}
	if openai.IsConfigured() {
		log.Printf("Using OpenAI with model: %s", openaiModel)
		return openai
	}

	log.Println("No LLM provider available. Set OPENAI_API_KEY or ANTHROPIC_API_KEY.")
	return nil
}
