package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}

		fmt.Fprint(w, `{"choices": [{"message": {"content": "generated text"}}]}`)
	}))
	defer srv.Close()

	p := &OpenAIProvider{
		Model:   "gpt-4o",
		APIKey:  "test-key",
		BaseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	got, err := p.Generate(context.Background(), "be helpful", "write something", 100)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "generated text" {
		t.Errorf("expected 'generated text', got %q", got)
	}
}

func TestOpenAIGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := &OpenAIProvider{
		Model:   "gpt-4o",
		APIKey:  "test-key",
		BaseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := p.Generate(context.Background(), "s", "u", 100); err == nil {
		t.Error("expected error on 429 response")
	}
}

func TestOpenAIGenerateUnconfigured(t *testing.T) {
	p := &OpenAIProvider{Model: "gpt-4o", client: http.DefaultClient}
	if p.IsConfigured() {
		t.Error("provider without key should not be configured")
	}
	if _, err := p.Generate(context.Background(), "s", "u", 100); err == nil {
		t.Error("expected error without API key")
	}
}

func TestAnthropicGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}

		var req struct {
			System   string `json:"system"`
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.System == "" {
			t.Error("expected system prompt in request")
		}

		fmt.Fprint(w, `{"content": [{"type": "text", "text": "claude says hi"}]}`)
	}))
	defer srv.Close()

	p := &AnthropicProvider{
		Model:   "claude-3-sonnet-20240229",
		APIKey:  "test-key",
		BaseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	got, err := p.Generate(context.Background(), "be helpful", "write something", 100)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "claude says hi" {
		t.Errorf("expected 'claude says hi', got %q", got)
	}
}

func TestAnthropicGenerateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"content": []}`)
	}))
	defer srv.Close()

	p := &AnthropicProvider{
		Model:   "claude-3-sonnet-20240229",
		APIKey:  "test-key",
		BaseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := p.Generate(context.Background(), "s", "u", 100); err == nil {
		t.Error("expected error on empty content")
	}
}

func TestCreateProviderPrefersAnthropic(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "ok")
	t.Setenv("TEST_ANTHROPIC_KEY", "ak")

	p := CreateProvider("anthropic", "gpt-4o", "TEST_OPENAI_KEY", "claude-3-sonnet-20240229", "TEST_ANTHROPIC_KEY")
	if _, ok := p.(*AnthropicProvider); !ok {
		t.Errorf("expected AnthropicProvider, got %T", p)
	}
}

func TestCreateProviderRespectsOpenAIPreference(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "ok")
	t.Setenv("TEST_ANTHROPIC_KEY", "ak")

	p := CreateProvider("openai", "gpt-4o", "TEST_OPENAI_KEY", "claude-3-sonnet-20240229", "TEST_ANTHROPIC_KEY")
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("expected OpenAIProvider, got %T", p)
	}
}

func TestCreateProviderFallsBackToOpenAI(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "ok")
	t.Setenv("TEST_ANTHROPIC_KEY", "")

	p := CreateProvider("anthropic", "gpt-4o", "TEST_OPENAI_KEY", "claude-3-sonnet-20240229", "TEST_ANTHROPIC_KEY")
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("expected OpenAIProvider fallback, got %T", p)
	}
}

func TestCreateProviderNoneConfigured(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "")
	t.Setenv("TEST_ANTHROPIC_KEY", "")

	p := CreateProvider("anthropic", "gpt-4o", "TEST_OPENAI_KEY", "claude-3-sonnet-20240229", "TEST_ANTHROPIC_KEY")
	if p != nil {
		t.Errorf("expected nil provider, got %T", p)
	}
}
