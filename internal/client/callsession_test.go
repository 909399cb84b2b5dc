package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/medvox-ai/intake-pipeline/internal/config"
	"github.com/medvox-ai/intake-pipeline/internal/types"
)

func voiceSessionConfig(baseURL string) config.VoiceSessionConfig {
	return config.VoiceSessionConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		AgentID:    "agent-123",
		TimeoutSec: 5,
	}
}

func TestNewUltravoxClient(t *testing.T) {
	client := NewUltravoxClient(voiceSessionConfig("http://localhost:9999/api"))

	if client.httpClient == nil {
		t.Fatal("HTTP client is nil")
	}
	if client.httpClient.endpoint != "http://localhost:9999/api/agents/agent-123/calls" {
		t.Errorf("Unexpected endpoint %s", client.httpClient.endpoint)
	}
	if client.httpClient.httpClient.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", client.httpClient.httpClient.Timeout)
	}
}

func TestUltravoxClient_CreateCall_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.URL.Path != "/agents/agent-123/calls" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("Expected X-API-Key header test-key, got %s", r.Header.Get("X-API-Key"))
		}

		body, _ := io.ReadAll(r.Body)
		if string(body) != "{}" {
			t.Errorf("Expected empty JSON object body, got %q", string(body))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"callId":"call-1","joinUrl":"wss://voice.example.com/join/call-1","created":"2025-06-01T12:00:00Z"}`)
	}))
	defer server.Close()

	client := NewUltravoxClient(voiceSessionConfig(server.URL))

	got, err := client.CreateCall(context.Background())
	if err != nil {
		t.Fatalf("CreateCall failed: %v", err)
	}
	if got.JoinURL != "wss://voice.example.com/join/call-1" {
		t.Errorf("Unexpected joinUrl %s", got.JoinURL)
	}
	if got.CallID != "call-1" {
		t.Errorf("Unexpected callId %s", got.CallID)
	}
}

func TestUltravoxClient_CreateCall_MissingKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := voiceSessionConfig(server.URL)
	cfg.APIKey = ""
	client := NewUltravoxClient(cfg)

	_, err := client.CreateCall(context.Background())
	if called {
		t.Error("Upstream must not be called without an API key")
	}

	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", apiErr.StatusCode)
	}
	if want := "Service temporarily unavailable: Voice AI service not ready."; apiErr.Message != want {
		t.Errorf("Expected message %q, got %q", want, apiErr.Message)
	}
}

func TestUltravoxClient_CreateCall_MissingJoinURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"callId":"call-1"}`)
	}))
	defer server.Close()

	client := NewUltravoxClient(voiceSessionConfig(server.URL))

	_, err := client.CreateCall(context.Background())
	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Code != types.ErrCodeBadUpstreamFormat {
		t.Errorf("Expected code %s, got %s", types.ErrCodeBadUpstreamFormat, apiErr.Code)
	}
	if want := "Failed to get joinUrl from voice AI service."; apiErr.Message != want {
		t.Errorf("Expected message %q, got %q", want, apiErr.Message)
	}
}

func TestUltravoxClient_CreateCall_AgentConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"detail":"Agent already has an active call"}`)
	}))
	defer server.Close()

	client := NewUltravoxClient(voiceSessionConfig(server.URL))

	_, err := client.CreateCall(context.Background())
	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("Expected upstream status 409 to be preserved, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Agent already has an active call" {
		t.Errorf("Expected extracted detail message, got %q", apiErr.Message)
	}
}

func TestUltravoxClient_CreateCall_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewUltravoxClient(voiceSessionConfig(server.URL))

	_, err := client.CreateCall(context.Background())
	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", apiErr.StatusCode)
	}
	if !strings.HasPrefix(apiErr.Message, "Error contacting voice AI service: ") {
		t.Errorf("Unexpected transport message %q", apiErr.Message)
	}
}

func TestUltravoxClient_CreateCall_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"joinUrl":"wss://late"}`)
	}))
	defer server.Close()

	client := NewUltravoxClient(voiceSessionConfig(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.CreateCall(ctx)
	var apiErr *types.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Code != types.ErrCodeUpstreamTimeout {
		t.Errorf("Expected code %s, got %s", types.ErrCodeUpstreamTimeout, apiErr.Code)
	}
	if apiErr.Message != "Voice AI service timeout." {
		t.Errorf("Unexpected timeout message %q", apiErr.Message)
	}
}

func ExampleUltravoxClient_CreateCall() {
	client := NewUltravoxClient(config.VoiceSessionConfig{
		BaseURL:    "https://api.ultravox.ai/api",
		APIKey:     "your-api-key",
		AgentID:    "your-agent-id",
		TimeoutSec: 20,
	})

	session, err := client.CreateCall(context.Background())
	if err != nil {
		// Handle error
		return
	}
	_ = session.JoinURL // Hand the join URL to the browser client
}
