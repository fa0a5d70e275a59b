package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

func TestClient_Generate_Success(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "k" {
			t.Errorf("api key header missing")
		}
		if r.URL.Query().Get("key") != "" {
			t.Errorf("api key must not travel in the query string")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[
			{"content":{"parts":[{"text":"Reduce kiln speed"},{"text":"ignored"}]}},
			{"content":{"parts":[]}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL + "/", Model: "test-model", Temperature: 0.7, MaxOutputTokens: 400}, zerolog.Nop())
	texts, err := c.Generate(context.Background(), "how is the kiln?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(texts) != 2 || texts[0] != "Reduce kiln speed" || texts[1] != "" {
		t.Fatalf("unexpected texts %q", texts)
	}
	if len(got.Contents) != 1 || got.Contents[0].Role != "user" || got.Contents[0].Parts[0].Text != "how is the kiln?" {
		t.Fatalf("unexpected request body %+v", got)
	}
	if got.GenerationConfig.Temperature != 0.7 || got.GenerationConfig.MaxOutputTokens != 400 {
		t.Fatalf("unexpected generation config %+v", got.GenerationConfig)
	}
}

func TestClient_Generate_MissingKey(t *testing.T) {
	c := NewClient(Config{}, zerolog.Nop())
	if _, err := c.Generate(context.Background(), "x"); !errors.Is(err, domain.ErrAdvisorMisconfigured) {
		t.Fatalf("expected ErrAdvisorMisconfigured, got %v", err)
	}
}

func TestClient_Generate_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL}, zerolog.Nop())
	_, err := c.Generate(context.Background(), "x")

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected UpstreamError 429, got %v", err)
	}
	if !errors.Is(err, domain.ErrAdvisorUnavailable) {
		t.Fatalf("UpstreamError must unwrap to ErrAdvisorUnavailable")
	}
}

func TestClient_Generate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
	if _, err := c.Generate(context.Background(), "x"); !errors.Is(err, domain.ErrAdvisorUnavailable) {
		t.Fatalf("expected ErrAdvisorUnavailable, got %v", err)
	}
}

func TestClient_Generate_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", Endpoint: srv.URL}, zerolog.Nop())
	if _, err := c.Generate(context.Background(), "x"); !errors.Is(err, domain.ErrAdvisorUnavailable) {
		t.Fatalf("expected ErrAdvisorUnavailable, got %v", err)
	}
}
