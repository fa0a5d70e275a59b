// Package genai talks to the Gemini generateContent REST endpoint.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/pkg/metrics"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-1.5-flash-latest"

	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 1 << 20
	maxErrorLogBytes = 512
)

// Config holds the provider settings. An empty APIKey makes every call fail
// with domain.ErrAdvisorMisconfigured.
type Config struct {
	APIKey          string
	Endpoint        string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// Client implements ports.TextGenerator.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	return &Client{cfg: cfg, http: &http.Client{}, log: log}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt as a single user turn and returns the first text part
// of every candidate. Candidates without text yield "".
func (c *Client) Generate(ctx context.Context, prompt string) ([]string, error) {
	if c.cfg.APIKey == "" {
		return nil, domain.ErrAdvisorMisconfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.AdvisoryUpstreamDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %v", domain.ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()
	metrics.AdvisoryUpstreamDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorLogBytes))
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("generative provider returned an error")
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode}
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrAdvisorUnavailable, err)
	}

	texts := make([]string, 0, len(out.Candidates))
	for _, cand := range out.Candidates {
		text := ""
		if len(cand.Content.Parts) > 0 {
			text = cand.Content.Parts[0].Text
		}
		texts = append(texts, text)
	}
	return texts, nil
}
