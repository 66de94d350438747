package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/autoinfra/autoinfra/pkg/api"
)

// Extractor turns a free-text infrastructure description into an Intent.
// When an API key is configured it asks an OpenAI-compatible chat endpoint
// for a JSON intent; on any failure, or with no key at all, it degrades to
// the keyword heuristic. Extract never returns an error: the heuristic is
// total and ApplyDefaults runs last in every path.
type Extractor struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// ExtractorOptions configures the LLM path of the Extractor.
type ExtractorOptions struct {
	APIKey  string
	Model   string        // default gpt-4o-mini
	BaseURL string        // default https://api.openai.com/v1
	Timeout time.Duration // default 15s
	Logger  *slog.Logger
}

// NewExtractor creates an Extractor. A zero options value yields a
// heuristic-only extractor.
func NewExtractor(opts ExtractorOptions) *Extractor {
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Extractor{
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		logger:  opts.Logger,
	}
}

// Extract produces a fully-defaulted Intent for the description.
func (e *Extractor) Extract(ctx context.Context, description string) api.Intent {
	if e.apiKey == "" {
		return ApplyDefaults(Heuristic(description))
	}

	in, err := e.extractLLM(ctx, description)
	if err != nil {
		e.logger.Warn("intent extraction via LLM failed, using heuristic", "error", err)
		in = Heuristic(description)
	}
	return ApplyDefaults(in)
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const extractionPrompt = `Extract a JSON object describing the requested infrastructure with keys:
cloud, app, database, architecture, availability, load_balancer, region,
instance_type, app_count, database_type, security. Respond with JSON only.`

func (e *Extractor) extractLLM(ctx context.Context, description string) (api.Intent, error) {
	body, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: extractionPrompt},
			{Role: "user", Content: description},
		},
		MaxTokens: 512,
	})
	if err != nil {
		return api.Intent{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return api.Intent{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return api.Intent{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return api.Intent{}, fmt.Errorf("chat completion returned status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return api.Intent{}, err
	}
	if len(cr.Choices) == 0 {
		return api.Intent{}, fmt.Errorf("chat completion returned no choices")
	}

	var in api.Intent
	if err := json.Unmarshal([]byte(stripFences(cr.Choices[0].Message.Content)), &in); err != nil {
		return api.Intent{}, fmt.Errorf("parse intent JSON: %w", err)
	}
	return in, nil
}

// stripFences removes a markdown code fence the model may wrap around the
// JSON payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// Heuristic is the keyword fallback. It scans the lowercased description
// for runtime, database, and topology signals.
func Heuristic(description string) api.Intent {
	d := strings.ToLower(description)

	app := "other"
	switch {
	case strings.Contains(d, "node"):
		app = "nodejs"
	case strings.Contains(d, "go"):
		app = "golang"
	case strings.Contains(d, "python"):
		app = "python"
	case strings.Contains(d, "java"):
		app = "java"
	}

	database := "none"
	switch {
	case strings.Contains(d, "mongo"):
		database = "mongodb"
	case strings.Contains(d, "mysql"):
		database = "mysql"
	case strings.Contains(d, "postgres"):
		database = "postgresql"
	}

	loadBalancer := false
	for _, kw := range []string{"load balancer", "alb", "loadbalancer", "high availability", "ha"} {
		if strings.Contains(d, kw) {
			loadBalancer = true
			break
		}
	}

	availability := "standard"
	if strings.Contains(d, "high") || strings.Contains(d, "redund") || strings.Contains(d, "availability") {
		availability = "high"
	}

	appCount := 1
	if loadBalancer || availability == "high" {
		appCount = 2
	}

	architecture := "serverless"
	if database != "none" {
		architecture = "2-tier"
		if loadBalancer {
			architecture = "3-tier"
		}
	}

	databaseType := "ec2"
	if strings.Contains(d, "rds") || strings.Contains(d, "managed") {
		databaseType = "rds"
	}

	return api.Intent{
		Cloud:        "aws",
		App:          app,
		Database:     database,
		Architecture: architecture,
		Availability: availability,
		LoadBalancer: loadBalancer,
		Security:     []string{"private_vpc", "security_groups"},
		Region:       "us-east-1",
		InstanceType: "t2.micro",
		AppCount:     appCount,
		DatabaseType: databaseType,
	}
}
