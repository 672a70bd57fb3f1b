// Package ollama implements the oracle contract against a local Ollama
// instance.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/oracle"
)

// Provider calls the Ollama generate API with the shared interview prompts.
type Provider struct {
	client *resty.Client
	model  string
}

var _ oracle.Client = (*Provider)(nil)

// New creates a provider for the given base URL and model. An empty base URL
// falls back to the conventional local endpoint.
func New(baseURL, generationModel string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Provider{client: c, model: generationModel}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (p *Provider) GeneratePhaseQuestions(ctx context.Context, phase int, symptoms string, asked []model.Question, answers []model.Answer) ([]model.Question, error) {
	prompt, err := oracle.BuildPhasePrompt(phase, symptoms, asked, answers)
	if err != nil {
		return nil, err
	}
	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return oracle.ParseQuestionList(raw)
}

func (p *Provider) GenerateRecommendation(ctx context.Context, symptoms string, asked []model.Question, answers []model.Answer) (*model.Recommendation, error) {
	prompt, err := oracle.BuildRecommendationPrompt(symptoms, asked, answers)
	if err != nil {
		return nil, err
	}
	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return oracle.ParseRecommendation(raw)
}

func (p *Provider) generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&generateRequest{Model: p.model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode(), resp.String())
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}
	return out.Response, nil
}

// HealthPing checks the configured model is present on the instance.
func (p *Provider) HealthPing(ctx context.Context) error {
	var data struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	resp, err := p.client.R().SetContext(ctx).SetResult(&data).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	for _, m := range data.Models {
		if m.Name == p.model {
			return nil
		}
	}
	return fmt.Errorf("model %s not found", p.model)
}
