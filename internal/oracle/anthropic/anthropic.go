// Package anthropic implements the oracle contract using the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/oracle"
)

const maxTokens = 1024

// Provider sends the shared interview prompts to the Messages API and parses
// the text response strictly.
type Provider struct {
	client sdk.Client
	model  string
}

var _ oracle.Client = (*Provider)(nil)

// New creates a provider that reads ANTHROPIC_API_KEY from the environment.
func New(generationModel string) *Provider {
	return &Provider{client: sdk.NewClient(), model: generationModel}
}

// NewWithKey creates a provider with an explicit API key.
func NewWithKey(apiKey, generationModel string) *Provider {
	return &Provider{client: sdk.NewClient(option.WithAPIKey(apiKey)), model: generationModel}
}

func (p *Provider) GeneratePhaseQuestions(ctx context.Context, phase int, symptoms string, asked []model.Question, answers []model.Answer) ([]model.Question, error) {
	prompt, err := oracle.BuildPhasePrompt(phase, symptoms, asked, answers)
	if err != nil {
		return nil, err
	}
	raw, err := p.complete(ctx, prompt)
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
	raw, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return oracle.ParseRecommendation(raw)
}

func (p *Provider) complete(ctx context.Context, prompt string) (string, error) {
	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}
	var out string
	for _, block := range msg.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	if out == "" {
		return "", fmt.Errorf("anthropic response contained no text")
	}
	return out, nil
}
