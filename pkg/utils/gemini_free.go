package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiTipsClient generates tips with Google's Gemini models
type GeminiTipsClient struct {
	client *genai.Client
	model  string
}

func NewGeminiTipsClient(apiKey, model string) (*GeminiTipsClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTipsClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiTipsClient) GenerateTips(ctx context.Context, p TipsPrompt) (string, error) {
	tips, err := c.generate(ctx, tipsSystemPrompt, BuildTipsPrompt(p), 0.4)
	if err != nil {
		return "", err
	}
	if tips == "" {
		return "", fmt.Errorf("gemini: empty tips")
	}
	return tips, nil
}

func (c *GeminiTipsClient) Chat(ctx context.Context, prompt string) (string, error) {
	answer, err := c.generate(ctx, chatSystemPrompt, prompt, 0.7)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("gemini: empty answer")
	}
	return answer, nil
}

func (c *GeminiTipsClient) generate(ctx context.Context, system, user string, temperature float32) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(400)
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: no content")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return cleanTips(b.String()), nil
}

func (c *GeminiTipsClient) Close() error {
	return c.client.Close()
}
