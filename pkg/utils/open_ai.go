package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAITipsClient struct {
	client *openai.Client
	model  string
}

func NewOpenAITipsClient(apiKey, model string) *OpenAITipsClient {
	return NewOpenAITipsClientWithConfig(openai.DefaultConfig(apiKey), model)
}

func NewOpenAITipsClientWithConfig(cfg openai.ClientConfig, model string) *OpenAITipsClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITipsClient{client: openai.NewClientWithConfig(cfg), model: model}
}

func (c *OpenAITipsClient) GenerateTips(ctx context.Context, p TipsPrompt) (string, error) {
	tips, err := c.complete(ctx, tipsSystemPrompt, BuildTipsPrompt(p), 0.4)
	if err != nil {
		return "", err
	}
	if tips == "" {
		return "", fmt.Errorf("openai: empty tips")
	}
	return tips, nil
}

func (c *OpenAITipsClient) Chat(ctx context.Context, prompt string) (string, error) {
	answer, err := c.complete(ctx, chatSystemPrompt, prompt, 0.7)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", fmt.Errorf("openai: empty answer")
	}
	return answer, nil
}

func (c *OpenAITipsClient) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   400,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no content")
	}
	return cleanTips(resp.Choices[0].Message.Content), nil
}

func (c *OpenAITipsClient) Close() error { return nil }
