package utils

import (
	"context"
	"fmt"
	"strings"
)

// TipsPrompt is what the tips generator knows about a user.
type TipsPrompt struct {
	FirstName string
	// Behaviors are titles, high priority ones first.
	Behaviors []string
	// Answers pairs a question text with the user's answer rendered as text.
	Answers [][2]string
	// Goal is the goal the user set for today, if any.
	Goal string
}

type TipsGeneratorInterface interface {
	GenerateTips(ctx context.Context, prompt TipsPrompt) (string, error)
	// Chat answers a free-form question in the coach persona.
	Chat(ctx context.Context, prompt string) (string, error)
	Close() error
}

// NewTipsGenerator builds a generator for provider "openai", "gemini" or "none".
func NewTipsGenerator(provider, apiKey, model string) (TipsGeneratorInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		return NewOpenAITipsClient(apiKey, model), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		return NewGeminiTipsClient(apiKey, model)
	case "", "none":
		return NoopTipsGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai', 'gemini' or 'none'", provider)
	}
}

// NoopTipsGenerator is used when no provider is configured.
type NoopTipsGenerator struct{}

func (NoopTipsGenerator) GenerateTips(context.Context, TipsPrompt) (string, error) {
	return "", ErrTipsUnavailable
}

func (NoopTipsGenerator) Chat(context.Context, string) (string, error) {
	return "", ErrTipsUnavailable
}

func (NoopTipsGenerator) Close() error { return nil }

const tipsSystemPrompt = `You are a friendly nutrition coach. Write 3 short, practical tips for today
that help the user work on their eating behaviors. Plain text, one tip per line,
no numbering, no markdown.`

const chatSystemPrompt = `You are a friendly nutrition coach. Answer the user's question about food and
eating habits briefly and practically. Plain text, no markdown.`

func BuildTipsPrompt(p TipsPrompt) string {
	var b strings.Builder
	name := p.FirstName
	if name == "" {
		name = "the user"
	}
	fmt.Fprintf(&b, "Tips for %s.\n", name)

	b.WriteString("Behaviors they want to change:\n")
	if len(p.Behaviors) == 0 {
		b.WriteString("- (none selected)\n")
	}
	for _, t := range p.Behaviors {
		fmt.Fprintf(&b, "- %s\n", t)
	}

	if p.Goal != "" {
		fmt.Fprintf(&b, "Today's goal: %s\n", p.Goal)
	}

	if len(p.Answers) > 0 {
		b.WriteString("Profile answers:\n")
		for _, qa := range p.Answers {
			fmt.Fprintf(&b, "- %s: %s\n", qa[0], qa[1])
		}
	}
	return b.String()
}

func cleanTips(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
