// Package ai talks to the text-completion services used by the chat prompt.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNoProvider = errors.New("no completion provider configured")

// Completer is a text-completion service.
type Completer interface {
	Name() string
	Available() bool
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const (
	ProviderNone      = "none"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Providers lists the accepted provider names.
var Providers = []string{ProviderNone, ProviderGemini, ProviderAnthropic}

// New builds the completer for a provider name.
func New(provider, apiKey, model string) Completer {
	switch provider {
	case ProviderGemini:
		return NewGemini(apiKey, model)
	case ProviderAnthropic:
		return NewAnthropic(apiKey, model)
	default:
		return none{}
	}
}

type none struct{}

func (none) Name() string { return ProviderNone }
func (none) Available() bool { return false }
func (none) Complete(context.Context, string, string) (string, error) {
	return "", ErrNoProvider
}

const systemPrompt = `You are a helpful assistant embedded in a terminal wiki browser.
You help the user think through their pages and surface unstated assumptions.
Be concise. When you mention another page, write it as a [[Page Name]] link.`

const maxContext = 4000

// Ask sends question to c, with the open page (if any) as context.
func Ask(ctx context.Context, c Completer, pageTitle string, pageLines []string, question string) (string, error) {
	if c == nil || !c.Available() {
		return "", ErrNoProvider
	}
	return c.Complete(ctx, systemPrompt, BuildPrompt(pageTitle, pageLines, question))
}

// BuildPrompt assembles the user prompt. Page context is cut at 4000 bytes.
func BuildPrompt(pageTitle string, pageLines []string, question string) string {
	if pageTitle == "" {
		return question
	}
	contextBlock := fmt.Sprintf("Page: %s\n\n%s", pageTitle, strings.Join(pageLines, "\n"))
	if len(contextBlock) > maxContext {
		contextBlock = contextBlock[:maxContext] + "\n... (truncated)"
	}
	return fmt.Sprintf("Context from my page:\n\n%s\n\nQuestion: %s", contextBlock, question)
}
