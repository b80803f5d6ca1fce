// Package gemini implements the completion interface using Google Gemini.
package gemini

import (
	"context"

	"github.com/jmilosz/sitechat"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Completer implements sitechat.Completer at compile time.
var _ sitechat.Completer = (*Completer)(nil)

// Completer answers prompts using Google Gemini. It is the hosted
// alternative to the local Ollama completer.
type Completer struct {
	client *genai.Client
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client}
}

// Ping verifies the completer is usable.
func (c *Completer) Ping(ctx context.Context) error {
	if c.client == nil {
		return sitechat.Errorf(sitechat.EUNAVAILABLE, "gemini client not configured")
	}
	return nil
}

// Complete returns the model's response to prompt.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "gemini client not configured")
	}
	if prompt == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		buildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", sitechat.Errorf(sitechat.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// buildConfig returns the GenerateContentConfig for Gemini API calls.
func buildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
