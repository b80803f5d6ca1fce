// Package ollama implements the embedding and completion interfaces
// against a local Ollama server's HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jmilosz/sitechat"
)

const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultEmbedModel = "mxbai-embed-large"
	DefaultChatModel  = "qwen3:8b"

	defaultTimeout = 120 * time.Second
)

// Compile-time interface verification.
var (
	_ sitechat.Embedder  = (*Client)(nil)
	_ sitechat.Completer = (*Client)(nil)
)

// Client talks to an Ollama server. It serves both as the embedder for
// indexing and as the completer for chat.
type Client struct {
	baseURL    string
	embedModel string
	chatModel  string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the server address.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithEmbedModel overrides the embedding model.
func WithEmbedModel(model string) ClientOption {
	return func(c *Client) {
		c.embedModel = model
	}
}

// WithChatModel overrides the completion model.
func WithChatModel(model string) ClientOption {
	return func(c *Client) {
		c.chatModel = model
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client with default models pointed at the default
// local server.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		embedModel: DefaultEmbedModel,
		chatModel:  DefaultChatModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping verifies the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/version", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sitechat.Errorf(sitechat.EUNAVAILABLE, "ollama server unreachable at %s", c.baseURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return sitechat.Errorf(sitechat.EUNAVAILABLE, "ollama server returned HTTP %d", resp.StatusCode)
	}
	return nil
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var out embedResponse
	if err := c.post(ctx, "/api/embeddings", embedRequest{Model: c.embedModel, Prompt: text}, &out); err != nil {
		return nil, err
	}
	if len(out.Embedding) == 0 {
		return nil, sitechat.Errorf(sitechat.EINTERNAL, "ollama returned an empty embedding")
	}
	vec := make([]float32, len(out.Embedding))
	for i, v := range out.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete returns the model's full response to prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	if err := c.post(ctx, "/api/generate", generateRequest{Model: c.chatModel, Prompt: prompt}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sitechat.Errorf(sitechat.EUNAVAILABLE, "ollama request failed: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ollama %s returned HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
