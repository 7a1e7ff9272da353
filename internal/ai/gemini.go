// Package ai wraps the upstream generative AI API used by the chat assistant.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"echo/internal/models"
	"echo/internal/observability"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// The assistant persona sent as the system instruction on every request.
const systemInstruction = "You are Echo, a helpful social media guide for the Echo platform. " +
	"Help users compose tweets, understand features like following, likes and bookmarks, " +
	"and answer questions about the platform. Keep answers short and friendly."

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Gemini client. An empty API key yields a client whose
// Chat always fails with a validation error, so the route can still mount.
func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL overrides the upstream endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the user's message with the assistant persona and returns the
// model's reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if c.apiKey == "" {
		return "", models.NewValidationError("AI chat is not configured")
	}

	body := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents: []content{
			{Role: "user", Parts: []part{{Text: message}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 500,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observability.AIChatLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", models.NewInternalError(err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", models.NewInternalError(fmt.Errorf("unexpected AI response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil {
			return "", models.NewInternalError(fmt.Errorf("AI upstream error %d: %s", decoded.Error.Code, decoded.Error.Message))
		}
		return "", models.NewInternalError(fmt.Errorf("AI upstream returned status %d", resp.StatusCode))
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", models.NewInternalError(fmt.Errorf("AI upstream returned no candidates"))
	}

	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
