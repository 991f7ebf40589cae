package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64

	HTTPClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiError struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

// Chat sends a system and user message and returns the complete reply.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	resp, err := c.send(ctx, system, user, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Error != nil {
		return "", fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

// ChatStream requests a streamed completion and invokes fn for each
// content delta as it arrives. An error returned by fn aborts the stream.
func (c *Client) ChatStream(ctx context.Context, system, user string, fn func(delta string) error) error {
	resp, err := c.send(ctx, system, user, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dec := newSSEDecoder(resp.Body)
	for {
		data, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Some providers close the connection without sending [DONE].
				return nil
			}
			return fmt.Errorf("llm stream: %w", err)
		}

		data = bytes.TrimSpace(data)
		if bytes.Equal(data, []byte("[DONE]")) {
			return nil
		}

		var chunk chatChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			// Skip undecodable keep-alive frames.
			continue
		}
		if chunk.Error != nil {
			return fmt.Errorf("llm error: %s", chunk.Error.Message)
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if err := fn(choice.Delta.Content); err != nil {
				return err
			}
		}
	}
}

func (c *Client) send(ctx context.Context, system, user string, stream bool) (*http.Response, error) {
	if c.BaseURL == "" || c.Model == "" {
		return nil, fmt.Errorf("llm: base URL and model required")
	}
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	reqBody, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    messages,
		Stream:      stream,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("llm: API error %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return resp, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
