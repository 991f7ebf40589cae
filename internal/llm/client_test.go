package llm

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func TestChat(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "grok-beta",
		APIKey:  "k",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if got := req.Header.Get("Authorization"); got != "Bearer k" {
					t.Fatalf("bad auth header %q", got)
				}
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`)),
					Header:     make(http.Header),
				}
			}),
		},
	}
	out, err := client.Chat(context.Background(), "system", "user prompt")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out != "hi" {
		t.Fatalf("unexpected chat output %s", out)
	}
}

func TestChatErrorPayload(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "grok-beta",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"bad"}}`)),
					Header:     make(http.Header),
				}
			}),
		},
	}
	if _, err := client.Chat(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
}

const sampleSSE = `data: {"choices":[{"delta":{"role":"assistant"}}]}

data: {"choices":[{"delta":{"content":"Selected "}}]}

data: {"choices":[{"delta":{"content":"CDA Model"}}]}

data: [DONE]

`

func TestChatStream(t *testing.T) {
	client := &Client{
		BaseURL:     "https://api.test/v1/chat/completions",
		Model:       "grok-beta",
		MaxTokens:   4000,
		Temperature: 0.3,
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				body, _ := io.ReadAll(req.Body)
				for _, want := range []string{`"stream":true`, `"max_tokens":4000`, `"temperature":0.3`} {
					if !strings.Contains(string(body), want) {
						t.Fatalf("request body missing %s: %s", want, body)
					}
				}
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(sampleSSE)),
					Header:     make(http.Header),
				}
			}),
		},
	}

	var got []string
	err := client.ChatStream(context.Background(), "system", "user", func(delta string) error {
		got = append(got, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	if joined := strings.Join(got, ""); joined != "Selected CDA Model" {
		t.Fatalf("deltas = %q", joined)
	}
}

func TestChatStreamEOFWithoutDone(t *testing.T) {
	body := "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n\n"
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "grok-beta",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(body)),
					Header:     make(http.Header),
				}
			}),
		},
	}

	var got string
	err := client.ChatStream(context.Background(), "s", "u", func(delta string) error {
		got += delta
		return nil
	})
	if err != nil {
		t.Fatalf("ChatStream: %v", err)
	}
	if got != "partial" {
		t.Fatalf("deltas = %q", got)
	}
}

func TestChatStreamHTTPError(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "grok-beta",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 401,
					Body:       io.NopCloser(strings.NewReader(`{"error":"invalid api key"}`)),
					Header:     make(http.Header),
				}
			}),
		},
	}
	err := client.ChatStream(context.Background(), "s", "u", func(string) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestChatStreamCallbackAbort(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "grok-beta",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return &http.Response{
					StatusCode: 200,
					Body:       io.NopCloser(strings.NewReader(sampleSSE)),
					Header:     make(http.Header),
				}
			}),
		},
	}
	calls := 0
	err := client.ChatStream(context.Background(), "s", "u", func(string) error {
		calls++
		return io.ErrClosedPipe
	})
	if err != io.ErrClosedPipe {
		t.Fatalf("expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("callback called %d times, want 1", calls)
	}
}
