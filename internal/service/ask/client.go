package ask

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultPath is the endpoint path questions are posted to.
const DefaultPath = "/ask"

// ErrEmptyDocument is returned when the endpoint answers with a JSON null document.
var ErrEmptyDocument = errors.New("ask: response body is a null JSON document")

// Request is the body posted to the endpoint.
type Request struct {
	Question string `json:"question"`
}

// Response is the body the endpoint is expected to answer with.
type Response struct {
	Response json.RawMessage `json:"response"`
}

// Answer extracts the reply text. Anything but a non-empty JSON string yields "".
func (r Response) Answer() string {
	if len(r.Response) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(r.Response, &text); err != nil {
		return ""
	}
	return text
}

// Client posts questions to a question-answering endpoint.
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. The default has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPath overrides the endpoint path appended to the base URL.
func WithPath(path string) Option {
	return func(c *Client) {
		if path = strings.TrimSpace(path); path != "" {
			c.path = path
		}
	}
}

// NewClient creates a client posting to baseURL + DefaultPath unless WithPath says otherwise.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		path:       DefaultPath,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint returns the full URL questions are posted to.
func (c *Client) Endpoint() string {
	if strings.HasPrefix(c.path, "/") {
		return c.baseURL + c.path
	}
	return c.baseURL + "/" + c.path
}

// Ask posts the question and returns the answer text.
// The HTTP status is not inspected: any JSON document is accepted, and one
// without a usable "response" field yields an empty answer with a nil error.
// Non-JSON bodies and a null document are errors.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(Request{Question: question})
	if err != nil {
		return "", fmt.Errorf("encode question: %w", err)
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response (status %d): %w", resp.StatusCode, err)
	}
	// The whole body must be one JSON document; trailing bytes are an error.
	var doc json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", ErrEmptyDocument
	}

	var body Response
	if err := json.Unmarshal(raw, &body); err != nil {
		// Valid JSON that is not an object carries no answer.
		return "", nil
	}
	return body.Answer(), nil
}
