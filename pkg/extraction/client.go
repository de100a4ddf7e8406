package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/interfaces"
)

// DefaultEndpoint is the production extraction service URL.
const DefaultEndpoint = "https://nero-bot-dev.up.railway.app/extract_solution"

const (
	defaultUserAgent = "go-leadform"
	maxResponseBytes = 1 << 20
	maxErrorBody     = 512
)

// Call outcomes reported to a Recorder.
const (
	OutcomeSuccess   = "success"
	OutcomeStatus    = "status_error"
	OutcomeDecode    = "decode_error"
	OutcomeTransport = "transport_error"
	OutcomeContract  = "contract_error"
)

// Recorder observes every call made by the client.
type Recorder interface {
	ObserveExtraction(outcome string, elapsed time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithHTTPClient injects the HTTP client. Timeouts are the client's concern;
// the extraction client adds none.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(agent); trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// WithContract enables request and response checks against contract.
func WithContract(contract *Contract) Option {
	return func(c *Client) {
		c.contract = contract
	}
}

// WithLogger sets the logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the call observer.
func WithRecorder(recorder Recorder) Option {
	return func(c *Client) {
		c.recorder = recorder
	}
}

// Client posts lead payloads to the extraction service.
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	contract   *Contract
	logger     interfaces.Logger
	recorder   Recorder
	now        func() time.Time
}

// NewClient constructs a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
		logger:     logging.NoOp(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Extract sends payload and returns the markdown content of the answer. The
// request is made exactly once; there are no retries.
func (c *Client) Extract(ctx context.Context, payload Payload) (string, error) {
	started := c.now()
	outcome := OutcomeSuccess
	defer func() {
		if c.recorder != nil {
			c.recorder.ObserveExtraction(outcome, c.now().Sub(started))
		}
	}()

	logger := logging.FromContext(ctx, c.logger)

	body, err := json.Marshal(payload)
	if err != nil {
		outcome = OutcomeDecode
		return "", wrapDecode(fmt.Errorf("extraction: encode payload: %w", err))
	}
	if c.contract != nil {
		if err := c.contract.ValidateRequest(body); err != nil {
			outcome = OutcomeContract
			return "", wrapContract(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		outcome = OutcomeTransport
		return "", wrapTransport(fmt.Errorf("extraction: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger.Debug("extraction.request", "endpoint", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = OutcomeTransport
		return "", wrapTransport(fmt.Errorf("extraction: post: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		outcome = OutcomeTransport
		return "", wrapTransport(fmt.Errorf("extraction: read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = OutcomeStatus
		return "", wrapStatus(&StatusError{StatusCode: resp.StatusCode, Body: truncate(raw, maxErrorBody)})
	}

	if !gjson.ValidBytes(raw) {
		outcome = OutcomeDecode
		return "", wrapDecode(fmt.Errorf("%w: body is not JSON", ErrMalformedResponse))
	}
	result := gjson.GetBytes(raw, "content")
	if result.Type != gjson.String {
		outcome = OutcomeDecode
		return "", wrapDecode(fmt.Errorf("%w: content is missing or not a string", ErrMalformedResponse))
	}
	if c.contract != nil {
		if err := c.contract.ValidateResponse(raw); err != nil {
			outcome = OutcomeContract
			return "", wrapContract(err)
		}
	}

	logger.Debug("extraction.response", "status", resp.StatusCode, "bytes", len(raw))
	return result.String(), nil
}

func truncate(raw []byte, limit int) string {
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit])
}
