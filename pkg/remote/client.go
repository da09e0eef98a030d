package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/oneresume/pkg/session"
)

// DefaultBaseURL is used when no base address is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client is a minimal JSON client for the OneResume API.
// It performs exactly one attempt per call: no retries and no client-side
// timeout, the caller's context bounds the request.
type Client struct {
	BaseURL string
	httpDo  *http.Client
	logger  *slog.Logger
}

func New(baseURL string, logger *slog.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL: baseURL,
		httpDo:  &http.Client{},
		logger:  logger,
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpDo = hc
	}
	return c
}

// Call sends body (JSON encoded, may be nil) to path and decodes the reply
// into T. A 204 reply yields the zero T without touching the body.
func Call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	raw, status, err := c.do(ctx, method, path, body)
	if err != nil {
		return out, err
	}
	if status == http.StatusNoContent {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return out, nil
}

// Exec is Call for endpoints whose reply body is ignored.
func Exec(ctx context.Context, c *Client, method, path string, body any) error {
	_, _, err := c.do(ctx, method, path, body)
	return err
}

// DownloadURL builds the document download reference for a generated
// resume. It is never fetched through Call.
func (c *Client) DownloadURL(resumeID, format string) string {
	if format == "" {
		format = "pdf"
	}
	return fmt.Sprintf("%s/api/resumes/%s/download?format=%s",
		c.BaseURL, url.PathEscape(resumeID), url.QueryEscape(format))
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	rid := RequestID(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", rid)
	if s, ok := session.FromContext(ctx); ok {
		if s.Token != "" {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
		if s.UserID != "" {
			req.Header.Set("X-User-ID", s.UserID)
		}
	}

	start := time.Now()
	resp, err := c.httpDo.Do(req)
	if err != nil {
		c.logger.Warn("remote call failed", "method", method, "path", path, "request_id", rid, "error", err)
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	c.logger.Debug("remote call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency", time.Since(start),
		"request_id", rid,
	)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &ServiceError{Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, resp.StatusCode, nil
}

type requestIDKey struct{}

// WithRequestID makes outbound calls reuse an inbound request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
