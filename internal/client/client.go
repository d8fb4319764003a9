package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/saferide/saferide/internal/session"
	"github.com/saferide/saferide/pkg/errors"
	"github.com/saferide/saferide/pkg/logger"
)

// Config holds client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the typed consumer of the SafeRide REST API. All state it
// holds is the session; responses are transient copies owned by the
// backend.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	log     *logger.Logger
}

// New creates a new API client.
func New(cfg Config, sess *session.Session, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		session: sess,
		log:     log,
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

// envelope is the uniform response shape of every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
}

// do performs one request and decodes the envelope into out. authed
// requests carry the session bearer token. No call is ever retried.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	if authed {
		token, err := c.session.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.API(0, "request failed", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.API(resp.StatusCode, fmt.Sprintf("malformed response from %s", path), err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := ""
		if env.Error != nil {
			msg = env.Error.Message
		}
		c.log.Warn("api call failed",
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.String("message", msg),
		)
		return errors.API(resp.StatusCode, msg, nil)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}
