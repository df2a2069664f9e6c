// Package veo is a REST client for the provider's long-running video
// generation API. Every call goes through a failsafe retry policy.
package veo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/failsafe-go/failsafe-go"
)

// APIError is a non-2xx provider answer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL  string
	apiKey   string
	model    string
	http     *http.Client
	executor failsafe.Executor[*http.Response]
	submit   failsafe.Executor[*http.Response]
	log      logging.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithRetry(cfg RetryConfig) Option {
	return func(cl *Client) {
		cl.executor = newExecutor(cfg, shouldRetry)
		cl.submit = newExecutor(cfg, shouldRetrySubmit)
	}
}

func NewClient(baseURL, apiKey, model string, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: 60 * time.Second},
		executor: newExecutor(DefaultRetryConfig(), shouldRetry),
		submit:   newExecutor(DefaultRetryConfig(), shouldRetrySubmit),
		log:      log.With("module", "veo"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit starts a generation job for prompt.
func (c *Client) Submit(ctx context.Context, prompt string) (*Operation, error) {
	body, err := json.Marshal(newPredictRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:predictLongRunning", c.baseURL, c.model)

	var op Operation
	err = c.doJSON(ctx, c.submit, shouldRetrySubmit, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, &op)
	if err != nil {
		return nil, fmt.Errorf("submit job: %w", err)
	}
	return &op, nil
}

// Poll fetches the current state of the job called name.
func (c *Client) Poll(ctx context.Context, name string) (*Operation, error) {
	endpoint := fmt.Sprintf("%s/v1beta/%s", c.baseURL, strings.TrimLeft(name, "/"))

	var op Operation
	err := c.doJSON(ctx, c.executor, shouldRetry, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	}, &op)
	if err != nil {
		return nil, fmt.Errorf("poll job: %w", err)
	}
	return &op, nil
}

// Download fetches the artifact at uri. The credential is added as a
// query parameter here so it never leaves the server.
func (c *Client) Download(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid video uri: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	resp, err := c.do(ctx, c.executor, shouldRetry, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download video: %w", &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)})
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download video: %w", err)
	}
	return data, nil
}

func (c *Client) doJSON(ctx context.Context, exec failsafe.Executor[*http.Response], retryIf func(*http.Response, error) bool,
	build func(context.Context) (*http.Request, error), dst any) error {
	resp, err := c.do(ctx, exec, retryIf, func(ctx context.Context) (*http.Request, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-goog-api-key", c.apiKey)
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do runs one request through exec. Bodies of responses that retryIf
// rejects are closed before the next attempt. Transport errors never carry
// the credential.
func (c *Client) do(ctx context.Context, exec failsafe.Executor[*http.Response], retryIf func(*http.Response, error) bool,
	build func(context.Context) (*http.Request, error)) (*http.Response, error) {
	attempt := 0
	resp, err := exec.WithContext(ctx).Get(func() (*http.Response, error) {
		attempt++
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			err = redactKey(err)
		}
		if retryIf(resp, err) {
			c.log.Debug(ctx, "provider call failed", "attempt", attempt, "error", err)
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
		}
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	if retryIf(resp, nil) {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return resp, nil
}

// redactKey masks the key query parameter in the URL of a transport error.
func redactKey(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		return &url.Error{Op: ue.Op, URL: "[unparsable url]", Err: ue.Err}
	}
	q := u.Query()
	if !q.Has("key") {
		return err
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return &url.Error{Op: ue.Op, URL: u.String(), Err: ue.Err}
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func errorMessage(data []byte) string {
	var body apiErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	return strings.TrimSpace(string(data))
}
