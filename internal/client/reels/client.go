// Package reels requests short videos from the reel proxy.
package reels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/models"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/dmitrijs2005/personadesk/internal/netx"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// APIError is a non-200 answer from the proxy.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("reel proxy: %d %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("reel proxy: %d %s", e.StatusCode, e.Message)
}

type request struct {
	Prompt  string          `json:"prompt"`
	Persona *models.Persona `json:"persona,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// Client talks to the proxy at endpoint. Generation can take minutes; the
// timeout bounds a whole request.
type Client struct {
	endpoint string
	http     *http.Client
	log      logging.Logger
}

func NewClient(endpoint string, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
		log:      log.With("module", "reels"),
	}
}

// Request asks the proxy to render prompt and returns the MP4 bytes.
func (c *Client) Request(ctx context.Context, prompt string, persona *models.Persona) ([]byte, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	start := time.Now()
	resp, err := netx.PostJSON(ctx, c.http, c.endpoint+common.ReelRoute, request{Prompt: prompt, Persona: persona})
	if err != nil {
		return nil, fmt.Errorf("reel request failed: %w", err)
	}

	if !resp.OK() {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body errorBody
		if json.Unmarshal(resp.Body, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.Details = body.Details
		}
		return nil, apiErr
	}
	if !strings.HasPrefix(resp.ContentType, common.VideoContentType) {
		return nil, fmt.Errorf("reel proxy returned %q, want %s", resp.ContentType, common.VideoContentType)
	}

	c.log.Info(ctx, "reel received", "bytes", len(resp.Body), "elapsed", time.Since(start).String())
	return resp.Body, nil
}
