// Package reels drives one video generation job from submission to the
// downloaded artifact.
package reels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/dmitrijs2005/personadesk/internal/server/veo"
)

// State is a phase of a generation job.
type State int

const (
	Submitted State = iota
	Polling
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Submitted:
		return "submitted"
	case Polling:
		return "polling"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrNoVideoURI      = errors.New("generation completed but returned no video URI")
	ErrPollLimit       = errors.New("generation did not complete within the poll limit")
	ErrGenerationError = errors.New("generation failed")
)

// JobError reports the phase a job failed in.
type JobError struct {
	State State
	Err   error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s: %v", e.State, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }

// Provider is the remote video generation service.
type Provider interface {
	Submit(ctx context.Context, prompt string) (*veo.Operation, error)
	Poll(ctx context.Context, name string) (*veo.Operation, error)
	Download(ctx context.Context, uri string) ([]byte, error)
}

// Generator runs jobs against a Provider, waiting interval between polls
// and giving up after maxAttempts polls.
type Generator struct {
	provider    Provider
	interval    time.Duration
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
	log         logging.Logger
}

func NewGenerator(p Provider, interval time.Duration, maxAttempts int, log logging.Logger) *Generator {
	return &Generator{
		provider:    p,
		interval:    interval,
		maxAttempts: maxAttempts,
		sleep:       sleepCtx,
		log:         log.With("module", "reels"),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Generate submits prompt, polls until the job is done and returns the
// video bytes. The caller's cancellation does not stop a running job; only
// the attempt ceiling does.
func (g *Generator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	ctx = context.WithoutCancel(ctx)

	g.log.Info(ctx, "starting generation", "prompt", preview(prompt, 50))

	op, err := g.provider.Submit(ctx, prompt)
	if err != nil {
		return nil, g.fail(ctx, Submitted, err)
	}
	g.log.Info(ctx, "operation launched", "operation", op.Name)

	for attempt := 1; !op.Done; attempt++ {
		if attempt > g.maxAttempts {
			return nil, g.fail(ctx, Polling, fmt.Errorf("%w (%d attempts)", ErrPollLimit, g.maxAttempts))
		}
		if err := g.sleep(ctx, g.interval); err != nil {
			return nil, g.fail(ctx, Polling, err)
		}
		g.log.Debug(ctx, "polling operation", "operation", op.Name, "attempt", attempt)

		name := op.Name
		op, err = g.provider.Poll(ctx, name)
		if err != nil {
			return nil, g.fail(ctx, Polling, err)
		}
	}

	if op.Error != nil {
		return nil, g.fail(ctx, Complete, fmt.Errorf("%w: %s", ErrGenerationError, op.Error.Message))
	}

	uri := op.VideoURI()
	if uri == "" {
		return nil, g.fail(ctx, Complete, ErrNoVideoURI)
	}
	g.log.Info(ctx, "generation complete", "operation", op.Name)

	data, err := g.provider.Download(ctx, uri)
	if err != nil {
		return nil, g.fail(ctx, Complete, err)
	}
	return data, nil
}

func (g *Generator) fail(ctx context.Context, state State, err error) error {
	g.log.Error(ctx, "generation failed", "state", state.String(), "error", err)
	return &JobError{State: state, Err: err}
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
