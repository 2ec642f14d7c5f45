package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafiki18/archviz/pkg/errors"
	"github.com/rafiki18/archviz/pkg/render"
)

// State is the lifecycle state of one generator within a run.
// States only move forward: Pending, Running, then Succeeded or Failed.
// A generator skipped by cancellation goes straight from Pending to Failed.
type State int

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s State) Terminal() bool { return s == StateSucceeded || s == StateFailed }

// Result is the outcome of one generator.
type Result struct {
	Name   string
	Output string // path of the image, relative to the working directory
	State  State
	Err    error

	// Message is the renderer's diagnostic output for render failures and
	// the error message otherwise. Empty on success.
	Message  string
	Duration time.Duration
}

// OK reports whether the generator succeeded.
func (r Result) OK() bool { return r.State == StateSucceeded }

// advance moves r to s. Backward moves are ignored.
func (r *Result) advance(s State) {
	if s > r.State && !r.State.Terminal() {
		r.State = s
	}
}

func (r *Result) fail(err error) {
	r.advance(StateFailed)
	r.Err = err
	r.Message = failureMessage(err)
}

func failureMessage(err error) string {
	if s := render.Stderr(err); s != "" {
		return s
	}
	return errors.UserMessage(err)
}

// Report summarizes a run. Results are in declaration order.
type Report struct {
	RunID   uuid.UUID
	Results []Result
}

// Attempted returns the number of generators in the run.
func (r Report) Attempted() int { return len(r.Results) }

// Succeeded returns the number of generators that produced their image.
func (r Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of generators that did not.
func (r Report) Failed() int { return r.Attempted() - r.Succeeded() }

// OK reports whether every generator succeeded.
func (r Report) OK() bool { return r.Failed() == 0 }

// Failures returns the failed results.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}
