// Package form implements the state kept behind the application's forms:
// field validation, the submission-in-progress flag with its feedback
// message, and the login/registration overlay.
package form

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmissionInProgress is returned when a form is submitted while a
// previous submission of the same form has not finished.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// State is the externally visible state of a form.
type State struct {
	Submitting bool   `json:"submitting"`
	Message    string `json:"message"`
}

// Controller tracks one form instance. Submitting is true for exactly the
// interval in which a submission runs.
type Controller struct {
	mu         sync.Mutex
	submitting bool
	message    string
}

func NewController() *Controller {
	return &Controller{}
}

// State returns a snapshot of the form state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Submitting: c.submitting, Message: c.message}
}

// Submit runs fn with the submitting flag set and stores the message fn
// returns, whether it succeeds or fails. fn runs on a context that is not
// cancelled with ctx: once started a submission always completes.
func (c *Controller) Submit(ctx context.Context, fn func(ctx context.Context) (string, error)) (State, error) {
	c.mu.Lock()
	if c.submitting {
		st := State{Submitting: true, Message: c.message}
		c.mu.Unlock()
		return st, ErrSubmissionInProgress
	}
	c.submitting = true
	c.mu.Unlock()

	msg, err := fn(context.WithoutCancel(ctx))

	c.mu.Lock()
	c.submitting = false
	c.message = msg
	st := State{Message: msg}
	c.mu.Unlock()
	return st, err
}

// Idle reports whether no submission is running.
func (c *Controller) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.submitting
}
