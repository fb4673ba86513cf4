package form

import (
	"context"
	"errors"
	"sync"
)

// ErrOverlayClosed is returned when submitting an overlay that already closed.
var ErrOverlayClosed = errors.New("form overlay is closed")

// Phase is the state of an overlay form.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseClosed     Phase = "closed"
)

// Overlay is the modal form used for login and registration.
//
//	idle -> submitting          on submit
//	submitting -> closed        on success, onClose is invoked
//	submitting -> idle          on failure, the message is kept
type Overlay struct {
	mu      sync.Mutex
	phase   Phase
	message string
	onClose func()
}

// NewOverlay returns an idle overlay. onClose may be nil.
func NewOverlay(onClose func()) *Overlay {
	return &Overlay{phase: PhaseIdle, onClose: onClose}
}

func (o *Overlay) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Idle reports whether the overlay is not submitting.
func (o *Overlay) Idle() bool {
	return o.Phase() != PhaseSubmitting
}

func (o *Overlay) Message() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.message
}

// Submit runs fn detached from ctx's cancellation. On failure the overlay
// returns to idle showing failureMessage(err).
func (o *Overlay) Submit(ctx context.Context, fn func(ctx context.Context) error, failureMessage func(error) string) error {
	o.mu.Lock()
	switch o.phase {
	case PhaseSubmitting:
		o.mu.Unlock()
		return ErrSubmissionInProgress
	case PhaseClosed:
		o.mu.Unlock()
		return ErrOverlayClosed
	}
	o.phase = PhaseSubmitting
	o.message = ""
	o.mu.Unlock()

	err := fn(context.WithoutCancel(ctx))

	o.mu.Lock()
	if err != nil {
		o.phase = PhaseIdle
		o.message = failureMessage(err)
		o.mu.Unlock()
		return err
	}
	o.phase = PhaseClosed
	onClose := o.onClose
	o.mu.Unlock()

	if onClose != nil {
		onClose()
	}
	return nil
}
