package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerFlagCoversSubmission(t *testing.T) {
	c := NewController()
	assert.False(t, c.State().Submitting)

	st, err := c.Submit(context.Background(), func(ctx context.Context) (string, error) {
		assert.True(t, c.State().Submitting)
		return "Recipe created successfully", nil
	})
	require.NoError(t, err)
	assert.Equal(t, State{Message: "Recipe created successfully"}, st)
	assert.Equal(t, st, c.State())
}

func TestControllerFailureClearsFlag(t *testing.T) {
	c := NewController()
	boom := errors.New("boom")

	st, err := c.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "Error creating recipe", boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, st.Submitting)
	assert.Equal(t, "Error creating recipe", c.State().Message)
}

func TestControllerRejectsConcurrentSubmit(t *testing.T) {
	c := NewController()
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)

	go func() {
		_, err := c.Submit(context.Background(), func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "ok", nil
		})
		done <- err
	}()

	<-started
	st, err := c.Submit(context.Background(), func(ctx context.Context) (string, error) {
		t.Error("second submission must not run")
		return "", nil
	})
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.True(t, st.Submitting)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.State().Submitting)
}

func TestControllerIgnoresCallerCancellation(t *testing.T) {
	c := NewController()
	ctx, cancel := context.WithCancel(context.Background())

	_, err := c.Submit(ctx, func(runCtx context.Context) (string, error) {
		cancel()
		assert.NoError(t, runCtx.Err())
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", c.State().Message)
}
