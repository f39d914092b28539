package sender

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherExecutesQueuedJobs(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 16})

	var done atomic.Int64
	for i := 0; i < 10; i++ {
		err := d.Enqueue(context.Background(), "send.text", func() error {
			done.Add(1)
			return nil
		})
		require.NoError(t, err)
	}
	d.Close()

	assert.Equal(t, int64(10), done.Load())
	assert.Zero(t, d.ErrorCount())
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(Options{})
	d.Close()

	err := d.Enqueue(context.Background(), "send.text", func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestDispatcherCountsFailures(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1})

	// A non-network error is not retried.
	err := d.Enqueue(context.Background(), "send.text", func() error {
		return errors.New("bad request")
	})
	require.NoError(t, err)
	d.Close()

	assert.Equal(t, uint64(1), d.ErrorCount())
}

func TestDispatcherReportsFullQueue(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	defer d.Close()

	started := make(chan struct{})
	gate := make(chan struct{})
	require.NoError(t, d.Enqueue(context.Background(), "send.text", func() error {
		close(started)
		<-gate
		return nil
	}))
	<-started // worker is busy; the queue buffer is free again

	require.NoError(t, d.Enqueue(context.Background(), "send.text", func() error { return nil }))

	err := d.Enqueue(context.Background(), "send.text", func() error { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)

	close(gate)
}
