package input_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/foldedit/pkg/input"
)

func TestQueueRunsInSubmissionOrder(t *testing.T) {
	t.Parallel()

	queue := input.NewQueue()
	defer queue.Close()

	release := make(chan struct{})
	var mu sync.Mutex
	var order []int

	var dones []<-chan error
	dones = append(dones, queue.Submit(func() error {
		<-release
		return nil
	}))
	for i := range 20 {
		dones = append(dones, queue.Submit(func() error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
	}
	close(release)
	for _, done := range dones {
		require.NoError(t, <-done)
	}

	expected := make([]int, 20)
	for i := range expected {
		expected[i] = i
	}
	assert.Equal(t, expected, order)
}

func TestQueueConcurrentSubmittersNeverInterleave(t *testing.T) {
	t.Parallel()

	queue := input.NewQueue()
	defer queue.Close()

	var running, overlaps int
	var mu sync.Mutex
	perWorker := make(map[int][]int)

	var wg sync.WaitGroup
	for worker := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for step := range 10 {
				err := queue.Do(context.Background(), func() error {
					mu.Lock()
					running++
					if running > 1 {
						overlaps++
					}
					perWorker[worker] = append(perWorker[worker], step)
					mu.Unlock()

					time.Sleep(100 * time.Microsecond)

					mu.Lock()
					running--
					mu.Unlock()
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, overlaps)
	for worker, steps := range perWorker {
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, steps, "worker %d", worker)
	}
}

func TestQueueReturnsJobError(t *testing.T) {
	t.Parallel()

	queue := input.NewQueue()
	defer queue.Close()

	boom := errors.New("boom")
	require.ErrorIs(t, queue.Do(context.Background(), func() error { return boom }), boom)
}

func TestQueueClose(t *testing.T) {
	t.Parallel()

	queue := input.NewQueue()
	ran := false
	done := queue.Submit(func() error {
		ran = true
		return nil
	})
	queue.Close()
	require.NoError(t, <-done)
	assert.True(t, ran, "queued work drains on close")

	require.ErrorIs(t, <-queue.Submit(func() error { return nil }), input.ErrQueueClosed)
	queue.Close()
}

func TestQueueDoHonorsContext(t *testing.T) {
	t.Parallel()

	queue := input.NewQueue()
	defer queue.Close()

	release := make(chan struct{})
	queue.Submit(func() error {
		<-release
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := queue.Do(ctx, func() error { return nil })
	require.ErrorIs(t, err, context.Canceled)
	close(release)
}
