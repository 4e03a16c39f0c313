package search_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/foldedit/pkg/search"
)

func TestDebouncerRunsOnlyLastCall(t *testing.T) {
	t.Parallel()

	debouncer := search.NewDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		value := int32(i)
		debouncer.Trigger(func() {
			calls.Add(1)
			last.Store(value)
		})
	}
	assert.True(t, debouncer.Pending())

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, debouncer.Pending())
}

func TestDebouncerCancel(t *testing.T) {
	t.Parallel()

	debouncer := search.NewDebouncer(20 * time.Millisecond)
	assert.False(t, debouncer.Cancel())

	var calls atomic.Int32
	debouncer.Trigger(func() { calls.Add(1) })
	assert.True(t, debouncer.Cancel())

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
