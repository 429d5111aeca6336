package cli

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.schedule("notes.txt", func() { calls.Add(1) })
	}

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// No further firings after the burst settles.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_RemovesEntryAfterFiring(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)

	d.schedule("a.txt", func() {})
	d.schedule("b.txt", func() {})
	assert.Equal(t, 2, d.pending())

	assert.Eventually(t, func() bool {
		return d.pending() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_ReschedulingAfterFire(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)

	var calls atomic.Int32
	d.schedule("a.txt", func() { calls.Add(1) })

	assert.Eventually(t, func() bool {
		return calls.Load() == 1 && d.pending() == 0
	}, time.Second, 5*time.Millisecond)

	d.schedule("a.txt", func() { calls.Add(1) })

	assert.Eventually(t, func() bool {
		return calls.Load() == 2 && d.pending() == 0
	}, time.Second, 5*time.Millisecond)
}
