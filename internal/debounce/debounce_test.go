package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleCoalesces(t *testing.T) {
	var calls atomic.Int32
	d := New(30 * time.Millisecond)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Schedule(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("ran %d times, want 1", got)
	}
}

func TestStopCancels(t *testing.T) {
	var calls atomic.Int32
	d := New(20 * time.Millisecond)

	d.Schedule(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("ran %d times after Stop, want 0", got)
	}
}

func TestFlushRunsImmediately(t *testing.T) {
	done := make(chan struct{})
	d := New(time.Hour)
	defer d.Stop()

	d.Schedule(func() { close(done) })
	d.Flush()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("flushed function never ran")
	}
}

func TestFlushWithoutPending(t *testing.T) {
	d := New(time.Millisecond)
	d.Flush() // must not panic
	d.Stop()
}
