package render

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleCoalesces(t *testing.T) {
	s := NewScheduler(30 * time.Millisecond)
	var runs atomic.Int32
	got := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		v := i
		s.Schedule(func() {
			runs.Add(1)
			got <- v
		})
	}
	select {
	case v := <-got:
		if v != 3 {
			t.Fatalf("ran task %d, want 3", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task never ran")
	}
	time.Sleep(100 * time.Millisecond)
	if n := runs.Load(); n != 1 {
		t.Fatalf("runs = %d, want 1", n)
	}
	if s.Pending() {
		t.Fatal("task still pending after run")
	}
}

func TestCancelDropsPending(t *testing.T) {
	s := NewScheduler(20 * time.Millisecond)
	var runs atomic.Int32
	s.Schedule(func() { runs.Add(1) })
	if !s.Cancel() {
		t.Fatal("Cancel reported nothing pending")
	}
	time.Sleep(80 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatal("cancelled task ran")
	}
	if s.Cancel() {
		t.Fatal("second Cancel reported a pending task")
	}
}

func TestFlushRunsImmediately(t *testing.T) {
	s := NewScheduler(time.Hour)
	ran := false
	s.Schedule(func() { ran = true })
	if !s.Flush() || !ran {
		t.Fatal("Flush did not run the pending task")
	}
	if s.Flush() {
		t.Fatal("Flush ran twice")
	}
}

func TestDefaultDelay(t *testing.T) {
	if d := NewScheduler(0).Delay(); d != DefaultDelay {
		t.Fatalf("Delay = %v", d)
	}
}
