package transport

import (
	"sync"
	"testing"

	"github.com/ystepanoff/bpskbeacon/protocol"
)

func TestEpochWraps(t *testing.T) {
	var e Epoch
	e.Store(0xFFFF)
	e.Tick()
	if got := e.Load(); got != 0 {
		t.Errorf("Load() = %d, want 0", got)
	}
}

func TestEpochConcurrentTicks(t *testing.T) {
	var e Epoch
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				e.Tick()
			}
		}()
	}
	wg.Wait()
	if got := e.Load(); got != 8000 {
		t.Errorf("Load() = %d, want 8000", got)
	}
}

func TestJitterSources(t *testing.T) {
	j := NewRandomJitter()
	seen := make(map[uint16]bool)
	for i := 0; i < 5000; i++ {
		v := j()
		if v >= protocol.JitterSpan {
			t.Fatalf("jitter %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != protocol.JitterSpan {
		t.Errorf("random jitter produced %d distinct values, want %d", len(seen), protocol.JitterSpan)
	}

	if got := FixedJitter(4)(); got != 4 {
		t.Errorf("FixedJitter(4)() = %d", got)
	}
	if got := FixedJitter(40)(); got != protocol.JitterSpan-1 {
		t.Errorf("FixedJitter(40)() = %d, want clamp", got)
	}
}
