package opendota

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPacerFirstCallImmediate(t *testing.T) {
	p := newPacer(time.Second)

	start := time.Now()
	waited, err := p.wait(context.Background())
	if err != nil {
		t.Fatalf("wait() error: %v", err)
	}
	if waited != 0 {
		t.Errorf("waited = %v, want 0 for the first call", waited)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first call took %v, want immediate", elapsed)
	}
}

func TestPacerSpacesCalls(t *testing.T) {
	p := newPacer(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if _, err := p.wait(ctx); err != nil {
		t.Fatalf("wait() error: %v", err)
	}
	waited, err := p.wait(ctx)
	if err != nil {
		t.Fatalf("wait() error: %v", err)
	}

	if waited == 0 {
		t.Error("second call should have waited")
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("two calls completed in %v, want at least one interval", elapsed)
	}
}

func TestPacerSerializesConcurrentCalls(t *testing.T) {
	p := newPacer(40 * time.Millisecond)
	ctx := context.Background()

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.wait(ctx); err != nil {
				t.Errorf("wait() error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Three callers occupy three consecutive slots: the last departs two
	// intervals after the first.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("three concurrent calls completed in %v, want at least 80ms", elapsed)
	}
}

func TestPacerContextCanceled(t *testing.T) {
	p := newPacer(500 * time.Millisecond)
	ctx := context.Background()

	if _, err := p.wait(ctx); err != nil {
		t.Fatalf("wait() error: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := p.wait(cancelCtx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("wait() error = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("canceled wait returned after %v, want early return", elapsed)
	}
}

func TestPacerZeroInterval(t *testing.T) {
	p := newPacer(0)

	for i := 0; i < 3; i++ {
		waited, err := p.wait(context.Background())
		if err != nil {
			t.Fatalf("wait() error: %v", err)
		}
		if waited != 0 {
			t.Errorf("waited = %v, want 0 with pacing disabled", waited)
		}
	}
}

func TestPacerNil(t *testing.T) {
	var p *pacer

	waited, err := p.wait(context.Background())
	if err != nil {
		t.Fatalf("wait() error: %v", err)
	}
	if waited != 0 {
		t.Errorf("waited = %v, want 0 for nil pacer", waited)
	}
}
