package mempool

import (
	"context"
	"testing"
	"time"
)

func TestGetPutRoundTrip(t *testing.T) {
	p := New(2, 16)

	b1, err := p.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(b1) != 16 {
		t.Fatalf("len(b1) = %d, want 16", len(b1))
	}

	p.Put(b1)
}

func TestGetBlocksUntilRelease(t *testing.T) {
	p := New(1, 8)

	b, err := p.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	done := make(chan struct{})
	go func() {
		b2, err := p.Get(context.Background())
		if err != nil {
			t.Error(err)
		}
		_ = b2
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Get returned before buffer was released")
	case <-time.After(20 * time.Millisecond):
	}

	p.Put(b)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Get did not unblock after Put")
	}
}

func TestGetRespectsContextCancellation(t *testing.T) {
	p := New(1, 8)
	if _, err := p.Get(context.Background()); err != nil {
		t.Fatalf("Get: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := p.Get(ctx); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestPoolBoundedness(t *testing.T) {
	const n = 3
	p := New(n, 8)

	var bufs [][]byte
	for i := 0; i < n; i++ {
		b, err := p.Get(context.Background())
		if err != nil {
			t.Fatalf("Get %d: %v", i, err)
		}
		bufs = append(bufs, b)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.Get(ctx); err == nil {
		t.Fatal("expected pool to be exhausted at capacity")
	}

	for _, b := range bufs {
		p.Put(b)
	}
}
