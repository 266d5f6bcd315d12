package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/okian/kitcast/internal/domain/gear"
	"github.com/okian/kitcast/internal/domain/model"
)

func newJob(id string, index int) model.Job {
	return model.Job{
		ID:      id,
		BatchID: "batch",
		Index:   index,
		Request: model.PlanRequest{Sport: gear.SportRunning, Weather: gear.Observation{Temperature: 50}},
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if c := q.Cap(); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}

	if err := q.Enqueue(ctx, newJob("job1", 0)); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}

	if l := q.Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	job := <-q.Dequeue(ctx)
	if job.ID != "job1" {
		t.Errorf("expected job1, got %v", job.ID)
	}
	if job.Request.Sport != gear.SportRunning {
		t.Errorf("expected running, got %v", job.Request.Sport)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if err := q.Enqueue(ctx, newJob("job1", 0)); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}
	if err := q.Enqueue(ctx, newJob("job2", 1)); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}

	err := q.Enqueue(ctx, newJob("job3", 2))
	if !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull when queue is full, got %v", err)
	}

	if l := q.Len(); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	if err := q.Enqueue(ctx, newJob("job1", 0)); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}

	if err := q.Enqueue(ctx, newJob("job2", 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}

	// Jobs queued before Close are still delivered, then the channel closes.
	var got []string
	for j := range q.Dequeue(ctx) {
		got = append(got, j.ID)
	}
	if len(got) != 1 || got[0] != "job1" {
		t.Errorf("expected [job1], got %v", got)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	if err := q.Enqueue(context.Background(), newJob("job1", 0)); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The buffer is full, so only the cancellation or the full branch can win.
	err := q.Enqueue(ctx, newJob("job2", 1))
	if !errors.Is(err, context.Canceled) && !errors.Is(err, ErrFull) {
		t.Errorf("expected cancellation or ErrFull, got %v", err)
	}
}

func TestInMemoryQueue_ConcurrentProducers(t *testing.T) {
	const producers, perProducer = 8, 25
	q := NewInMemoryQueue(WithCapacity(producers * perProducer))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errs := make(chan error, producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			for i := 0; i < perProducer; i++ {
				if err := q.Enqueue(ctx, newJob(fmt.Sprintf("job-%d-%d", p, i), i)); err != nil {
					errs <- err
					return
				}
			}
			errs <- nil
		}(p)
	}
	for p := 0; p < producers; p++ {
		if err := <-errs; err != nil {
			t.Fatalf("producer failed: %v", err)
		}
	}

	seen := make(map[string]bool)
	jobs := q.Dequeue(ctx)
	for len(seen) < producers*perProducer {
		select {
		case j := <-jobs:
			if seen[j.ID] {
				t.Fatalf("job %s delivered twice", j.ID)
			}
			seen[j.ID] = true
		case <-ctx.Done():
			t.Fatalf("timed out after %d jobs", len(seen))
		}
	}
}
