package engine

import (
	"sync"
	"testing"
)

func TestFrameClock(t *testing.T) {
	clock := newFrameClock(10)

	first := clock.next(10.5, 800, 600)
	if first.Tick != 0 || first.Time != 0.5 || first.DeltaTime != 0.5 {
		t.Errorf("Unexpected first frame %+v", first)
	}
	if first.ViewportWidth != 800 || first.ViewportHeight != 600 {
		t.Errorf("Viewport not carried through: %+v", first)
	}

	second := clock.next(10.75, 800, 600)
	if second.Tick != 1 || second.Time != 0.75 || second.DeltaTime != 0.25 {
		t.Errorf("Unexpected second frame %+v", second)
	}
}

func TestTaskQueueRunsInOrder(t *testing.T) {
	q := newTaskQueue()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.post(func() { got = append(got, i) })
	}

	q.drain()

	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("Expected tasks in order, got %v", got)
	}

	q.drain()
	if len(got) != 3 {
		t.Error("Drained tasks must not run again")
	}
}

func TestTaskQueuePostDuringDrain(t *testing.T) {
	q := newTaskQueue()
	ran := 0
	q.post(func() {
		q.post(func() { ran++ })
	})

	q.drain()
	if ran != 0 {
		t.Error("Task posted while draining should wait for the next drain")
	}

	q.drain()
	if ran != 1 {
		t.Errorf("Expected the re-posted task to run once, ran %d", ran)
	}
}

func TestTaskQueueConcurrentPost(t *testing.T) {
	q := newTaskQueue()
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.post(func() { count++ })
		}()
	}
	wg.Wait()

	q.drain()
	if count != 50 {
		t.Errorf("Expected 50 tasks, ran %d", count)
	}
}
