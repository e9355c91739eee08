package engine

import "sync"

// frameClock turns raw timestamps into FrameContext values.
type frameClock struct {
	start float64
	last  float64
	tick  uint64
}

func newFrameClock(now float64) *frameClock {
	return &frameClock{start: now, last: now}
}

func (c *frameClock) next(now float64, width, height int32) FrameContext {
	fc := FrameContext{
		Tick:           c.tick,
		Time:           now - c.start,
		DeltaTime:      now - c.last,
		ViewportWidth:  width,
		ViewportHeight: height,
	}
	c.last = now
	c.tick++
	return fc
}

// taskQueue hands work from other goroutines to the render thread.
type taskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

func newTaskQueue() *taskQueue {
	return &taskQueue{}
}

func (q *taskQueue) post(task func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// drain runs every queued task in order. Tasks posted while draining run on
// the next call.
func (q *taskQueue) drain() {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range tasks {
		task()
	}
}
