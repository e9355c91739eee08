package behaviour

import (
	"brickwall/internal/engine"
	"testing"
)

type recordingBehaviour struct {
	name    string
	log     *[]string
	starts  int
	updates int
}

func (b *recordingBehaviour) Start() {
	b.starts++
	*b.log = append(*b.log, b.name+".start")
}

func (b *recordingBehaviour) Update(frame engine.FrameContext) {
	b.updates++
	*b.log = append(*b.log, b.name+".update")
}

func TestBehaviourManagerStartsOnce(t *testing.T) {
	var log []string
	m := NewBehaviourManager()
	b := &recordingBehaviour{name: "a", log: &log}
	m.Add(b)

	m.UpdateAll(engine.FrameContext{Tick: 0})
	m.UpdateAll(engine.FrameContext{Tick: 1})

	if b.starts != 1 {
		t.Errorf("Expected Start once, got %d", b.starts)
	}
	if b.updates != 2 {
		t.Errorf("Expected 2 updates, got %d", b.updates)
	}
}

func TestBehaviourManagerOrder(t *testing.T) {
	var log []string
	m := NewBehaviourManager()
	m.Add(&recordingBehaviour{name: "a", log: &log})
	m.Add(&recordingBehaviour{name: "b", log: &log})

	m.UpdateAll(engine.FrameContext{})

	want := []string{"a.start", "a.update", "b.start", "b.update"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Step %d: expected %s, got %s", i, want[i], log[i])
		}
	}
}

func TestBehaviourManagerRemove(t *testing.T) {
	var log []string
	m := NewBehaviourManager()
	a := &recordingBehaviour{name: "a", log: &log}
	b := &recordingBehaviour{name: "b", log: &log}
	c := &recordingBehaviour{name: "c", log: &log}
	m.Add(a)
	m.Add(b)
	m.Add(c)

	m.Remove(a)
	if m.Len() != 2 {
		t.Fatalf("Expected 2 behaviours, got %d", m.Len())
	}

	m.UpdateAll(engine.FrameContext{})
	if log[0] != "b.start" || log[2] != "c.start" {
		t.Errorf("Remove should keep order, got %v", log)
	}
	if a.updates != 0 {
		t.Error("Removed behaviour should not update")
	}
}

func TestBehaviourManagerClear(t *testing.T) {
	var log []string
	m := NewBehaviourManager()
	m.Add(&recordingBehaviour{name: "a", log: &log})

	m.Clear()
	m.UpdateAll(engine.FrameContext{})

	if m.Len() != 0 || len(log) != 0 {
		t.Error("Clear should drop every behaviour")
	}
}
