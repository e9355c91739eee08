package behaviour

import "brickwall/internal/engine"

// Behaviour is per-frame scene logic. Start runs once, before the first Update.
type Behaviour interface {
	Start()
	Update(frame engine.FrameContext)
}

type behaviourWrapper struct {
	behaviour Behaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []behaviourWrapper
}

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(b Behaviour) {
	m.behaviours = append(m.behaviours, behaviourWrapper{behaviour: b})
}

func (m *BehaviourManager) Remove(b Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].behaviour == b {
			// Keep order.
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

// UpdateAll runs every behaviour in insertion order.
func (m *BehaviourManager) UpdateAll(frame engine.FrameContext) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].behaviour.Update(frame)
	}
}
