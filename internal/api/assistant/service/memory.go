package assistantService

import "sync"

// memoryTurn is one exchange held in the in-process window. The durable
// transcript lives in Postgres; this window only feeds prompts.
type memoryTurn struct {
	UserText string
	Response string
	Action   string
}

// conversationMemory is a bounded FIFO of the most recent exchanges for a
// single conversation. Appending past capacity evicts the oldest turn.
// Concurrent requests may share a conversation ID, so the window carries
// its own lock.
type conversationMemory struct {
	mu       sync.Mutex
	turns    []memoryTurn
	capacity int
}

func newConversationMemory(capacity int) *conversationMemory {
	if capacity <= 0 {
		capacity = 10
	}
	return &conversationMemory{capacity: capacity}
}

func (m *conversationMemory) Append(turn memoryTurn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, turn)
	if len(m.turns) > m.capacity {
		m.turns = m.turns[len(m.turns)-m.capacity:]
	}
}

// Recent returns up to n most recent turns, oldest first. The returned
// slice is a copy; callers may not mutate the window through it.
func (m *conversationMemory) Recent(n int) []memoryTurn {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || len(m.turns) == 0 {
		return nil
	}
	start := len(m.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]memoryTurn, len(m.turns)-start)
	copy(out, m.turns[start:])
	return out
}

func (m *conversationMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// sessionStore maps conversation IDs to their memory windows.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*conversationMemory
	capacity int
}

func newSessionStore(capacity int) *sessionStore {
	if capacity <= 0 {
		capacity = 10
	}
	return &sessionStore{
		sessions: make(map[string]*conversationMemory),
		capacity: capacity,
	}
}

func (s *sessionStore) Get(conversationID string) *conversationMemory {
	s.mu.Lock()
	defer s.mu.Unlock()

	memory, ok := s.sessions[conversationID]
	if !ok {
		memory = newConversationMemory(s.capacity)
		s.sessions[conversationID] = memory
	}
	return memory
}

func (s *sessionStore) Reset(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conversationID)
}
