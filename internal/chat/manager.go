package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/bmartins-dev/bruno-dev/internal/llm"
)

// DefaultMaxSessions bounds how many conversations the manager keeps in
// memory at once. Session ids arrive from the client, so without a cap a
// caller could mint unlimited buffers and grow the map forever.
const DefaultMaxSessions = 1024

// session pairs a buffer with the generation counter used to discard stale
// completions. generation is bumped by every send and by every clear, so a
// completion that resolves after a newer send (or after a clear) no longer
// matches and is dropped instead of corrupting the transcript.
type session struct {
	mu         sync.Mutex
	buffer     *Buffer
	generation uint64
	lastUsed   uint64
}

// Manager hands out one conversation session per visitor. Sessions live in
// memory only; a restart starts everyone over, which is fine for a portfolio
// chat widget. When the registry is full the least recently used session is
// evicted to make room, so the map never outgrows DefaultMaxSessions.
type Manager struct {
	mu           sync.Mutex
	sessions     map[string]*session
	systemPrompt string
	window       int
	maxSessions  int
	clock        uint64
}

// NewManager creates a session registry. Every session's buffer is seeded
// with systemPrompt and bounded by window.
func NewManager(systemPrompt string, window int) *Manager {
	return &Manager{
		sessions:     make(map[string]*session),
		systemPrompt: systemPrompt,
		window:       window,
		maxSessions:  DefaultMaxSessions,
	}
}

// acquire returns the session for id, creating it on first use. A blank id
// mints a fresh session with a new identifier. Creating a session while the
// registry is full evicts the one idle the longest.
func (m *Manager) acquire(id string) (string, *session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	s, ok := m.sessions[id]
	if !ok {
		if len(m.sessions) >= m.maxSessions {
			m.evictOldestLocked()
		}
		s = &session{buffer: NewBuffer(m.systemPrompt, m.window)}
		m.sessions[id] = s
	}
	m.clock++
	s.lastUsed = m.clock
	return id, s
}

// evictOldestLocked drops the session touched least recently. Caller holds
// m.mu. An in-flight completion for an evicted session keeps its own pointer
// and finishes against the orphaned buffer, which is then garbage collected.
func (m *Manager) evictOldestLocked() {
	var oldestID string
	var oldest uint64
	first := true
	for id, s := range m.sessions {
		if first || s.lastUsed < oldest {
			oldestID = id
			oldest = s.lastUsed
			first = false
		}
	}
	if !first {
		delete(m.sessions, oldestID)
	}
}

// Clear resets the session's transcript to the system message. Unknown ids
// are a no-op: there is nothing to clear.
func (m *Manager) Clear(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer.Clear()
	s.generation++
}

// Snapshot returns the session's transcript, or nil for an unknown id.
func (m *Manager) Snapshot(id string) []llm.Message {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer.Snapshot()
}
