// Package chat owns the conversational state of the site assistant: the
// rolling transcript sent upstream, the per-session registry, and the
// request/reply flow around the completion transport.
package chat

import "github.com/bmartins-dev/bruno-dev/internal/llm"

// DefaultWindow is the number of non-system messages kept in a transcript.
const DefaultWindow = 10

// Buffer holds one conversation's transcript. Index 0 is always the system
// message supplied at construction; it is never evicted or duplicated.
//
// A Buffer is not safe for concurrent use. Each session owns one, and the
// Manager serializes access to it.
type Buffer struct {
	messages  []llm.Message
	maxWindow int
}

// NewBuffer creates a transcript containing exactly the system message.
// maxWindow <= 0 selects DefaultWindow.
func NewBuffer(systemPrompt string, maxWindow int) *Buffer {
	if maxWindow <= 0 {
		maxWindow = DefaultWindow
	}
	return &Buffer{
		messages:  []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}},
		maxWindow: maxWindow,
	}
}

// AppendUser appends a user message. Content is taken as-is; trimming and
// validation are the caller's concern.
func (b *Buffer) AppendUser(content string) {
	b.append(llm.Message{Role: llm.RoleUser, Content: content})
}

// AppendAssistant appends an assistant message.
func (b *Buffer) AppendAssistant(content string) {
	b.append(llm.Message{Role: llm.RoleAssistant, Content: content})
}

func (b *Buffer) append(msg llm.Message) {
	b.messages = append(b.messages, msg)
	b.trim()
}

// trim enforces len(messages) <= maxWindow+1, dropping the oldest non-system
// messages first. Order among the kept messages is preserved.
func (b *Buffer) trim() {
	excess := len(b.messages) - (b.maxWindow + 1)
	if excess <= 0 {
		return
	}
	kept := make([]llm.Message, 0, b.maxWindow+1)
	kept = append(kept, b.messages[0])
	kept = append(kept, b.messages[1+excess:]...)
	b.messages = kept
}

// Snapshot returns a copy of the transcript in insertion order. Mutating the
// returned slice does not affect the buffer.
func (b *Buffer) Snapshot() []llm.Message {
	out := make([]llm.Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// Clear resets the transcript to the original system message. Idempotent.
func (b *Buffer) Clear() {
	b.messages = b.messages[:1]
}
