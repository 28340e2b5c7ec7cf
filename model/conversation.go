package model

import (
	"time"
)

// Role identifies who authored a turn.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Turn is one message in the conversation. Role is fixed at creation.
// Content of a user turn never changes; content of an assistant turn is
// mutable only while streaming is true.
type Turn struct {
	ID        int64
	Role      Role
	Content   string
	CreatedAt time.Time
	streaming bool
}

// Streaming reports whether this assistant turn is still being revealed.
func (t *Turn) Streaming() bool { return t.streaming }

// Conversation is the ordered, append-only list of turns driving the
// transcript render, plus the busy flag gating new submissions. It is
// mutated only from the UI loop's event handlers; no locking.
type Conversation struct {
	turns  []*Turn
	busy   bool
	lastID int64
}

// NewConversation returns an empty conversation, not busy.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Turns returns the ordered turn list. Callers must not reorder or
// remove entries.
func (c *Conversation) Turns() []*Turn { return c.turns }

// Len returns the number of turns.
func (c *Conversation) Len() int { return len(c.turns) }

// Busy reports whether a request is in flight.
func (c *Conversation) Busy() bool { return c.busy }

// AddUserTurn appends an immutable user turn and marks the conversation
// busy. Returns nil without appending when already busy: a submission
// while a request is in flight is a no-op.
func (c *Conversation) AddUserTurn(content string) *Turn {
	if c.busy {
		return nil
	}
	t := &Turn{
		ID:        c.nextID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
	c.turns = append(c.turns, t)
	c.busy = true
	return t
}

// BeginAssistantTurn appends an empty streaming assistant turn and
// clears the busy flag: input is usable again the moment the reply
// starts rendering, not when it finishes revealing.
func (c *Conversation) BeginAssistantTurn() *Turn {
	t := &Turn{
		ID:        c.nextID(),
		Role:      RoleAssistant,
		CreatedAt: time.Now(),
		streaming: true,
	}
	c.turns = append(c.turns, t)
	c.busy = false
	return t
}

// SetStreamingContent replaces the content of the last turn if it is an
// assistant turn still streaming. Updates to finalized turns are
// rejected.
func (c *Conversation) SetStreamingContent(partial string) bool {
	t := c.last()
	if t == nil || t.Role != RoleAssistant || !t.streaming {
		return false
	}
	t.Content = partial
	return true
}

// FinalizeAssistantTurn ends streaming on the last turn; its content is
// immutable from here on.
func (c *Conversation) FinalizeAssistantTurn() {
	if t := c.last(); t != nil && t.Role == RoleAssistant {
		t.streaming = false
	}
}

// ClearBusy drops the busy flag without appending a turn. Used by the
// last-resort recovery path, where no assistant turn was ever created.
func (c *Conversation) ClearBusy() { c.busy = false }

func (c *Conversation) last() *Turn {
	if len(c.turns) == 0 {
		return nil
	}
	return c.turns[len(c.turns)-1]
}

// nextID derives a unique, strictly increasing ID from the clock. Two
// turns created within the same nanosecond still get distinct IDs.
func (c *Conversation) nextID() int64 {
	id := time.Now().UnixNano()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}
