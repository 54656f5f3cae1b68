// Package flow implements the input-capture state machine and the
// per-user conversation context it operates on.
//
// Conversation state is volatile by design: it lives in process memory
// and is discarded on restart. The ContextStore interface keeps that an
// implementation detail — the router and state machine only see
// get/put/clear.
package flow

import (
	"log/slog"
	"sync"

	"companybot/internal/models"
)

// State is the input-capture position of one user.
type State string

const (
	// StateIdle means no input is being collected.
	StateIdle State = "idle"
	// StateAwaitingINN means the next text message is treated as an INN.
	StateAwaitingINN State = "awaiting_inn"
	// StateAwaitingOGRN means the next text message is treated as an OGRN.
	StateAwaitingOGRN State = "awaiting_ogrn"
)

// ConversationContext is the per-user volatile state: the capture
// position plus the last successfully resolved company.
type ConversationContext struct {
	State   State
	Company *models.CompanyRecord
	INN     string
}

// ContextStore holds one ConversationContext per user. Implementations
// must be safe for concurrent use; the contract for overlapping writes
// by the same user is last-write-wins.
type ContextStore interface {
	Get(userID int64) ConversationContext
	Put(userID int64, c ConversationContext)
	Clear(userID int64)
}

// MemoryContextStore is the in-process ContextStore.
type MemoryContextStore struct {
	mu       sync.RWMutex
	contexts map[int64]ConversationContext
}

// NewMemoryContextStore creates an empty context store.
func NewMemoryContextStore() *MemoryContextStore {
	return &MemoryContextStore{contexts: make(map[int64]ConversationContext)}
}

// Get returns the user's context, or an idle zero context for first
// interactions.
func (s *MemoryContextStore) Get(userID int64) ConversationContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contexts[userID]
	if !ok {
		return ConversationContext{State: StateIdle}
	}
	return c
}

// Put stores the user's context, replacing any previous value.
func (s *MemoryContextStore) Put(userID int64, c ConversationContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[userID] = c
	slog.Debug("ContextStore put", "userID", userID, "state", c.State, "inn", c.INN)
}

// Clear removes the user's context entirely.
func (s *MemoryContextStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, userID)
	slog.Debug("ContextStore cleared", "userID", userID)
}
