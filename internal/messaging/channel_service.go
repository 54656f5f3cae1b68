package messaging

import (
	"context"
	"log/slog"
	"sync"

	"companybot/internal/models"
)

// updateBuffer sizes the inbound update channel.
const updateBuffer = 64

// Sent records one outbound message for inspection.
type Sent struct {
	UserID    int64
	MessageID int64
	Text      string
	Keyboard  models.Keyboard
	Document  *models.Document
	Edited    bool
}

// ChannelService is an in-process Service. Updates are injected with
// Inject and outbound traffic is recorded, which makes it both the
// development stub transport and the fake used across the test suites.
type ChannelService struct {
	mu      sync.Mutex
	updates chan models.Update
	sent    []Sent
	acked   map[string]int
	closed  bool
}

// NewChannelService creates an idle channel-backed transport.
func NewChannelService() *ChannelService {
	return &ChannelService{
		updates: make(chan models.Update, updateBuffer),
		acked:   make(map[string]int),
	}
}

// Inject delivers an inbound update as if it arrived from a user.
func (s *ChannelService) Inject(u models.Update) {
	s.updates <- u
}

// SendMessage records an outbound message.
func (s *ChannelService) SendMessage(ctx context.Context, userID int64, text string, keyboard models.Keyboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, Sent{UserID: userID, Text: text, Keyboard: keyboard})
	slog.Debug("ChannelService send", "userID", userID, "text_length", len(text))
	return nil
}

// EditMessage records an in-place message edit.
func (s *ChannelService) EditMessage(ctx context.Context, userID, messageID int64, text string, keyboard models.Keyboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, Sent{UserID: userID, MessageID: messageID, Text: text, Keyboard: keyboard, Edited: true})
	slog.Debug("ChannelService edit", "userID", userID, "messageID", messageID, "text_length", len(text))
	return nil
}

// SendDocument records an outbound document.
func (s *ChannelService) SendDocument(ctx context.Context, userID int64, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, Sent{UserID: userID, Document: &doc})
	slog.Debug("ChannelService document", "userID", userID, "filename", doc.Filename, "bytes", len(doc.Data))
	return nil
}

// AckCallback marks a callback id acknowledged. Repeat acks for the
// same id are counted but have no further effect.
func (s *ChannelService) AckCallback(ctx context.Context, callbackID, notice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acked[callbackID]++
	if s.acked[callbackID] > 1 {
		slog.Debug("ChannelService repeat ack ignored", "callbackID", callbackID)
	}
	return nil
}

// Outbox returns a copy of the recorded outbound traffic.
func (s *ChannelService) Outbox() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Sent, len(s.sent))
	copy(out, s.sent)
	return out
}

// AckCount returns how many times callbackID was acknowledged.
func (s *ChannelService) AckCount(callbackID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acked[callbackID]
}

// Updates returns the inbound update channel.
func (s *ChannelService) Updates() <-chan models.Update {
	return s.updates
}

// Start is a no-op: injected updates flow immediately.
func (s *ChannelService) Start(ctx context.Context) error { return nil }

// Stop closes the update channel.
func (s *ChannelService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.updates)
	}
	return nil
}
