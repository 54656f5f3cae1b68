// Package messaging defines the pluggable transport abstraction for
// delivering messages, keyboards and documents to users.
//
// The concrete chat transport is an external collaborator; everything
// in the bot talks to this interface only.
package messaging

import (
	"context"

	"companybot/internal/models"
)

// Service is the message delivery abstraction. Implementations must be
// safe for concurrent use.
type Service interface {
	// SendMessage sends a new message with an optional keyboard.
	SendMessage(ctx context.Context, userID int64, text string, keyboard models.Keyboard) error

	// EditMessage replaces the text and keyboard of a previously sent
	// message; screens navigate by editing in place.
	EditMessage(ctx context.Context, userID, messageID int64, text string, keyboard models.Keyboard) error

	// SendDocument delivers a generated export document.
	SendDocument(ctx context.Context, userID int64, doc models.Document) error

	// AckCallback acknowledges a button press so the UI stops showing a
	// spinner. Acknowledging the same callback id twice is a no-op.
	AckCallback(ctx context.Context, callbackID, notice string) error

	// Updates returns the channel of inbound interactions.
	Updates() <-chan models.Update

	// Start begins any background processing.
	Start(ctx context.Context) error

	// Stop stops background processing and cleans up resources.
	Stop() error
}
