// Package bot runs the update loop: it drains the transport's update
// channel and routes each interaction to the token router or the
// input-capture state machine.
package bot

import (
	"context"
	"log/slog"
	"strings"

	"companybot/internal/flow"
	"companybot/internal/messaging"
	"companybot/internal/models"
	"companybot/internal/render"
)

// Loop consumes updates until its context is cancelled.
type Loop struct {
	svc     messaging.Service
	router  Dispatcher
	capture *flow.CaptureFlow
}

// Dispatcher is the callback-handling surface of the router.
type Dispatcher interface {
	Dispatch(ctx context.Context, upd models.Update)
}

// NewLoop creates the update loop.
func NewLoop(svc messaging.Service, router Dispatcher, capture *flow.CaptureFlow) *Loop {
	return &Loop{svc: svc, router: router, capture: capture}
}

// Run processes updates until ctx is done or the update channel closes.
// Each update is handled in its own goroutine so one slow upstream
// call cannot stall other users' interactions.
func (l *Loop) Run(ctx context.Context) {
	slog.Info("bot loop started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("bot loop stopping", "reason", ctx.Err())
			return
		case upd, ok := <-l.svc.Updates():
			if !ok {
				slog.Info("bot loop stopping: update channel closed")
				return
			}
			go l.handle(ctx, upd)
		}
	}
}

func (l *Loop) handle(ctx context.Context, upd models.Update) {
	if upd.Callback != nil {
		l.router.Dispatch(ctx, upd)
		return
	}

	text := strings.TrimSpace(upd.Text)
	switch text {
	case "/start":
		menuText, kb := render.MainMenu()
		l.send(ctx, upd.UserID, "👋 Привет!\n\n"+menuText, kb)
		return
	case "/help":
		helpText, kb := render.Help()
		l.send(ctx, upd.UserID, helpText, kb)
		return
	}

	reply, handled := l.capture.HandleText(ctx, upd.UserID, text)
	if handled {
		l.send(ctx, upd.UserID, reply.Text, reply.Keyboard)
		return
	}

	// Idle free text gets a gentle nudge back to the menu.
	menuText, kb := render.MainMenu()
	l.send(ctx, upd.UserID, menuText, kb)
}

func (l *Loop) send(ctx context.Context, userID int64, text string, kb models.Keyboard) {
	if err := l.svc.SendMessage(ctx, userID, text, kb); err != nil {
		slog.Error("bot loop send failed", "userID", userID, "error", err)
	}
}
