package flow

import (
	"context"
	"log/slog"
	"strings"

	"companybot/internal/models"
	"companybot/internal/render"
)

// Prompt and error texts of the capture flow.
const (
	promptINN  = "🔍 <b>Поиск по ИНН</b>\n\nВведите ИНН компании (10 или 12 цифр):"
	promptOGRN = "🏢 <b>Поиск по ОГРН</b>\n\nВведите ОГРН компании (13 или 15 цифр):"

	retryINN  = "❌ Неверный формат ИНН.\nИНН должен содержать 10 или 12 цифр.\n\nПопробуйте еще раз:"
	retryOGRN = "❌ Неверный формат ОГРН.\nОГРН должен содержать 13 или 15 цифр.\n\nПопробуйте еще раз:"

	notFoundINN  = "❌ Компания с таким ИНН не найдена.\n\nПопробуйте другой ИНН:"
	notFoundOGRN = "❌ Компания с таким ОГРН не найдена.\n\nПопробуйте другой ОГРН:"

	lookupUnavailable = "⚠️ Источник данных временно недоступен.\n\nПопробуйте еще раз чуть позже:"

	cancelledText = "❌ Операция отменена."
)

// Lookup is the registry surface the capture flow resolves against.
type Lookup interface {
	FindByINN(ctx context.Context, inn string) (*models.CompanyRecord, error)
	FindByOGRN(ctx context.Context, ogrn string) (*models.CompanyRecord, error)
}

// Reply is one outbound message produced by the capture flow.
type Reply struct {
	Text     string
	Keyboard models.Keyboard
}

// CaptureFlow is the multi-turn state machine that collects a company
// identifier from free text. Validation failures and lookup misses
// keep the user in the same awaiting state with a re-prompt; there is
// deliberately no retry limit since cancel and the main menu are
// always available.
type CaptureFlow struct {
	contexts ContextStore
	registry Lookup
}

// NewCaptureFlow creates the capture state machine.
func NewCaptureFlow(contexts ContextStore, registry Lookup) *CaptureFlow {
	return &CaptureFlow{contexts: contexts, registry: registry}
}

// Begin moves the user into an awaiting state. Entry happens only via
// an explicit menu selection, never implicitly.
func (f *CaptureFlow) Begin(userID int64, state State) Reply {
	c := f.contexts.Get(userID)
	c.State = state
	f.contexts.Put(userID, c)
	slog.Debug("CaptureFlow begin", "userID", userID, "state", state)

	if state == StateAwaitingOGRN {
		return Reply{Text: promptOGRN}
	}
	return Reply{Text: promptINN}
}

// Cancel aborts collection from any state and returns to idle. The
// resolved company, if any, is kept so navigation keeps working.
func (f *CaptureFlow) Cancel(userID int64) Reply {
	c := f.contexts.Get(userID)
	c.State = StateIdle
	f.contexts.Put(userID, c)
	slog.Debug("CaptureFlow cancelled", "userID", userID)
	return Reply{Text: cancelledText, Keyboard: render.MainMenuKeyboard()}
}

// HandleText consumes one free-text message. It reports handled=false
// when the user is idle, letting the caller fall back to the menu
// nudge. Validation short-circuits before any upstream call.
func (f *CaptureFlow) HandleText(ctx context.Context, userID int64, text string) (Reply, bool) {
	c := f.contexts.Get(userID)
	if c.State == StateIdle {
		return Reply{}, false
	}

	input := strings.TrimSpace(text)
	switch c.State {
	case StateAwaitingINN:
		if err := models.ValidateINN(input); err != nil {
			slog.Debug("CaptureFlow INN validation failed", "userID", userID)
			return Reply{Text: retryINN}, true
		}
		return f.resolve(ctx, userID, c, input, true), true

	case StateAwaitingOGRN:
		if err := models.ValidateOGRN(input); err != nil {
			slog.Debug("CaptureFlow OGRN validation failed", "userID", userID)
			return Reply{Text: retryOGRN}, true
		}
		return f.resolve(ctx, userID, c, input, false), true
	}

	return Reply{}, false
}

// resolve performs the registry lookup for a validated identifier. A
// hit stores the record, returns to idle and renders the summary
// screen; a miss or degraded upstream re-prompts in the same state.
func (f *CaptureFlow) resolve(ctx context.Context, userID int64, c ConversationContext, id string, byINN bool) Reply {
	var rec *models.CompanyRecord
	var err error
	if byINN {
		rec, err = f.registry.FindByINN(ctx, id)
	} else {
		rec, err = f.registry.FindByOGRN(ctx, id)
	}

	if err != nil {
		slog.Warn("CaptureFlow lookup degraded", "userID", userID, "error", err)
		return Reply{Text: lookupUnavailable}
	}
	if rec == nil {
		slog.Info("CaptureFlow lookup miss", "userID", userID)
		if byINN {
			return Reply{Text: notFoundINN}
		}
		return Reply{Text: notFoundOGRN}
	}

	c.State = StateIdle
	c.Company = rec
	c.INN = rec.INN
	f.contexts.Put(userID, c)
	slog.Info("CaptureFlow resolved company", "userID", userID, "inn", rec.INN)

	text, kb := render.Company(rec)
	return Reply{Text: text, Keyboard: kb}
}
