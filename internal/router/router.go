// Package router dispatches decoded callback tokens to screen
// handlers.
//
// Dispatch acknowledges the interaction exactly once before any
// potentially slow upstream call, decodes the payload, and runs an
// exhaustive switch over the closed screen vocabulary. Undecodable
// payloads terminate in the "token expired" screen; no error paths
// propagate to the user without an actionable next step.
package router

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"companybot/internal/flow"
	"companybot/internal/messaging"
	"companybot/internal/models"
	"companybot/internal/nav"
	"companybot/internal/render"
)

// CourtSearcher is the court-records surface the router needs.
type CourtSearcher interface {
	SearchCases(ctx context.Context, inn string, page int) *models.CourtCasesPage
}

// ProcurementSearcher is the procurement-records surface.
type ProcurementSearcher interface {
	SearchProcurements(ctx context.Context, inn string, page int) *models.ProcurementsPage
}

// ScreenFormatter optionally rewrites screen text; failures fall back
// to the pure renderer output.
type ScreenFormatter interface {
	FormatScreen(ctx context.Context, screen, screenText string) (string, error)
}

// Exporter is the export orchestration surface.
type Exporter interface {
	ExportScreen(ctx context.Context, rec *models.CompanyRecord, screen string) (models.Document, error)
	ExportFull(ctx context.Context, rec *models.CompanyRecord) (models.Document, error)
}

const companyNotFoundText = "❌ Компания не найдена.\n\nПопробуйте поиск заново:"

// Router owns callback dispatch.
type Router struct {
	svc         messaging.Service
	contexts    flow.ContextStore
	capture     *flow.CaptureFlow
	registry    flow.Lookup
	court       CourtSearcher
	procurement ProcurementSearcher
	formatter   ScreenFormatter
	exporter    Exporter
}

// New creates a router. formatter may be nil; every other collaborator
// is required.
func New(svc messaging.Service, contexts flow.ContextStore, capture *flow.CaptureFlow, registry flow.Lookup,
	court CourtSearcher, procurement ProcurementSearcher, formatter ScreenFormatter, exporter Exporter) *Router {
	return &Router{
		svc:         svc,
		contexts:    contexts,
		capture:     capture,
		registry:    registry,
		court:       court,
		procurement: procurement,
		formatter:   formatter,
		exporter:    exporter,
	}
}

// Dispatch handles one button press end to end.
func (r *Router) Dispatch(ctx context.Context, upd models.Update) {
	cb := upd.Callback
	if cb == nil {
		return
	}
	dispatchID := uuid.New().String()
	log := slog.With("dispatch_id", dispatchID, "userID", upd.UserID, "data", cb.Data)

	// Acknowledge before any upstream work so the UI never hangs.
	if err := r.svc.AckCallback(ctx, cb.ID, ackNotice(cb.Data)); err != nil {
		log.Warn("Router ack failed", "error", err)
	}

	token, err := nav.Decode(cb.Data)
	if err != nil {
		log.Info("Router received stale token")
		text, kb := render.StaleToken()
		r.edit(ctx, upd, text, kb)
		return
	}
	log.Debug("Router dispatching", "screen", token.Screen)

	switch token.Screen {
	case nav.ScreenNoop:
		return

	case nav.ScreenMainMenu:
		// Returning to the menu also abandons any capture in progress.
		c := r.contexts.Get(upd.UserID)
		c.State = flow.StateIdle
		r.contexts.Put(upd.UserID, c)
		text, kb := render.MainMenu()
		r.edit(ctx, upd, text, kb)

	case nav.ScreenHelp:
		text, kb := render.Help()
		r.edit(ctx, upd, text, kb)

	case nav.ScreenSearchINN:
		reply := r.capture.Begin(upd.UserID, flow.StateAwaitingINN)
		r.edit(ctx, upd, reply.Text, render.CancelKeyboard())

	case nav.ScreenSearchOGRN:
		reply := r.capture.Begin(upd.UserID, flow.StateAwaitingOGRN)
		r.edit(ctx, upd, reply.Text, render.CancelKeyboard())

	case nav.ScreenCancel:
		reply := r.capture.Cancel(upd.UserID)
		r.edit(ctx, upd, reply.Text, reply.Keyboard)

	case nav.ScreenCompany:
		r.companyScreen(ctx, upd, token, "company", render.Company)

	case nav.ScreenFinances:
		r.companyScreen(ctx, upd, token, "finances", render.Finances)

	case nav.ScreenRequisites:
		r.companyScreen(ctx, upd, token, "requisites", render.Requisites)

	case nav.ScreenAddress:
		r.companyScreen(ctx, upd, token, "address", render.Address)

	case nav.ScreenDirectors:
		r.companyScreen(ctx, upd, token, "directors", render.Directors)

	case nav.ScreenFounders:
		r.companyScreen(ctx, upd, token, "founders", render.Founders)

	case nav.ScreenAddressesHistory:
		r.companyScreen(ctx, upd, token, "addresses_history", render.AddressesHistory)

	case nav.ScreenOkved:
		r.companyScreen(ctx, upd, token, "okved", render.Okved)

	case nav.ScreenHistory:
		text, kb := render.HistoryMenu(token.INN)
		r.edit(ctx, upd, text, kb)

	case nav.ScreenCourt:
		r.courtScreen(ctx, upd, token)

	case nav.ScreenProcurement:
		r.procurementScreen(ctx, upd, token)

	case nav.ScreenExportMenu:
		screen := token.Arg
		if screen == "" {
			screen = "company"
		}
		text, kb := render.ExportMenu(token.INN, screen)
		r.edit(ctx, upd, text, kb)

	case nav.ScreenExportScreen:
		r.exportScreen(ctx, upd, token)

	case nav.ScreenExportFull:
		r.exportFull(ctx, upd, token)
	}
}

// ackNotice picks the ack banner: exports show a progress notice.
func ackNotice(data string) string {
	token, err := nav.Decode(data)
	if err != nil {
		return ""
	}
	switch token.Screen {
	case nav.ScreenExportScreen:
		return "📄 Генерация PDF..."
	case nav.ScreenExportFull:
		return "📚 Генерация полного отчёта..."
	default:
		return ""
	}
}

func (r *Router) edit(ctx context.Context, upd models.Update, text string, kb models.Keyboard) {
	if err := r.svc.EditMessage(ctx, upd.UserID, upd.MessageID, text, kb); err != nil {
		slog.Error("Router edit failed", "userID", upd.UserID, "error", err)
	}
}

// company returns the record for inn, preferring the user's context
// and falling back to the registry. On a fresh lookup the context is
// refreshed so sibling screens render without another upstream call.
func (r *Router) company(ctx context.Context, userID int64, inn string) *models.CompanyRecord {
	c := r.contexts.Get(userID)
	if c.Company != nil && c.INN == inn {
		return c.Company
	}
	rec, err := r.registry.FindByINN(ctx, inn)
	if err != nil {
		slog.Warn("Router company lookup degraded", "userID", userID, "inn", inn, "error", err)
		return nil
	}
	if rec == nil {
		return nil
	}
	c.Company = rec
	c.INN = rec.INN
	r.contexts.Put(userID, c)
	return rec
}

// companyScreen renders one detail screen, passing the text through
// the optional formatter while keeping the pure renderer's keyboard.
func (r *Router) companyScreen(ctx context.Context, upd models.Update, token nav.Token, kind string,
	screen func(*models.CompanyRecord) (string, models.Keyboard)) {
	rec := r.company(ctx, upd.UserID, token.INN)
	if rec == nil {
		r.edit(ctx, upd, companyNotFoundText, render.MainMenuKeyboard())
		return
	}
	text, kb := screen(rec)
	if r.formatter != nil {
		if formatted, err := r.formatter.FormatScreen(ctx, kind, text); err == nil {
			text = formatted
		} else {
			slog.Warn("Router formatter fell back to plain rendering", "screen", kind, "error", err)
		}
	}
	r.edit(ctx, upd, text, kb)
}

// listTarget resolves the page a list token asks for. Pagination
// tokens carry the page the button was rendered at; the target is one
// step in the pressed direction, floored at page 1. The renderer
// clamps the upper bound against the freshly fetched total.
func listTarget(token nav.Token) int {
	page := token.Page
	if page < 1 {
		page = 1
	}
	switch token.Dir {
	case nav.DirNext:
		return page + 1
	case nav.DirPrev:
		if page > 1 {
			return page - 1
		}
		return 1
	default:
		return page
	}
}

func (r *Router) courtScreen(ctx context.Context, upd models.Update, token nav.Token) {
	rec := r.company(ctx, upd.UserID, token.INN)
	if rec == nil {
		r.edit(ctx, upd, companyNotFoundText, render.MainMenuKeyboard())
		return
	}
	r.edit(ctx, upd, render.Searching("Поиск судебных дел..."), nil)
	page := r.court.SearchCases(ctx, token.INN, listTarget(token))
	text, kb := render.CourtCases(rec.ShortName(), token.INN, page)
	r.edit(ctx, upd, text, kb)
}

func (r *Router) procurementScreen(ctx context.Context, upd models.Update, token nav.Token) {
	rec := r.company(ctx, upd.UserID, token.INN)
	if rec == nil {
		r.edit(ctx, upd, companyNotFoundText, render.MainMenuKeyboard())
		return
	}
	r.edit(ctx, upd, render.Searching("Поиск госзакупок..."), nil)
	page := r.procurement.SearchProcurements(ctx, token.INN, listTarget(token))
	text, kb := render.Procurements(rec.ShortName(), token.INN, page)
	r.edit(ctx, upd, text, kb)
}

func (r *Router) exportScreen(ctx context.Context, upd models.Update, token nav.Token) {
	rec := r.company(ctx, upd.UserID, token.INN)
	if rec == nil {
		r.edit(ctx, upd, companyNotFoundText, render.MainMenuKeyboard())
		return
	}
	back := render.BackKeyboard(nav.Token{Screen: nav.ScreenCompany, INN: token.INN})

	doc, err := r.exporter.ExportScreen(ctx, rec, token.Arg)
	if err != nil {
		// Export failure leaves the conversation context untouched.
		r.edit(ctx, upd, "❌ Ошибка при генерации PDF. Попробуйте позже.", back)
		return
	}
	if err := r.svc.SendDocument(ctx, upd.UserID, doc); err != nil {
		slog.Error("Router document delivery failed", "userID", upd.UserID, "error", err)
		r.edit(ctx, upd, "❌ Не удалось отправить документ.", back)
		return
	}
	r.edit(ctx, upd, "✅ PDF успешно сгенерирован", back)
}

func (r *Router) exportFull(ctx context.Context, upd models.Update, token nav.Token) {
	rec := r.company(ctx, upd.UserID, token.INN)
	if rec == nil {
		r.edit(ctx, upd, companyNotFoundText, render.MainMenuKeyboard())
		return
	}
	back := render.BackKeyboard(nav.Token{Screen: nav.ScreenCompany, INN: token.INN})

	doc, err := r.exporter.ExportFull(ctx, rec)
	if err != nil {
		r.edit(ctx, upd, "❌ Ошибка при генерации отчёта. Попробуйте позже.", back)
		return
	}
	if err := r.svc.SendDocument(ctx, upd.UserID, doc); err != nil {
		slog.Error("Router document delivery failed", "userID", upd.UserID, "error", err)
		r.edit(ctx, upd, "❌ Не удалось отправить документ.", back)
		return
	}
	r.edit(ctx, upd, "✅ Полный отчёт успешно сгенерирован", back)
}
