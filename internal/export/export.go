// Package export assembles PDF exports from the same canonical section
// text the screens render, so an exported report can never disagree
// with what the user saw.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"companybot/internal/models"
	"companybot/internal/providers"
	"companybot/internal/render"
)

// Generator is the document-generation surface the orchestrator needs.
type Generator interface {
	Generate(ctx context.Context, title string, sections []providers.DocSection) ([]byte, error)
}

// screenSections maps an exportable screen kind to its display name
// and section builder.
var screenSections = []struct {
	kind    string
	title   string
	section func(*models.CompanyRecord) string
}{
	{"company", "Основная информация", render.SummarySection},
	{"finances", "Финансы", render.FinancesSection},
	{"requisites", "Реквизиты", render.RequisitesSection},
	{"address", "Адрес", render.AddressesSection},
	{"directors", "Директора", render.ManagementSection},
	{"founders", "Учредители", render.FoundersSection},
	{"addresses_history", "История адресов", render.AddressesSection},
	{"okved", "ОКВЭД", render.OkvedSection},
}

// fullReportOrder fixes the section order of the full report: summary,
// management, founders, addresses, activity codes.
var fullReportOrder = []string{"company", "directors", "founders", "address", "okved"}

// Orchestrator fans canonical company data out into document
// generation calls.
type Orchestrator struct {
	docgen Generator
}

// NewOrchestrator creates an export orchestrator.
func NewOrchestrator(docgen Generator) *Orchestrator {
	return &Orchestrator{docgen: docgen}
}

// ExportScreen exports a single screen of the company.
func (o *Orchestrator) ExportScreen(ctx context.Context, rec *models.CompanyRecord, screen string) (models.Document, error) {
	title, text := screenContent(rec, screen)
	data, err := o.docgen.Generate(ctx, title, []providers.DocSection{{Heading: title, Body: text}})
	if err != nil {
		slog.Error("ExportScreen generation failed", "inn", rec.INN, "screen", screen, "error", err)
		return models.Document{}, fmt.Errorf("export of %s failed: %w", screen, err)
	}

	doc := models.Document{
		ID:       uuid.New().String(),
		Filename: Filename(rec.ShortName(), screen),
		Caption:  "📄 Экспорт: " + title,
		Data:     data,
	}
	slog.Info("ExportScreen succeeded", "inn", rec.INN, "screen", screen, "filename", doc.Filename)
	return doc, nil
}

// ExportFull exports the full report: a deterministic concatenation of
// the same sections the screens show, in a fixed order.
func (o *Orchestrator) ExportFull(ctx context.Context, rec *models.CompanyRecord) (models.Document, error) {
	sections := make([]providers.DocSection, 0, len(fullReportOrder))
	for _, kind := range fullReportOrder {
		title, text := screenContent(rec, kind)
		sections = append(sections, providers.DocSection{Heading: title, Body: text})
	}

	data, err := o.docgen.Generate(ctx, "Полный отчёт: "+rec.ShortName(), sections)
	if err != nil {
		slog.Error("ExportFull generation failed", "inn", rec.INN, "error", err)
		return models.Document{}, fmt.Errorf("full export failed: %w", err)
	}

	doc := models.Document{
		ID:       uuid.New().String(),
		Filename: Filename(rec.ShortName(), "full_report"),
		Caption:  "📚 Полный отчёт по компании",
		Data:     data,
	}
	slog.Info("ExportFull succeeded", "inn", rec.INN, "filename", doc.Filename)
	return doc, nil
}

// screenContent returns the display title and canonical text for an
// exportable screen kind, defaulting to the summary.
func screenContent(rec *models.CompanyRecord, screen string) (string, string) {
	for _, s := range screenSections {
		if s.kind == screen {
			return s.title, s.section(rec)
		}
	}
	return "Отчет", render.SummarySection(rec)
}

// Filename derives a document filename from the company short name and
// the screen kind.
func Filename(shortName, screen string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', '"', '\'':
			return '_'
		}
		return r
	}, strings.TrimSpace(shortName))
	if name == "" || name == models.NoData {
		name = "company"
	}
	return fmt.Sprintf("%s_%s.pdf", name, screen)
}
