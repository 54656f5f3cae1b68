// Package render turns canonical records and list pages into display
// text and keyboard descriptions.
//
// Every function here is a pure function of its inputs: no upstream
// calls, no hidden state. That keeps screens independently testable and
// guarantees exports (which reuse the same section builders) can never
// diverge from what the user saw on screen.
package render

import (
	"fmt"
	"strings"

	"companybot/internal/models"
	"companybot/internal/nav"
)

// MainMenu renders the welcome screen.
func MainMenu() (string, models.Keyboard) {
	text := "🏠 <b>Главное меню</b>\n\n" +
		"Я бот для поиска информации о российских компаниях.\n\n" +
		"Могу найти данные по ИНН или ОГРН:\n" +
		"• Основная информация\n" +
		"• Руководители и учредители\n" +
		"• Адреса и ОКВЭД\n" +
		"• Судебные дела\n" +
		"• Госзакупки\n" +
		"• Экспорт в PDF\n\n" +
		"Выберите действие:"
	return text, MainMenuKeyboard()
}

// Help renders the help screen.
func Help() (string, models.Keyboard) {
	text := "ℹ️ <b>Помощь</b>\n\n" +
		"<b>Доступные действия:</b>\n\n" +
		"🔍 <b>Поиск по ИНН</b>\nВведите 10 или 12-значный ИНН компании\n\n" +
		"🏢 <b>Поиск по ОГРН</b>\nВведите 13 или 15-значный ОГРН компании\n\n" +
		"<b>Функции бота:</b>\n" +
		"• Основная информация о компании\n" +
		"• Руководители и учредители\n" +
		"• Адреса регистрации\n" +
		"• Виды деятельности (ОКВЭД)\n" +
		"• Судебные дела\n" +
		"• Государственные закупки\n" +
		"• Экспорт данных в PDF\n\n" +
		"<b>Кэширование:</b>\nРезультаты поиска кэшируются на 1 час для быстрого доступа."
	return text, MainMenuKeyboard()
}

// Company renders the summary screen with the company menu.
func Company(rec *models.CompanyRecord) (string, models.Keyboard) {
	text := "📊 <b>ИНФОРМАЦИЯ О КОМПАНИИ</b>\n\n" + SummarySection(rec)
	return text, CompanyMenuKeyboard(rec.INN)
}

// Finances renders the financial summary screen.
func Finances(rec *models.CompanyRecord) (string, models.Keyboard) {
	return FinancesSection(rec), BackKeyboard(nav.Token{Screen: nav.ScreenCompany, INN: rec.INN})
}

// Requisites renders the identifier screen.
func Requisites(rec *models.CompanyRecord) (string, models.Keyboard) {
	return RequisitesSection(rec), BackKeyboard(nav.Token{Screen: nav.ScreenCompany, INN: rec.INN})
}

// Address renders the address screen.
func Address(rec *models.CompanyRecord) (string, models.Keyboard) {
	return AddressesSection(rec), BackKeyboard(nav.Token{Screen: nav.ScreenCompany, INN: rec.INN})
}

// Directors renders the management screen.
func Directors(rec *models.CompanyRecord) (string, models.Keyboard) {
	return ManagementSection(rec), BackKeyboard(nav.Token{Screen: nav.ScreenHistory, INN: rec.INN})
}

// Founders renders the founders screen.
func Founders(rec *models.CompanyRecord) (string, models.Keyboard) {
	return FoundersSection(rec), BackKeyboard(nav.Token{Screen: nav.ScreenHistory, INN: rec.INN})
}

// AddressesHistory renders the address history screen.
func AddressesHistory(rec *models.CompanyRecord) (string, models.Keyboard) {
	text := AddressesSection(rec) +
		"\n\n<i>История смены адресов требует расширенной подписки источника данных</i>"
	return text, BackKeyboard(nav.Token{Screen: nav.ScreenHistory, INN: rec.INN})
}

// Okved renders the activity codes screen.
func Okved(rec *models.CompanyRecord) (string, models.Keyboard) {
	return OkvedSection(rec), BackKeyboard(nav.Token{Screen: nav.ScreenHistory, INN: rec.INN})
}

// HistoryMenu renders the history submenu.
func HistoryMenu(inn string) (string, models.Keyboard) {
	return "📚 <b>История изменений</b>\n\nВыберите раздел:", HistoryMenuKeyboard(inn)
}

// ExportMenu renders the export format chooser. screen names the
// origin screen carried into the single-screen export token.
func ExportMenu(inn, screen string) (string, models.Keyboard) {
	return "📄 <b>Экспорт в PDF</b>\n\nВыберите формат:", ExportMenuKeyboard(inn, screen)
}

// StaleToken renders the terminal screen for undecodable callbacks.
func StaleToken() (string, models.Keyboard) {
	return "⏰ Кнопка устарела.\n\nОткройте меню заново:", MainMenuKeyboard()
}

// Searching renders the progress notice shown before slow upstreams.
func Searching(what string) string {
	return "⏳ " + what
}

// ClampPage forces a best-effort page cursor into [1, totalPages], so
// a result set that shrank between page loads can never render an
// out-of-range page.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// CourtCases renders one page of court filings. Empty pages show the
// adapter's note instead of a bare table; navigation controls appear
// only when there is more than one page.
func CourtCases(companyName, inn string, page *models.CourtCasesPage) (string, models.Keyboard) {
	var b strings.Builder
	b.WriteString(sectionHeader("⚖️ СУДЕБНЫЕ ДЕЛА"))
	b.WriteString(fmt.Sprintf("\n<b>Компания:</b> %s\n<b>ИНН:</b> <code>%s</code>\n\n", companyName, inn))

	totalPages := page.TotalPages()
	current := ClampPage(page.Page, totalPages)

	if len(page.Cases) == 0 {
		b.WriteString("ℹ️ Дела не найдены\n\n<i>" + page.Note + "</i>")
	} else {
		b.WriteString(fmt.Sprintf("<b>Всего дел:</b> %d\n<b>Страница:</b> %d\n\n", page.Total, current))
		for i, c := range page.Cases {
			b.WriteString(fmt.Sprintf("%d. <b>%s</b>\n   📅 %s\n   📊 %s\n\n", i+1, c.Number, c.Date, c.Status))
		}
		if page.Note != "" {
			b.WriteString("<i>" + page.Note + "</i>")
		}
	}

	text := strings.TrimRight(b.String(), "\n")
	if totalPages > 1 {
		return text, PaginationKeyboard(nav.ScreenCourt, inn, current, totalPages)
	}
	return text, BackKeyboard(nav.Token{Screen: nav.ScreenCompany, INN: inn})
}

// Procurements renders one page of procurement records with the same
// contract as CourtCases.
func Procurements(companyName, inn string, page *models.ProcurementsPage) (string, models.Keyboard) {
	var b strings.Builder
	b.WriteString(sectionHeader("🏛 ГОСЗАКУПКИ"))
	b.WriteString(fmt.Sprintf("\n<b>Компания:</b> %s\n<b>ИНН:</b> <code>%s</code>\n\n", companyName, inn))

	totalPages := page.TotalPages()
	current := ClampPage(page.Page, totalPages)

	if len(page.Procurements) == 0 {
		b.WriteString("ℹ️ Закупки не найдены\n\n<i>" + page.Note + "</i>")
	} else {
		b.WriteString(fmt.Sprintf("<b>Всего закупок:</b> %d\n<b>Страница:</b> %d\n\n", page.Total, current))
		for i, p := range page.Procurements {
			b.WriteString(fmt.Sprintf("%d. <b>%s</b>\n   📅 %s\n   💰 %s\n   📊 %s\n\n", i+1, p.Number, p.Date, p.Sum, p.Status))
		}
		if page.Note != "" {
			b.WriteString("<i>" + page.Note + "</i>")
		}
	}

	text := strings.TrimRight(b.String(), "\n")
	if totalPages > 1 {
		return text, PaginationKeyboard(nav.ScreenProcurement, inn, current, totalPages)
	}
	return text, BackKeyboard(nav.Token{Screen: nav.ScreenCompany, INN: inn})
}
