package render

import (
	"fmt"

	"companybot/internal/models"
	"companybot/internal/nav"
)

func button(text string, t nav.Token) models.Button {
	return models.Button{Text: text, Data: t.Encode()}
}

// MainMenuKeyboard is the top-level action list.
func MainMenuKeyboard() models.Keyboard {
	return models.Keyboard{
		{button("🔍 Поиск по ИНН", nav.Token{Screen: nav.ScreenSearchINN})},
		{button("🏢 Поиск по ОГРН", nav.Token{Screen: nav.ScreenSearchOGRN})},
		{button("ℹ️ Помощь", nav.Token{Screen: nav.ScreenHelp})},
	}
}

// CancelKeyboard offers the way out of an awaiting state.
func CancelKeyboard() models.Keyboard {
	return models.Keyboard{
		{button("❌ Отмена", nav.Token{Screen: nav.ScreenCancel})},
	}
}

// CompanyMenuKeyboard lists every screen reachable from the summary.
func CompanyMenuKeyboard(inn string) models.Keyboard {
	return models.Keyboard{
		{button("💰 Финансы", nav.Token{Screen: nav.ScreenFinances, INN: inn})},
		{button("📋 Реквизиты", nav.Token{Screen: nav.ScreenRequisites, INN: inn})},
		{button("📍 Адрес", nav.Token{Screen: nav.ScreenAddress, INN: inn})},
		{button("📚 История изменений", nav.Token{Screen: nav.ScreenHistory, INN: inn})},
		{button("⚖️ Судебные дела", nav.Token{Screen: nav.ScreenCourt, INN: inn, Page: 1})},
		{button("🏛 Госзакупки", nav.Token{Screen: nav.ScreenProcurement, INN: inn, Page: 1})},
		{button("📄 Экспорт PDF", nav.Token{Screen: nav.ScreenExportMenu, INN: inn})},
		{button("◀️ Главное меню", nav.Token{Screen: nav.ScreenMainMenu})},
	}
}

// HistoryMenuKeyboard is the history submenu.
func HistoryMenuKeyboard(inn string) models.Keyboard {
	return models.Keyboard{
		{button("👤 Директора", nav.Token{Screen: nav.ScreenDirectors, INN: inn})},
		{button("👥 Учредители", nav.Token{Screen: nav.ScreenFounders, INN: inn})},
		{button("📍 Адреса", nav.Token{Screen: nav.ScreenAddressesHistory, INN: inn})},
		{button("📊 ОКВЭД", nav.Token{Screen: nav.ScreenOkved, INN: inn})},
		{button("◀️ Назад", nav.Token{Screen: nav.ScreenCompany, INN: inn})},
	}
}

// ExportMenuKeyboard offers the export formats. screen names the
// origin screen for the single-screen export.
func ExportMenuKeyboard(inn, screen string) models.Keyboard {
	return models.Keyboard{
		{button("📱 Экспорт текущего экрана", nav.Token{Screen: nav.ScreenExportScreen, INN: inn, Arg: screen})},
		{button("📚 Полный отчёт", nav.Token{Screen: nav.ScreenExportFull, INN: inn})},
		{button("◀️ Назад", nav.Token{Screen: nav.ScreenCompany, INN: inn})},
	}
}

// BackKeyboard is a single back button pointing at token t.
func BackKeyboard(t nav.Token) models.Keyboard {
	return models.Keyboard{
		{button("◀️ Назад", t)},
	}
}

// PaginationKeyboard builds the list navigation row. Previous/next
// controls appear only when a page exists in that direction; the page
// indicator itself is a noop button.
func PaginationKeyboard(kind nav.Screen, inn string, page, totalPages int) models.Keyboard {
	var row []models.Button
	if page > 1 {
		row = append(row, button("◀️", nav.Token{Screen: kind, Dir: nav.DirPrev, Page: page, INN: inn}))
	}
	row = append(row, button(fmt.Sprintf("• %d/%d •", page, totalPages), nav.Token{Screen: nav.ScreenNoop}))
	if page < totalPages {
		row = append(row, button("▶️", nav.Token{Screen: kind, Dir: nav.DirNext, Page: page, INN: inn}))
	}
	return models.Keyboard{
		row,
		{button("◀️ Назад", nav.Token{Screen: nav.ScreenCompany, INN: inn})},
	}
}
