package render

import (
	"fmt"
	"strings"

	"companybot/internal/models"
)

// Section texts are shared verbatim between the detail screens and the
// export orchestrator, so exported and on-screen data cannot diverge.

func sectionHeader(title string) string {
	return "┏━━━━━━━━━━━━━━━━━━━━━━━━━━┓\n┃ " + title + "\n┗━━━━━━━━━━━━━━━━━━━━━━━━━━┛\n"
}

// SummarySection renders identity, status, management, address and
// capital rows. Every row is present: absent values show the sentinel.
func SummarySection(rec *models.CompanyRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏢 <b>%s</b>\n", rec.Name.Full))
	if rec.Name.Short != rec.Name.Full && rec.Name.Short != models.NoData {
		b.WriteString(fmt.Sprintf("(%s)\n", rec.Name.Short))
	}
	b.WriteString("\n")
	b.WriteString(sectionHeader("📋 РЕКВИЗИТЫ"))
	b.WriteString(fmt.Sprintf("\n• ИНН: <code>%s</code>\n", rec.INN))
	b.WriteString(fmt.Sprintf("• ОГРН: <code>%s</code>\n", rec.OGRN))
	b.WriteString(fmt.Sprintf("• КПП: <code>%s</code>\n", rec.KPP))
	b.WriteString(fmt.Sprintf("• Статус: %s\n", rec.State.Status))
	b.WriteString(fmt.Sprintf("• Дата регистрации: %s\n", rec.State.RegistrationDate))
	b.WriteString("\n")
	b.WriteString(sectionHeader("👤 РУКОВОДСТВО"))
	b.WriteString(fmt.Sprintf("\n• %s: %s\n", rec.Management.Post, rec.Management.Name))
	b.WriteString("\n")
	b.WriteString(sectionHeader("📍 АДРЕС"))
	b.WriteString(fmt.Sprintf("\n%s\n", rec.Address.Value))
	b.WriteString("\n")
	b.WriteString(sectionHeader("💰 УСТАВНЫЙ КАПИТАЛ"))
	b.WriteString(fmt.Sprintf("\n%s", rec.Capital))
	return b.String()
}

// ManagementSection renders the current head of the company.
func ManagementSection(rec *models.CompanyRecord) string {
	var b strings.Builder
	b.WriteString(sectionHeader("👤 ДИРЕКТОРА"))
	b.WriteString("\n<b>Текущий руководитель:</b>\n\n")
	b.WriteString(fmt.Sprintf("• ФИО: %s\n", rec.Management.Name))
	b.WriteString(fmt.Sprintf("• Должность: %s\n", rec.Management.Post))
	b.WriteString("\n<i>История изменений руководителей требует расширенной подписки источника данных</i>")
	return b.String()
}

// FoundersSection renders the ordered founders list.
func FoundersSection(rec *models.CompanyRecord) string {
	var b strings.Builder
	b.WriteString(sectionHeader("👥 УЧРЕДИТЕЛИ"))
	if len(rec.Founders) == 0 {
		b.WriteString("\n" + models.NoData)
		return b.String()
	}
	for i, f := range rec.Founders {
		b.WriteString(fmt.Sprintf("\n<b>%d. %s</b>\n   Доля: %s\n", i+1, f.Name, f.Share))
	}
	return strings.TrimRight(b.String(), "\n")
}

// AddressesSection renders the registered address with its parts.
func AddressesSection(rec *models.CompanyRecord) string {
	var b strings.Builder
	b.WriteString(sectionHeader("📍 АДРЕСА"))
	b.WriteString("\n<b>Юридический адрес:</b>\n")
	b.WriteString(rec.Address.Value + "\n\n")
	b.WriteString(fmt.Sprintf("<b>Индекс:</b> %s\n", rec.Address.PostalCode))
	b.WriteString(fmt.Sprintf("<b>Регион:</b> %s\n", rec.Address.Region))
	b.WriteString(fmt.Sprintf("<b>Город:</b> %s", rec.Address.City))
	return b.String()
}

// maxOkvedRows caps the additional activity codes shown in one section.
const maxOkvedRows = 10

// OkvedSection renders the primary and additional activity codes.
func OkvedSection(rec *models.CompanyRecord) string {
	var b strings.Builder
	b.WriteString(sectionHeader("📊 ОКВЭД"))
	b.WriteString("\n<b>Основной вид деятельности:</b>\n")
	b.WriteString(rec.Okved)
	if len(rec.Okveds) > 0 {
		b.WriteString("\n\n<b>Дополнительные виды деятельности:</b>\n")
		for i, o := range rec.Okveds {
			if i == maxOkvedRows {
				b.WriteString(fmt.Sprintf("\n<i>... и еще %d видов деятельности</i>", len(rec.Okveds)-maxOkvedRows))
				break
			}
			b.WriteString(fmt.Sprintf("\n%d. %s", i+1, o))
		}
	}
	return b.String()
}

// FinancesSection renders the financial summary or its availability note.
func FinancesSection(rec *models.CompanyRecord) string {
	var b strings.Builder
	b.WriteString(sectionHeader("💰 ФИНАНСЫ"))
	if !rec.Finance.Available {
		note := rec.Finance.Note
		if note == "" {
			note = models.NoData
		}
		b.WriteString("\nℹ️ " + note)
		return b.String()
	}
	b.WriteString(fmt.Sprintf("\n• Год: %s\n", rec.Finance.Year))
	b.WriteString(fmt.Sprintf("• Доходы: %s\n", rec.Finance.Income))
	b.WriteString(fmt.Sprintf("• Расходы: %s\n", rec.Finance.Expense))
	b.WriteString(fmt.Sprintf("• Выручка: %s", rec.Finance.Revenue))
	return b.String()
}

// RequisitesSection renders the identifier rows only.
func RequisitesSection(rec *models.CompanyRecord) string {
	var b strings.Builder
	b.WriteString(sectionHeader("📋 РЕКВИЗИТЫ"))
	b.WriteString(fmt.Sprintf("\n• ИНН: <code>%s</code>\n", rec.INN))
	b.WriteString(fmt.Sprintf("• ОГРН: <code>%s</code>\n", rec.OGRN))
	b.WriteString(fmt.Sprintf("• КПП: <code>%s</code>\n", rec.KPP))
	b.WriteString(fmt.Sprintf("• Статус: %s\n", rec.State.Status))
	b.WriteString(fmt.Sprintf("• Дата регистрации: %s\n", rec.State.RegistrationDate))
	b.WriteString(fmt.Sprintf("• Дата ликвидации: %s", rec.State.LiquidationDate))
	return b.String()
}
