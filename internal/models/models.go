// Package models defines the core data structures for companybot.
//
// It includes the canonical company record shared by every screen and
// export path, list pages for court and procurement results, and the
// inbound event shapes delivered by the messaging transport.
package models

import (
	"errors"
	"strings"
)

// NoData is the canonical sentinel for a field the upstream source did
// not populate. Renderers print it verbatim instead of skipping rows,
// so a missing value is always distinguishable from a rendering bug.
const NoData = "нет данных"

// Error variables for better error handling and testability
var (
	ErrInvalidINN  = errors.New("ИНН должен содержать 10 или 12 цифр")
	ErrInvalidOGRN = errors.New("ОГРН должен содержать 13 или 15 цифр")
	ErrNotFound    = errors.New("компания не найдена")
	ErrUnavailable = errors.New("источник данных временно недоступен")
)

// CompanyName holds the registered name variants of a company.
type CompanyName struct {
	Full  string `json:"full"`
	Short string `json:"short"`
	Latin string `json:"latin"`
}

// CompanyState holds registration status and lifecycle dates.
type CompanyState struct {
	Status           string `json:"status"`
	RegistrationDate string `json:"registration_date"`
	LiquidationDate  string `json:"liquidation_date"`
}

// Management identifies the current head of the company.
type Management struct {
	Name string `json:"name"`
	Post string `json:"post"`
}

// Founder is one entry of the ordered founders list.
type Founder struct {
	Name  string `json:"name"`
	Share string `json:"share"`
}

// CompanyAddress holds the display address plus structured parts.
type CompanyAddress struct {
	Value      string `json:"value"`
	PostalCode string `json:"postal_code"`
	Region     string `json:"region"`
	City       string `json:"city"`
}

// Finance is the optional financial summary of a company. Available is
// false when the upstream subscription tier does not expose finance
// data; the Note then carries the human-readable explanation.
type Finance struct {
	Available bool   `json:"available"`
	Year      string `json:"year"`
	Income    string `json:"income"`
	Expense   string `json:"expense"`
	Revenue   string `json:"revenue"`
	Note      string `json:"note,omitempty"`
}

// CompanyRecord is the canonical, normalized representation of a
// looked-up company. Every leaf field is either a real value or the
// NoData sentinel — never empty — which Normalize enforces.
type CompanyRecord struct {
	INN        string         `json:"inn"`
	OGRN       string         `json:"ogrn"`
	KPP        string         `json:"kpp"`
	Name       CompanyName    `json:"name"`
	State      CompanyState   `json:"state"`
	Management Management     `json:"management"`
	Founders   []Founder      `json:"founders"`
	Address    CompanyAddress `json:"address"`
	Okved      string         `json:"okved"`
	OkvedType  string         `json:"okved_type"`
	Okveds     []string       `json:"okveds"`
	Capital    string         `json:"capital"`
	Finance    Finance        `json:"finance"`
}

// Normalize replaces every empty leaf field with the NoData sentinel.
// Founders and Okveds stay as-is: an empty list is meaningful on its own.
func (r *CompanyRecord) Normalize() {
	fields := []*string{
		&r.INN, &r.OGRN, &r.KPP,
		&r.Name.Full, &r.Name.Short, &r.Name.Latin,
		&r.State.Status, &r.State.RegistrationDate, &r.State.LiquidationDate,
		&r.Management.Name, &r.Management.Post,
		&r.Address.Value, &r.Address.PostalCode, &r.Address.Region, &r.Address.City,
		&r.Okved, &r.OkvedType, &r.Capital,
	}
	for _, f := range fields {
		if strings.TrimSpace(*f) == "" {
			*f = NoData
		}
	}
	for i := range r.Founders {
		if strings.TrimSpace(r.Founders[i].Name) == "" {
			r.Founders[i].Name = NoData
		}
		if strings.TrimSpace(r.Founders[i].Share) == "" {
			r.Founders[i].Share = NoData
		}
	}
	if !r.Finance.Available {
		return
	}
	finance := []*string{&r.Finance.Year, &r.Finance.Income, &r.Finance.Expense, &r.Finance.Revenue}
	for _, f := range finance {
		if strings.TrimSpace(*f) == "" {
			*f = NoData
		}
	}
}

// ShortName returns the short company name, falling back to the full
// name so callers always have something displayable.
func (r *CompanyRecord) ShortName() string {
	if r.Name.Short != "" && r.Name.Short != NoData {
		return r.Name.Short
	}
	return r.Name.Full
}

// CourtCase is one row of the court filings list.
type CourtCase struct {
	Number string `json:"number"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// CourtCasesPage is one page of court search results.
type CourtCasesPage struct {
	Cases   []CourtCase `json:"cases"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Note    string      `json:"note,omitempty"`
}

// TotalPages returns the page count for the result set, minimum 1.
func (p *CourtCasesPage) TotalPages() int {
	return TotalPages(p.Total, p.PerPage)
}

// Procurement is one row of the government procurement list.
type Procurement struct {
	Number string `json:"number"`
	Date   string `json:"date"`
	Sum    string `json:"sum"`
	Status string `json:"status"`
}

// ProcurementsPage is one page of procurement search results.
type ProcurementsPage struct {
	Procurements []Procurement `json:"procurements"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PerPage      int           `json:"per_page"`
	Note         string        `json:"note,omitempty"`
}

// TotalPages returns the page count for the result set, minimum 1.
func (p *ProcurementsPage) TotalPages() int {
	return TotalPages(p.Total, p.PerPage)
}

// TotalPages computes ceil(total/perPage) with a floor of one page, so
// empty result sets still render as page 1 of 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Button is one pressable control of an inline keyboard. Data carries
// the encoded navigation token delivered back as the callback payload.
type Button struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// Keyboard is a row-major inline keyboard description.
type Keyboard [][]Button

// CallbackQuery is a button press delivered by the transport.
type CallbackQuery struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// Update is one inbound interaction: either free text or a button press.
type Update struct {
	UserID    int64          `json:"user_id"`
	MessageID int64          `json:"message_id"`
	Text      string         `json:"text,omitempty"`
	Callback  *CallbackQuery `json:"callback,omitempty"`
}

// Document is a generated export artifact ready for delivery.
type Document struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Caption  string `json:"caption,omitempty"`
	Data     []byte `json:"-"`
}
