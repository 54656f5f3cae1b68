package providers

import (
	"fmt"
	"strconv"
	"time"

	"companybot/internal/models"
)

// Raw registry response shapes. Only the fields the canonical record
// needs are declared; everything else in the payload is ignored.

type partyResponse struct {
	Suggestions []partySuggestion `json:"suggestions"`
}

type partySuggestion struct {
	Value string    `json:"value"`
	Data  partyData `json:"data"`
}

type partyData struct {
	INN        string           `json:"inn"`
	OGRN       string           `json:"ogrn"`
	KPP        string           `json:"kpp"`
	Name       partyName        `json:"name"`
	State      partyState       `json:"state"`
	Management *partyManagement `json:"management"`
	Founders   []partyFounder   `json:"founders"`
	Address    *partyAddress    `json:"address"`
	Okved      string           `json:"okved"`
	OkvedType  string           `json:"okved_type"`
	Okveds     []partyOkved     `json:"okveds"`
	Capital    *partyCapital    `json:"capital"`
	Finance    *partyFinance    `json:"finance"`
}

type partyName struct {
	FullWithOpf  string `json:"full_with_opf"`
	ShortWithOpf string `json:"short_with_opf"`
	Latin        string `json:"latin"`
}

type partyState struct {
	Status           string `json:"status"`
	RegistrationDate int64  `json:"registration_date"`
	LiquidationDate  int64  `json:"liquidation_date"`
}

type partyManagement struct {
	Name string `json:"name"`
	Post string `json:"post"`
}

type partyFounder struct {
	Name  string      `json:"name"`
	Fio   *partyFio   `json:"fio"`
	Share *partyShare `json:"share"`
}

type partyFio struct {
	Surname    string `json:"surname"`
	Name       string `json:"name"`
	Patronymic string `json:"patronymic"`
}

type partyShare struct {
	Value float64 `json:"value"`
	Type  string  `json:"type"`
}

type partyAddress struct {
	Value string            `json:"value"`
	Data  *partyAddressData `json:"data"`
}

type partyAddressData struct {
	PostalCode string `json:"postal_code"`
	Region     string `json:"region_with_type"`
	City       string `json:"city_with_type"`
}

type partyOkved struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type partyCapital struct {
	Value float64 `json:"value"`
}

type partyFinance struct {
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Revenue float64 `json:"revenue"`
}

// normalizeParty maps a raw registry suggestion onto the canonical
// record. Every missing leaf ends up as the NoData sentinel via
// Normalize, so renderers never branch on absence.
func normalizeParty(s *partySuggestion) *models.CompanyRecord {
	d := s.Data
	rec := &models.CompanyRecord{
		INN:  d.INN,
		OGRN: d.OGRN,
		KPP:  d.KPP,
		Name: models.CompanyName{
			Full:  d.Name.FullWithOpf,
			Short: d.Name.ShortWithOpf,
			Latin: d.Name.Latin,
		},
		State: models.CompanyState{
			Status:           d.State.Status,
			RegistrationDate: formatUnixMillis(d.State.RegistrationDate),
			LiquidationDate:  formatUnixMillis(d.State.LiquidationDate),
		},
		Okved:     d.Okved,
		OkvedType: d.OkvedType,
	}

	if d.Management != nil {
		rec.Management = models.Management{Name: d.Management.Name, Post: d.Management.Post}
	}
	if d.Address != nil {
		rec.Address.Value = d.Address.Value
		if d.Address.Data != nil {
			rec.Address.PostalCode = d.Address.Data.PostalCode
			rec.Address.Region = d.Address.Data.Region
			rec.Address.City = d.Address.Data.City
		}
	}
	for _, f := range d.Founders {
		rec.Founders = append(rec.Founders, models.Founder{
			Name:  founderName(f),
			Share: shareString(f.Share),
		})
	}
	for _, o := range d.Okveds {
		rec.Okveds = append(rec.Okveds, okvedString(o))
	}
	if d.Capital != nil && d.Capital.Value > 0 {
		rec.Capital = formatRubles(d.Capital.Value)
	}
	if d.Finance != nil {
		rec.Finance = models.Finance{
			Available: true,
			Year:      strconv.Itoa(d.Finance.Year),
			Income:    formatRubles(d.Finance.Income),
			Expense:   formatRubles(d.Finance.Expense),
			Revenue:   formatRubles(d.Finance.Revenue),
		}
	} else {
		rec.Finance = models.Finance{
			Available: false,
			Note:      "финансовая отчётность доступна на расширенном тарифе источника данных",
		}
	}

	rec.Normalize()
	return rec
}

func founderName(f partyFounder) string {
	if f.Name != "" {
		return f.Name
	}
	if f.Fio != nil {
		name := f.Fio.Surname
		if f.Fio.Name != "" {
			name += " " + f.Fio.Name
		}
		if f.Fio.Patronymic != "" {
			name += " " + f.Fio.Patronymic
		}
		return name
	}
	return ""
}

func shareString(s *partyShare) string {
	if s == nil || s.Value == 0 {
		return ""
	}
	if s.Type == "PERCENT" {
		return strconv.FormatFloat(s.Value, 'f', -1, 64) + "%"
	}
	return formatRubles(s.Value)
}

func okvedString(o partyOkved) string {
	if o.Code == "" {
		return o.Name
	}
	if o.Name == "" {
		return o.Code
	}
	return o.Code + " " + o.Name
}

// formatUnixMillis renders a registry millisecond timestamp as a date,
// returning "" (later normalized to the sentinel) for the zero value.
func formatUnixMillis(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("02.01.2006")
}

func formatRubles(v float64) string {
	return fmt.Sprintf("%.2f руб.", v)
}
