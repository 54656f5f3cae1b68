package models

// digitsOnly reports whether s is non-empty and consists of ASCII digits.
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ValidateINN checks the 10/12-digit taxpayer identifier format.
func ValidateINN(inn string) error {
	if !digitsOnly(inn) || (len(inn) != 10 && len(inn) != 12) {
		return ErrInvalidINN
	}
	return nil
}

// ValidateOGRN checks the 13/15-digit state registration number format.
func ValidateOGRN(ogrn string) error {
	if !digitsOnly(ogrn) || (len(ogrn) != 13 && len(ogrn) != 15) {
		return ErrInvalidOGRN
	}
	return nil
}
