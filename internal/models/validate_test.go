package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateINN(t *testing.T) {
	tests := []struct {
		name  string
		inn   string
		valid bool
	}{
		{"ten digits", "7707083893", true},
		{"twelve digits", "770708389312", true},
		{"too short", "12345", false},
		{"eleven digits", "77070838931", false},
		{"thirteen digits", "7707083893123", false},
		{"letters", "77070abc93", false},
		{"embedded space", "7707 83893", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateINN(tc.inn)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidINN)
			}
		})
	}
}

func TestValidateOGRN(t *testing.T) {
	tests := []struct {
		name  string
		ogrn  string
		valid bool
	}{
		{"thirteen digits", "1027700132195", true},
		{"fifteen digits", "102770013219512", true},
		{"ten digits", "7707083893", false},
		{"fourteen digits", "10277001321951", false},
		{"letters", "10277001321ab", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateOGRN(tc.ogrn)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidOGRN)
			}
		})
	}
}
