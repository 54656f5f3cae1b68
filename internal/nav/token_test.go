package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		token Token
		wire  string
	}{
		{"bare main menu", Token{Screen: ScreenMainMenu}, "main_menu"},
		{"bare help", Token{Screen: ScreenHelp}, "help"},
		{"bare cancel", Token{Screen: ScreenCancel}, "cancel"},
		{"bare noop", Token{Screen: ScreenNoop}, "noop"},
		{"company detail", Token{Screen: ScreenCompany, INN: "7707083893"}, "company:7707083893"},
		{"finances detail", Token{Screen: ScreenFinances, INN: "7707083893"}, "finances:7707083893"},
		{"history submenu", Token{Screen: ScreenHistory, INN: "7707083893"}, "history:7707083893"},
		{"court page", Token{Screen: ScreenCourt, INN: "7707083893", Page: 2}, "court:7707083893:2"},
		{"court next", Token{Screen: ScreenCourt, Dir: DirNext, Page: 2, INN: "7707083893"}, "court:next:2:7707083893"},
		{"procurement prev", Token{Screen: ScreenProcurement, Dir: DirPrev, Page: 3, INN: "7707083893"}, "procurement:prev:3:7707083893"},
		{"export menu", Token{Screen: ScreenExportMenu, INN: "7707083893"}, "export_menu:7707083893"},
		{"export menu with origin", Token{Screen: ScreenExportMenu, INN: "7707083893", Arg: "finances"}, "export_menu:7707083893:finances"},
		{"export one screen", Token{Screen: ScreenExportScreen, INN: "7707083893", Arg: "company"}, "export_screen:7707083893:company"},
		{"export full", Token{Screen: ScreenExportFull, INN: "7707083893"}, "export_full:7707083893"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wire, tc.token.Encode())

			decoded, err := Decode(tc.wire)
			require.NoError(t, err)
			assert.Equal(t, tc.token, decoded)
		})
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty payload", ""},
		{"only delimiters", "::"},
		{"unknown screen", "bogus:123"},
		{"detail without inn", "company"},
		{"detail with empty inn", "company:"},
		{"detail with non-numeric inn", "company:abc"},
		{"detail with extra segment", "company:7707083893:extra"},
		{"bare screen with trailing segment", "main_menu:7707083893"},
		{"list without page", "court:7707083893"},
		{"list with non-numeric page", "court:7707083893:two"},
		{"list with zero page", "court:7707083893:0"},
		{"list control with bad direction", "court:sideways:2:7707083893"},
		{"list control with non-numeric page", "court:next:x:7707083893"},
		{"list control with non-numeric inn", "court:next:2:abc"},
		{"export screen without arg", "export_screen:7707083893"},
		{"export screen with empty arg", "export_screen:7707083893:"},
		{"export menu with empty arg", "export_menu:7707083893:"},
		{"export menu without inn", "export_menu"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			assert.ErrorIs(t, err, ErrStaleToken)
		})
	}
}

func TestIsValidScreen(t *testing.T) {
	assert.True(t, IsValidScreen(ScreenCourt))
	assert.True(t, IsValidScreen(ScreenExportFull))
	assert.False(t, IsValidScreen(Screen("settings")))
	assert.False(t, IsValidScreen(Screen("")))
}
