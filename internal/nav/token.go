// Package nav defines the closed screen vocabulary and the callback
// token codec.
//
// A token is a colon-delimited ASCII string whose first segment is a
// screen keyword. Company identifiers are numeric-only, so the colon
// can never appear inside a segment and the encoding round-trips
// losslessly. Decoding never panics: anything outside the closed
// vocabulary yields ErrStaleToken, which the router turns into the
// "token expired" screen.
package nav

import (
	"errors"
	"strconv"
	"strings"
)

// ErrStaleToken marks a callback payload that cannot be decoded,
// typically a button from an older bot version.
var ErrStaleToken = errors.New("устаревшая кнопка, откройте меню заново")

// Screen identifies one renderable view.
type Screen string

// The closed screen vocabulary. Unknown values never enter a Token.
const (
	ScreenMainMenu         Screen = "main_menu"
	ScreenHelp             Screen = "help"
	ScreenSearchINN        Screen = "search_inn"
	ScreenSearchOGRN       Screen = "search_ogrn"
	ScreenCancel           Screen = "cancel"
	ScreenCompany          Screen = "company"
	ScreenFinances         Screen = "finances"
	ScreenRequisites       Screen = "requisites"
	ScreenAddress          Screen = "address"
	ScreenHistory          Screen = "history"
	ScreenDirectors        Screen = "directors"
	ScreenFounders         Screen = "founders"
	ScreenAddressesHistory Screen = "addresses_history"
	ScreenOkved            Screen = "okved"
	ScreenCourt            Screen = "court"
	ScreenProcurement      Screen = "procurement"
	ScreenExportMenu       Screen = "export_menu"
	ScreenExportScreen     Screen = "export_screen"
	ScreenExportFull       Screen = "export_full"
	ScreenNoop             Screen = "noop"
)

// Pagination directions carried by list-screen tokens.
const (
	DirPrev = "prev"
	DirNext = "next"
)

// IsValidScreen checks membership in the closed vocabulary.
func IsValidScreen(s Screen) bool {
	switch s {
	case ScreenMainMenu, ScreenHelp, ScreenSearchINN, ScreenSearchOGRN,
		ScreenCancel, ScreenCompany, ScreenFinances, ScreenRequisites,
		ScreenAddress, ScreenHistory, ScreenDirectors, ScreenFounders,
		ScreenAddressesHistory, ScreenOkved, ScreenCourt, ScreenProcurement,
		ScreenExportMenu, ScreenExportScreen, ScreenExportFull, ScreenNoop:
		return true
	default:
		return false
	}
}

// Token is the decoded navigation payload of one button.
//
// Shapes on the wire:
//
//	screen                          bare menu action
//	screen:inn                      detail screen for a company
//	court:inn:page                  list screen at an explicit page
//	court:prev:page:inn             pagination control (Dir set)
//	export_menu:inn[:screenArg]     export menu, optionally remembering origin
//	export_screen:inn:screenArg     export of one named screen
type Token struct {
	Screen Screen
	INN    string
	Page   int
	Dir    string
	Arg    string
}

// bareScreen reports whether s carries no company context.
func bareScreen(s Screen) bool {
	switch s {
	case ScreenMainMenu, ScreenHelp, ScreenSearchINN, ScreenSearchOGRN, ScreenCancel, ScreenNoop:
		return true
	default:
		return false
	}
}

// listScreen reports whether s is a paginated list view.
func listScreen(s Screen) bool {
	return s == ScreenCourt || s == ScreenProcurement
}

// Encode serializes the token to its wire form.
func (t Token) Encode() string {
	switch {
	case bareScreen(t.Screen):
		return string(t.Screen)
	case listScreen(t.Screen) && t.Dir != "":
		return strings.Join([]string{string(t.Screen), t.Dir, strconv.Itoa(t.Page), t.INN}, ":")
	case listScreen(t.Screen):
		return strings.Join([]string{string(t.Screen), t.INN, strconv.Itoa(t.Page)}, ":")
	case t.Screen == ScreenExportScreen:
		return strings.Join([]string{string(t.Screen), t.INN, t.Arg}, ":")
	case t.Screen == ScreenExportMenu && t.Arg != "":
		return strings.Join([]string{string(t.Screen), t.INN, t.Arg}, ":")
	default:
		return string(t.Screen) + ":" + t.INN
	}
}

// Decode parses a wire payload back into a Token. Any structural
// violation returns ErrStaleToken.
func Decode(data string) (Token, error) {
	parts := strings.Split(data, ":")
	screen := Screen(parts[0])
	if !IsValidScreen(screen) {
		return Token{}, ErrStaleToken
	}

	t := Token{Screen: screen}
	switch {
	case bareScreen(screen):
		if len(parts) != 1 {
			return Token{}, ErrStaleToken
		}
		return t, nil

	case listScreen(screen):
		return decodeList(t, parts)

	case screen == ScreenExportScreen:
		if len(parts) != 3 || !numeric(parts[1]) || parts[2] == "" {
			return Token{}, ErrStaleToken
		}
		t.INN, t.Arg = parts[1], parts[2]
		return t, nil

	case screen == ScreenExportMenu:
		if len(parts) < 2 || len(parts) > 3 || !numeric(parts[1]) {
			return Token{}, ErrStaleToken
		}
		t.INN = parts[1]
		if len(parts) == 3 {
			if parts[2] == "" {
				return Token{}, ErrStaleToken
			}
			t.Arg = parts[2]
		}
		return t, nil

	default:
		if len(parts) != 2 || !numeric(parts[1]) {
			return Token{}, ErrStaleToken
		}
		t.INN = parts[1]
		return t, nil
	}
}

// decodeList handles court/procurement tokens, which come in two
// shapes: kind:inn:page and kind:dir:page:inn. The second segment
// disambiguates: identifiers are numeric, directions are not.
func decodeList(t Token, parts []string) (Token, error) {
	if len(parts) == 4 && (parts[1] == DirPrev || parts[1] == DirNext) {
		page, err := strconv.Atoi(parts[2])
		if err != nil || page < 1 || !numeric(parts[3]) {
			return Token{}, ErrStaleToken
		}
		t.Dir, t.Page, t.INN = parts[1], page, parts[3]
		return t, nil
	}
	if len(parts) != 3 || !numeric(parts[1]) {
		return Token{}, ErrStaleToken
	}
	page, err := strconv.Atoi(parts[2])
	if err != nil || page < 1 {
		return Token{}, ErrStaleToken
	}
	t.INN, t.Page = parts[1], page
	return t, nil
}

func numeric(s string) bool {
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
