package layout

// Mode selects which family of key layouts the keyboard shows.
type Mode int

const (
	// ModeFull shows every scheme on a single keyboard.
	ModeFull Mode = iota

	// ModeCivil shows civil plates only.
	ModeCivil

	// ModeCivilSpecial shows civil plates plus armed police and embassy keys.
	ModeCivilSpecial
)

// Modes lists the defined keyboard modes.
var Modes = []Mode{ModeFull, ModeCivil, ModeCivilSpecial}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "FULL"
	case ModeCivil:
		return "CIVIL"
	case ModeCivilSpecial:
		return "CIVIL_SPEC"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether m is a defined mode.
func (m Mode) Valid() bool {
	return m >= ModeFull && m <= ModeCivilSpecial
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, bool) {
	for _, m := range Modes {
		if m.String() == name {
			return m, true
		}
	}
	return ModeFull, false
}
