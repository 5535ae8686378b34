package repository

// Mode filters trade queries by trading mode.
type Mode string

const (
	ModePaper Mode = "paper"
	ModeLive  Mode = "live"
	ModeAll   Mode = "all"
)

// IsValidMode returns true if m is a supported trading mode filter.
func IsValidMode(m Mode) bool {
	switch m {
	case ModePaper, ModeLive, ModeAll:
		return true
	default:
		return false
	}
}

// DefaultMode returns the default trading mode filter.
func DefaultMode() Mode { return ModeAll }

// NormalizeMode converts a raw string to a valid mode (or default).
func NormalizeMode(s string) Mode {
	if s == "" {
		return DefaultMode()
	}
	m := Mode(s)
	if IsValidMode(m) {
		return m
	}
	return DefaultMode()
}
