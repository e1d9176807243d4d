package sheet

import (
	"fmt"
	"strings"
)

// Value is the discrete logical position of a sheet.
//
// Values are not ordered by declaration; a sheet orders them by the offsets
// of its anchors (Hidden lowest on screen, Full highest).
type Value int

const (
	// Hidden is the fully dismissed position.
	Hidden Value = iota
	// Expanded shows the sheet at its content height.
	Expanded
	// Full shows the sheet at the full available height. Only present when
	// the content is tall enough to need it.
	Full
)

func (v Value) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Expanded:
		return "expanded"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Value(%d)", int(v))
	}
}

// ParseValue parses the String form of a Value, case-insensitively.
func ParseValue(s string) (Value, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hidden", "hide":
		return Hidden, nil
	case "expanded":
		return Expanded, nil
	case "full":
		return Full, nil
	}
	return Hidden, fmt.Errorf("unknown sheet value %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Value) MarshalText() ([]byte, error) {
	if v < Hidden || v > Full {
		return nil, fmt.Errorf("cannot marshal %v", v)
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Value) UnmarshalText(text []byte) error {
	parsed, err := ParseValue(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
