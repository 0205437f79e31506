package dashboard

import "fmt"

// Mode selects how link clicks are handled.
type Mode int

const (
	Browsing Mode = iota
	Editing
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Editing:
		return "editing"
	}
	return "unknown"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func toggleFor(m Mode) Toggle {
	if m == Editing {
		return Toggle{Icon: "✅", Label: "Save/Exit"}
	}
	return Toggle{Icon: "⚙️", Label: "Settings"}
}

func (m *Mode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "browsing":
		*m = Browsing
	case "editing":
		*m = Editing
	default:
		return fmt.Errorf("unknown mode %q", b)
	}
	return nil
}
