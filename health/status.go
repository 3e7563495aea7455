package health

import "fmt"

// Status represents the health status of a component or of the whole service.
type Status int

const (
	// StatusPass indicates the component is functioning normally.
	StatusPass Status = iota
	// StatusWarn indicates the component is functioning but with issues.
	StatusWarn
	// StatusFail indicates the component is not functioning properly.
	StatusFail
)

// String returns the wire representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Severity ranks the status for merging. Unknown values rank as fail.
func (s Status) Severity() int {
	switch s {
	case StatusPass:
		return 0
	case StatusWarn:
		return 1
	default:
		return 2
	}
}

// Compare returns -1, 0 or +1 depending on whether a is less, equally or more
// severe than b.
func Compare(a, b Status) int {
	sa, sb := a.Severity(), b.Severity()
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

// Worst returns the most severe of the given statuses, or StatusPass when
// none are given.
func Worst(statuses ...Status) Status {
	worst := StatusPass
	for _, s := range statuses {
		if Compare(s, worst) > 0 {
			worst = s
		}
	}
	return worst
}

// ParseStatus parses the wire representation of a status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "pass":
		return StatusPass, nil
	case "warn":
		return StatusWarn, nil
	case "fail":
		return StatusFail, nil
	default:
		return StatusPass, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusPass, StatusWarn, StatusFail:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
