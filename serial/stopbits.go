package serial

import (
	"fmt"

	gobug "go.bug.st/serial"
)

type StopBits gobug.StopBits

func (sb StopBits) Get() gobug.StopBits {
	return gobug.StopBits(sb)
}

const (
	// StopBits1 represents 1 stop bit
	StopBits1 = StopBits(gobug.OneStopBit)
	// StopBits1Half represents 1.5 stop bits
	StopBits1Half = StopBits(gobug.OnePointFiveStopBits)
	// StopBits2 represents 2 stop bits
	StopBits2 = StopBits(gobug.TwoStopBits)
)

func (sb StopBits) String() string {
	switch sb {
	case StopBits1:
		return "1"
	case StopBits1Half:
		return "1.5"
	case StopBits2:
		return "2"
	}
	return fmt.Sprintf("StopBits(%d)", int(sb))
}

// ParseStopBits accepts the count as written on a datasheet: "1", "1.5" or "2".
func ParseStopBits(s string) (StopBits, error) {
	switch s {
	case "1":
		return StopBits1, nil
	case "1.5":
		return StopBits1Half, nil
	case "2":
		return StopBits2, nil
	}
	return 0, fmt.Errorf("stop bits must be 1, 1.5 or 2, got: %q", s)
}

// UnmarshalYAML lets config files say `stop_bits: 1` instead of the
// library's enum value.
func (sb *StopBits) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	var s string
	switch v := raw.(type) {
	case int:
		s = fmt.Sprintf("%d", v)
	case float64:
		s = fmt.Sprintf("%g", v)
	case string:
		s = v
	default:
		return fmt.Errorf("stop bits: unsupported value %v", raw)
	}
	parsed, err := ParseStopBits(s)
	if err != nil {
		return err
	}
	*sb = parsed
	return nil
}
