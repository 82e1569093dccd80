package serial

import (
	"fmt"
	"strings"

	gobug "go.bug.st/serial"
)

type Parity gobug.Parity

func (pa Parity) Get() gobug.Parity {
	return gobug.Parity(pa)
}

const (
	// ParityNone represents no parity bit
	ParityNone = Parity(gobug.NoParity)
	// ParityOdd represents odd parity bit
	ParityOdd = Parity(gobug.OddParity)
	// ParityEven represents even parity bit
	ParityEven = Parity(gobug.EvenParity)
	// ParityMark represents mark parity bit (always 1)
	ParityMark = Parity(gobug.MarkParity)
	// ParitySpace represents space parity bit (always 0)
	ParitySpace = Parity(gobug.SpaceParity)
)

var parityNames = map[Parity]string{
	ParityNone:  "none",
	ParityOdd:   "odd",
	ParityEven:  "even",
	ParityMark:  "mark",
	ParitySpace: "space",
}

func (pa Parity) String() string {
	if name, ok := parityNames[pa]; ok {
		return name
	}
	return fmt.Sprintf("Parity(%d)", int(pa))
}

// ParseParity accepts a parity name or its single letter abbreviation (N,O,E,M,S).
func ParseParity(s string) (Parity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for pa, name := range parityNames {
		if s == name || s == name[:1] {
			return pa, nil
		}
	}
	return 0, fmt.Errorf("unsupported parity %q (use none, odd, even, mark or space)", s)
}

func (pa *Parity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseParity(s)
	if err != nil {
		return err
	}
	*pa = parsed
	return nil
}
