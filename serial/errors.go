package serial

import (
	"errors"
	"fmt"
)

var (
	ErrClosed          = errors.New("serial: port closed")
	ErrCannotOpen      = errors.New("serial: cannot open port")
	ErrCannotConfigure = errors.New("serial: cannot configure port")

	// ErrNoReply is returned by ReadAvailable when fewer than two bytes were
	// waiting. It is not a transport failure.
	ErrNoReply = errors.New("serial: no meaningful reply")
)

// Setting names one step of Port.Configure.
type Setting int

const (
	SettingBaudRate Setting = iota
	SettingDataBits
	SettingStopBits
	SettingParity
	SettingFlowControl
)

func (s Setting) String() string {
	switch s {
	case SettingBaudRate:
		return "baud rate"
	case SettingDataBits:
		return "data bits"
	case SettingStopBits:
		return "stop bits"
	case SettingParity:
		return "parity"
	case SettingFlowControl:
		return "flow control"
	}
	return fmt.Sprintf("Setting(%d)", int(s))
}

// Failure is the operator-facing description of a failed step.
func (s Setting) Failure() string {
	switch s {
	case SettingBaudRate:
		return "can't set transmission speed"
	case SettingDataBits:
		return "can't set number of bits"
	case SettingStopBits:
		return "can't set number of stop bits"
	case SettingParity:
		return "can't set parity bit"
	case SettingFlowControl:
		return "can't set flow control (handshaking)"
	}
	return "can't configure port"
}

// ConfigureError reports which configuration step was rejected.
type ConfigureError struct {
	Setting Setting
	Err     error
}

func (e *ConfigureError) Error() string {
	return fmt.Sprintf("serial: configuring %s: %v", e.Setting, e.Err)
}

func (e *ConfigureError) Unwrap() error {
	return e.Err
}

func (e *ConfigureError) Is(target error) bool {
	return target == ErrCannotConfigure
}
