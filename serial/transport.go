package serial

import (
	"time"

	gobug "go.bug.st/serial"
)

// allow tests to override external dependencies
var (
	openPort     = func(name string, mode *gobug.Mode) (SerialPort, error) { return gobug.Open(name, mode) }
	getPortsList = gobug.GetPortsList
)

// SerialPort abstracts the subset of go.bug.st/serial.Port used by this package.
type SerialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetMode(mode *gobug.Mode) error
	SetReadTimeout(d time.Duration) error
	SetDTR(dtr bool) error
	SetRTS(rts bool) error
}

// AvailablePorts lists the serial devices known to the operating system.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, err
	}
	return ports, nil
}
