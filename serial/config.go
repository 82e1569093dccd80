package serial

// Config holds configuration for opening the link to the synthesizer board.
type Config struct {
	// PortName is the path to the serial device, e.g. /dev/ttyUSB0.
	PortName string `yaml:"port_name" validate:"required,serialport"`

	BaudRate    BaudRate    `yaml:"baud_rate" validate:"oneof=1200 2400 4800 9600 19200 38400 57600 115200 230400 460800 921600"`
	DataBits    DataBits    `yaml:"data_bits" validate:"min=5,max=8"`
	StopBits    StopBits    `yaml:"stop_bits" validate:"oneof=0 1 2"`
	Parity      Parity      `yaml:"parity" validate:"oneof=0 1 2 3 4"`
	FlowControl FlowControl `yaml:"flow_control" validate:"oneof=none"`

	// Static levels for the modem control lines when no handshaking is used.
	DTR bool `yaml:"dtr"`
	RTS bool `yaml:"rts"`
}

const DefaultPortName = "/dev/ttyUSB0"

// DefaultConfig is the 9600 8N1 link without handshaking the board expects.
func DefaultConfig() Config {
	return Config{
		PortName:    DefaultPortName,
		BaudRate:    Baud9600,
		DataBits:    DataBits8,
		StopBits:    StopBits1,
		Parity:      ParityNone,
		FlowControl: FlowNone,
	}
}
