package serial

// FlowControl selects link handshaking. go.bug.st/serial always opens ports
// with RTS/CTS disabled, so only FlowNone can be honoured; RTS and DTR are then
// plain output lines driven from Config.
type FlowControl string

const (
	FlowNone FlowControl = "none"
)
