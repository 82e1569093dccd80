package serial

import (
	"strings"
)

func isValidPortPattern(portName string) bool {
	// Security: Prevent path traversal attacks
	if strings.Contains(portName, "..") {
		return false
	}
	// Windows: COM1-COM999 (must have at least one digit after COM)
	if strings.HasPrefix(portName, "COM") && len(portName) >= 4 && len(portName) <= 6 {
		return true
	}
	// Unix/Linux: /dev/tty* or /dev/cu* (macOS), udev symlinks under /dev/serial/
	if strings.HasPrefix(portName, "/dev/tty") || strings.HasPrefix(portName, "/dev/cu") ||
		strings.HasPrefix(portName, "/dev/serial/") {
		return true
	}
	return false
}
