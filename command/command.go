// Package command builds the ASCII register-write commands understood by the
// DDS peripheral's RS-232 syscon.
package command

import (
	"fmt"
	"math"
)

const (
	// SystemClockMHz is the reference clock of the DDS phase accumulator.
	SystemClockMHz = 100

	// FrequencyRegister holds the phase increment of the sinusoid output.
	FrequencyRegister = "00880001"
	// WaitRegister holds the wait period in system clock cycles.
	WaitRegister = "00880000"

	// Reset clears the peripheral before it is reprogrammed.
	Reset = "i \r"

	// Accepted sinusoid frequencies, in Hz.
	MinFrequencyHz = 1
	MaxFrequencyHz = 1_000_000

	// Accepted wait frequencies, in kHz.
	MinWaitKHz = 1
	MaxWaitKHz = 1350
)

// phaseScale is 2^32 - 1, not 2^32. The FPGA's register encoding was
// calibrated against this value; keep it.
const phaseScale = math.MaxUint32

// PhaseIncrement returns the per-clock phase step for an output of fHz,
// truncated.
func PhaseIncrement(fHz int) uint32 {
	return uint32(uint64(fHz) * phaseScale / (SystemClockMHz * 1_000_000))
}

// WaitCount returns the number of system clock cycles in one period of
// fKHz, truncated. fKHz must not be zero.
func WaitCount(fKHz int) uint32 {
	return uint32(SystemClockMHz * 1000 / fKHz)
}

// Write formats a register write: "w <register> <value> \r", value as eight
// lowercase hex digits.
func Write(register string, value uint32) string {
	return fmt.Sprintf("w %s %08x \r", register, value)
}

// Frequency returns the command setting the sinusoid output to fHz.
func Frequency(fHz int) string {
	return Write(FrequencyRegister, PhaseIncrement(fHz))
}

// Wait returns the command setting the wait frequency to fKHz.
func Wait(fKHz int) string {
	return Write(WaitRegister, WaitCount(fKHz))
}

// ValidFrequency reports whether fHz is within MinFrequencyHz..MaxFrequencyHz.
func ValidFrequency(fHz int) bool {
	return fHz >= MinFrequencyHz && fHz <= MaxFrequencyHz
}

// ValidWait reports whether fKHz is within MinWaitKHz..MaxWaitKHz.
func ValidWait(fKHz int) bool {
	return fKHz >= MinWaitKHz && fKHz <= MaxWaitKHz
}
