package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequency(t *testing.T) {
	tests := []struct {
		fHz  int
		want string
	}{
		{1, "w 00880001 0000002a \r"},
		{1000, "w 00880001 0000a7c5 \r"},
		{1_000_000, "w 00880001 028f5c28 \r"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Frequency(tt.fHz), "f=%d", tt.fHz)
	}
}

func TestWait(t *testing.T) {
	tests := []struct {
		fKHz int
		want string
	}{
		{1, "w 00880000 000186a0 \r"},
		{100, "w 00880000 000003e8 \r"},
		{1350, "w 00880000 0000004a \r"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Wait(tt.fKHz), "f=%d", tt.fKHz)
	}
}

func TestPhaseIncrementUsesMaxUint32(t *testing.T) {
	// Outside the input range; at the clock frequency the increment is the
	// multiplier itself (2^32 would wrap to zero).
	assert.Equal(t, uint32(4294967295), PhaseIncrement(SystemClockMHz*1_000_000))
}

func TestEncodingMatchesFormulaOverWholeRange(t *testing.T) {
	for f := MinFrequencyHz; f <= MaxFrequencyHz; f += 997 {
		want := fmt.Sprintf("w 00880001 %08x \r", uint64(f)*4294967295/100000000)
		if got := Frequency(f); got != want {
			t.Fatalf("Frequency(%d) = %q, want %q", f, got, want)
		}
	}
	for f := MinWaitKHz; f <= MaxWaitKHz; f++ {
		want := fmt.Sprintf("w 00880000 %08x \r", 100000/f)
		if got := Wait(f); got != want {
			t.Fatalf("Wait(%d) = %q, want %q", f, got, want)
		}
	}
}

func TestEncodingIsPure(t *testing.T) {
	assert.Equal(t, Frequency(440), Frequency(440))
	assert.Equal(t, Wait(7), Wait(7))
}

func TestCommandWidth(t *testing.T) {
	for _, cmd := range []string{Frequency(MinFrequencyHz), Frequency(MaxFrequencyHz), Wait(MinWaitKHz), Wait(MaxWaitKHz)} {
		assert.Len(t, cmd, len("w 00880000 00000000 \r"), "%q", cmd)
	}
}

func TestRanges(t *testing.T) {
	assert.False(t, ValidFrequency(0))
	assert.True(t, ValidFrequency(1))
	assert.True(t, ValidFrequency(1_000_000))
	assert.False(t, ValidFrequency(1_000_001))

	assert.False(t, ValidWait(0))
	assert.True(t, ValidWait(1))
	assert.True(t, ValidWait(1350))
	assert.False(t, ValidWait(1351))
	assert.False(t, ValidWait(-5))
}
