package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gobug "go.bug.st/serial"
	"gopkg.in/yaml.v2"
)

func TestSettingsYAML(t *testing.T) {
	tests := []struct {
		doc      string
		stopBits StopBits
		parity   Parity
	}{
		{"stop_bits: 1\nparity: none\n", StopBits1, ParityNone},
		{"stop_bits: 1.5\nparity: odd\n", StopBits1Half, ParityOdd},
		{"stop_bits: \"2\"\nparity: E\n", StopBits2, ParityEven},
		{"stop_bits: 2\nparity: Space\n", StopBits2, ParitySpace},
	}

	for _, tt := range tests {
		var got struct {
			StopBits StopBits `yaml:"stop_bits"`
			Parity   Parity   `yaml:"parity"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &got), tt.doc)
		assert.Equal(t, tt.stopBits, got.StopBits, tt.doc)
		assert.Equal(t, tt.parity, got.Parity, tt.doc)
	}
}

func TestSettingsYAMLRejectsUnknown(t *testing.T) {
	var sb struct {
		StopBits StopBits `yaml:"stop_bits"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("stop_bits: 3\n"), &sb))

	var pa struct {
		Parity Parity `yaml:"parity"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("parity: sometimes\n"), &pa))
}

func TestSettingNames(t *testing.T) {
	assert.Equal(t, "1.5", StopBits1Half.String())
	assert.Equal(t, gobug.OnePointFiveStopBits, StopBits1Half.Get())
	assert.Equal(t, "mark", ParityMark.String())
	assert.Equal(t, gobug.MarkParity, ParityMark.Get())
	assert.Equal(t, "can't set transmission speed", SettingBaudRate.Failure())
	assert.Equal(t, "can't set number of bits", SettingDataBits.Failure())
	assert.Equal(t, "can't set number of stop bits", SettingStopBits.Failure())
	assert.Equal(t, "can't set parity bit", SettingParity.Failure())
}

func TestBufferPoolReuse(t *testing.T) {
	bp := NewBufferPool(16)

	buf := bp.Get()
	require.Len(t, buf, 16)
	buf[0] = 'x'
	bp.Put(buf)
	bp.Put(make([]byte, 3)) // wrong size, dropped

	st := bp.Stats()
	assert.Equal(t, int64(1), st.Gets)
	assert.Equal(t, int64(1), st.Puts)
	assert.Equal(t, int64(1), st.Creates)
	assert.Equal(t, 0.0, st.HitRatio())
}
