package serial

import (
	"context"
	"testing"

	"github.com/Station-Manager/ddsctl/command"
)

// BenchmarkWriteThenDrain measures one command round trip against a mock port.
func BenchmarkWriteThenDrain(b *testing.B) {
	mp := newMockPort()
	p := newPort(mp, DefaultConfig())
	cmd := command.Frequency(440)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mp.queue("ok\r\n")
		if err := p.WriteCommand(ctx, cmd); err != nil {
			b.Fatalf("WriteCommand error: %v", err)
		}
		if _, err := p.ReadAvailable(); err != nil {
			b.Fatalf("ReadAvailable error: %v", err)
		}
		mp.writes = mp.writes[:0]
	}
}
