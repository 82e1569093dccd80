package serial

import (
	"sync"

	"go.uber.org/atomic"
)

// BufferPool hands out fixed-size read chunks to ReadAvailable. Its counters
// end up in the link stats logged when the port closes.
type BufferPool struct {
	size  int
	slots sync.Pool // *[]byte, so Put does not allocate

	gets    atomic.Int64
	puts    atomic.Int64
	creates atomic.Int64
}

func NewBufferPool(size int) *BufferPool {
	bp := &BufferPool{size: size}
	bp.slots.New = func() any {
		bp.creates.Inc()
		buf := make([]byte, size)
		return &buf
	}
	return bp
}

// Get returns a zeroed chunk of the pool's size.
func (bp *BufferPool) Get() []byte {
	bp.gets.Inc()
	return *bp.slots.Get().(*[]byte)
}

// Put zeroes buf and keeps it for reuse. Chunks of another size are dropped.
func (bp *BufferPool) Put(buf []byte) {
	if len(buf) != bp.size {
		return
	}
	clear(buf)
	bp.puts.Inc()
	bp.slots.Put(&buf)
}

func (bp *BufferPool) Stats() PoolStats {
	return PoolStats{
		Size:    bp.size,
		Gets:    bp.gets.Load(),
		Puts:    bp.puts.Load(),
		Creates: bp.creates.Load(),
	}
}

// PoolStats is a copy of a BufferPool's counters.
type PoolStats struct {
	Size    int
	Gets    int64
	Puts    int64
	Creates int64 // chunks allocated because none was free
}

// HitRatio is the share of Gets served by a reused chunk.
func (ps PoolStats) HitRatio() float64 {
	if ps.Gets == 0 {
		return 0
	}
	return 1 - float64(ps.Creates)/float64(ps.Gets)
}
