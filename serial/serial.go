package serial

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	gobug "go.bug.st/serial"
	"go.uber.org/atomic"
)

const (
	// minReplySize is the shortest drain treated as a device reply; a lone
	// byte is line noise.
	minReplySize = 2

	// maxReplySize bounds a single drain so a chattering device cannot keep
	// ReadAvailable looping. Anything beyond it stays buffered and is
	// returned by the next drain.
	maxReplySize = 4096

	readChunkSize = 256
)

// openMode is applied while opening, before Configure sets the real values
// one by one.
var openMode = gobug.Mode{
	BaudRate: Baud9600.Int(),
	DataBits: DataBits8.Int(),
	Parity:   ParityNone.Get(),
	StopBits: StopBits1.Get(),
}

// Link is the subset of Port used to talk to the synthesizer.
type Link interface {
	// WriteCommand writes a complete command string, including its
	// terminating carriage return.
	WriteCommand(ctx context.Context, cmd string) error

	// ReadAvailable drains whatever the device already sent without
	// waiting for more.
	ReadAvailable() (string, error)
}

// Port is a serial link backed by go.bug.st/serial.
type Port struct {
	port SerialPort
	cfg  Config
	mode gobug.Mode

	log   zerolog.Logger
	pool  *BufferPool
	stats Stats

	writeMu sync.Mutex
	closed  atomic.Bool
}

type Option func(*Port)

// WithLogger sets the logger used for link diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Port) {
		p.log = l
	}
}

// Open validates cfg, opens the device and applies cfg with Configure.
func Open(cfg Config, opts ...Option) (*Port, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	mode := openMode
	sp, err := openPort(cfg.PortName, &mode)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrCannotOpen, cfg.PortName, err)
	}

	p := newPort(sp, cfg, opts...)
	p.mode = mode

	if err = p.Configure(cfg); err != nil {
		if e := p.Close(); e != nil {
			err = errors.Join(err, e)
		}
		return nil, err
	}

	p.log.Debug().Str("port", cfg.PortName).Msg("serial port ready")
	return p, nil
}

// newPort constructs a Port around an existing SerialPort.
func newPort(sp SerialPort, cfg Config, opts ...Option) *Port {
	p := &Port{
		port: sp,
		cfg:  cfg,
		log:  zerolog.Nop(),
		pool: NewBufferPool(readChunkSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configure applies cfg one setting at a time: baud rate, data bits, stop
// bits, parity, then flow control. The first rejected step is returned as a
// *ConfigureError.
func (p *Port) Configure(cfg Config) error {
	if p.closed.Load() {
		return ErrClosed
	}

	steps := []struct {
		setting Setting
		apply   func(m *gobug.Mode)
	}{
		{SettingBaudRate, func(m *gobug.Mode) { m.BaudRate = cfg.BaudRate.Int() }},
		{SettingDataBits, func(m *gobug.Mode) { m.DataBits = cfg.DataBits.Int() }},
		{SettingStopBits, func(m *gobug.Mode) { m.StopBits = cfg.StopBits.Get() }},
		{SettingParity, func(m *gobug.Mode) { m.Parity = cfg.Parity.Get() }},
	}

	mode := p.mode
	for _, step := range steps {
		step.apply(&mode)
		if err := p.port.SetMode(&mode); err != nil {
			return &ConfigureError{Setting: step.setting, Err: err}
		}
		p.log.Debug().Stringer("setting", step.setting).Msg("serial setting applied")
	}
	p.mode = mode

	if err := p.configureFlowControl(cfg); err != nil {
		return &ConfigureError{Setting: SettingFlowControl, Err: err}
	}

	// Reads only ever drain what is already buffered.
	if err := p.port.SetReadTimeout(0); err != nil {
		return fmt.Errorf("serial: setting read timeout: %w", err)
	}

	p.cfg = cfg
	return nil
}

func (p *Port) configureFlowControl(cfg Config) error {
	if cfg.FlowControl != FlowNone {
		return fmt.Errorf("unsupported flow control %q", cfg.FlowControl)
	}
	if err := p.port.SetDTR(cfg.DTR); err != nil {
		return fmt.Errorf("setting DTR: %w", err)
	}
	if err := p.port.SetRTS(cfg.RTS); err != nil {
		return fmt.Errorf("setting RTS: %w", err)
	}
	return nil
}

// WriteCommand implements Link.
func (p *Port) WriteCommand(ctx context.Context, cmd string) (err error) {
	if p.closed.Load() {
		return ErrClosed
	}
	if len(cmd) == 0 {
		return nil
	}

	data := []byte(cmd)

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.stats.Writes.Inc()
	defer func() {
		if err != nil {
			p.stats.WriteErrors.Inc()
		}
	}()

	written := 0
	for written < len(data) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := p.port.Write(data[written:])
		p.stats.BytesWritten.Add(int64(n))
		if err != nil {
			return fmt.Errorf("serial: writing %q: %w", cmd, err)
		}
		if n == 0 {
			return fmt.Errorf("serial: writing %q: partial write: %d of %d bytes", cmd, written, len(data))
		}
		written += n
	}

	p.log.Debug().Str("cmd", cmd).Int("bytes", written).Msg("command written")
	return nil
}

// ReadAvailable implements Link. It returns ErrNoReply when fewer than two
// bytes were waiting. At most maxReplySize bytes are returned per call; a
// longer burst is split across consecutive drains.
func (p *Port) ReadAvailable() (string, error) {
	if p.closed.Load() {
		return "", ErrClosed
	}

	p.stats.Drains.Inc()

	buf := p.pool.Get()
	defer p.pool.Put(buf)

	var reply []byte
	for len(reply) < maxReplySize {
		n, err := p.port.Read(buf)
		if err != nil {
			p.stats.ReadErrors.Inc()
			return "", fmt.Errorf("serial: draining %s: %w", p.cfg.PortName, err)
		}
		if n == 0 {
			break
		}
		reply = append(reply, buf[:n]...)
	}
	p.stats.BytesRead.Add(int64(len(reply)))

	if len(reply) < minReplySize {
		p.stats.EmptyReplies.Inc()
		p.log.Debug().Int("bytes", len(reply)).Msg("no reply waiting")
		return "", ErrNoReply
	}
	return string(reply), nil
}

// Stats returns a snapshot of the link counters and read buffer pool usage.
func (p *Port) Stats() StatsSnapshot {
	snap := p.stats.Snapshot()
	snap.Pool = p.pool.Stats()
	return snap
}

// Close releases the device. It is safe to call multiple times.
func (p *Port) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	p.log.Debug().Object("stats", p.Stats()).Msg("closing serial port")
	return p.port.Close()
}
