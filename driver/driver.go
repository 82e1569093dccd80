// Package driver runs the operator dialogue that programs the DDS: it asks
// for the two frequencies, then resets the peripheral and writes both
// registers, echoing each reply.
package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Station-Manager/ddsctl/command"
	"github.com/Station-Manager/ddsctl/serial"
)

// ErrInputClosed is returned when input ends before a valid value was read.
var ErrInputClosed = errors.New("driver: input closed")

const (
	FrequencyPrompt = "Enter the sinusoid frequency (1 to 1.000.000 [Hz]):"
	WaitPrompt      = "Enter the wait frequency (1 to 1350 [kHz]):"

	// NoReply is printed in place of a reply when the device sent nothing.
	NoReply = "NULL"
)

// State is a step of the programming sequence.
type State int

const (
	StateInit State = iota
	StateAwaitFreqInput
	StateAwaitWaitInput
	StateSendReset
	StateSendFrequency
	StateSendWait
	StateDone
	StateFatal
)

var stateNames = [...]string{
	StateInit:           "init",
	StateAwaitFreqInput: "await-frequency",
	StateAwaitWaitInput: "await-wait",
	StateSendReset:      "send-reset",
	StateSendFrequency:  "send-frequency",
	StateSendWait:       "send-wait",
	StateDone:           "done",
	StateFatal:          "fatal",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Driver talks to the operator on in/out and to the device over link.
type Driver struct {
	link   serial.Link
	in     *bufio.Scanner
	out    io.Writer
	settle time.Duration
	sleep  func(time.Duration)
	log    zerolog.Logger
	state  State
}

type Option func(*Driver)

// WithSettleDelay sets the pause between writing a command and draining the
// reply.
func WithSettleDelay(d time.Duration) Option {
	return func(dr *Driver) {
		dr.settle = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(dr *Driver) {
		dr.log = l
	}
}

// withSleep replaces time.Sleep in tests.
func withSleep(fn func(time.Duration)) Option {
	return func(dr *Driver) {
		dr.sleep = fn
	}
}

func New(link serial.Link, in io.Reader, out io.Writer, opts ...Option) *Driver {
	d := &Driver{
		link:   link,
		in:     bufio.NewScanner(in),
		out:    out,
		settle: 100 * time.Millisecond,
		sleep:  time.Sleep,
		log:    zerolog.Nop(),
		state:  StateInit,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// State reports how far Run got.
func (d *Driver) State() State {
	return d.state
}

// Run performs the whole sequence once. The link must already be open and
// configured.
func (d *Driver) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			d.log.Error().Err(err).Stringer("state", d.state).Msg("sequence aborted")
			d.state = StateFatal
		}
	}()

	fmt.Fprintf(d.out, "Starting...\n\n")

	d.enter(StateAwaitFreqInput)
	fHz, err := d.PromptInt(FrequencyPrompt, command.ValidFrequency)
	if err != nil {
		return err
	}

	d.enter(StateAwaitWaitInput)
	fKHz, err := d.PromptInt(WaitPrompt, command.ValidWait)
	if err != nil {
		return err
	}

	steps := []struct {
		state State
		label string
		cmd   string
	}{
		{StateSendReset, "Resetting:", command.Reset},
		{StateSendFrequency, "Data in frequency command:", command.Frequency(fHz)},
		{StateSendWait, "Wait frequency command:", command.Wait(fKHz)},
	}
	for _, step := range steps {
		d.enter(step.state)
		if err = d.Send(ctx, step.label, step.cmd); err != nil {
			return err
		}
	}

	d.enter(StateDone)
	return nil
}

// PromptInt prints prompt and reads lines until one holds an integer that
// valid accepts. Anything else is ignored and the prompt repeated.
func (d *Driver) PromptInt(prompt string, valid func(int) bool) (int, error) {
	for {
		fmt.Fprintln(d.out, prompt)
		if !d.in.Scan() {
			if err := d.in.Err(); err != nil {
				return 0, fmt.Errorf("reading input: %w", err)
			}
			return 0, ErrInputClosed
		}

		line := strings.TrimSpace(d.in.Text())
		v, err := strconv.Atoi(line)
		if err != nil || !valid(v) {
			d.log.Debug().Str("input", line).Msg("rejected input")
			continue
		}
		return v, nil
	}
}

// Send writes cmd, waits for the settle delay and prints whatever the
// device answered.
func (d *Driver) Send(ctx context.Context, label, cmd string) error {
	fmt.Fprintf(d.out, "%s\t%s\n", label, cmd)

	if err := d.link.WriteCommand(ctx, cmd); err != nil {
		return err
	}
	d.sleep(d.settle)

	reply, err := d.link.ReadAvailable()
	switch {
	case errors.Is(err, serial.ErrNoReply):
		reply = NoReply
	case err != nil:
		return err
	}
	fmt.Fprintln(d.out, reply)
	return nil
}

func (d *Driver) enter(s State) {
	d.log.Debug().Stringer("from", d.state).Stringer("to", s).Msg("state change")
	d.state = s
}
