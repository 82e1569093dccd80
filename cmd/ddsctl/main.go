package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Station-Manager/ddsctl/config"
	"github.com/Station-Manager/ddsctl/driver"
	"github.com/Station-Manager/ddsctl/logging"
	"github.com/Station-Manager/ddsctl/serial"
)

const diagPrefix = "RS232_syscon: Error - "

// link is what run needs from an open serial port.
type link interface {
	serial.Link
	Stats() serial.StatsSnapshot
	Close() error
}

// openLink is replaced in tests.
var openLink = func(cfg serial.Config, opts ...serial.Option) (link, error) {
	p, err := serial.Open(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ddsctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional YAML configuration file")
	device := fs.String("device", "", "serial device path (default "+serial.DefaultPortName+")")
	settle := fs.Duration("settle", 0, "delay between a command and reading its reply (default 100ms)")
	logLevel := fs.String("log-level", "", "log level: trace, debug, info, warn, error, disabled")
	logFile := fs.String("log-file", "", "also write JSON logs to this rotated file")
	list := fs.Bool("list", false, "list available serial ports and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *list {
		ports, err := serial.AvailablePorts()
		if err != nil {
			fmt.Fprintf(stderr, "listing ports: %v\n", err)
			return 1
		}
		for _, p := range ports {
			fmt.Fprintln(stdout, p)
		}
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	// flags override the file
	if *device != "" {
		cfg.Serial.PortName = *device
	}
	if *settle != 0 {
		cfg.Driver.SettleDelay = *settle
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}

	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logger, closer, err := logging.New(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "logging: %v\n", err)
		return 1
	}
	defer closer.Close()

	port, err := openLink(cfg.Serial, serial.WithLogger(logger.With().Str("component", "serial").Logger()))
	if err != nil {
		fmt.Fprintln(stdout, diagnostic(err))
		logger.Error().Err(err).Str("port", cfg.Serial.PortName).Msg("serial port unusable")
		return 1
	}
	defer func() {
		if e := port.Close(); e != nil {
			logger.Warn().Err(e).Msg("closing serial port")
		}
	}()

	d := driver.New(port, stdin, stdout,
		driver.WithSettleDelay(cfg.Driver.SettleDelay),
		driver.WithLogger(logger.With().Str("component", "driver").Logger()),
	)
	if err = d.Run(context.Background()); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logSession(logger, port, cfg.Driver.SettleDelay)
	return 0
}

// diagnostic turns a transport error into the operator-facing message.
func diagnostic(err error) string {
	var cerr *serial.ConfigureError
	switch {
	case errors.As(err, &cerr):
		return diagPrefix + cerr.Setting.Failure()
	case errors.Is(err, serial.ErrCannotOpen):
		return diagPrefix + "can't open RS-232 port. Maybe you did not run as sudo?"
	}
	return diagPrefix + err.Error()
}

func logSession(logger zerolog.Logger, port link, settle time.Duration) {
	logger.Info().
		Object("link", port.Stats()).
		Dur("settle", settle).
		Msg("synthesizer programmed")
}
