// cmd/dcalc is a line-driven programmer calculator. Digits are typed in the
// current mode and the value is shown in all four bases after every line.
//
// Commands start with ':'
//
//	:bin :oct :dec :hex   switch entry mode
//	:c :clear             clear the entry
//	:tape                 print committed values
//	:q :quit              exit
//
// Inside an entry line '<' deletes a digit and '=' commits the value.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"dcon/config"
	"dcon/internal/logger"
	"dcon/internal/metrics"
	"dcon/internal/panel"
	"dcon/internal/radix"
)

var version = "0.3.0"

const exitUsage = 2

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	def := config.Default()
	app := &cli.App{
		Name:            "dcalc",
		Usage:           "programmer calculator over stdin",
		Version:         version,
		HideHelpCommand: true,
		Reader:          stdin,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: def.DefaultBase, Usage: "initial entry mode"},
			&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Value: def.Width, Usage: "integer width in bits"},
			&cli.IntFlag{Name: "tape", Value: def.TapeSize, Usage: "number of committed values to keep (1-1024)"},
			&cli.StringFlag{Name: "log-level", Value: def.LogLevel},
			&cli.StringFlag{Name: "log-file", Usage: "append logs to a rotated `FILE` instead of stderr"},
			&cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus metrics to `FILE` on exit"},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return cli.Exit(err.Error(), exitUsage)
		},
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			if err := applyFlags(c, cfg); err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			return calc(cfg, stdin, stdout, stderr)
		},
	}

	err := app.Run(args)
	if err == nil {
		return 0
	}
	code := exitUsage
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(stderr, "dcalc: %s\n", msg)
	}
	return code
}

// applyFlags overrides cfg with the flags given on the command line and
// validates the result, so --tape obeys the same range as tape_size.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("mode") {
		cfg.DefaultBase = c.String("mode")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("tape") {
		cfg.TapeSize = c.Int("tape")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	return cfg.Validate()
}

func calc(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	conv, err := radix.New(cfg.RadixWidth())
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	logOut, closer := logger.Output(cfg.LogFile, stderr)
	if closer != nil {
		defer closer.Close()
	}
	log := logger.Init("dcalc", level, cfg.LogFormat, logOut)
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	p := panel.New(conv, cfg.Base(), panel.WithTapeSize(cfg.TapeSize), panel.WithMetrics(m))

	s := &session{panel: p, out: stdout, errOut: stderr, log: log}
	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		if !s.line(strings.TrimSpace(sc.Text())) {
			break
		}
	}
	if err := sc.Err(); err != nil {
		log.Warn("stdin read failed", "error", err)
	}

	if path := cfg.MetricsFile; path != "" {
		if err := metrics.WriteTextfile(path, reg); err != nil {
			log.Warn("metrics textfile not written", "path", path, "error", err)
		}
	}
	return nil
}

type session struct {
	panel  *panel.Panel
	out    io.Writer
	errOut io.Writer
	log    *slog.Logger
}

// line handles one input line and reports whether to keep reading.
func (s *session) line(text string) bool {
	if text == "" {
		return true
	}
	if strings.HasPrefix(text, ":") {
		return s.command(text[1:])
	}
	for _, r := range text {
		switch {
		case r == '<':
			s.panel.Backspace()
		case r == '=':
			v, err := s.panel.Commit()
			if err != nil {
				fmt.Fprintf(s.errOut, "dcalc: %v\n", err)
				continue
			}
			fmt.Fprintf(s.out, "= %d\n", v)
		case unicode.IsSpace(r):
		default:
			if !s.panel.Press(r) {
				s.log.Debug("key rejected", "key", string(r), "mode", s.panel.Mode().String())
			}
		}
	}
	s.show()
	return true
}

func (s *session) command(cmd string) bool {
	switch cmd {
	case "q", "quit":
		return false
	case "c", "clear":
		s.panel.Clear()
	case "tape":
		vals := s.panel.Tape()
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = radix.Format(v, radix.Decimal)
		}
		fmt.Fprintf(s.out, "tape: %s\n", strings.Join(parts, " "))
		return true
	default:
		b, err := radix.ParseBase(cmd)
		if err != nil {
			fmt.Fprintf(s.errOut, "dcalc: unknown command :%s\n", cmd)
			return true
		}
		if err := s.panel.SetMode(b); err != nil {
			fmt.Fprintf(s.errOut, "dcalc: %v\n", err)
			return true
		}
	}
	s.show()
	return true
}

func (s *session) show() {
	f, err := s.panel.Fields()
	if err != nil {
		fmt.Fprintf(s.errOut, "dcalc: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "[%s] bin=%s oct=%s dec=%s hex=%s\n", s.panel.Mode(), f.Bin, f.Oct, f.Dec, f.Hex)
}
