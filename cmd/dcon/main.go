// cmd/dcon converts integer numerals between binary, octal, decimal and
// hexadecimal, optionally reading them as two's-complement signed values.
//
// Usage:
//
//	dcon -b 42             # 0b101010
//	dcon -x -d 0b101010    # hex and decimal
//	dcon -n -d 0b1011      # -5
//	dcon -n -b -- -5       # 0b1011
//	printf '0x2a\n0o52\n' | dcon --json -b
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"dcon/config"
	"dcon/internal/conversion"
	"dcon/internal/logger"
	"dcon/internal/metrics"
	"dcon/internal/radix"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.3.0"

const (
	exitConversion = 1
	exitUsage      = 2
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := newApp(stdin, stdout, stderr).Run(args)
	if err == nil {
		return 0
	}

	code := exitConversion
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(stderr, "dcon: %s\n", msg)
	}
	return code
}

// newApp builds the CLI. Flag defaults shown in help are the built-in
// ones; the config file and environment are only read once a conversion
// runs, so -h and -v work whatever the configuration holds.
func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	def := config.Default()
	return &cli.App{
		Name:                   "dcon",
		Usage:                  "convert integers between binary, octal, decimal and hexadecimal",
		ArgsUsage:              "[numeral ...]",
		Version:                version,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Reader:                 stdin,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "bin", Aliases: []string{"b"}, Usage: "print binary"},
			&cli.BoolFlag{Name: "oct", Aliases: []string{"o"}, Usage: "print octal"},
			&cli.BoolFlag{Name: "dec", Aliases: []string{"d"}, Usage: "print decimal"},
			&cli.BoolFlag{Name: "hex", Aliases: []string{"x"}, Usage: "print hexadecimal"},
			&cli.BoolFlag{
				Name:    "signed",
				Aliases: []string{"n"},
				Usage:   "read and print two's-complement signed values",
			},
			&cli.IntFlag{
				Name:    "width",
				Aliases: []string{"w"},
				Value:   def.Width,
				Usage:   "integer width in bits (8, 16, 32 or 64)",
			},
			&cli.BoolFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Value:   def.Prefix,
				Usage:   "prefix bin/oct/hex output with 0b/0o/0x",
			},
			&cli.BoolFlag{Name: "json", Usage: "print one JSON object per numeral"},
			&cli.IntFlag{Name: "jobs", Value: def.Jobs, Usage: "convert up to `N` numerals at once"},
			&cli.StringFlag{Name: "log-level", Value: def.LogLevel, Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-file", Usage: "append logs to a rotated `FILE` instead of stderr"},
			&cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus metrics to `FILE` on exit"},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return cli.Exit(err.Error(), exitUsage)
		},
		// Exit handling is done by run so tests can observe the status.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			if err := applyFlags(c, cfg); err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}
			return convert(c, cfg, stdin, stdout, stderr)
		},
	}
}

// applyFlags overrides cfg with the flags given on the command line and
// validates the result.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("prefix") {
		cfg.Prefix = c.Bool("prefix")
	}
	if c.IsSet("jobs") {
		cfg.Jobs = c.Int("jobs")
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

func convert(c *cli.Context, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
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
	log := logger.Init("dcon", level, cfg.LogFormat, logOut)
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	svc := conversion.New(conv,
		conversion.WithPrefix(cfg.Prefix),
		conversion.WithLogger(log),
		conversion.WithMetrics(m),
		conversion.WithWorkers(cfg.Jobs),
	)

	numerals := c.Args().Slice()
	if len(numerals) == 0 {
		numerals, err = readNumerals(stdin)
		if err != nil {
			return cli.Exit(fmt.Sprintf("read stdin: %v", err), exitConversion)
		}
	}

	targets := selectedTargets(c, cfg.Base())
	items := svc.ConvertAll(numerals, targets, c.Bool("signed"))
	if c.Bool("json") {
		if err := conversion.WriteJSONLines(stdout, items); err != nil {
			return cli.Exit(err.Error(), exitConversion)
		}
	} else {
		printText(stdout, stderr, items, len(targets) > 1)
	}

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}

	if path := cfg.MetricsFile; path != "" {
		if err := metrics.WriteTextfile(path, reg); err != nil {
			log.Warn("metrics textfile not written", "path", path, "error", err)
		}
	}

	if failed > 0 {
		log.Debug("conversions failed", "failed", failed, "total", len(numerals))
		return cli.Exit("", exitConversion)
	}
	return nil
}

// printText writes results to stdout and failures to stderr. Multi-target
// blocks are separated by a blank line.
func printText(stdout, stderr io.Writer, items []conversion.Item, multi bool) {
	printed := 0
	for _, item := range items {
		if item.Err != nil {
			fmt.Fprintf(stderr, "dcon: %v\n", item.Err)
			continue
		}
		if multi && printed > 0 {
			fmt.Fprintln(stdout)
		}
		printed++
		for _, line := range item.Result.Lines() {
			fmt.Fprintln(stdout, line)
		}
	}
}

// selectedTargets returns the bases chosen by -b/-o/-d/-x, or fallback
// when none is set.
func selectedTargets(c *cli.Context, fallback radix.Base) []radix.Base {
	var targets []radix.Base
	for _, b := range radix.Bases() {
		if c.Bool(b.String()) {
			targets = append(targets, b)
		}
	}
	if len(targets) == 0 {
		targets = []radix.Base{fallback}
	}
	return targets
}

// readNumerals reads one numeral per line, skipping blank lines.
func readNumerals(r io.Reader) ([]string, error) {
	var numerals []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			numerals = append(numerals, line)
		}
	}
	return numerals, sc.Err()
}
