// Command emg-minmax prints the smallest and largest numeric cell of a CSV
// file, ignoring the header row and any cell that is not a number.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/usestring/emgcsv/internal/config"
	"github.com/usestring/emgcsv/internal/logging"
	"github.com/usestring/emgcsv/pkg/csvio"
	"github.com/usestring/emgcsv/pkg/minmax"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := pflag.NewFlagSet("emg-minmax", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "source CSV file")
	fs.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "input encoding: utf-8, latin1, windows-1252")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file path (default stderr)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: emg-minmax [flags] [input.csv]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if cfg.InputPath == "" && fs.NArg() > 0 {
		cfg.InputPath = fs.Arg(0)
	}

	if err := cfg.ValidateScan(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return 2
	}

	cleanup, err := logging.Setup(logging.FromConfig(cfg), stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: setting up logging: %v\n", err)
		return 1
	}
	defer cleanup()

	enc, _ := csvio.ParseEncoding(cfg.Encoding) // checked by ValidateScan
	bounds, err := minmax.Run(cfg.InputPath, enc)
	if err != nil {
		slog.Error("scan failed", "input", cfg.InputPath, "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if bounds.Empty() {
		slog.Warn("no numeric cells found", "input", cfg.InputPath)
	}

	if err := minmax.Report(stdout, bounds); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
