// Command emg-range-extract copies the cells of every CSV row after a row
// index threshold into a text file, one value per line.
//
// Defaults come from the environment (EMG_INPUT_PATH, EMG_OUTPUT_PATH,
// EMG_ROW_THRESHOLD, EMG_INPUT_ENCODING, LOG_*); flags override them.
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
	"github.com/usestring/emgcsv/pkg/extract"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := pflag.NewFlagSet("emg-range-extract", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "source CSV file")
	fs.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "destination text file (overwritten)")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "last zero-based row index to discard")
	fs.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "input encoding: utf-8, latin1, windows-1252")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file path (default stderr)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: emg-range-extract [flags] [input.csv]\n")
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

	if err := cfg.ValidateExtract(); err != nil {
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

	enc, _ := csvio.ParseEncoding(cfg.Encoding) // checked by ValidateExtract
	res, err := extract.Run(extract.Options{
		InputPath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Threshold:  cfg.Threshold,
		Encoding:   enc,
	})
	if err != nil {
		slog.Error("extraction failed", "input", cfg.InputPath, "output", cfg.OutputPath, "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	slog.Info("extraction complete", "output", res.OutputPath, "rows", res.Rows, "values", res.Values)

	fmt.Fprintln(stdout, extract.CompletionMessage(cfg.Threshold, res.OutputPath))
	return 0
}
