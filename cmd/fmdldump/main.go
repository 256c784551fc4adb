package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"fmdl-tool/internal/config"
	"fmdl-tool/internal/dictionary"
	"fmdl-tool/internal/fmdl"
	"fmdl-tool/internal/logging"
	"fmdl-tool/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "usage: fmdldump <file.fmdl>")
		return 1
	}
	path := args[0]

	cfg, cfgPath, err := config.Discover()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	cfg.Resolve(config.Flags{})
	log := logging.New(stderr, cfg.LogLevel)
	if cfgPath != "" {
		log.Debug().Str("path", cfgPath).Msg("config loaded")
	}

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	opts.Logger = &log

	var dict fmdl.Dictionary
	if len(cfg.Dictionaries) > 0 {
		d, err := dictionary.Load(cfg.Dictionaries, cfg.DictionaryEncoding)
		if err != nil {
			// Names are display only; fall back to hex.
			log.Warn().Err(err).Msg("dictionary not loaded")
		} else {
			log.Debug().Int("entries", d.Len()).Msg("dictionary loaded")
			dict = d
		}
	}

	m, err := fmdl.DecodeFile(path, opts)
	if err != nil {
		printError(stderr, err)
		return 1
	}
	logWarnings(log, m)

	report.Dump(stdout, m, m.Resolver(dict), cfg.DebugStats)
	return 0
}

func printError(w io.Writer, err error) {
	if off, ok := fmdl.ErrorOffset(err); ok {
		fmt.Fprintf(w, "error: %s at offset 0x%x: %v\n", fmdl.ErrorKind(err), off, err)
		return
	}
	fmt.Fprintf(w, "error: %s: %v\n", fmdl.ErrorKind(err), err)
}

func logWarnings(log zerolog.Logger, m *fmdl.Model) {
	for _, w := range m.Warnings {
		log.Warn().Err(w).Msg("section not decoded")
	}
}
