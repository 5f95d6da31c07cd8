package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/romshark/potext/internal/extract"
	"github.com/romshark/potext/internal/genkeys"
	"github.com/romshark/potext/internal/writepot"
	"github.com/romshark/potext/loader"
	"mvdan.cc/gofumpt/format"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Println("ERR:", err)
		os.Exit(1)
	}
}

var (
	ErrSourceErrors    = errors.New("source code contains errors")
	ErrNoCommand       = errors.New("no command")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrAnalyzingSource = errors.New("analyzing sources")
)

func run(osArgs []string) error {
	if len(osArgs) < 2 {
		return fmt.Errorf("%w, use either of: [extract,stats]", ErrNoCommand)
	}
	switch osArgs[1] {
	case "extract":
		return runExtract(osArgs)
	case "stats":
		return runStats(osArgs)
	}
	return fmt.Errorf("%w %q, use either of: [extract,stats]",
		ErrUnknownCommand, osArgs[1])
}

func runExtract(osArgs []string) error {
	conf, err := parseCLIArgsExtract(osArgs)
	if err != nil {
		return fmt.Errorf("parsing arguments: %w", err)
	}

	start := time.Now()

	catalog, stats, srcErrs, err := extract.Parse(
		conf.SrcPathPattern, conf.TrimPath, conf.QuietMode, conf.VerboseMode,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAnalyzingSource, err)
	}

	if len(srcErrs) > 0 {
		fmt.Fprintf(os.Stderr, "SOURCE ERRORS (%d):\n", len(srcErrs))
		for _, e := range srcErrs {
			fmt.Fprintf(os.Stderr, " %s:%d:%d: %s\n",
				e.Filename, e.Line, e.Column, e.Err.Error())
		}
		return ErrSourceErrors
	}

	{ // Write the translation template file.
		f, err := os.OpenFile(conf.OutPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		writepot.Write(f, time.Now(), catalog)
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing output file: %w", err)
		}
	}

	if conf.OutGoPath != "" { // Generate Go message-key constants.
		var buf bytes.Buffer
		if err := genkeys.Write(&buf, conf.GoPkgName, catalog); err != nil {
			return fmt.Errorf("generating Go key constants: %w", err)
		}

		formatted, err := format.Source(buf.Bytes(), format.Options{})
		if err != nil {
			return fmt.Errorf("formatting generated Go code: %w", err)
		}

		if err := os.WriteFile(conf.OutGoPath, formatted, 0o644); err != nil {
			return fmt.Errorf("writing generated Go code: %w", err)
		}
	}

	timeTotal := time.Since(start)
	if !conf.QuietMode {
		w := os.Stderr
		fmt.Fprintf(w, "GetString/GetParticularString: %d/%d\n",
			stats.StringTotal.Load(), stats.ParticularTotal.Load())
		fmt.Fprintf(w, "GetPluralString/GetParticularPluralString: %d/%d\n",
			stats.PluralTotal.Load(), stats.ParticularPluralTotal.Load())
		fmt.Fprintf(w, "calls merged: %d\n", stats.Merges.Load())
		fmt.Fprintf(w, "files scanned: %d\n", stats.FilesTraversed.Load())
		fmt.Fprintf(w, "time total: %s\n", timeTotal.String())
	}

	return nil
}

type ConfigExtract struct {
	SrcPathPattern string
	OutPath        string
	TrimPath       bool
	QuietMode      bool
	VerboseMode    bool
	GoPkgName      string
	OutGoPath      string
}

// parseCLIArgsExtract parses CLI arguments for command "extract".
func parseCLIArgsExtract(osArgs []string) (*ConfigExtract, error) {
	c := &ConfigExtract{}

	cli := flag.NewFlagSet(osArgs[0], flag.ExitOnError)
	cli.StringVar(&c.SrcPathPattern, "p", "./...", "source directory path")
	cli.StringVar(&c.OutPath, "o", "messages.pot", "template output file path")
	cli.BoolVar(&c.TrimPath, "trimpath", true, "enable source code path trimming")
	cli.BoolVar(&c.QuietMode, "q", false, "disable all console logging")
	cli.BoolVar(&c.VerboseMode, "v", false, "enables verbose console logging")
	cli.StringVar(&c.GoPkgName, "pkg", "msgkeys", "generated Go package name")
	cli.StringVar(&c.OutGoPath, "gopath", "",
		"generated Go key constants output path (disabled when empty)")

	if err := cli.Parse(osArgs[2:]); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	return c, nil
}

func runStats(osArgs []string) error {
	var quiet bool
	var path string

	cli := flag.NewFlagSet(osArgs[0], flag.ExitOnError)
	cli.StringVar(&path, "f", "", "catalog .po file path")
	cli.BoolVar(&quiet, "q", false, "disable all console logging")
	if err := cli.Parse(osArgs[2:]); err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	if path == "" {
		return errors.New("please provide a catalog file using the 'f' parameter")
	}

	src, err := loader.Open(path)
	if err != nil {
		return err
	}
	c := src.Catalog()

	if quiet {
		return nil
	}
	w := os.Stdout
	fmt.Fprintf(w, "file: %s\n", src.Path())
	if lang := c.Language(); lang != "" {
		if tag, err := src.LanguageTag(); err == nil {
			fmt.Fprintf(w, "language: %s (%s)\n", lang, tag)
		} else {
			fmt.Fprintf(w, "language: %s\n", lang)
		}
	}
	fmt.Fprintf(w, "headers: %d\n", len(c.Headers()))
	fmt.Fprintf(w, "messages: %d\n", c.Len())
	fmt.Fprintf(w, "nplurals: %d\n", c.NPlurals())
	fmt.Fprintf(w, "plural formula: %s\n", c.PluralForms())
	return nil
}
