// Command fabriconv compiles ontology documents (RDF serializations or
// DTDL-style JSON interface definitions) into a target schema parts
// document.
//
// Usage:
//
//	fabriconv [flags] input.ttl [input2.json ...]
//
// The output parts document goes to -out, or stdout when omitted. A
// conversion summary always prints to stderr.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/c360studio/fabriconv"
	"github.com/c360studio/fabriconv/config"
	"github.com/c360studio/fabriconv/errors"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "fabriconv:", err)
		if errors.IsInvalid(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("fabriconv", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a JSON options file")
	outPath := fs.String("out", "", "output file (default stdout)")
	displayName := fs.String("name", "", "display name for the exported item")
	force := fs.Bool("force", false, "bypass the memory pre-flight check")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no input files")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *force {
		cfg.Force = true
	}

	pipeline := fabriconv.NewPipeline(cfg, log)
	result, err := pipeline.ConvertFiles(fs.Args())
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := pipeline.Export(out, &result, *displayName); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, result.Summary())
	return nil
}
