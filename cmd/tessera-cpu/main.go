// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

// tessera-cpu inspects the host processor and manages multiversioned
// image target blocks.
//
// Subcommands:
//
//	tessera-cpu host                 dump the detected host CPU (default)
//	tessera-cpu resolve [flags]      resolve a target specification
//	tessera-cpu emit [flags]         write a target block for an image
//	tessera-cpu inspect <file>       decode a target block from an image
//	tessera-cpu --version            print version information
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tessera-lang/tessera/lib/codec"
	"github.com/tessera-lang/tessera/lib/config"
	"github.com/tessera-lang/tessera/lib/dispatch"
	"github.com/tessera-lang/tessera/lib/hostcpu"
	"github.com/tessera-lang/tessera/lib/image"
	"github.com/tessera-lang/tessera/lib/isa"
	"github.com/tessera-lang/tessera/lib/target"
	"github.com/tessera-lang/tessera/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tessera-cpu: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]

	if len(args) == 0 {
		return hostCmd()
	}

	switch args[0] {
	case "--version", "version":
		fmt.Printf("tessera-cpu %s\n", version.Info())
		return nil
	case "--help", "help", "-h":
		printUsage()
		return nil
	case "host":
		return hostCmd()
	case "resolve":
		return resolveCmd(args[1:])
	case "emit":
		return emitCmd(args[1:])
	case "inspect":
		return inspectCmd(args[1:])
	}

	printUsage()
	return fmt.Errorf("unknown subcommand %q", args[0])
}

// loadConfig resolves the runtime configuration for a subcommand: an
// explicit --config path wins, then the TESSERA_CONFIG environment
// variable, then built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv("TESSERA_CONFIG") != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}

// hostCmd prints the detected host CPU: matched profile name, the
// feature bits known to the feature table, and any ISA extension
// tokens from /proc/cpuinfo that have no table entry.
func hostCmd() error {
	host := hostcpu.Probe()

	fmt.Printf("CPU: %s\n", host.Name)

	names := isa.Names(host.Features)
	fmt.Printf("Features (%d):\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}

	var unknown []string
	for _, token := range host.Tokens {
		if _, ok := isa.Lookup(token); !ok {
			unknown = append(unknown, token)
		}
	}
	if len(unknown) > 0 {
		fmt.Printf("Unrecognized ISA tokens (%d):\n", len(unknown))
		for _, token := range unknown {
			fmt.Printf("  %s\n", token)
		}
	}

	fmt.Printf("FMA: fma32=%v fma64=%v\n", host.HasFMA(32), host.HasFMA(64))
	return nil
}

// resolveCmd resolves a target specification against the host and
// prints every resulting target with its feature token list.
func resolveCmd(args []string) error {
	flags := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to tessera.yaml")
	spec := flags.String("spec", "", "target specification (overrides config target_spec)")
	forImage := flags.Bool("for-image", false, "resolve for image emission (baseline not clamped to host)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	specString := cfg.TargetSpec
	if *spec != "" {
		specString = *spec
	}

	host := hostcpu.Probe()
	builder := target.Build
	if *forImage {
		builder = target.BuildForImage
	}
	descriptors, err := builder(specString, host, cfg.BackendFeatures)
	if err != nil {
		return err
	}
	logger.Debug("resolved target specification",
		"spec", specString, "targets", len(descriptors))

	for i, descriptor := range descriptors {
		printDescriptor(i, descriptor)
	}
	return nil
}

func printDescriptor(index int, descriptor target.Descriptor) {
	var notes []string
	if descriptor.Flags&target.FlagUnknownName != 0 {
		notes = append(notes, "unknown-name")
	}
	if descriptor.Flags&target.FlagCloneAll != 0 {
		notes = append(notes, "clone-all")
	}
	suffix := ""
	if len(notes) > 0 {
		suffix = " [" + strings.Join(notes, ",") + "]"
	}
	fmt.Printf("[%d] %s%s\n", index, descriptor.Name, suffix)
	fmt.Printf("    %s\n", strings.Join(descriptor.FeatureTokens(), ","))
}

// emitCmd builds target records for the configured specification and
// writes the framed block to a file, ready for embedding in an image.
func emitCmd(args []string) error {
	flags := pflag.NewFlagSet("emit", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to tessera.yaml")
	spec := flags.String("spec", "", "target specification (overrides config target_spec)")
	output := flags.String("output", "", "output file for the target block (required)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("emit: --output is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	specString := cfg.TargetSpec
	if *spec != "" {
		specString = *spec
	}

	host := hostcpu.Probe()
	descriptors, err := target.BuildForImage(specString, host, cfg.BackendFeatures)
	if err != nil {
		return err
	}

	records := make([]target.Record, len(descriptors))
	for i, descriptor := range descriptors {
		records[i] = target.NewRecord(descriptor, 0)
	}

	block, err := image.WriteBlock(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, block, 0644); err != nil {
		return err
	}

	logger.Info("wrote target block",
		"path", *output, "targets", len(records), "bytes", len(block))
	return nil
}

// inspectCmd decodes a target block file and prints every record,
// marking the one the dispatch engine would select on this host.
func inspectCmd(args []string) error {
	flags := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	raw := flags.Bool("raw", false, "print the CBOR diagnostic notation of each record")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: tessera-cpu inspect [--raw] <block-file>")
	}

	block, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return err
	}
	records, err := image.ReadBlock(block)
	if err != nil {
		return err
	}

	host := hostcpu.Probe()
	engine := dispatch.NewEngine(host, nil)
	selected, reason, err := engine.InitPrimary("native", block)
	if err != nil {
		return err
	}

	fmt.Printf("Block: %d target(s)\n", len(records))
	for i, record := range records {
		marker := " "
		if i == selected {
			marker = "*"
		}
		fmt.Printf("%s [%d] %s (base %d, flags %#x)\n",
			marker, i, record.Name, record.BaseIndex, record.Flags)
		descriptor := record.Descriptor()
		fmt.Printf("      %s\n", strings.Join(descriptor.FeatureTokens(), ","))
		if *raw {
			if err := printRaw(record); err != nil {
				return err
			}
		}
	}
	if selected == dispatch.NoMatch {
		fmt.Printf("No usable target: %s\n", reason)
	} else if reason != "" {
		fmt.Printf("Selection note: %s\n", reason)
	}
	return nil
}

func printRaw(record target.Record) error {
	encoded, err := codec.Marshal(record)
	if err != nil {
		return err
	}
	diag, err := codec.Diagnose(encoded)
	if err != nil {
		return err
	}
	fmt.Printf("      %s\n", diag)
	return nil
}

func printUsage() {
	fmt.Print(`tessera-cpu - host CPU detection and image target blocks

USAGE
    tessera-cpu [host]                         dump the detected host CPU
    tessera-cpu resolve [--spec S] [--for-image]
    tessera-cpu emit --output FILE [--spec S]
    tessera-cpu inspect [--raw] FILE
    tessera-cpu --version

CONFIGURATION
    Commands read tessera.yaml from --config or the TESSERA_CONFIG
    environment variable. Without either, built-in defaults apply
    (target_spec "native").

EXAMPLES
    # What would the compiler target on this machine?
    tessera-cpu resolve --spec "native"

    # Emit a two-target block for a distributable image.
    tessera-cpu emit --spec "generic;sifive-u74-mc,clone_all" --output app.timg

    # Which target would this machine load from that image?
    tessera-cpu inspect app.timg
`)
}
