// Package main is the hwpdig CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hwpdig/hwpdig/internal/config"
	"github.com/hwpdig/hwpdig/internal/extract"
	"github.com/hwpdig/hwpdig/internal/watcher"
	"github.com/hwpdig/hwpdig/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/hwpdig/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); when neither
// exists, built-in defaults are used so parse and info work without any
// config file at all.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "parse":
		runParse()
	case "info":
		runInfo()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("hwpdig version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runParse() {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	full := fs.Bool("full", false, "print the full extracted text instead of a preview")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: hwpdig parse [flags] <file> [<file>...]")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p := extract.NewParser(extract.WithLogger(logger))
	failed := false
	for _, path := range fs.Args() {
		text, err := p.Parse(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		if fs.NArg() > 1 {
			fmt.Printf("==> %s <==\n", path)
		}
		if *full {
			fmt.Println(text)
		} else {
			fmt.Println(utils.Preview(text, cfg.Output.PreviewChars))
			fmt.Printf("(%d chars total)\n", len([]rune(text)))
		}
	}
	if failed {
		os.Exit(1)
	}
}

func runInfo() {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	_ = fs.Parse(os.Args[2:])
	if fs.NArg() < 1 {
		fmt.Println("Usage: hwpdig info <file>")
		os.Exit(1)
	}
	info := extract.Stat(fs.Arg(0))
	fmt.Printf("name:      %s\n", info.Name)
	fmt.Printf("extension: %s\n", info.Extension)
	fmt.Printf("size:      %d bytes\n", info.SizeBytes)
	fmt.Printf("exists:    %t\n", info.Exists)
	fmt.Printf("supported: %t\n", info.Supported)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (file events, skipped sections, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if fs.NArg() > 0 {
		cfg.Watch.Directories = fs.Args()
	}
	if len(cfg.Watch.Directories) == 0 {
		fmt.Println("No watch directories configured; set watch.directories or pass them as arguments.")
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p := extract.NewParser(extract.WithLogger(logger))
	onFile := func(path string) {
		text, parseErr := p.Parse(path)
		if parseErr != nil {
			logger.Warn("attachment skipped", zap.String("path", path), zap.Error(parseErr))
			return
		}
		logger.Info("attachment parsed", zap.String("path", path), zap.Int("chars", len([]rune(text))))
		if cfg.Output.TextDir != "" {
			if writeErr := writeTextFile(cfg.Output.TextDir, path, text); writeErr != nil {
				logger.Warn("text output failed", zap.String("path", path), zap.Error(writeErr))
			}
		}
	}

	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	w := watcher.New(cfg.Watch.Directories, cfg.Watch.Extensions, cfg.Watch.RecursiveOrDefault(), onFile, watchOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	w.SyncExisting()
	logger.Info("watching for attachments", zap.Strings("directories", cfg.Watch.Directories))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	w.Stop()
}

// writeTextFile writes text under dir using the attachment's basename with a
// .txt extension (notice.hwp -> notice.txt). The directory is created if
// missing.
func writeTextFile(dir, src, text string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return os.WriteFile(filepath.Join(dir, base+".txt"), []byte(text), 0644)
}

func printUsage() {
	fmt.Println(`hwpdig - deep text extractor for HWP, HWPX, and PDF attachments

Usage:
  hwpdig parse [flags] <file>...   Extract text from attachment files
  hwpdig info <file>               Show file name, extension, size, support
  hwpdig watch [flags] [<dir>...]  Watch intake directories and parse arrivals
  hwpdig version                   Show version
  hwpdig help                      Show this help

Parse Flags:
  --config string    Config file path (default: /usr/local/etc/hwpdig/config.yaml)
  --full             Print the full extracted text instead of a preview
  --debug            Enable debug logging

Watch Flags:
  --config string    Config file path
  --debug            Enable debug logging (file events, skipped sections, etc.)

Examples:
  hwpdig parse notice.hwp
  hwpdig parse --full notice.hwpx announcement.pdf
  hwpdig info notice.hwp
  hwpdig watch ./intake`)
}
