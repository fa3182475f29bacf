// Copyright 2026 The SrcSpell Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the srcspell code spell checker CLI and server.

SrcSpell spell checks source trees with syntax awareness: files are parsed
with tree-sitter grammars so only identifiers, comments, and string
literals are checked, and compound identifiers are split into their word
parts before lookup. Files without a grammar fall back to plain-text mode.

# Usage

Check the current directory:

	srcspell check

Check specific paths with JSON output:

	srcspell check -json src/ docs/readme.md

Install a word list into the local store:

	srcspell install https://example.com/words/software_terms.txt
	srcspell install ./company_names.txt

Import a foreign dictionary file, normalizing it on the way:

	srcspell import en-US.dic

Manage the result and compiled-dictionary caches:

	srcspell cache build
	srcspell cache clear

Run as a msgpack IPC server for editor integration:

	srcspell serve

# Configuration

Per-project settings live in srcspell.json at the checked root: which
dictionaries apply, extra words, ignored words and paths. Machine-level
runtime configuration is managed through a TOML file that supports worker
counts, cache locations and output defaults:

	[runtime]
	workers = 0
	max_file_size = 1048576

	[output]
	format = "text"
	suggestions = 3

The config file is automatically created with defaults if it doesn't exist.

# Exit codes

check exits 0 when no misspellings were found, 1 when diagnostics were
reported, and 2 on operational failure.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/srcspell/srcspell/internal/discover"
	"github.com/srcspell/srcspell/internal/installer"
	"github.com/srcspell/srcspell/pkg/checker"
	"github.com/srcspell/srcspell/pkg/config"
	"github.com/srcspell/srcspell/pkg/dictionary"
	"github.com/srcspell/srcspell/pkg/report"
	"github.com/srcspell/srcspell/pkg/server"
	"github.com/srcspell/srcspell/pkg/settings"
	"github.com/srcspell/srcspell/pkg/wordlist"
)

const (
	Version = "0.3.0"
	AppName = "srcspell"
	gh      = "https://github.com/srcspell/srcspell"
)

const fileCacheName = "filecache.bin"

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [flags] [args]

Commands:
  check    Spell check files and directories
  serve    Run the msgpack IPC server on stdin/stdout
  install  Install a word list (file path or URL) into the store
  import   Import a foreign dictionary file into the store
  cache    Manage caches: build | clear
  version  Show current version

Run '%s <command> -h' for command flags.
`, AppName, AppName)
}

// main dispatches to the subcommand runners. main() does not implement
// logic for them and only manages the flow.
func main() {
	sigHandler()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "check":
		err = runCheck(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "install":
		err = runInstall(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "cache":
		err = runCache(os.Args[2:])
	case "version", "-version", "--version":
		showVersion()
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		var found *issuesFoundError
		if errors.As(err, &found) {
			os.Exit(1)
		}
		log.Errorf("%v", err)
		os.Exit(2)
	}
}

// issuesFoundError distinguishes "the check worked and found misspellings"
// from operational failures when picking the exit code.
type issuesFoundError struct {
	count int
}

func (e *issuesFoundError) Error() string {
	return fmt.Sprintf("%d issues found", e.count)
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a runtime config.toml")
	settingsPath := fs.String("settings", "", "Path to the project settings file")
	debugMode := fs.Bool("d", false, "Toggle debug mode")
	jsonOut := fs.Bool("json", false, "Emit the report as JSON")
	workers := fs.Int("workers", 0, "Number of parallel workers (0 for auto)")
	noCache := fs.Bool("no-cache", false, "Skip the result cache for this run")
	fs.Parse(args)

	setLogLevel(*debugMode)

	rc, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		return err
	}
	if *workers == 0 {
		*workers = rc.Runtime.Workers
	}

	roots := fs.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	cfg, err := loadSettings(*settingsPath, roots[0])
	if err != nil {
		return err
	}

	storeDir, err := rc.ResolveStoreDir()
	if err != nil {
		return err
	}
	cacheDir, err := rc.ResolveCacheDir()
	if err != nil {
		return err
	}

	dict, err := buildDictionary(cfg, storeDir, cacheDir)
	if err != nil {
		return err
	}

	files, err := collectFiles(roots, cfg, rc)
	if err != nil {
		return err
	}
	log.Debugf("Checking %d files with %d workers", len(files), *workers)

	cache := checker.NewFileCache()
	cachePath := filepath.Join(cacheDir, fileCacheName)
	if !*noCache {
		if err := cache.LoadFrom(cachePath); err != nil {
			log.Warnf("Ignoring result cache: %v", err)
			cache = checker.NewFileCache()
		}
	}

	pipeline := checker.New(dict, cache, cfg, *workers)
	res, err := pipeline.Check(context.Background(), files)
	if err != nil {
		return err
	}

	if !*noCache {
		if err := pipeline.Cache().SaveTo(cachePath); err != nil {
			log.Warnf("Could not persist result cache: %v", err)
		}
	}

	var rep report.Reporter = report.Text{Suggestions: rc.Output.Suggestions}
	if *jsonOut || rc.Output.Format == "json" {
		rep = report.JSON{}
	}
	if err := rep.Report(os.Stdout, res); err != nil {
		return err
	}

	if len(res.Diagnostics) > 0 {
		return &issuesFoundError{count: len(res.Diagnostics)}
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a runtime config.toml")
	settingsPath := fs.String("settings", "", "Path to the project settings file")
	debugMode := fs.Bool("d", false, "Toggle debug mode")
	fs.Parse(args)

	setLogLevel(*debugMode)

	rc, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(*settingsPath, ".")
	if err != nil {
		return err
	}
	storeDir, err := rc.ResolveStoreDir()
	if err != nil {
		return err
	}
	cacheDir, err := rc.ResolveCacheDir()
	if err != nil {
		return err
	}
	dict, err := buildDictionary(cfg, storeDir, cacheDir)
	if err != nil {
		return err
	}

	pipeline := checker.New(dict, nil, cfg, rc.Runtime.Workers)
	showStartupInfo(storeDir, dict.Size())
	return server.NewServer(pipeline).Start(context.Background())
}

func runInstall(args []string) error {
	fs := flag.NewFlagSet("install", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a runtime config.toml")
	debugMode := fs.Bool("d", false, "Toggle debug mode")
	fs.Parse(args)
	setLogLevel(*debugMode)

	if fs.NArg() != 1 {
		return errors.New("install needs exactly one source path or URL")
	}

	rc, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		return err
	}
	storeDir, err := rc.ResolveStoreDir()
	if err != nil {
		return err
	}

	installed, err := installer.Install(context.Background(), fs.Arg(0), storeDir)
	if err != nil {
		return err
	}
	fmt.Printf("Installed %s\n", installed)
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a runtime config.toml")
	debugMode := fs.Bool("d", false, "Toggle debug mode")
	fs.Parse(args)
	setLogLevel(*debugMode)

	if fs.NArg() != 1 {
		return errors.New("import needs exactly one dictionary file")
	}

	rc, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		return err
	}
	storeDir, err := rc.ResolveStoreDir()
	if err != nil {
		return err
	}

	imported, err := dictionary.Import(fs.Arg(0), storeDir)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %s\n", imported)
	return nil
}

func runCache(args []string) error {
	fs := flag.NewFlagSet("cache", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a runtime config.toml")
	settingsPath := fs.String("settings", "", "Path to the project settings file")
	debugMode := fs.Bool("d", false, "Toggle debug mode")
	fs.Parse(args)
	setLogLevel(*debugMode)

	if fs.NArg() != 1 {
		return errors.New("cache needs a subcommand: build | clear")
	}

	rc, _, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		return err
	}
	cacheDir, err := rc.ResolveCacheDir()
	if err != nil {
		return err
	}

	switch fs.Arg(0) {
	case "build":
		cfg, err := loadSettings(*settingsPath, ".")
		if err != nil {
			return err
		}
		storeDir, err := rc.ResolveStoreDir()
		if err != nil {
			return err
		}
		dict, err := buildDictionary(cfg, storeDir, cacheDir)
		if err != nil {
			return err
		}
		fmt.Printf("Compiled dictionary with %d words\n", dict.Size())
		return nil
	case "clear":
		if err := os.RemoveAll(cacheDir); err != nil {
			return err
		}
		fmt.Printf("Cleared %s\n", cacheDir)
		return nil
	}
	return fmt.Errorf("unknown cache subcommand: %s", fs.Arg(0))
}

func setLogLevel(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}

// loadSettings resolves the project settings, looking for srcspell.json at
// the checked root when no explicit path is given.
func loadSettings(path, root string) (*settings.Settings, error) {
	if path != "" {
		return settings.Load(path)
	}
	return settings.LoadOrDefault(filepath.Join(root, settings.DefaultFileName)), nil
}

// buildDictionary compiles the configured word lists plus the inline words
// from the settings file. Missing word lists are warned about, not fatal.
func buildDictionary(cfg *settings.Settings, storeDir, cacheDir string) (*dictionary.Dictionary, error) {
	paths := cfg.ResolveDictionaryPaths(storeDir)

	var extra []*wordlist.List
	if len(cfg.Words) > 0 {
		extra = append(extra, wordlist.FromWords("words", cfg.Words))
	}

	compiler := dictionary.NewCompiler(cacheDir)
	dict, loadErrs, err := compiler.Compile(paths, extra, cfg.MaxEditDistance)
	for _, lerr := range loadErrs {
		log.Warnf("Word list skipped: %v", lerr)
	}
	if err != nil {
		if errors.Is(err, dictionary.ErrNoWordLists) {
			return nil, fmt.Errorf("no usable word lists; run '%s install' first: %w", AppName, err)
		}
		return nil, err
	}
	log.Debugf("Dictionary ready: %d words", dict.Size())
	return dict, nil
}

// collectFiles expands the root arguments into the concrete file set,
// walking directories and accepting explicit file paths as-is.
func collectFiles(roots []string, cfg *settings.Settings, rc *config.Config) ([]checker.File, error) {
	var files []checker.File
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, checker.File{Path: root})
			continue
		}
		rels, err := discover.Files(root, discover.Options{
			IgnorePaths:   cfg.IgnorePaths,
			MaxFileSize:   rc.Runtime.MaxFileSize,
			IncludeHidden: rc.Output.IncludeHidden,
		})
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			files = append(files, checker.File{Path: filepath.Join(root, rel)})
		}
	}
	return files, nil
}

func showVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SrcSpell ] Code-aware spell checking!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(storeDir string, words int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" SrcSpell ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dictionary: %d words", words)
	log.Infof("store dir: ( %s )", storeDir)
	log.Info("status: ready")
	println("==========")

	log.SetLevel(currentLevel)
}
