// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"medgate/internal/audit"
	"medgate/internal/confidence"
	"medgate/internal/config"
	"medgate/internal/document"
	"medgate/internal/engine"
	"medgate/internal/observability"
	"medgate/internal/principles"
	"medgate/internal/providers"
	"medgate/internal/session"
	"medgate/internal/version"

	"medgate/internal/formatters"
	_ "medgate/internal/formatters/json"
	_ "medgate/internal/formatters/text"
	_ "medgate/internal/formatters/yaml"
)

const (
	exitValid = 0
	exitGated = 1
	exitUsage = 2
)

// configFlags holds command line flag values
type configFlags struct {
	text     string
	file     string
	chat     bool
	level    string
	format   string
	verbose  bool
	noColor  bool
	debug    bool
	provider string
	model    string
	truths   string
	auditDir string
}

func main() {
	var flags configFlags
	flag.StringVar(&flags.text, "text", "", "Statement to validate")
	flag.StringVar(&flags.file, "file", "", "Path to a document to batch-validate (txt or pdf)")
	flag.BoolVar(&flags.chat, "chat", false, "Start interactive provider-gated chat")
	flag.StringVar(&flags.level, "level", "", "Validation level: basic, standard, comprehensive (default: comprehensive)")
	flag.StringVar(&flags.format, "format", "", "Output format: text, json, yaml (default: text)")
	flag.BoolVar(&flags.verbose, "verbose", false, "Display rule-level detail for each principle")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.debug, "debug", false, "Enable debug logging of pipeline stages")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	flag.StringVar(&flags.provider, "provider", "", "Chat provider: openai, groq, together, ollama")
	flag.StringVar(&flags.model, "model", "", "Model name for the chat provider")
	flag.StringVar(&flags.truths, "truths", "", "Path to the truth-store file")
	flag.StringVar(&flags.auditDir, "audit-dir", "", "Directory for the decision audit log")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion(os.Stdout, flags.verbose)
		os.Exit(exitValid)
	}

	cfg := loadConfiguration(*configFile)
	resolved := resolveConfiguration(flags, cfg)

	level, err := principles.ParseLevel(resolved.level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
	if _, ok := formatters.Get(resolved.format); !ok {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q. Available formats: %s\n",
			resolved.format, strings.Join(formatters.List(), ", "))
		os.Exit(exitUsage)
	}

	modes := 0
	if flags.text != "" {
		modes++
	}
	if flags.file != "" {
		modes++
	}
	if flags.chat {
		modes++
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -text, -file, or -chat is required")
		flag.Usage()
		os.Exit(exitUsage)
	}

	sess, recorder, debugObs, err := buildSession(resolved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	options := formatters.FormatterOptions{Verbose: resolved.verbose, NoColor: resolved.noColor}

	var exitCode int
	switch {
	case flags.text != "":
		exitCode = runText(sess, flags.text, level, resolved.format, options)
	case flags.file != "":
		exitCode = runFile(sess, debugObs, flags.file, level, resolved.format, options)
	case flags.chat:
		exitCode = runChat(sess, cfg, resolved, level, options)
	}

	if err := sess.Save(resolved.truths); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if recorder != nil {
		recorder.Close()
	}
	os.Exit(exitCode)
}

// printVersion writes version information; verbose expands the one-line
// summary into the full build metadata.
func printVersion(w io.Writer, verbose bool) {
	if !verbose {
		fmt.Fprintln(w, version.Info())
		return
	}
	details := version.Full()
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s: %s\n", key, details[key])
	}
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		return config.LoadConfigOrDefault("")
	}
	return cfg
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	level    string
	format   string
	verbose  bool
	noColor  bool
	debug    bool
	provider string
	model    string
	truths   string
	auditDir string
	scoring  confidence.Config
}

// resolveConfiguration merges flags with the config file; flags win.
func resolveConfiguration(flags configFlags, cfg *config.Config) finalConfiguration {
	resolved := finalConfiguration{
		level:    cfg.Defaults.Level,
		format:   cfg.Defaults.Format,
		verbose:  cfg.Defaults.Verbose || flags.verbose,
		noColor:  cfg.Defaults.NoColor || flags.noColor,
		debug:    cfg.Defaults.Debug || flags.debug,
		provider: cfg.Provider.Name,
		model:    cfg.Provider.Model,
		truths:   cfg.Session.TruthsFile,
		auditDir: cfg.Session.AuditDir,
		scoring: confidence.Config{
			TerminologyNorm:  cfg.Scoring.TerminologyNorm,
			PatternMatchNorm: cfg.Scoring.PatternMatchNorm,
			CompletenessNorm: cfg.Scoring.CompletenessNorm,
		},
	}
	if flags.level != "" {
		resolved.level = flags.level
	}
	if flags.format != "" {
		resolved.format = flags.format
	}
	if flags.provider != "" {
		resolved.provider = flags.provider
	}
	if flags.model != "" {
		resolved.model = flags.model
	}
	if flags.truths != "" {
		resolved.truths = flags.truths
	}
	if flags.auditDir != "" {
		resolved.auditDir = flags.auditDir
	}
	return resolved
}

// buildSession wires the engine, optional audit recorder, and truth store.
func buildSession(resolved finalConfiguration) (*session.Session, *audit.Recorder, *observability.DebugObserver, error) {
	engineOptions := []engine.Option{
		engine.WithScorerConfig(resolved.scoring),
	}

	var debugObs *observability.DebugObserver
	if resolved.debug {
		debugObs = observability.NewDebugObserver(os.Stderr)
		engineOptions = append(engineOptions, engine.WithObserver(debugObs.StandardObserver))
	}

	var recorder *audit.Recorder
	if resolved.auditDir != "" {
		var err error
		recorder, err = audit.NewRecorder(resolved.auditDir)
		if err != nil {
			return nil, nil, nil, err
		}
		recorder.OnError = func(err error) {
			fmt.Fprintf(os.Stderr, "Warning: audit write failed: %v\n", err)
		}
		engineOptions = append(engineOptions, engine.WithEventHook(recorder.Hook()))
	}

	sess := session.New(engine.New(engineOptions...))
	if err := sess.Load(resolved.truths); err != nil {
		if recorder != nil {
			recorder.Close()
		}
		return nil, nil, nil, err
	}
	return sess, recorder, debugObs, nil
}

// runText validates one statement and prints the formatted result.
func runText(sess *session.Session, text string, level principles.Level, format string, options formatters.FormatterOptions) int {
	result, err := sess.Validate(text, nil, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	output, err := formatters.Export(format, result, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	fmt.Print(output)
	if !result.IsValid {
		return exitGated
	}
	return exitValid
}

// runFile batch-validates every statement extracted from a document.
func runFile(sess *session.Session, debugObs *observability.DebugObserver, path string, level principles.Level, format string, options formatters.FormatterOptions) int {
	doc, err := document.Extract(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	if len(doc.Statements) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no statements found in %s\n", doc.Filename)
		return exitUsage
	}
	if debugObs != nil {
		debugObs.LogDetail("batch", fmt.Sprintf("%s: %d statements", doc.Filename, len(doc.Statements)))
	}

	gated := 0
	for i, statement := range doc.Statements {
		var finishStep func(bool, string)
		if debugObs != nil {
			finishStep = debugObs.StartStep("batch", fmt.Sprintf("statement %d", i+1), doc.Filename)
		}
		result, err := sess.Validate(statement, nil, level)
		if finishStep != nil {
			finishStep(err == nil, "")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsage
		}
		if !result.IsValid {
			gated++
		}
		if format == "text" {
			fmt.Printf("[%d/%d] %s\n", i+1, len(doc.Statements), statement)
		}
		output, err := formatters.Export(format, result, options)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsage
		}
		fmt.Print(output)
		fmt.Println()
	}

	stats := sess.Stats()
	if format == "text" {
		fmt.Printf("Summary: %d statements, %d gated, %d emergencies, %d contradictions\n",
			len(doc.Statements), gated, stats.Emergencies, stats.Contradictions)
	}
	if gated > 0 {
		return exitGated
	}
	return exitValid
}

// runChat runs the interactive loop: prompt, generate, gate, print.
func runChat(sess *session.Session, cfg *config.Config, resolved finalConfiguration, level principles.Level, options formatters.FormatterOptions) int {
	provider, err := providers.New(providers.Settings{
		Name:         resolved.provider,
		Model:        resolved.model,
		BaseURL:      cfg.Provider.BaseURL,
		APIKeyEnv:    cfg.Provider.APIKeyEnv,
		SystemPrompt: cfg.Provider.SystemPrompt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	interactive := isTerminal(os.Stdin)
	if interactive {
		fmt.Printf("medgate chat (%s/%s, level %s). Type 'exit' to quit, 'stats' for counters.\n",
			provider.Name(), resolved.model, level)
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return exitValid
		case "stats":
			stats := sess.Stats()
			fmt.Printf("validations: %d, emergencies: %d, contradictions: %d, rejected: %d\n",
				stats.Validations, stats.Emergencies, stats.Contradictions, stats.Rejected)
			continue
		}

		response, err := provider.GenerateResponse(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		result, err := sess.Validate(response, nil, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		if result.IsValid {
			fmt.Println(response)
		} else {
			if result.Emergency && !options.NoColor {
				color.New(color.FgRed, color.Bold).Println("EMERGENCY DETECTED")
			}
			fmt.Println(result.ModifiedText)
		}
		if options.Verbose {
			fmt.Printf("[score %.3f, risk %s, confidence %.3f]\n",
				result.OverallScore, result.Risk.Level, result.Confidence.Overall)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	return exitValid
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
