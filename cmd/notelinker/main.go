package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-note-linker/api"
	"github.com/gcbaptista/go-note-linker/config"
	"github.com/gcbaptista/go-note-linker/internal/engine"
	"github.com/gcbaptista/go-note-linker/internal/mcpserver"
	"github.com/gcbaptista/go-note-linker/model"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run parses args, executes the requested mode and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("notelinker", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		help         = fs.Bool("help", false, "Show help message")
		showVersion  = fs.Bool("version", false, "Show version information")
		dir          = fs.String("dir", ".", "Directory holding the notes (not recursive)")
		ext          = fs.String("ext", config.DefaultExtension, "File extension of the notes")
		configPath   = fs.String("config", "", "JSON or YAML settings file; flags override its values")
		minLength    = fs.Int("min-length", config.DefaultMinTermLength, "Minimum length of a term")
		minFrequency = fs.Int("min-frequency", config.DefaultMinFrequency, "Minimum corpus-wide occurrences of a term")
		top          = fs.Int("top", config.DefaultMaxTerms, "Number of terms to link")
		workers      = fs.Int("workers", config.DefaultWorkers, "Concurrent annotation workers")
		dryRun       = fs.Bool("dry-run", false, "Report changes without writing files")
		skipCode     = fs.Bool("skip-code", false, "Leave Markdown code blocks and inline code untouched")
		exportCSV    = fs.String("export-csv", "", "Convert this CSV export into notes inside -dir before enriching")
		serve        = fs.Bool("serve", false, "Start the HTTP API instead of running once")
		mcpMode      = fs.Bool("mcp", false, "Serve the MCP tools over stdio instead of running once")
		port         = fs.String("port", "8080", "Port of the HTTP API")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *help {
		fmt.Fprintf(stdout, "Note Linker - links recurring terms across a folder of notes\n\n")
		fmt.Fprintf(stdout, "Usage: notelinker [options]\n\n")
		fmt.Fprintf(stdout, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stdout, "\nExamples:\n")
		fmt.Fprintf(stdout, "  notelinker -dir ./vault                       # Link the 20 most frequent terms\n")
		fmt.Fprintf(stdout, "  notelinker -dir ./vault -dry-run -top 10      # Preview without writing\n")
		fmt.Fprintf(stdout, "  notelinker -dir ./vault -export-csv ideas.csv # Export, then link\n")
		fmt.Fprintf(stdout, "  notelinker -dir ./vault -serve -port 9000     # Start the HTTP API\n")
		fmt.Fprintf(stdout, "  notelinker -dir ./vault -mcp                  # Serve MCP tools over stdio\n")
		return 0
	}
	if *showVersion {
		fmt.Fprintf(stdout, "Note Linker v%s\n", version)
		return 0
	}

	settings := config.NewPipelineSettings(*dir)
	if *configPath != "" {
		loaded, err := config.LoadSettings(*configPath)
		if err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		settings = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dir":
			settings.InputDir = *dir
		case "ext":
			settings.Extension = *ext
		case "min-length":
			settings.MinTermLength = *minLength
		case "min-frequency":
			settings.MinFrequency = *minFrequency
		case "top":
			settings.MaxTerms = *top
		case "workers":
			settings.Workers = *workers
		case "dry-run":
			settings.DryRun = *dryRun
		case "skip-code":
			settings.SkipCode = *skipCode
		}
	})
	if settings.InputDir == "" {
		settings.InputDir = *dir
	}

	eng, err := engine.New(settings, nil)
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	defer eng.Close()

	if *mcpMode {
		// stdout carries the protocol
		log.SetOutput(os.Stderr)
		if err := mcpserver.Serve(ctx, mcpserver.NewServer(eng, version)); err != nil {
			log.Printf("MCP server error: %v", err)
			return 1
		}
		return 0
	}

	if *serve {
		router := gin.Default()
		api.SetupRoutes(router, eng)
		log.Printf("Starting server on port %s for corpus '%s'...", *port, settings.InputDir)
		if err := router.Run(":" + *port); err != nil {
			log.Printf("Failed to start server: %v", err)
			return 1
		}
		return 0
	}

	if *exportCSV != "" {
		exportReport, err := eng.Export(ctx, *exportCSV, settings.InputDir)
		if err != nil {
			log.Printf("Error: %v", err)
			return 1
		}
		printExportSummary(stdout, exportReport)
	}

	report, err := eng.Run(ctx, engine.RunOptions{})
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	printRunSummary(stdout, eng.Settings(), report)
	return 0
}

func printExportSummary(w io.Writer, report *model.ExportReport) {
	fmt.Fprintf(w, "Export\n")
	fmt.Fprintf(w, "  notes created:     %d\n", report.Notes)
	fmt.Fprintf(w, "  notes with tags:   %d\n", report.NotesWithTags)
	fmt.Fprintf(w, "  notes with links:  %d\n", report.NotesWithLinks)
	fmt.Fprintf(w, "  unique tags:       %d\n", report.UniqueTags)
	fmt.Fprintf(w, "  total links:       %d\n", report.TotalLinks)
	fmt.Fprintf(w, "  output:            %s\n", report.OutputDir)
	printBreakdown(w, "By status", report.ByStatus)
	printBreakdown(w, "By type", report.ByType)
	fmt.Fprintln(w)
}

// printBreakdown lists counts from most to least common, ties by name.
func printBreakdown(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintf(w, "\n%s\n", title)
	for _, key := range keys {
		fmt.Fprintf(w, "  %-18s %d\n", key+":", counts[key])
	}
}

func printRunSummary(w io.Writer, settings config.PipelineSettings, report *model.RunReport) {
	fmt.Fprintf(w, "Configuration\n")
	fmt.Fprintf(w, "  directory:         %s\n", settings.InputDir)
	fmt.Fprintf(w, "  extension:         %s\n", settings.Extension)
	fmt.Fprintf(w, "  min term length:   %d\n", settings.MinTermLength)
	fmt.Fprintf(w, "  min frequency:     %d\n", settings.MinFrequency)
	fmt.Fprintf(w, "  max terms:         %d\n", settings.MaxTerms)
	fmt.Fprintf(w, "  stopwords:         %d\n", len(settings.Stopwords)+len(settings.ExtraStopwords))

	fmt.Fprintf(w, "\nTop terms\n")
	if len(report.Terms) == 0 {
		fmt.Fprintf(w, "  (none reached the minimum frequency)\n")
	}
	for i, term := range report.Terms.Top(10) {
		fmt.Fprintf(w, "  %2d. %-24s %d\n", i+1, term.Text, term.Count)
	}

	mode := ""
	if report.DryRun {
		mode = " (dry run, nothing written)"
	}
	fmt.Fprintf(w, "\nDocuments%s\n", mode)
	fmt.Fprintf(w, "  scanned:           %d\n", report.Scanned)
	fmt.Fprintf(w, "  modified:          %d\n", report.Modified)
	fmt.Fprintf(w, "  unchanged:         %d\n", report.Unchanged)
	fmt.Fprintf(w, "  failed:            %d\n", report.Failed)
	for _, failure := range report.Failures {
		fmt.Fprintf(w, "    %s (%s): %s\n", failure.Path, failure.Phase, strings.TrimSpace(failure.Error))
	}
}
