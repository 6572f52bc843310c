// Package mcpserver exposes the note linker as Model Context Protocol tools so
// an assistant can inspect a corpus, preview links and start enrichment runs.
package mcpserver

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gcbaptista/go-note-linker/services"
)

const serverName = "go-note-linker"

// NoInput is the argument type of tools that take no parameters.
type NoInput struct{}

// TermOutput is one ranked term.
type TermOutput struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// AnalyzeOutput is the result of analyze_corpus.
type AnalyzeOutput struct {
	Terms    []TermOutput `json:"terms"`
	Scanned  int          `json:"scanned"`
	Analyzed int          `json:"analyzed"`
	Failed   int          `json:"failed"`
}

// AnnotateInput is the argument of annotate_text.
type AnnotateInput struct {
	Text  string   `json:"text" jsonschema:"Text to annotate"`
	Terms []string `json:"terms,omitempty" jsonschema:"Terms to link (optional, defaults to the corpus term list)"`
}

// AnnotateOutput is the result of annotate_text.
type AnnotateOutput struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed"`
}

// NoteOutput summarizes one note.
type NoteOutput struct {
	Path    string   `json:"path"`
	Title   string   `json:"title,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Markers int      `json:"markers"`
	Error   string   `json:"error,omitempty"`
}

// ListNotesOutput is the result of list_notes.
type ListNotesOutput struct {
	Notes []NoteOutput `json:"notes"`
	Total int          `json:"total"`
}

// StartRunInput is the argument of start_enrichment.
type StartRunInput struct {
	DryRun bool `json:"dry_run,omitempty" jsonschema:"Compute changes without writing files (optional, defaults to false)"`
}

// JobInput identifies a job.
type JobInput struct {
	JobID string `json:"job_id" jsonschema:"ID returned by start_enrichment"`
}

// JobOutput reports the state of a job.
type JobOutput struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Tools implements the MCP tool handlers on top of an enricher.
type Tools struct {
	enricher services.Enricher
}

// NewTools creates the tool handlers.
func NewTools(enricher services.Enricher) *Tools {
	return &Tools{enricher: enricher}
}

// NewServer creates an MCP server with every note linker tool registered.
func NewServer(enricher services.Enricher, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	NewTools(enricher).Register(server)
	log.Printf("MCP server initialized: %s v%s", serverName, version)
	return server
}

// Serve runs the server over stdio until ctx is done or the client disconnects.
func Serve(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// Register adds the tools to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_corpus",
		Description: "Rank the most frequent terms of the note corpus. Nothing is written.",
	}, t.Analyze)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "annotate_text",
		Description: "Wrap occurrences of terms in a text as [[term]] references, leaving existing references untouched.",
	}, t.Annotate)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notes",
		Description: "List the notes of the corpus with their title, tags and number of references.",
	}, t.ListNotes)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_enrichment",
		Description: "Start a background run that links the top terms across every note. Returns a job ID.",
	}, t.StartRun)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_job",
		Description: "Report the status of a background job.",
	}, t.GetJob)
}

// Analyze handles analyze_corpus.
func (t *Tools) Analyze(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, AnalyzeOutput, error) {
	report, err := t.enricher.Analyze(ctx)
	if err != nil {
		return nil, AnalyzeOutput{}, fmt.Errorf("analysis failed: %w", err)
	}

	output := AnalyzeOutput{
		Terms:    make([]TermOutput, len(report.Terms)),
		Scanned:  report.Scanned,
		Analyzed: report.Analyzed,
		Failed:   report.Failed,
	}
	for i, term := range report.Terms {
		output.Terms[i] = TermOutput{Term: term.Text, Count: term.Count}
	}
	return nil, output, nil
}

// Annotate handles annotate_text.
func (t *Tools) Annotate(ctx context.Context, _ *mcp.CallToolRequest, input AnnotateInput) (*mcp.CallToolResult, AnnotateOutput, error) {
	if input.Text == "" {
		return nil, AnnotateOutput{}, fmt.Errorf("text is required")
	}
	text, changed, err := t.enricher.AnnotateText(ctx, input.Text, input.Terms)
	if err != nil {
		return nil, AnnotateOutput{}, fmt.Errorf("annotation failed: %w", err)
	}
	return nil, AnnotateOutput{Text: text, Changed: changed}, nil
}

// ListNotes handles list_notes.
func (t *Tools) ListNotes(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ListNotesOutput, error) {
	notes, err := t.enricher.ListNotes(ctx)
	if err != nil {
		return nil, ListNotesOutput{}, fmt.Errorf("listing notes failed: %w", err)
	}

	output := ListNotesOutput{Notes: make([]NoteOutput, len(notes)), Total: len(notes)}
	for i, note := range notes {
		output.Notes[i] = NoteOutput{Path: note.Path, Title: note.Title, Tags: note.Tags, Markers: note.Markers, Error: note.Error}
	}
	return nil, output, nil
}

// StartRun handles start_enrichment.
func (t *Tools) StartRun(_ context.Context, _ *mcp.CallToolRequest, input StartRunInput) (*mcp.CallToolResult, JobOutput, error) {
	jobID, err := t.enricher.RunAsync(input.DryRun)
	if err != nil {
		return nil, JobOutput{}, err
	}
	return t.GetJob(context.Background(), nil, JobInput{JobID: jobID})
}

// GetJob handles get_job.
func (t *Tools) GetJob(_ context.Context, _ *mcp.CallToolRequest, input JobInput) (*mcp.CallToolResult, JobOutput, error) {
	job, err := t.enricher.GetJob(input.JobID)
	if err != nil {
		return nil, JobOutput{}, err
	}
	return nil, JobOutput{JobID: job.ID, Status: string(job.Status), Error: job.Error}, nil
}
