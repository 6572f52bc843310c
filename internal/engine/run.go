package engine

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-note-linker/internal/analysis"
	"github.com/gcbaptista/go-note-linker/internal/corpus"
	"github.com/gcbaptista/go-note-linker/internal/document"
	"github.com/gcbaptista/go-note-linker/internal/jobs"
	"github.com/gcbaptista/go-note-linker/internal/linker"
	"github.com/gcbaptista/go-note-linker/internal/markdown"
	"github.com/gcbaptista/go-note-linker/model"
)

// RunOptions tunes a single run without changing the engine settings.
type RunOptions struct {
	DryRun bool // Compute the report without rewriting any document
}

// loadedDoc is a successfully loaded document with the regions annotation
// must leave alone.
type loadedDoc struct {
	doc       *model.Document
	protected []model.Span
}

// Run executes one enrichment run: discovery, a sequential analysis pass over
// every loaded body, parallel annotation, and atomic rewrites of the documents
// whose body changed. Corpus-level failures are returned before any file is
// touched; per-document failures are recorded in the report.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*model.RunReport, error) {
	return e.run(ctx, opts, nil)
}

func (e *Engine) run(ctx context.Context, opts RunOptions, progress jobs.Progress) (*model.RunReport, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	report, docs, err := e.load(opts.DryRun || e.settings.DryRun)
	if err != nil {
		return nil, err
	}
	log.Printf("Run %s started on '%s' (%d documents, dry run: %t)", report.RunID, report.InputDir, report.Scanned, report.DryRun)

	report.Terms = e.analyze(docs)
	report.Analyzed = len(docs)
	report.Unchanged = len(docs)
	notify(progress, 0, len(docs), "analysis complete")

	if len(report.Terms) == 0 {
		log.Printf("Run %s: no term reached the minimum frequency of %d, nothing to annotate", report.RunID, e.settings.MinFrequency)
		return finish(report), nil
	}

	outputs, err := e.annotateAll(ctx, docs, linker.NewAnnotator(report.Terms), progress)
	if err != nil {
		return finish(report), err
	}

	report.Unchanged = 0
	for i, ld := range docs {
		if outputs[i] == ld.doc.Body {
			report.Unchanged++
			continue
		}
		if !report.DryRun {
			if err := ctx.Err(); err != nil {
				report.Unchanged += len(docs) - i
				return finish(report), err
			}
			updated := *ld.doc
			updated.Body = outputs[i]
			if err := corpus.Save(ld.doc, document.Join(&updated)); err != nil {
				log.Printf("Warning: %v", err)
				report.AddFailure(ld.doc.Path, model.FailurePhaseWrite, err)
				continue
			}
		}
		report.Modified++
		report.Changed = append(report.Changed, ld.doc.Path)
	}
	sort.Strings(report.Changed)

	finish(report)
	log.Printf("Run %s finished in %v: %d modified, %d unchanged, %d failed", report.RunID, report.Duration, report.Modified, report.Unchanged, report.Failed)
	return report, nil
}

// Analyze computes the term list of the corpus without annotating anything.
// Every loaded document is reported as unchanged.
func (e *Engine) Analyze(ctx context.Context) (*model.RunReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report, docs, err := e.load(true)
	if err != nil {
		return nil, err
	}
	report.Terms = e.analyze(docs)
	report.Analyzed = len(docs)
	report.Unchanged = len(docs)
	return finish(report), nil
}

// AnnotateText links terms in text with the engine's annotation rules. When
// terms is empty the corpus term list is computed first.
func (e *Engine) AnnotateText(ctx context.Context, text string, terms []string) (string, bool, error) {
	var annotator *linker.Annotator
	if len(terms) > 0 {
		annotator = linker.NewAnnotatorFromWords(terms)
	} else {
		report, err := e.Analyze(ctx)
		if err != nil {
			return "", false, err
		}
		annotator = linker.NewAnnotator(report.Terms)
	}

	var protected []model.Span
	if e.settings.SkipCode {
		protected = markdown.CodeSpans(text)
	}
	out := annotator.Annotate(text, protected...)
	return out, out != text, nil
}

func (e *Engine) load(dryRun bool) (*model.RunReport, []loadedDoc, error) {
	report := &model.RunReport{
		RunID:     uuid.New().String(),
		InputDir:  e.settings.InputDir,
		DryRun:    dryRun,
		StartedAt: time.Now(),
		Terms:     model.TermList{},
	}

	paths, err := corpus.Discover(e.settings.InputDir, e.settings.Extension)
	if err != nil {
		return nil, nil, err
	}
	report.Scanned = len(paths)

	docs := make([]loadedDoc, 0, len(paths))
	for _, result := range corpus.LoadAll(paths) {
		if !result.OK() {
			log.Printf("Warning: skipping %s: %v", result.Path, result.Err)
			report.AddFailure(result.Path, model.FailurePhaseRead, result.Err)
			continue
		}
		ld := loadedDoc{doc: result.Document}
		if e.settings.SkipCode {
			ld.protected = markdown.CodeSpans(ld.doc.Body)
		}
		docs = append(docs, ld)
	}
	return report, docs, nil
}

// analyze feeds the bodies to a single analyzer in path order.
func (e *Engine) analyze(docs []loadedDoc) model.TermList {
	analyzer := analysis.NewAnalyzer(e.settings)
	for _, ld := range docs {
		body := ld.doc.Body
		if len(ld.protected) > 0 {
			body = markdown.Blank(body, ld.protected)
		}
		analyzer.AddDocument(body)
	}
	return analyzer.TermList()
}

// annotateAll annotates every body on a bounded worker pool. Results are stored
// by index so the outcome does not depend on scheduling.
func (e *Engine) annotateAll(ctx context.Context, docs []loadedDoc, annotator *linker.Annotator, progress jobs.Progress) ([]string, error) {
	outputs := make([]string, len(docs))
	semaphore := make(chan struct{}, e.settings.Workers)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for i := range docs {
		if ctx.Err() != nil {
			break
		}
		semaphore <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer func() {
				<-semaphore
				wg.Done()
			}()
			if ctx.Err() != nil {
				return
			}
			outputs[i] = annotator.Annotate(docs[i].doc.Body, docs[i].protected...)

			mu.Lock()
			done++
			notify(progress, done, len(docs), "annotating "+docs[i].doc.Name)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func notify(progress jobs.Progress, current, total int, message string) {
	if progress != nil {
		progress(current, total, message)
	}
}

func finish(report *model.RunReport) *model.RunReport {
	report.Duration = time.Since(report.StartedAt)
	return report
}
