// Package pipeline sequences the run: resume set → enumerate → fetch,
// summarize and persist each remaining repository in order.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/madetech/CodeCommit-AI-Summariser/internal/models"
)

// Lister enumerates repository names. Failure is fatal to the run.
type Lister interface {
	ListRepositories(ctx context.Context) ([]string, error)
}

// Fetcher retrieves a repository's README. found is false when the
// repository has none; err is reserved for other retrieval failures, which
// degrade to "absent" for that repository only.
type Fetcher interface {
	GetReadme(ctx context.Context, repoName string) (content string, found bool, err error)
}

// Summarizer produces an analysis for README text. The analysis is always
// usable; a non-nil error means retries were exhausted and the analysis
// carries failure sentinels.
type Summarizer interface {
	Summarize(ctx context.Context, readme string) (models.Analysis, error)
}

// Store derives the resume set and persists rows.
type Store interface {
	LoadProcessed() (map[string]struct{}, error)
	Append(rec models.Record) error
}

type Pipeline struct {
	Lister     Lister
	Fetcher    Fetcher
	Summarizer Summarizer
	Store      Store

	// PacingDelay is the wait inserted between repositories. Sleep defaults
	// to time.Sleep; tests substitute a recorder.
	PacingDelay time.Duration
	Sleep       func(time.Duration)

	Log *slog.Logger
}

// Run processes every repository not yet present in the output file, in
// enumeration order, appending one row per repository as soon as its
// analysis completes. Per-repository failures degrade to sentinel rows; only
// resume-set, enumeration and append failures abort the run.
func (p *Pipeline) Run(ctx context.Context) error {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	processed, err := p.Store.LoadProcessed()
	if err != nil {
		return fmt.Errorf("reading existing results: %w", err)
	}

	all, err := p.Lister.ListRepositories(ctx)
	if err != nil {
		return fmt.Errorf("enumerating repositories: %w", err)
	}

	var toProcess []string
	for _, name := range all {
		if _, done := processed[name]; !done {
			toProcess = append(toProcess, name)
		}
	}
	log.Info("starting run", "repositories", len(all), "already_processed", len(processed), "to_process", len(toProcess))

	if len(toProcess) == 0 {
		log.Info("nothing left to process")
		return nil
	}

	for i, name := range toProcess {
		readme, found, err := p.Fetcher.GetReadme(ctx, name)

		var analysis models.Analysis
		switch {
		case err != nil:
			log.Warn("README fetch failed, recording as absent", "repository", name, "error", err)
			analysis = models.NoReadmeAnalysis()
		case !found:
			log.Info("no README", "repository", name)
			analysis = models.NoReadmeAnalysis()
		default:
			analysis, err = p.Summarizer.Summarize(ctx, readme)
			if err != nil {
				log.Warn("analysis failed after retries", "repository", name, "error", err)
			}
		}

		if err := p.Store.Append(models.Record{
			RepositoryName: name,
			Summary:        analysis.Summary,
			TechStack:      analysis.TechStack,
		}); err != nil {
			return fmt.Errorf("writing row for %s: %w", name, err)
		}
		log.Info("recorded", "repository", name, "remaining", len(toProcess)-i-1)

		if i < len(toProcess)-1 {
			sleep(p.PacingDelay)
		}
	}

	return nil
}
