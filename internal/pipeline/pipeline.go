// Package pipeline drives changelog generation: commit-range resolution,
// classification, optional AI analysis, assembly, and publishing, per
// release and in batch across all releases.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grokify/changelogconductor/internal/analysis"
	"github.com/grokify/changelogconductor/internal/assemble"
	"github.com/grokify/changelogconductor/internal/classifier"
	"github.com/grokify/changelogconductor/internal/config"
	"github.com/grokify/changelogconductor/internal/report"
	"github.com/grokify/changelogconductor/internal/resolver"
	"github.com/grokify/changelogconductor/internal/store"
	"github.com/grokify/changelogconductor/pkg/model"
)

// Pipeline processes releases into published changelogs.
type Pipeline struct {
	Store     store.ReleaseStore
	Resolver  *resolver.Resolver
	Analyzer  analysis.Analyzer
	Assembler *assemble.Assembler
	Config    *config.Config
	Sink      report.Sink
}

// New creates a pipeline. Analyzer may be nil to disable AI analysis; Sink
// may be nil to disable progress reporting.
func New(st store.ReleaseStore, res *resolver.Resolver, an analysis.Analyzer, cfg *config.Config, sink report.Sink) *Pipeline {
	if sink == nil {
		sink = report.NopSink{}
	}
	return &Pipeline{
		Store:     st,
		Resolver:  res,
		Analyzer:  an,
		Assembler: assemble.New(cfg),
		Config:    cfg,
		Sink:      sink,
	}
}

// ProcessRelease runs the full pipeline for one release and converts every
// failure into an outcome value. With force set, an already-optimized body
// is regenerated instead of skipped. Analysis failures never fail the
// release; they select the rule-based rendering path.
func (p *Pipeline) ProcessRelease(ctx context.Context, target model.ReleaseTarget, force bool) model.ReleaseOutcome {
	outcome := model.ReleaseOutcome{
		Tag:       target.Tag,
		ReleaseID: target.StorageID,
	}

	if !force && strings.Contains(target.ExistingBody, p.Config.Templates.OptimizedMarker) {
		outcome.Status = model.OutcomeSkipped
		outcome.Reason = model.SkipReasonNoOptimization
		return outcome
	}

	resolved, err := p.Resolver.Resolve(ctx, target.Tag)
	if err != nil {
		outcome.Status = model.OutcomeFailed
		outcome.Error = err.Error()
		return outcome
	}

	outcome.RangeLabel = resolved.RangeLabel
	outcome.CommitCount = len(resolved.Commits)

	if len(resolved.Commits) == 0 {
		outcome.Status = model.OutcomeSkipped
		outcome.Reason = model.SkipReasonEmptyRange
		return outcome
	}

	classified := classifier.Classify(resolved.Commits, p.Config)
	outcome.CategoryCounts = classified.Counts()

	var analysisResult *model.AnalysisResult
	if p.Analyzer != nil {
		if raw, err := p.Analyzer.Analyze(ctx, resolved.Commits); err == nil {
			analysisResult, _ = analysis.Interpret(raw)
		}
	}

	document := p.Assembler.Assemble(target.Tag, classified, analysisResult, resolved.Commits)

	if err := p.Store.UpdateBody(ctx, target.StorageID, document); err != nil {
		outcome.Status = model.OutcomeFailed
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Status = model.OutcomeSucceeded
	outcome.AIUsed = analysisResult != nil
	return outcome
}

// RunSingle fetches and processes the release named by the selection.
// Manual mode forces regeneration; automatic modes skip already-optimized
// releases.
func (p *Pipeline) RunSingle(ctx context.Context, sel Selection) (*model.RunResult, error) {
	var target *model.ReleaseTarget
	var err error

	switch sel.Mode {
	case model.ModeWorkflowCall, model.ModeAutoRelease:
		target, err = p.Store.GetByID(ctx, sel.ReleaseID)
	case model.ModeManual:
		if sel.Version == TargetLatest {
			target, err = p.Store.Latest(ctx)
		} else {
			target, err = p.Store.GetByTag(ctx, sel.Version)
		}
	default:
		return nil, fmt.Errorf("mode %s is not a single-release mode", sel.Mode)
	}
	if err != nil {
		return nil, err
	}

	force := sel.Mode == model.ModeManual
	outcome := p.ProcessRelease(ctx, *target, force)

	result := &model.RunResult{
		Timestamp: time.Now(),
		Mode:      sel.Mode,
		Outcome:   outcome,
	}
	p.Sink.Emit(report.Event{
		Type: report.EventRunComplete,
		Mode: sel.Mode,
		Run:  result,
	})

	return result, nil
}
