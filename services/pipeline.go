package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"news-pulse/models"
	"news-pulse/providers"
)

// Stage error kinds for programmatic handling.
var (
	ErrExtract   = errors.New("extract stage failed")
	ErrValidate  = errors.New("validate stage failed")
	ErrTransform = errors.New("transform stage failed")
	ErrLoad      = errors.New("load stage failed")
)

// Loader persists the enriched table.
type Loader interface {
	Load(ctx context.Context, enriched []models.EnrichedArticle) error
}

// ArtifactWriter persists per-stage file artifacts. Artifact failures are
// never fatal to a run.
type ArtifactWriter interface {
	SaveRaw(articles []models.Article) (string, error)
	SaveClean(articles []models.Article) (string, error)
	SaveEnriched(enriched []models.EnrichedArticle) (string, error)
	SaveQualityReport(report models.QualityReport) (string, error)
}

// Runner executes the four pipeline stages strictly in order, gating each
// stage on the previous one's non-empty, non-failed result.
type Runner struct {
	Source      providers.Provider
	Validator   *Validator
	Transformer *SentimentService
	Loader      Loader
	Artifacts   ArtifactWriter
	Logger      *zap.Logger
}

// NewRunner wires the pipeline stages together.
func NewRunner(source providers.Provider, validator *Validator, transformer *SentimentService,
	loader Loader, artifacts ArtifactWriter, logger *zap.Logger) *Runner {
	return &Runner{
		Source:      source,
		Validator:   validator,
		Transformer: transformer,
		Loader:      loader,
		Artifacts:   artifacts,
		Logger:      logger,
	}
}

// Run executes extract, validate, transform, and load once. A failed or
// empty extract/validate/transform halts the run as FAILED; a load failure
// alone degrades it to WARNING since the upstream file artifacts already
// exist. The returned error is non-nil only for FAILED runs.
func (r *Runner) Run(ctx context.Context) (*models.RunStatus, error) {
	status := models.NewRunStatus()
	r.Logger.Info("Starting financial news ETL pipeline",
		zap.String("source", r.Source.Name()))

	// Stage 1: extract
	raw, err := r.Source.Fetch(ctx)
	if err != nil {
		return r.failRun(status, "extract", fmt.Errorf("%w: %v", ErrExtract, err))
	}
	if len(raw) == 0 {
		return r.failRun(status, "extract", fmt.Errorf("%w: no data extracted", ErrExtract))
	}
	status.AddStep("extract", fmt.Sprintf("SUCCESS - %d articles", len(raw)))
	r.saveArtifact("raw", func() (string, error) { return r.Artifacts.SaveRaw(raw) })

	// Stage 2: validate
	clean, report := r.Validator.Validate(raw)
	r.saveArtifact("quality_report", func() (string, error) { return r.Artifacts.SaveQualityReport(report) })
	if len(clean) == 0 {
		return r.failRun(status, "validate", fmt.Errorf("%w: no clean data", ErrValidate))
	}
	status.AddStep("validate", fmt.Sprintf("SUCCESS - %d clean records", len(clean)))
	r.saveArtifact("clean", func() (string, error) { return r.Artifacts.SaveClean(clean) })

	// Stage 3: transform
	enriched, summary := r.Transformer.Transform(clean)
	if len(enriched) == 0 {
		return r.failRun(status, "transform", fmt.Errorf("%w: empty result", ErrTransform))
	}
	status.AddStep("transform", fmt.Sprintf("SUCCESS - Avg sentiment: %.3f", summary.MeanCompound))
	r.saveArtifact("enriched", func() (string, error) { return r.Artifacts.SaveEnriched(enriched) })

	// Stage 4: load
	if err := r.Loader.Load(ctx, enriched); err != nil {
		loadErr := fmt.Errorf("%w: %v", ErrLoad, err)
		r.Logger.Error("Load stage failed, degrading run to WARNING", zap.Error(loadErr))
		status.AddStep("load", "FAILED - "+err.Error())
		status.Finish(models.RunWarning)
		r.logSummary(status)
		return status, nil
	}
	status.AddStep("load", fmt.Sprintf("SUCCESS - %d records loaded", len(enriched)))
	status.RecordsLoaded = len(enriched)

	status.Finish(models.RunSuccess)
	r.logSummary(status)
	return status, nil
}

// failRun marks a fatal stage failure and halts the run.
func (r *Runner) failRun(status *models.RunStatus, stage string, err error) (*models.RunStatus, error) {
	r.Logger.Error("Pipeline failed", zap.String("stage", stage), zap.Error(err))
	status.AddStep(stage, "FAILED - "+err.Error())
	status.Finish(models.RunFailed)
	r.logSummary(status)
	return status, err
}

// saveArtifact writes one file artifact, logging but never propagating errors.
func (r *Runner) saveArtifact(name string, save func() (string, error)) {
	path, err := save()
	if err != nil {
		r.Logger.Warn("Could not write artifact", zap.String("artifact", name), zap.Error(err))
		return
	}
	r.Logger.Info("Artifact written", zap.String("artifact", name), zap.String("path", path))
}

func (r *Runner) logSummary(status *models.RunStatus) {
	fields := []zap.Field{
		zap.String("status", status.Overall),
		zap.Duration("duration", status.Duration()),
	}
	for _, step := range status.Steps {
		fields = append(fields, zap.String("step_"+step.Name, step.Outcome))
	}
	r.Logger.Info("Pipeline execution summary", fields...)
}
