// Package pipeline orchestrates the per-symbol run: extract from every
// source, clean, derive, validate, score and persist. Every stage is
// best-effort so one bad source or symbol never sinks the batch.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockpulse/platform/internal/calc"
	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/clean"
	"github.com/stockpulse/platform/internal/extract"
	"github.com/stockpulse/platform/internal/quality"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/internal/technical"
	"github.com/stockpulse/platform/internal/validate"
	"github.com/stockpulse/platform/pkg/logger"
)

// Store is the persistence surface the pipeline needs.
type Store interface {
	SaveStock(ctx context.Context, symbol string, doc map[string]interface{}) error
	SaveQualityReport(ctx context.Context, symbol string, generatedAt time.Time, report interface{}) error
	SaveJob(ctx context.Context, jobID string, job interface{}) error
}

// SymbolResult summarizes one symbol's run.
type SymbolResult struct {
	Symbol        string        `json:"symbol"`
	Status        record.Status `json:"status"`
	SourcesOK     int           `json:"sources_ok"`
	SourcesFailed int           `json:"sources_failed"`
	Completeness  float64       `json:"completeness_pct"`
	OverallScore  float64       `json:"overall_score"`
	Investable    bool          `json:"investable"`
	Errors        []string      `json:"errors,omitempty"`
}

// Job is the persisted record of one batch run.
type Job struct {
	ID          string         `json:"job_id"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
	Duration    string         `json:"duration"`
	Status      record.Status  `json:"status"`
	Total       int            `json:"total_symbols"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Results     []SymbolResult `json:"results"`
}

// Pipeline wires the processing stages together.
type Pipeline struct {
	cat        *catalog.Catalog
	extractors []extract.Extractor
	cleaner    *clean.Cleaner
	calc       *calc.Engine
	technical  *technical.Calculator
	validator  *validate.Engine
	scorer     *quality.Scorer
	store      Store
	log        *logger.Logger
}

// New creates a Pipeline. store may be nil, in which case results are
// computed but not persisted.
func New(
	cat *catalog.Catalog,
	extractors []extract.Extractor,
	cleaner *clean.Cleaner,
	calcEngine *calc.Engine,
	tech *technical.Calculator,
	validator *validate.Engine,
	scorer *quality.Scorer,
	store Store,
	log *logger.Logger,
) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{
		cat:        cat,
		extractors: extractors,
		cleaner:    cleaner,
		calc:       calcEngine,
		technical:  tech,
		validator:  validator,
		scorer:     scorer,
		store:      store,
		log:        log,
	}
}

// Run processes symbols sequentially and returns the job record.
// A non-empty sources list restricts the run to extractors whose
// source id is listed; an empty list uses every configured source.
// Cancellation is honored between symbols: records already processed
// stay persisted, remaining symbols are marked failed.
func (p *Pipeline) Run(ctx context.Context, symbols, sources []string) *Job {
	extractors := p.selectExtractors(sources)
	job := &Job{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Total:     len(symbols),
	}
	p.log.WithFields(map[string]interface{}{
		"job_id":  job.ID,
		"symbols": len(symbols),
		"sources": len(extractors),
	}).Info("Pipeline run started")

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			job.Results = append(job.Results, SymbolResult{
				Symbol: symbol,
				Status: record.StatusFailed,
				Errors: []string{err.Error()},
			})
			job.Failed++
			continue
		}
		res := p.processSymbol(ctx, symbol, extractors)
		job.Results = append(job.Results, res)
		if res.Status == record.StatusFailed {
			job.Failed++
		} else {
			job.Succeeded++
		}
	}

	job.CompletedAt = time.Now().UTC()
	job.Duration = job.CompletedAt.Sub(job.StartedAt).String()
	switch {
	case job.Failed == 0:
		job.Status = record.StatusSuccess
	case job.Succeeded == 0:
		job.Status = record.StatusFailed
	default:
		job.Status = record.StatusPartial
	}

	if p.store != nil {
		if err := p.store.SaveJob(context.WithoutCancel(ctx), job.ID, job); err != nil {
			p.log.WithError(err).WithField("job_id", job.ID).Error("Job record save failed")
		}
	}
	p.log.WithFields(map[string]interface{}{
		"job_id":    job.ID,
		"status":    job.Status,
		"succeeded": job.Succeeded,
		"failed":    job.Failed,
		"duration":  job.Duration,
	}).Info("Pipeline run finished")
	return job
}

// selectExtractors filters the configured extractors down to the
// requested source ids. Unknown ids are skipped with a warning so a
// typo shows up in the logs instead of silently running nothing.
func (p *Pipeline) selectExtractors(sources []string) []extract.Extractor {
	if len(sources) == 0 {
		return p.extractors
	}
	want := make(map[string]bool, len(sources))
	for _, s := range sources {
		want[s] = true
	}
	var selected []extract.Extractor
	for _, ex := range p.extractors {
		if want[string(ex.Source())] {
			selected = append(selected, ex)
			delete(want, string(ex.Source()))
		}
	}
	for s := range want {
		p.log.WithField("source", s).Warn("Unknown source id, skipping")
	}
	return selected
}

func (p *Pipeline) processSymbol(ctx context.Context, symbol string, extractors []extract.Extractor) SymbolResult {
	res := SymbolResult{Symbol: symbol}
	r := record.New(p.cat, symbol, "")

	for _, ex := range extractors {
		attempt := ex.Extract(ctx, symbol, r)
		r.RecordAttempt(*attempt)
		if attempt.Status == record.StatusFailed {
			res.SourcesFailed++
			if attempt.ErrorMessage != "" {
				res.Errors = append(res.Errors, string(attempt.Source)+": "+attempt.ErrorMessage)
			}
			continue
		}
		res.SourcesOK++
	}

	if res.SourcesOK == 0 {
		p.log.WithField("symbol", symbol).Warn("All sources failed")
		res.Status = record.StatusFailed
		return res
	}

	if modified := p.cleaner.Clean(r); modified > 0 {
		p.log.WithFields(map[string]interface{}{
			"symbol":   symbol,
			"modified": modified,
		}).Debug("Cleaning adjusted fields")
	}
	p.calc.CalculateAll(r)
	p.technical.CalculateAll(r)
	vrep := p.validator.ValidateAll(r)
	qrep := p.scorer.Score(r, vrep)

	res.Completeness = r.Completeness()
	res.OverallScore = qrep.OverallConfidence
	res.Investable = vrep.IsInvestable
	res.Status = record.StatusSuccess

	if p.store != nil {
		// Persist with a detached context so a cancel mid-run does not
		// drop work already done.
		sctx := context.WithoutCancel(ctx)
		doc := r.Document()
		doc["validation"] = vrep
		doc["quality"] = qrep
		if err := p.store.SaveStock(sctx, symbol, doc); err != nil {
			p.log.WithError(err).WithField("symbol", symbol).Error("Stock save failed")
			res.Errors = append(res.Errors, "persist: "+err.Error())
			res.Status = record.StatusPartial
		}
		if err := p.store.SaveQualityReport(sctx, symbol, qrep.GeneratedAt, qrep); err != nil {
			p.log.WithError(err).WithField("symbol", symbol).Error("Quality report save failed")
		}
	}

	p.log.WithFields(map[string]interface{}{
		"symbol":     symbol,
		"score":      qrep.OverallConfidence,
		"confidence": qrep.Level(),
		"investable": vrep.IsInvestable,
	}).Info("Symbol processed")
	return res
}
