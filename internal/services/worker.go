package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/cv-screener/internal/models"
)

// BatchWorker screens a batch of files. Each file is an independent unit of
// work: a failure is recorded and the rest of the batch still runs.
type BatchWorker interface {
	Run(ctx context.Context, files []*UploadedFile, skills []models.SkillRequirement) *models.BatchResult
}

type batchWorker struct {
	screener    ScreenerService
	concurrency int
	log         *zap.Logger
}

// NewBatchWorker returns a worker running at most concurrency files at
// once. A concurrency of 1 processes files strictly in submission order.
func NewBatchWorker(screener ScreenerService, concurrency int, log *zap.Logger) BatchWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &batchWorker{
		screener:    screener,
		concurrency: concurrency,
		log:         log,
	}
}

type fileOutcome struct {
	result *models.CandidateResult
	err    error
	ran    bool
}

// Run implements BatchWorker. Files rejected before screening are recorded
// with their own error. Once ctx is done no further files are started; files
// already in flight run to completion. Results and errors keep submission
// order.
func (w *batchWorker) Run(ctx context.Context, files []*UploadedFile, skills []models.SkillRequirement) *models.BatchResult {
	batchID := uuid.New().String()
	log := w.log.With(zap.String("batch", batchID))
	log.Info("batch started", zap.Int("files", len(files)), zap.Int("concurrency", w.concurrency))

	outcomes := make([]fileOutcome, len(files))
	for i, file := range files {
		if file.Err != nil {
			outcomes[i] = fileOutcome{err: file.Err, ran: true}
		}
	}

	var g errgroup.Group
	g.SetLimit(w.concurrency)

	for i, file := range files {
		if file.Err != nil {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			// The in-flight call is detached from cancellation so it can finish.
			result, err := w.screener.Analyze(context.WithoutCancel(ctx), file, skills)
			outcomes[i] = fileOutcome{result: result, err: err, ran: true}
			if err != nil {
				log.Warn("file failed", zap.String("file", file.FileName), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	batch := &models.BatchResult{
		BatchID: batchID,
		Results: []models.CandidateResult{},
		Errors:  []models.FileError{},
	}

	for i, out := range outcomes {
		switch {
		case !out.ran:
			batch.Errors = append(batch.Errors, models.FileError{FileName: files[i].FileName, Error: "skipped: batch cancelled"})
		case out.err != nil:
			batch.Errors = append(batch.Errors, models.FileError{FileName: files[i].FileName, Error: out.err.Error()})
		default:
			result := *out.result
			result.FileName = files[i].FileName
			batch.Results = append(batch.Results, result)
		}
	}

	batch.Summarize()
	log.Info("batch completed",
		zap.Int("analyzed", batch.Summary.Analyzed),
		zap.Int("failed", batch.Summary.Failed),
	)

	return batch
}
