package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/cv-screener/internal/logger"
	"alfredoptarigan/cv-screener/internal/models"
)

// ScreenerService runs the single-file pipeline: extract, prompt, infer,
// sanitize, reconcile.
type ScreenerService interface {
	Analyze(ctx context.Context, file *UploadedFile, skills []models.SkillRequirement) (*models.CandidateResult, error)
	Review(ctx context.Context, file *UploadedFile) (string, error)
}

type screenerService struct {
	extractor     TextExtractor
	gateway       InferenceGateway
	promptBuilder *PromptBuilder
	reconciler    *Reconciler
	log           *zap.Logger
}

func NewScreenerService(
	extractor TextExtractor,
	gateway InferenceGateway,
	reconciler *Reconciler,
	log *zap.Logger,
) ScreenerService {
	return &screenerService{
		extractor:     extractor,
		gateway:       gateway,
		promptBuilder: NewPromptBuilder(),
		reconciler:    reconciler,
		log:           log,
	}
}

func (s *screenerService) Analyze(ctx context.Context, file *UploadedFile, skills []models.SkillRequirement) (*models.CandidateResult, error) {
	log := s.log.With(zap.String("file", file.FileName))

	content, err := s.extractor.ExtractText(file.FileName, file.Data)
	if err != nil {
		log.Warn("text extraction failed", zap.Error(err))
		return nil, err
	}
	log.Debug("text extracted", zap.Int("pages", content.PageCount), zap.Int("chars", len(content.Text)))

	prompt := s.promptBuilder.BuildScreeningPrompt(content.Text, skills)
	log.Debug("screening prompt built", zap.Int("chars", len(prompt)), zap.Int("skills", len(skills)))

	completion, err := s.gateway.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := ParseCompletion(completion)
	if err != nil {
		log.Warn("model response is not JSON",
			zap.Error(err),
			logger.Snippet("completion", completion, 200),
		)
		return nil, err
	}

	if len(skills) == 0 {
		return PassThrough(payload), nil
	}

	result, err := s.reconciler.Reconcile(payload, skills)
	if err != nil {
		log.Warn("model response failed validation", zap.Error(err))
		return nil, err
	}

	log.Info("candidate screened",
		zap.String("candidate", result.CandidateName),
		zap.Int("match_score", result.MatchScore),
		zap.String("decision", string(result.Decision)),
	)

	return result, nil
}

func (s *screenerService) Review(ctx context.Context, file *UploadedFile) (string, error) {
	content, err := s.extractor.ExtractText(file.FileName, file.Data)
	if err != nil {
		return "", err
	}

	analysis, err := s.gateway.Complete(ctx, s.promptBuilder.BuildReviewPrompt(content.Text))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(analysis), nil
}
