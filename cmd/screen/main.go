// Package main provides the screen CLI, which scores a directory or S3
// prefix of résumés in one batch.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/cv-screener/internal/config"
	"alfredoptarigan/cv-screener/internal/logger"
	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a batch of résumés against a skill list",
	Long:  "Reads every PDF, DOCX or TXT résumé from a local directory or an S3 prefix, scores each one with the configured model and writes the batch result as JSON.",
	RunE:  runScreen,
}

var (
	screenDir         string
	screenBucket      string
	screenPrefix      string
	screenSkills      string
	screenConcurrency int
	screenOutput      string
)

func init() {
	rootCmd.Flags().StringVarP(&screenDir, "dir", "d", "", "Directory of résumés to screen")
	rootCmd.Flags().StringVar(&screenBucket, "bucket", "", "S3 bucket holding résumés")
	rootCmd.Flags().StringVar(&screenPrefix, "prefix", "", "Key prefix within --bucket")
	rootCmd.Flags().StringVarP(&screenSkills, "skills", "s", "", "Path to a JSON array of {name, weight} requirements")
	rootCmd.Flags().IntVarP(&screenConcurrency, "concurrency", "c", 0, "Files screened at once (default BATCH_CONCURRENCY)")
	rootCmd.Flags().StringVarP(&screenOutput, "output", "o", "", "Write the batch result JSON here instead of stdout")

	rootCmd.MarkFlagsMutuallyExclusive("dir", "bucket")
	rootCmd.MarkFlagsOneRequired("dir", "bucket")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScreen(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zl, err := logger.New(logger.Options{
		Format:  cfg.Server.LogFormat,
		Debug:   cfg.IsDevelopment(),
		Service: "cv-screener-cli",
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	skills, err := loadSkills(screenSkills)
	if err != nil {
		return err
	}

	source, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	files, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load résumés: %w", err)
	}
	if len(files) == 0 {
		return errors.New("no supported résumés found")
	}
	zl.Info("résumés loaded", zap.Int("files", len(files)), zap.Int("skills", len(skills)))

	matcher, err := services.NewSkillMatcher(cfg.Scoring.Matcher)
	if err != nil {
		return err
	}

	gateway, err := services.NewInferenceGateway(ctx, cfg, zl)
	if err != nil {
		return err
	}

	concurrency := cfg.Batch.Concurrency
	if screenConcurrency > 0 {
		concurrency = screenConcurrency
	}

	screener := services.NewScreenerService(services.NewDocumentParser(), gateway, services.NewReconciler(matcher), zl)
	batch := services.NewBatchWorker(screener, concurrency, zl).Run(ctx, files, skills)

	if err := writeResult(batch, screenOutput); err != nil {
		return err
	}

	printSummary(batch)

	if batch.Summary.Analyzed == 0 {
		return fmt.Errorf("all %d résumés failed", batch.Summary.Total)
	}
	return nil
}

func newSource(ctx context.Context, cfg *config.Config) (services.ResumeSource, error) {
	if screenDir != "" {
		return services.NewDirectorySource(screenDir, cfg.Upload.MaxFileSize), nil
	}

	awsCfg, err := services.LoadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	return services.NewS3Source(awsCfg, cfg.AWS.S3Endpoint, screenBucket, screenPrefix, cfg.Upload.MaxFileSize), nil
}

func loadSkills(path string) ([]models.SkillRequirement, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills file %s: %w", path, err)
	}

	skills, err := models.ParseSkills(data)
	if err != nil {
		return nil, fmt.Errorf("invalid skills file %s: %w", path, err)
	}
	return skills, nil
}

func writeResult(batch *models.BatchResult, path string) error {
	out, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch result: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write batch result to %s: %w", path, err)
	}
	return nil
}

func printSummary(batch *models.BatchResult) {
	s := batch.Summary
	fmt.Fprintln(os.Stderr, strings.Repeat("=", 60))
	fmt.Fprintf(os.Stderr, "Batch %s\n", batch.BatchID)
	fmt.Fprintf(os.Stderr, "  Analyzed: %d/%d (failed %d)\n", s.Analyzed, s.Total, s.Failed)
	fmt.Fprintf(os.Stderr, "  Recommended: %d  Consider: %d  Rejected: %d\n", s.Recommended, s.Consider, s.Rejected)
	fmt.Fprintf(os.Stderr, "  Average score: %.1f\n", s.AverageScore)
	for _, e := range batch.Errors {
		fmt.Fprintf(os.Stderr, "  ! %s: %s\n", e.FileName, e.Error)
	}
	fmt.Fprintln(os.Stderr, strings.Repeat("=", 60))
}
