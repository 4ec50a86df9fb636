package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"alfredoptarigan/cv-screener/internal/models"
)

type fakeGateway struct {
	mu        sync.Mutex
	responses map[string]string
	fallback  string
	err       error
	prompts   []string
}

func (f *fakeGateway) Name() string { return "fake" }

// Complete answers with the response keyed by a substring of the prompt,
// falling back to f.fallback.
func (f *fakeGateway) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", &InferenceError{Provider: "fake", Err: f.err}
	}
	for marker, resp := range f.responses {
		if strings.Contains(prompt, marker) {
			return resp, nil
		}
	}
	return f.fallback, nil
}

// fakeExtractor returns the file bytes as text, failing for files named in
// failures.
type fakeExtractor struct {
	failures map[string]bool
}

func (f *fakeExtractor) ExtractText(fileName string, data []byte) (*DocumentContent, error) {
	if f.failures[fileName] {
		return nil, &ExtractionError{FileName: fileName, Err: errors.New("no text content found in document")}
	}
	return &DocumentContent{Text: string(data), PageCount: 1, FileName: fileName}, nil
}

type fakeScreener struct {
	mu      sync.Mutex
	calls   []string
	results map[string]*models.CandidateResult
	errs    map[string]error
	onCall  func(name string)
}

func (f *fakeScreener) Analyze(ctx context.Context, file *UploadedFile, skills []models.SkillRequirement) (*models.CandidateResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, file.FileName)
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(file.FileName)
	}
	if err := f.errs[file.FileName]; err != nil {
		return nil, err
	}
	return f.results[file.FileName], nil
}

func (f *fakeScreener) Review(ctx context.Context, file *UploadedFile) (string, error) {
	return "", nil
}
