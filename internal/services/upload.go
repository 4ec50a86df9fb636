package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// UploadedFile is one résumé held in memory for the duration of a request.
// Err marks a file rejected before screening (unsupported type, too large,
// unreadable); a batch records it in place without screening it.
type UploadedFile struct {
	FileName string
	Data     []byte
	Err      error
}

// RejectedFile returns a batch entry for a file that failed upload checks.
func RejectedFile(fileName string, err error) *UploadedFile {
	return &UploadedFile{FileName: fileName, Err: err}
}

type UploadService interface {
	ReadFile(file *multipart.FileHeader) (*UploadedFile, error)
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{maxFileSize: maxFileSize}
}

// ReadFile validates the part and reads it fully. Nothing is written to
// disk.
func (s *uploadService) ReadFile(file *multipart.FileHeader) (*UploadedFile, error) {
	if !IsSupportedFile(file.Filename) {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		return nil, &InputError{Msg: fmt.Sprintf("invalid file extension: %q", ext)}
	}

	if file.Size > s.maxFileSize {
		return nil, &InputError{Msg: fmt.Sprintf("file too large. Max size: %d bytes", s.maxFileSize)}
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := ReadAll(src, s.maxFileSize)
	if err != nil {
		return nil, err
	}

	return &UploadedFile{FileName: file.Filename, Data: data}, nil
}
