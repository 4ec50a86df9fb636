package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-screener/internal/services"
)

type BatchHandler struct {
	uploadService services.UploadService
	worker        services.BatchWorker
	maxFiles      int
	log           *zap.Logger
}

func NewBatchHandler(
	uploadService services.UploadService,
	worker services.BatchWorker,
	maxFiles int,
	log *zap.Logger,
) *BatchHandler {
	return &BatchHandler{
		uploadService: uploadService,
		worker:        worker,
		maxFiles:      maxFiles,
		log:           log,
	}
}

// HandleBatch handles POST /analyze/batch. Files that fail upload checks are
// reported in the batch errors, in upload order, rather than rejecting the
// whole request.
func (h *BatchHandler) HandleBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errorResponse(c, services.ErrNoFile)
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		return errorResponse(c, services.ErrNoFile)
	}
	if len(headers) > h.maxFiles {
		return errorResponse(c, &services.InputError{
			Msg: fmt.Sprintf("too many files. Max files: %d", h.maxFiles),
		})
	}

	skills, err := parseSkills(c)
	if err != nil {
		return errorResponse(c, err)
	}

	files := make([]*services.UploadedFile, 0, len(headers))
	for _, header := range headers {
		file, err := h.uploadService.ReadFile(header)
		if err != nil {
			file = services.RejectedFile(header.Filename, err)
		}
		files = append(files, file)
	}

	batch := h.worker.Run(c.UserContext(), files, skills)

	h.log.Info("batch request served",
		zap.String("batch", batch.BatchID),
		zap.Int("files", len(headers)),
		zap.Int("failed", batch.Summary.Failed),
	)

	return c.JSON(batch)
}
