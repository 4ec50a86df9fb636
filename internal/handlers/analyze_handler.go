package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-screener/internal/services"
)

type AnalyzeHandler struct {
	uploadService services.UploadService
	screener      services.ScreenerService
	log           *zap.Logger
}

func NewAnalyzeHandler(
	uploadService services.UploadService,
	screener services.ScreenerService,
	log *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		uploadService: uploadService,
		screener:      screener,
		log:           log,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, services.ErrNoFile)
	}

	skills, err := parseSkills(c)
	if err != nil {
		return errorResponse(c, err)
	}

	file, err := h.uploadService.ReadFile(fileHeader)
	if err != nil {
		return errorResponse(c, err)
	}

	result, err := h.screener.Analyze(c.UserContext(), file, skills)
	if err != nil {
		h.log.Error("analysis failed", zap.String("file", file.FileName), zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(result)
}
