package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/services"
)

type ReviewHandler struct {
	uploadService services.UploadService
	screener      services.ScreenerService
	log           *zap.Logger
}

func NewReviewHandler(
	uploadService services.UploadService,
	screener services.ScreenerService,
	log *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		uploadService: uploadService,
		screener:      screener,
		log:           log,
	}
}

// HandleReview handles POST /review
func (h *ReviewHandler) HandleReview(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, services.ErrNoFile)
	}

	file, err := h.uploadService.ReadFile(fileHeader)
	if err != nil {
		return errorResponse(c, err)
	}

	analysis, err := h.screener.Review(c.UserContext(), file)
	if err != nil {
		h.log.Error("review failed", zap.String("file", file.FileName), zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(models.ReviewResponse{Analysis: analysis})
}
