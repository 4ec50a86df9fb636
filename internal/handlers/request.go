package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-screener/internal/models"
	"alfredoptarigan/cv-screener/internal/services"
)

// parseSkills reads the optional "skills" form field.
func parseSkills(c *fiber.Ctx) ([]models.SkillRequirement, error) {
	skills, err := models.ParseSkills([]byte(c.FormValue("skills")))
	if err != nil {
		return nil, &services.InputError{Msg: err.Error()}
	}
	return skills, nil
}

// statusFor maps a pipeline error to its HTTP status. Caller mistakes are
// 400; extraction, inference and decoding failures are 500.
func statusFor(err error) int {
	var inputErr *services.InputError
	if errors.Is(err, services.ErrNoFile) || errors.As(err, &inputErr) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(models.ErrorResponse{Error: err.Error()})
}
