package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hrassist/resume-screener/internal/models"
)

// storedDataError maps repository failures onto HTTP statuses. A corrupt
// stored row is the caller-visible 422 case; everything else is a 500.
func storedDataError(c *fiber.Ctx, err error, fallback string) error {
	var integrity *models.DataIntegrityError
	if errors.As(err, &integrity) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": integrity.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fallback,
	})
}

func criteriaError(c *fiber.Ctx, err error) error {
	return storedDataError(c, err, "Failed to load criteria")
}
