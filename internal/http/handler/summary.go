package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"docsummary/internal/model"
	"docsummary/internal/service"
)

var validate = validator.New()

type generateSummaryRequest struct {
	DocumentID string               `json:"document_id" validate:"required,uuid"`
	Options    model.SummaryOptions `json:"options"`
}

type updateSummaryRequest struct {
	ContentMarkdown string `json:"content_markdown" validate:"required"`
}

// GenerateSummary creates a new current summary version for a document.
func GenerateSummary(sumSvc service.SummaryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateSummaryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		sv, err := sumSvc.Generate(c.UserContext(), req.DocumentID, req.Options)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sv)
	}
}

// GetSummary returns a single summary version by ID.
func GetSummary(sumSvc service.SummaryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "summary id is required")
		}

		sv, err := sumSvc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sv)
	}
}

// UpdateSummary edits a summary version's Markdown content in place.
func UpdateSummary(sumSvc service.SummaryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "summary id is required")
		}

		var req updateSummaryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		}

		sv, err := sumSvc.UpdateContent(c.UserContext(), id, req.ContentMarkdown)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sv)
	}
}
