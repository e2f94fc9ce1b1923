package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/services"
)

// PredictionRunner runs the external prediction process for a stored image
// and returns its JSON output.
type PredictionRunner interface {
	Run(ctx context.Context, imagePath string) ([]byte, error)
}

// PredictHandler accepts an uploaded retinal image, hands it to the
// prediction process, and relays the process output verbatim.
type PredictHandler struct {
	runner    PredictionRunner
	uploadDir string
}

// NewPredictHandler constructs a PredictHandler.
func NewPredictHandler(runner PredictionRunner, uploadDir string) *PredictHandler {
	return &PredictHandler{runner: runner, uploadDir: uploadDir}
}

// Predict stores the uploaded image under a timestamp-prefixed name, runs
// the predictor, and returns its JSON verdict. Uploaded files are kept.
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(fileHeader.Filename))
	imagePath := filepath.Join(h.uploadDir, filename)

	if err := c.SaveFile(fileHeader, imagePath); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to store upload")
	}

	output, err := h.runner.Run(c.Context(), imagePath)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPredictionTimeout):
			return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": "Prediction timed out"})
		case errors.Is(err, services.ErrInvalidOutput):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Invalid JSON from Python"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Prediction Failed"})
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(output)
}
