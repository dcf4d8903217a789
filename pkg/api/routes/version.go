package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hydertrax/hydertrax/pkg/engine"
)

func APIVersion(predictionEngine *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version":       "v0.1",
			"model_version": predictionEngine.ModelVersion(),
		})
	}
}
