package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/hydertrax/hydertrax/pkg/engine"
)

func TrackingRouter(router fiber.Router, predictionEngine *engine.Engine) {
	router.Get("/:identifier", trackService(predictionEngine))
}

func trackService(predictionEngine *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.Params("identifier")

		asOf := time.Now()
		if atQuery := c.Query("at"); atQuery != "" {
			parsed, err := time.Parse(time.RFC3339, atQuery)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Parameter at should be an RFC3339/ISO8601 datetime",
				})
			}

			asOf = parsed
		}

		timeline, err := predictionEngine.Track(c.Context(), identifier, asOf)
		if err != nil {
			return sendEngineError(c, err)
		}

		timelineReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic", "detailed"},
		}, timeline)

		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Timeline",
			})
		}

		return c.JSON(timelineReduced)
	}
}
