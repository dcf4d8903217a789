package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hydertrax/hydertrax/pkg/database"
)

func PredictionLogRouter(router fiber.Router, store *database.Store) {
	router.Get("/recent", recentPredictions(store))
}

func recentPredictions(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := strconv.Atoi(c.Query("count", "25"))
		if err != nil || count < 1 || count > 100 {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter count should be an integer between 1 and 100",
			})
		}

		predictions, err := store.RecentPredictions(c.Context(), int64(count))
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not list recent predictions",
			})
		}

		return c.JSON(fiber.Map{
			"predictions": predictions,
		})
	}
}
