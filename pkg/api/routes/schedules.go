package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hydertrax/hydertrax/pkg/database"
)

func SchedulesRouter(router fiber.Router, store *database.Store) {
	router.Get("/locations", listLocations(store))
}

func listLocations(store *database.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locations, err := store.GetLocations(c.Context())
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not list locations",
			})
		}

		return c.JSON(fiber.Map{
			"locations": locations,
		})
	}
}
