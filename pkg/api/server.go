package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hydertrax/hydertrax/pkg/api/routes"
	"github.com/hydertrax/hydertrax/pkg/database"
	"github.com/hydertrax/hydertrax/pkg/engine"
)

func SetupServer(listen string, predictionEngine *engine.Engine, store *database.Store) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion(predictionEngine))

	routes.PredictionsRouter(group.Group("/predict"), predictionEngine)

	routes.TrackingRouter(group.Group("/track"), predictionEngine)

	routes.SchedulesRouter(group.Group("/schedules"), store)

	routes.PredictionLogRouter(group.Group("/predictions"), store)

	return webApp.Listen(listen)
}
