package routes

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/hydertrax/hydertrax/pkg/engine"
	"github.com/hydertrax/hydertrax/pkg/transit"
)

func PredictionsRouter(router fiber.Router, predictionEngine *engine.Engine) {
	router.Post("/", predictDelay(predictionEngine))
	router.Post("/search", predictRoute(predictionEngine))
}

type predictionBody struct {
	FromLocation  string `json:"from_location"`
	ToLocation    string `json:"to_location"`
	TransportType string `json:"transport_type"`

	TravelDate    string `json:"travel_date"`    // 2006-01-02
	DepartureTime string `json:"departure_time"` // 15:04

	Weather        *string  `json:"weather"`
	TrafficDensity *string  `json:"traffic_density"`
	EventScheduled *bool    `json:"event_scheduled"`
	PassengerLoad  *int     `json:"passenger_load"`
	DistanceKM     *float64 `json:"distance_km"`
}

func (body *predictionBody) toRequest() (*transit.PredictionRequest, error) {
	transportType, err := transit.ParseTransportType(body.TransportType)
	if err != nil {
		return nil, err
	}

	travelDate, err := time.Parse("2006-01-02", body.TravelDate)
	if err != nil {
		return nil, fmt.Errorf("%w: travel_date must be formatted YYYY-MM-DD", transit.ErrValidation)
	}

	var departureTime time.Time
	if body.DepartureTime != "" {
		departureTime, err = time.Parse("15:04", body.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("%w: departure_time must be formatted HH:MM", transit.ErrValidation)
		}
	}

	return &transit.PredictionRequest{
		FromLocation:  body.FromLocation,
		ToLocation:    body.ToLocation,
		TransportType: transportType,

		TravelDate:    travelDate,
		DepartureTime: departureTime,

		Weather:        body.Weather,
		TrafficDensity: body.TrafficDensity,
		EventScheduled: body.EventScheduled,
		PassengerLoad:  body.PassengerLoad,
		DistanceKM:     body.DistanceKM,
	}, nil
}

func predictDelay(predictionEngine *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body predictionBody
		if err := c.BodyParser(&body); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Request body must be valid JSON",
			})
		}

		request, err := body.toRequest()
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		insight, err := predictionEngine.Predict(c.Context(), request)
		if err != nil {
			return sendEngineError(c, err)
		}

		insightReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic", "detailed"},
		}, insight)

		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Insight",
			})
		}

		return c.JSON(insightReduced)
	}
}

func predictRoute(predictionEngine *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body predictionBody
		if err := c.BodyParser(&body); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Request body must be valid JSON",
			})
		}

		request, err := body.toRequest()
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		insights, err := predictionEngine.PredictBatch(c.Context(), request)
		if err != nil {
			return sendEngineError(c, err)
		}

		insightsReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, insights)

		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Insights",
			})
		}

		return c.JSON(insightsReduced)
	}
}

func sendEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transit.ErrValidation):
		c.SendStatus(fiber.StatusBadRequest)
	case errors.Is(err, transit.ErrNotFound):
		c.SendStatus(fiber.StatusNotFound)
	default:
		c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
