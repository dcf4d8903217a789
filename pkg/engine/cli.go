package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/hydertrax/hydertrax/pkg/database"
	"github.com/hydertrax/hydertrax/pkg/transit"
	"github.com/hydertrax/hydertrax/pkg/weather"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "engine",
		Usage: "Run delay predictions from the terminal",
		Subcommands: []*cli.Command{
			{
				Name:  "predict",
				Usage: "predict the delay for a single trip",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "origin location",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "destination location",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Value: "Bus",
						Usage: "transport type (Bus, Metro, Train)",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "travel date formatted YYYY-MM-DD, defaults to today",
					},
					&cli.StringFlag{
						Name:  "time",
						Usage: "departure time formatted HH:MM",
					},
				},
				Action: func(c *cli.Context) error {
					predictionEngine, err := setupEngine()
					if err != nil {
						return err
					}

					request, err := requestFromFlags(c)
					if err != nil {
						return err
					}

					insight, err := predictionEngine.Predict(context.Background(), request)
					if err != nil {
						return err
					}

					pretty.Println(insight)

					return nil
				},
			},
			{
				Name:  "track",
				Usage: "show the live stop timeline for a service",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "service",
						Usage:    "service identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "at",
						Usage: "instant to track at, RFC3339, defaults to now",
					},
				},
				Action: func(c *cli.Context) error {
					predictionEngine, err := setupEngine()
					if err != nil {
						return err
					}

					asOf := time.Now()
					if atFlag := c.String("at"); atFlag != "" {
						asOf, err = time.Parse(time.RFC3339, atFlag)
						if err != nil {
							return fmt.Errorf("parsing at instant: %w", err)
						}
					}

					timeline, err := predictionEngine.Track(context.Background(), c.String("service"), asOf)
					if err != nil {
						return err
					}

					pretty.Println(timeline)

					return nil
				},
			},
		},
	}
}

func setupEngine() (*Engine, error) {
	if err := database.Connect(); err != nil {
		return nil, err
	}

	config := GetConfig()
	weatherClient := weather.NewClient(config.Latitude, config.Longitude, config.FallbackWeather)

	return NewEngine(config, database.NewStore(), weatherClient)
}

func requestFromFlags(c *cli.Context) (*transit.PredictionRequest, error) {
	transportType, err := transit.ParseTransportType(c.String("type"))
	if err != nil {
		return nil, err
	}

	travelDate := time.Now()
	if dateFlag := c.String("date"); dateFlag != "" {
		travelDate, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return nil, fmt.Errorf("parsing travel date: %w", err)
		}
	}

	var departureTime time.Time
	if timeFlag := c.String("time"); timeFlag != "" {
		departureTime, err = time.Parse("15:04", timeFlag)
		if err != nil {
			return nil, fmt.Errorf("parsing departure time: %w", err)
		}
	}

	return &transit.PredictionRequest{
		FromLocation:  c.String("from"),
		ToLocation:    c.String("to"),
		TransportType: transportType,

		TravelDate:    travelDate,
		DepartureTime: departureTime,
	}, nil
}
