package api

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hydertrax/hydertrax/pkg/database"
	"github.com/hydertrax/hydertrax/pkg/engine"
	"github.com/hydertrax/hydertrax/pkg/redis_client"
	"github.com/hydertrax/hydertrax/pkg/weather"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					config := engine.GetConfig()

					weatherClient := weather.NewClient(config.Latitude, config.Longitude, config.FallbackWeather)

					if err := redis_client.Connect(); err != nil {
						log.Warn().Err(err).Msg("Failed to connect to Redis, weather conditions will not be cached")
					} else {
						weatherClient.CreateConditionsCache()
					}

					store := database.NewStore()

					predictionEngine, err := engine.NewEngine(config, store, weatherClient)
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), predictionEngine, store)
				},
			},
		},
	}
}
