package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hydertrax/hydertrax/pkg/api"
	"github.com/hydertrax/hydertrax/pkg/dataimporter"
	"github.com/hydertrax/hydertrax/pkg/engine"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("HYDERTRAX_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("HYDERTRAX_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "hydertrax",
		Description: "Single binary of truth for HyderTrax - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			engine.RegisterCLI(),
			dataimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
