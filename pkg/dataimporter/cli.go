package dataimporter

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hydertrax/hydertrax/pkg/database"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Import schedule & context datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "schedules",
				Usage: "Import a schedule history CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path of the CSV file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					startTime := time.Now()

					imported, err := ImportScheduleFile(c.Context, c.String("file"))
					if err != nil {
						return err
					}

					log.Info().
						Int("records", imported).
						Str("duration", time.Since(startTime).String()).
						Msg("Schedule import complete")

					return nil
				},
			},
		},
	}
}
