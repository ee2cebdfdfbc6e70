package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/EmpoweredVote/roster-backend/internal/config"
	"github.com/EmpoweredVote/roster-backend/internal/db"
	"github.com/EmpoweredVote/roster-backend/internal/logutil"
	"github.com/EmpoweredVote/roster-backend/internal/schema"
	"github.com/EmpoweredVote/roster-backend/internal/seeds"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "Load designations, sample users and addresses from a YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Seed file to load",
				Value:   "internal/seeds/data/roster.yaml",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse the file without touching the database",
			},
		},
		Action: run,
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Seeding failed")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	f, err := seeds.Load(c.String("file"))
	if err != nil {
		return err
	}
	if c.Bool("dry-run") {
		log.Info().
			Int("designations", len(f.Designations)).
			Int("sample_users", len(f.SampleUsers)).
			Int("addresses", len(f.Addresses)).
			Msg("Seed file is valid")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Logger = logutil.New(cfg.LogLevel, cfg.LogFormat)
	ctx := logutil.WithLogger(c.Context, log.Logger)

	conn, err := db.Connect(cfg, log.Logger)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	if err := schema.Migrate(conn); err != nil {
		return err
	}

	counts, err := seeds.SeedAll(ctx, conn, f)
	if err != nil {
		return err
	}
	log.Info().
		Int("designations", counts.Designations).
		Int("sample_users", counts.SampleUsers).
		Int("addresses", counts.Addresses).
		Msg("Seeding complete")
	return nil
}
