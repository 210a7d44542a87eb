// The taxgui command runs the terminal GUI. The terminal is owned by the
// widget tree, so logs go to the configured log file instead of stderr.
package main

import (
	"context"
	"flag"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ChumaSuey/TaxReminder/pkg/config"
	"github.com/ChumaSuey/TaxReminder/pkg/controller"
	"github.com/ChumaSuey/TaxReminder/pkg/db"
	"github.com/ChumaSuey/TaxReminder/pkg/display"
)

func main() {
	configPath := flag.String("config", "", "path to an optional yaml config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	filePerms := 0o666

	logFile, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Msg("starting application...")

	database, err := db.NewDatabase(ctx, cfg.DBPath)
	if err != nil {
		panic(err)
	}
	defer database.Close()

	for _, category := range display.DefaultCategories {
		if _, err := database.AddCategory(ctx, category.Name, category.Description); err != nil {
			panic(err)
		}
	}

	c, err := controller.NewController(ctx, database, cfg.HorizonDays)
	if err != nil {
		panic(err)
	}

	if err := c.Go(); err != nil {
		log.Err(err).Msg("application exited with an error")
		panic(err)
	}
}
