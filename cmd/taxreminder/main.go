// The taxreminder command runs the interactive menu over the deadline store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ChumaSuey/TaxReminder/pkg/cli"
	"github.com/ChumaSuey/TaxReminder/pkg/config"
	"github.com/ChumaSuey/TaxReminder/pkg/db"
	"github.com/ChumaSuey/TaxReminder/pkg/display"
)

func main() {
	configPath := flag.String("config", "", "path to an optional yaml config file")
	flag.Parse()

	ctx := context.Background()

	// the menu owns stdout; keep logging on stderr and quiet
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}

	database, err := db.NewDatabase(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening the database")
	}
	defer database.Close()

	for _, category := range display.DefaultCategories {
		if _, err := database.AddCategory(ctx, category.Name, category.Description); err != nil {
			log.Fatal().Err(err).Msg("error seeding default categories")
		}
	}

	fmt.Println("\n💼 SISTEMA DE RECORDATORIO DE IMPUESTOS")
	fmt.Println("-----------------------------------")
	fmt.Println("  Sistema de gestión de vencimientos fiscales")

	cli.New(database, cfg.HorizonDays, os.Stdin, os.Stdout).Run(ctx)
}
