// The taxshort command prints the today/upcoming summary and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

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

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}

	database, err := db.NewDatabase(ctx, cfg.DBPath)
	if err != nil {
		fmt.Println("\n❌ Error al acceder a la base de datos:", err)
		fmt.Println("Asegúrate de que el archivo de la base de datos exista y sea accesible.")
		os.Exit(1)
	}
	defer database.Close()

	for _, category := range display.DefaultCategories {
		if _, err := database.AddCategory(ctx, category.Name, category.Description); err != nil {
			log.Fatal().Err(err).Msg("error seeding default categories")
		}
	}

	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("     📅 RECORDATORIO DE IMPUESTOS - PRÓXIMOS VENCIMIENTOS")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Fecha de hoy: %s\n", time.Now().Format("02/01/2006"))

	shell := cli.New(database, cfg.HorizonDays, os.Stdin, os.Stdout)
	if err := shell.CheckToday(ctx); err != nil {
		log.Fatal().Err(err).Msg("error building the report")
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
}
