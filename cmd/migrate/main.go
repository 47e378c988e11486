// Comando migrate aplica o revierte las migraciones embebidas sobre la base configurada.
//
//	go run ./cmd/migrate -direction up
//	go run ./cmd/migrate -direction down   # revierte un paso
//	go run ./cmd/migrate -version
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-movimientos/pkg/config"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

func main() {
	direction := flag.String("direction", "up", "up | down")
	onlyVersion := flag.Bool("version", false, "solo mostrar la versión actual")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	mg, err := postgres.NewMigrator(pool, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer mg.Close()

	if *onlyVersion {
		v, dirty, err := mg.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("leer versión")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		return
	}

	switch *direction {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	default:
		log.Error().Str("direction", *direction).Msg("dirección inválida")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", *direction).Msg("migración fallida")
	}
}
