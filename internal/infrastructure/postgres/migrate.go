package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica las migraciones embebidas con golang-migrate.
type Migrator struct {
	m   *migrate.Migrate
	log zerolog.Logger
}

// NewMigrator prepara golang-migrate sobre el pool (vía database/sql).
func NewMigrator(pool *pgxpool.Pool, log zerolog.Logger) (*Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(pool), &migratepgx.Config{})
	if err != nil {
		return nil, fmt.Errorf("migrations driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithInstance: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// Version versión aplicada; 0 si la base está vacía.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func (mg *Migrator) Up() error {
	return mg.run("up", mg.m.Up)
}

// Down revierte la última migración aplicada.
func (mg *Migrator) Down() error {
	return mg.run("down", func() error { return mg.m.Steps(-1) })
}

// Close libera la conexión usada por golang-migrate.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) run(direction string, fn func() error) error {
	pre, _, err := mg.Version()
	if err != nil {
		return fmt.Errorf("version previa: %w", err)
	}
	if err := fn(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	post, _, err := mg.Version()
	if err != nil {
		return fmt.Errorf("version posterior: %w", err)
	}
	mg.log.Info().
		Str("direction", direction).
		Uint("pre_version", pre).
		Uint("post_version", post).
		Msg("migraciones aplicadas")
	return nil
}
