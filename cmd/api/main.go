package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/inventario-movimientos/internal/application/analytics"
	"github.com/jhoicas/inventario-movimientos/internal/application/auth"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/application/workflow"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/session"
	httpRouter "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
	"github.com/jhoicas/inventario-movimientos/pkg/config"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: el login no podrá emitir tokens")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.MigrateOnStart {
		if err := migrateUp(pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	gw := postgres.NewGateway(pool, log.Component("postgres"))
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	engine := workflow.NewEngine(
		postgres.NewTxRunner(gw), productRepo, transactionRepo,
		workflow.WithLogger(log.Component("workflow")),
		workflow.WithStockRecheck(cfg.Workflow.RecheckStock),
	)

	var (
		store workflow.SessionStore
		locks httpRouter.SessionLocker
	)
	if cfg.Redis.Enabled() {
		rdb, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.Session.TTL)
		locks = session.NewRedisLocker(rdb, cfg.Session.LockLease, cfg.Session.LockWait, log.Component("session-lock"))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sesiones en Redis")
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL)
		locks = session.NewKeyedMutex()
		log.Info().Msg("sesiones en memoria del proceso")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	productUC := usecase.NewProductUseCase(productRepo)
	movementUC := usecase.NewMovementUseCase(movementRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, log.Component("dashboard"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		MovementUC:  movementUC,
		DashboardUC: dashboardUC,
		Workflow:    httpRouter.NewWorkflowHandler(engine, store, locks, log.Component("workflow")),
		DB:          gw,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
		SwaggerFile: cfg.HTTP.SwaggerFile,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func migrateUp(pool *pgxpool.Pool, log *logger.Logger) error {
	mg, err := postgres.NewMigrator(pool, log.Component("migrate"))
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}

// errorHandler respuestas de Fiber (404 de ruta, body demasiado grande, panics recuperados) en formato ErrorResponse.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "error interno"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(code), Message: msg})
}
