package http

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-movimientos/internal/application/analytics"
	"github.com/jhoicas/inventario-movimientos/internal/application/auth"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
)

// Pinger verifica la conexión a la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	MovementUC  *usecase.MovementUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Workflow    *WorkflowHandler
	DB          Pinger
	JWTSecret   string
	AppName     string
	SwaggerFile string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Swagger UI: http://localhost:<port>/docs (solo si el archivo existe)
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    deps.AppName,
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.DB != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.DB.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CONNECTION_UNAVAILABLE", Message: err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	movementHandler := NewMovementHandler(deps.MovementUC)
	protected.Get("/movements/recent", movementHandler.Recent)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	wf := protected.Group("/workflow")
	wf.Get("/", deps.Workflow.Get)
	wf.Post("/transaction", deps.Workflow.OpenTransaction)
	wf.Post("/items", deps.Workflow.StageItem)
	wf.Delete("/items/:index", deps.Workflow.RemoveItem)
	wf.Post("/review", deps.Workflow.RequestReview)
	wf.Post("/edit", deps.Workflow.ReturnToEditing)
	wf.Post("/confirm", deps.Workflow.Confirm)
	wf.Post("/cancel", deps.Workflow.Cancel)
}
