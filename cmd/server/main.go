package main

import (
	"log"
	"strings"
	"time"

	"fincontrol-backend/internal/auth"
	"fincontrol-backend/internal/cache"
	"fincontrol-backend/internal/config"
	"fincontrol-backend/internal/dashboard"
	"fincontrol-backend/internal/database"
	"fincontrol-backend/internal/export"
	"fincontrol-backend/internal/models"
	"fincontrol-backend/internal/realtime"
	"fincontrol-backend/internal/report"
	"fincontrol-backend/internal/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	cch := cache.New(cfg.RedisAddr, time.Duration(cfg.RedisTTLSecs)*time.Second)
	hub := realtime.NewHub()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Transacciones
	protected.Post("/transactions", transaction.CreateTransactionHandler(cfg, cch, hub))
	protected.Get("/transactions", transaction.ListTransactionsHandler())
	protected.Get("/transactions/:id", transaction.GetTransactionHandler())
	protected.Put("/transactions/:id", transaction.UpdateTransactionHandler(cfg, cch, hub))
	protected.Post("/transactions/:id/notes", transaction.AddNoteHandler(cch, hub))

	// Tablero y reportes
	protected.Get("/dashboard/metrics", dashboard.MetricsHandler(cfg, cch))
	protected.Get("/reports/aging", report.AgingHandler())
	protected.Get("/reports/pnl", report.PnLHandler())
	protected.Get("/reports/cashflow", report.CashFlowHandler())

	// Exportación
	protected.Get("/export/report", export.ReportHandler(cfg))

	// Notificaciones en tiempo real
	protected.Use("/ws", realtime.Upgrade())
	protected.Get("/ws", hub.Handler())

	// Solo admin: cambios de estado, borrados y alta de usuarios
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/transactions/:id/status", transaction.ToggleStatusHandler(cch, hub))
	adminRoutes.Delete("/transactions/:id", transaction.DeleteTransactionHandler(cch, hub))
	adminRoutes.Post("/users", auth.CreateUserHandler(cfg))

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
