package server

import (
	"strings"

	"edp-shifts/internal/admin"
	"edp-shifts/internal/auth"
	"edp-shifts/internal/config"
	"edp-shifts/internal/credential"
	"edp-shifts/internal/dashboard"
	"edp-shifts/internal/models"
	"edp-shifts/internal/shift"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New builds the HTTP API on top of db.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) *fiber.App {
	loc := cfg.Location()
	users := credential.NewService(credential.NewStore(db, log.Named("credential")))
	shifts := shift.NewService(shift.NewStore(db, loc))

	app := fiber.New(fiber.Config{
		AppName:               "edp-shifts",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log),
	})

	useMiddleware(app, cfg, log)

	api := app.Group("/api")

	// Public
	api.Post("/auth/login", auth.LoginHandler(cfg, users))

	// Protected
	protected := api.Group("", auth.JWTMiddleware(cfg, users))

	protected.Get("/auth/me", auth.MeHandler(users))
	protected.Put("/auth/password", auth.ChangePasswordHandler(users))

	protected.Post("/shifts", shift.CreateShiftHandler(shifts))
	protected.Get("/shifts/suggestions", shift.SuggestionsHandler(shifts))
	protected.Get("/shifts/timings", shift.TimingsHandler())

	// Admin
	adminRoutes := protected.Group("/admin", auth.RequireRole(models.RoleAdmin))

	adminRoutes.Get("/shifts", shift.ListShiftsHandler(shifts))
	adminRoutes.Get("/shifts/export", shift.ExportShiftsHandler(shifts, loc))
	adminRoutes.Put("/shifts/:id", shift.UpdateShiftHandler(shifts))
	adminRoutes.Delete("/shifts/:id", shift.DeleteShiftHandler(shifts))

	adminRoutes.Get("/users", admin.ListUsersHandler(users))
	adminRoutes.Post("/users", admin.RegisterUserHandler(users))
	adminRoutes.Put("/users/:username/role", admin.SetRoleHandler(users))
	adminRoutes.Put("/users/:username/verify", admin.SetVerifiedHandler(users))
	adminRoutes.Put("/users/:username/password", admin.ResetPasswordHandler(users))

	adminRoutes.Get("/dashboard/branches", dashboard.BranchSummaryHandler(shifts, loc))

	return app
}

// useMiddleware installs the access log outermost so panics recovered below it
// are still logged as 500s.
func useMiddleware(app *fiber.App, cfg *config.Config, log *zap.Logger) {
	app.Use(AccessLog(log.Named("http")))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
}
