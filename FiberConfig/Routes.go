package FiberConfig

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/template/html"

	"SpeedWatch/Controllers"
	"SpeedWatch/middleware"
)

//go:embed Templates/*.html
var templates embed.FS

func SetupRoutes(app *fiber.App, dashboard *Controllers.DashboardController) {
	app.Get("/", dashboard.Index)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// API group
	api := app.Group("/api")
	api.Get("/state", dashboard.State)
	api.Get("/notifications", dashboard.Notifications)
	api.Post("/notice/dismiss", dashboard.DismissNotice)

	// Video source routes
	api.Post("/upload_video", dashboard.UploadVideo)
	api.Post("/camera/start", dashboard.StartCamera)
	api.Post("/camera/stop", dashboard.StopCamera)
	api.Post("/video/stop", dashboard.StopVideo)

	// Plate search routes
	api.Get("/autocomplete", dashboard.Autocomplete)
	api.Post("/suggestions/select", dashboard.SelectSuggestion)
	api.Post("/click", dashboard.Click)

	api.Get("/violations/export", dashboard.ExportViolations)
}

// NewApp builds the operator console.
func NewApp(dashboard *Controllers.DashboardController, logger *slog.Logger) *fiber.App {
	views, err := fs.Sub(templates, "Templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
		BodyLimit:             512 * 1024 * 1024,
	})
	app.Use(middleware.RequestLogger(logger))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	SetupRoutes(app, dashboard)
	return app
}
