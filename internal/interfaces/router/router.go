package router

import (
	"context"
	"net/http"
	"os"

	gissvc "shoredock-backend/internal/application/gis"
	projsvc "shoredock-backend/internal/application/projects"
	uploadsvc "shoredock-backend/internal/application/uploads"
	verssvc "shoredock-backend/internal/application/versions"
	"shoredock-backend/internal/application/workflow"
	"shoredock-backend/internal/config"
	"shoredock-backend/internal/infrastructure/database"
	emailhandler "shoredock-backend/internal/interfaces/handlers/emails"
	gishandler "shoredock-backend/internal/interfaces/handlers/gis"
	healthhandler "shoredock-backend/internal/interfaces/handlers/health"
	navhandler "shoredock-backend/internal/interfaces/handlers/navigation"
	permithandler "shoredock-backend/internal/interfaces/handlers/permits"
	projhandler "shoredock-backend/internal/interfaces/handlers/projects"
	uploadhandler "shoredock-backend/internal/interfaces/handlers/uploads"
	vershandler "shoredock-backend/internal/interfaces/handlers/versions"
	"shoredock-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping(ctx context.Context) error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// App bundles the fiber app with the long-lived pieces main needs for
// shutdown (flushing the autosaver, closing redis).
type App struct {
	Fiber    *fiber.App
	DB       *gorm.DB
	Rdb      *redis.Client
	Autosave *projsvc.Autosaver
}

func CreateApp(cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rdb = redis.NewClient(opts)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             30 << 20, // attachments
	})

	app.Use(middleware.CORS(middleware.CORSConfig{ExtraOrigins: cfg.ExtraOrigins}))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	// Services
	versions := &verssvc.Service{DB: db}
	projects := &projsvc.Service{DB: db, BlobDir: cfg.BlobDir()}
	autosave := projsvc.NewAutosaver(projects, versions, cfg.AutosaveDelay)
	sessions := workflow.NewSessions(projects, versions)
	uploads := &uploadsvc.Service{DB: db, BlobDir: cfg.BlobDir()}
	gis := &gissvc.Service{BaseURL: cfg.ElevationAPIURL, Rdb: rdb}

	hh := &healthhandler.Handlers{Rdb: rdb, DB: &gormDBPinger{db: db}}
	app.Get("/health/json", hh.JSON)

	api := app.Group("/api/v1")

	// Projects
	ph := &projhandler.Handlers{Service: projects, Autosave: autosave, Sessions: sessions}
	pg := api.Group("/projects")
	pg.Post("/", ph.Create)
	pg.Get("/", ph.List)
	pg.Get("/:id", ph.Get)
	pg.Put("/:id", ph.Update)
	pg.Delete("/:id", ph.Delete)
	pg.Patch("/:id/applications/:permitType", ph.UpdateApplication)

	// Permit recommendations + catalog
	peh := &permithandler.Handlers{Projects: projects}
	api.Get("/permits/catalog", peh.Catalog)
	pg.Get("/:id/recommendations", peh.Recommendations)
	pg.Get("/:id/recommendations/summary", peh.Summary)

	// Navigation
	nh := &navhandler.Handlers{Projects: projects, Sessions: sessions}
	pg.Get("/:id/stages", nh.Stages)
	pg.Get("/:id/stages/:stageId/validation", nh.Validation)
	pg.Post("/:id/navigation/next", nh.Next)
	pg.Post("/:id/navigation/previous", nh.Previous)
	pg.Post("/:id/navigation/goto", nh.GoTo)

	// Versions
	vh := &vershandler.Handlers{Service: versions}
	pg.Get("/:id/versions", vh.List)
	pg.Post("/:id/versions", vh.Create)
	pg.Get("/:id/versions/validate", vh.Validate)
	pg.Post("/:id/versions/:versionId/restore", vh.Restore)

	// Email drafts
	eh := &emailhandler.Handlers{Projects: projects}
	pg.Get("/:id/email-drafts", eh.Drafts)

	// Attachments
	uh := &uploadhandler.Handlers{Service: uploads, Projects: projects}
	pg.Post("/:id/attachments", uh.Upload)
	pg.Get("/:id/attachments", uh.List)
	pg.Get("/:id/attachments/:attachmentId", uh.Download)
	pg.Delete("/:id/attachments/:attachmentId", uh.Delete)

	// GIS
	gh := &gishandler.Handlers{Service: gis}
	api.Get("/gis/elevation", gh.Elevation)

	return &App{Fiber: app, DB: db, Rdb: rdb, Autosave: autosave}, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
