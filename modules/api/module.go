package api

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/enoma/modules/admin"
	"github.com/example/enoma/modules/auth"
	"github.com/example/enoma/modules/content"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app          *fiber.App
	port         int
	isProduction bool

	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	contentModule *content.ContentModule
	adminModule   *admin.AdminModule
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(port int, isProduction bool) *APIModule {
	return &APIModule{
		port:         port,
		isProduction: isProduction,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	}
}

// SetContentModule wires the content module; must be called before Start.
func (m *APIModule) SetContentModule(cm *content.ContentModule) {
	m.contentModule = cm
}

// SetAdminModule wires the admin module; must be called before Start.
func (m *APIModule) SetAdminModule(am *admin.AdminModule) {
	m.adminModule = am
}

// Start initializes the Fiber HTTP server. The content and admin modules
// must already be started.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.contentModule == nil || m.contentModule.GetService() == nil {
		return fmt.Errorf("content module not started")
	}
	if m.adminModule == nil || m.adminModule.GetService() == nil {
		return fmt.Errorf("admin module not started")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		BodyLimit:             admin.MaxUploadSize + 1<<20,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(string) bool { return true },
	}))

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// App returns the Fiber application, used by tests.
func (m *APIModule) App() *fiber.App {
	return m.app
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.authAdapter, m.contentModule.GetService(), m.adminModule.GetService(), m.isProduction)

	requireAuth := AuthMiddleware(m.authAdapter)
	optionalAuth := OptionalAuthMiddleware(m.authAdapter)

	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := m.app.Group("/api")

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/logout", handlers.Logout)
	authRoutes.Post("/forgot-password", handlers.ForgotPassword)
	authRoutes.Post("/reset-password", handlers.ResetPassword)
	authRoutes.Post("/change-password", requireAuth, handlers.ChangePassword)
	authRoutes.Get("/me", requireAuth, handlers.Me)

	// Gallery routes
	gallery := api.Group("/gallery")
	gallery.Get("/", optionalAuth, handlers.ListGalleries)
	gallery.Get("/:id", handlers.GetGallery)
	gallery.Post("/", requireAuth, handlers.CreateGallery)
	gallery.Put("/:id", requireAuth, handlers.UpdateGallery)
	gallery.Delete("/:id", requireAuth, handlers.DeleteGallery)
	gallery.Delete("/:id/images/:index", requireAuth, handlers.DeleteGalleryImage)
	gallery.Put("/:id/thumbnail", requireAuth, handlers.SetGalleryThumbnail)
	gallery.Post("/:id/like", handlers.LikeGallery)

	// Comic routes
	comic := api.Group("/comic")
	comic.Get("/", handlers.ListComics)
	comic.Get("/:id", handlers.GetComic)
	comic.Post("/", requireAuth, handlers.CreateComic)
	comic.Put("/:id", requireAuth, handlers.UpdateComic)
	comic.Delete("/:id", requireAuth, handlers.DeleteComic)
	comic.Post("/:id/like", handlers.LikeComic)

	// Admin routes
	adminRoutes := api.Group("/admin")
	adminRoutes.Use(requireAuth, AdminMiddleware())
	adminRoutes.Get("/stats", handlers.AdminStats)
	adminRoutes.Get("/content", handlers.AdminListContent)
	adminRoutes.Put("/content/:type/:id", handlers.AdminUpdateContent)
	adminRoutes.Delete("/content/:type/:id", handlers.AdminDeleteContent)
	adminRoutes.Post("/upload", handlers.AdminUpload)

	// Stored uploads
	m.app.Get("/uploads/:name", handlers.GetUpload)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}
