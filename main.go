package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/enoma/config"
	adminmod "github.com/example/enoma/modules/admin"
	apimod "github.com/example/enoma/modules/api"
	authmod "github.com/example/enoma/modules/auth"
	cachemod "github.com/example/enoma/modules/cache"
	contentmod "github.com/example/enoma/modules/content"
	mailermod "github.com/example/enoma/modules/mailer"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Enoma Content Marketplace ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Environment: %s", cfg.AppEnv)
	log.Printf("Database: %s", cfg.DBPath)
	log.Printf("HTTP Port: %d", cfg.HTTPPort)

	// Create modules
	mailerModule := mailermod.NewModule(mailermod.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
	})
	cacheModule := cachemod.NewModule(cfg.RedisAddr, cfg.CachePrefix, cfg.CacheTTL)
	authModule := authmod.NewModule(authmod.Options{
		DBPath:    cfg.DBPath,
		JWTSecret: cfg.JWTSecret,
		BaseURL:   cfg.BaseURL,
		DevMode:   cfg.IsDevelopment(),
		Mailer:    mailerModule.Sender(),
	})
	contentModule := contentmod.NewModule(cfg.DBPath)
	adminModule := adminmod.NewModule(cfg.NATSURL, cfg.UploadBucket)
	apiModule := apimod.NewModule(cfg.HTTPPort, cfg.IsProduction())

	// Wire cross-module dependencies; each module pulls what it needs from
	// the already-started modules before it.
	contentModule.SetCacheModule(cacheModule)
	adminModule.SetContentModule(contentModule)
	adminModule.SetAuthModule(authModule)
	adminModule.SetCacheModule(cacheModule)
	apiModule.SetContentModule(contentModule)
	apiModule.SetAdminModule(adminModule)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules; order matters because later modules read the
	// services of earlier ones at start.
	app.Register(mailerModule)
	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(contentModule)
	app.Register(adminModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("")
	log.Println("  Auth:")
	log.Println("  POST   /api/auth/register           - Register a new account")
	log.Println("  POST   /api/auth/login              - Login (sets auth-token cookie)")
	log.Println("  POST   /api/auth/logout             - Clear the session cookie")
	log.Println("  POST   /api/auth/change-password    - Change password (session required)")
	log.Println("  POST   /api/auth/forgot-password    - Request a password reset link")
	log.Println("  POST   /api/auth/reset-password     - Redeem a reset token")
	log.Println("  GET    /api/auth/me                 - Current account (session required)")
	log.Println("")
	log.Println("  Content:")
	log.Println("  GET    /api/gallery                 - List galleries (?public=true, ?userId=)")
	log.Println("  GET    /api/comic                   - List comics")
	log.Println("  POST   /api/gallery | /api/comic    - Create (session required)")
	log.Println("  PUT    /api/gallery/:id             - Update own content")
	log.Println("  DELETE /api/gallery/:id/images/:i   - Remove one image")
	log.Println("  POST   /api/gallery/:id/like        - Like / unlike")
	log.Println("")
	log.Println("  Admin (ADMIN role required):")
	log.Println("  GET    /api/admin/stats             - Dashboard counters")
	log.Println("  GET    /api/admin/content           - Paged combined listing")
	log.Println("  POST   /api/admin/upload            - Multipart image upload")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
