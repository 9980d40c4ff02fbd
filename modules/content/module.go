package content

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/enoma/domain/content"
	"github.com/example/enoma/modules/cache"
)

// ContentModule provides gallery/comic services.
type ContentModule struct {
	db          *gorm.DB
	service     *Service
	dbPath      string
	cacheModule *cache.Module
}

// Compile-time interface checks.
var _ mono.Module = (*ContentModule)(nil)
var _ mono.HealthCheckableModule = (*ContentModule)(nil)

// NewModule creates a new ContentModule.
func NewModule(dbPath string) *ContentModule {
	return &ContentModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *ContentModule) Name() string {
	return "content"
}

// SetCacheModule wires the cache module; must be called before Start. The
// cache itself is pulled once the cache module has started.
func (m *ContentModule) SetCacheModule(cm *cache.Module) {
	m.cacheModule = cm
}

// Start opens the database, migrates the content tables, and creates the
// service.
func (m *ContentModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := domain.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var listingCache *cache.Cache
	if m.cacheModule != nil {
		listingCache = m.cacheModule.GetCache()
	}

	m.service = NewService(
		domain.NewGalleryRepository(db),
		domain.NewComicRepository(db),
		listingCache,
	)

	log.Printf("[content] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *ContentModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[content] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *ContentModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// GetService returns the content service.
func (m *ContentModule) GetService() *Service {
	return m.service
}
