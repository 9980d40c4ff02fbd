package admin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"

	"github.com/example/enoma/modules/auth"
	"github.com/example/enoma/modules/cache"
	"github.com/example/enoma/modules/content"
)

// AdminModule provides the admin panel operations: stats, combined content
// management and image uploads.
type AdminModule struct {
	natsURL string
	bucket  string

	contentModule *content.ContentModule
	authModule    *auth.AuthModule
	cacheModule   *cache.Module

	store   *JetStreamObjectStore
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*AdminModule)(nil)
var _ mono.HealthCheckableModule = (*AdminModule)(nil)

// NewModule creates a new AdminModule.
func NewModule(natsURL, bucket string) *AdminModule {
	return &AdminModule{
		natsURL: natsURL,
		bucket:  bucket,
	}
}

// Name returns the module name.
func (m *AdminModule) Name() string {
	return "admin"
}

// SetContentModule wires the content module; must be called before Start.
func (m *AdminModule) SetContentModule(cm *content.ContentModule) {
	m.contentModule = cm
}

// SetAuthModule wires the auth module for account counts; must be called
// before Start.
func (m *AdminModule) SetAuthModule(am *auth.AuthModule) {
	m.authModule = am
}

// SetCacheModule wires the cache module so the dashboard can report its
// counters.
func (m *AdminModule) SetCacheModule(cm *cache.Module) {
	m.cacheModule = cm
}

// Start connects to the object store and creates the service. The content
// and auth modules must already be started. A missing object store is not
// fatal; uploads are rejected until it comes back.
func (m *AdminModule) Start(ctx context.Context) error {
	if m.contentModule == nil || m.contentModule.GetService() == nil {
		return fmt.Errorf("content module not started")
	}
	if m.authModule == nil || m.authModule.GetService() == nil {
		return fmt.Errorf("auth module not started")
	}

	var store ObjectStore

	js, err := NewJetStreamObjectStore(m.natsURL, m.bucket)
	if err != nil {
		log.Printf("[admin] Object store unavailable, running without uploads: %v", err)
	} else {
		initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := js.Init(initCtx); err != nil {
			log.Printf("[admin] Object store init failed, running without uploads: %v", err)
			js.Close()
		} else {
			m.store = js
			store = js
		}
	}

	var dashboardCache *cache.Cache
	if m.cacheModule != nil {
		dashboardCache = m.cacheModule.GetCache()
	}

	m.service = NewService(m.contentModule.GetService(), m.authModule.GetService(), store, dashboardCache, m.bucket)

	log.Printf("[admin] Module started (bucket: %s)", m.bucket)
	return nil
}

// Stop shuts down the module.
func (m *AdminModule) Stop(_ context.Context) error {
	if m.store != nil {
		m.store.Close()
	}
	log.Println("[admin] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AdminModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}

	details := map[string]any{
		"bucket": m.bucket,
	}

	if m.store == nil {
		details["storage"] = "disconnected"
		return mono.HealthStatus{
			Healthy: true,
			Message: "operational (uploads disabled)",
			Details: details,
		}
	}

	if !m.store.IsConnected() {
		return mono.HealthStatus{
			Healthy: false,
			Message: "object store connection lost",
			Details: details,
		}
	}

	details["storage"] = "connected"
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// GetService returns the admin service.
func (m *AdminModule) GetService() *Service {
	return m.service
}
