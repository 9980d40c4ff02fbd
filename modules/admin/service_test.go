package admin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/enoma/domain/content"
	userdomain "github.com/example/enoma/domain/user"
	"github.com/example/enoma/modules/content"
)

// mockObjectStore implements ObjectStore for testing.
type mockObjectStore struct {
	putFunc    func(ctx context.Context, name string, data []byte, contentType string) (*ObjectInfo, error)
	getFunc    func(ctx context.Context, name string) ([]byte, *ObjectInfo, error)
	deleteFunc func(ctx context.Context, name string) error

	stored map[string][]byte
}

func (m *mockObjectStore) Put(ctx context.Context, name string, data []byte, contentType string) (*ObjectInfo, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, name, data, contentType)
	}
	if m.stored == nil {
		m.stored = make(map[string][]byte)
	}
	m.stored[name] = data
	return &ObjectInfo{Name: name, Size: uint64(len(data)), ContentType: contentType}, nil
}

func (m *mockObjectStore) Get(ctx context.Context, name string) ([]byte, *ObjectInfo, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, name)
	}
	data, ok := m.stored[name]
	if !ok {
		return nil, nil, errors.New("object not found")
	}
	return data, &ObjectInfo{Name: name, Size: uint64(len(data))}, nil
}

func (m *mockObjectStore) Delete(ctx context.Context, name string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, name)
	}
	delete(m.stored, name)
	return nil
}

// mockUserCounter implements UserCounter for testing.
type mockUserCounter struct {
	count int64
	err   error
}

func (m *mockUserCounter) CountUsers(_ context.Context) (int64, error) {
	return m.count, m.err
}

func newTestAdminService(t *testing.T, users int64) (*Service, *content.Service, *mockObjectStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := domain.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	contentSvc := content.NewService(
		domain.NewGalleryRepository(db),
		domain.NewComicRepository(db),
		nil,
	)
	store := &mockObjectStore{}
	svc := NewService(contentSvc, &mockUserCounter{count: users}, store, nil, "test-bucket")

	return svc, contentSvc, store
}

func asAdmin(id string) *userdomain.Claims {
	return &userdomain.Claims{UserID: id, Email: id + "@example.com", Role: userdomain.RoleAdmin}
}

func seedGallery(t *testing.T, svc *content.Service, title, userID string) *domain.Gallery {
	t.Helper()
	g, err := svc.CreateGallery(context.Background(), content.CreateGalleryRequest{
		Title:     title,
		Thumbnail: "/uploads/t.jpg",
		ImageURL:  "/uploads/i.jpg",
		Color:     "#000000",
		Price:     "1.99",
	}, userID)
	if err != nil {
		t.Fatalf("CreateGallery() error = %v", err)
	}
	return g
}

func seedComic(t *testing.T, svc *content.Service, title, userID string, episode int) *domain.Comic {
	t.Helper()
	c, err := svc.CreateComic(context.Background(), content.CreateComicRequest{
		Title:     title,
		Thumbnail: "/uploads/t.jpg",
		ImageURL:  "/uploads/i.jpg",
		Color:     "#000000",
		Price:     "1.99",
		Episode:   &episode,
	}, userID)
	if err != nil {
		t.Fatalf("CreateComic() error = %v", err)
	}
	return c
}

func validUpload() UploadRequest {
	return UploadRequest{
		FileName:    "cover.png",
		ContentType: "image/png",
		Data:        []byte("fake-png-bytes"),
		Title:       "Uploaded Gallery",
		Price:       "9.99",
		Type:        "gallery",
		Tags:        "art, fantasy , ",
	}
}

func TestStats(t *testing.T) {
	svc, contentSvc, _ := newTestAdminService(t, 5)
	ctx := context.Background()

	seedGallery(t, contentSvc, "g1", "user-1")
	seedGallery(t, contentSvc, "g2", "user-1")
	seedComic(t, contentSvc, "c1", "user-1", 1)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}

	if stats.TotalGalleries != 2 {
		t.Errorf("TotalGalleries = %d, want 2", stats.TotalGalleries)
	}
	if stats.TotalComics != 1 {
		t.Errorf("TotalComics = %d, want 1", stats.TotalComics)
	}
	if stats.TotalUsers != 5 {
		t.Errorf("TotalUsers = %d, want 5", stats.TotalUsers)
	}
	if stats.TotalContent != 3 {
		t.Errorf("TotalContent = %d, want 3", stats.TotalContent)
	}
}

func TestStats_UserCountError(t *testing.T) {
	svc, _, _ := newTestAdminService(t, 0)
	svc.users = &mockUserCounter{err: errors.New("db gone")}

	if _, err := svc.Stats(context.Background()); err == nil {
		t.Error("Stats() error = nil, want error")
	}
}

func TestListContent(t *testing.T) {
	svc, contentSvc, _ := newTestAdminService(t, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedGallery(t, contentSvc, "g", "user-1")
	}
	seedComic(t, contentSvc, "c", "user-1", 1)

	t.Run("combined listing", func(t *testing.T) {
		listing, err := svc.ListContent(ctx, ListContentQuery{Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("ListContent() error = %v", err)
		}
		if len(listing.Galleries) != 2 {
			t.Errorf("got %d galleries on page 1, want 2", len(listing.Galleries))
		}
		if listing.Pagination.TotalGalleries != 3 {
			t.Errorf("TotalGalleries = %d, want 3", listing.Pagination.TotalGalleries)
		}
		if listing.Pagination.TotalPagesGalleries != 2 {
			t.Errorf("TotalPagesGalleries = %d, want 2", listing.Pagination.TotalPagesGalleries)
		}
		if listing.Pagination.TotalComics != 1 {
			t.Errorf("TotalComics = %d, want 1", listing.Pagination.TotalComics)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		listing, err := svc.ListContent(ctx, ListContentQuery{Type: "comic"})
		if err != nil {
			t.Fatalf("ListContent() error = %v", err)
		}
		if len(listing.Galleries) != 0 {
			t.Errorf("got %d galleries, want 0", len(listing.Galleries))
		}
		if len(listing.Comics) != 1 {
			t.Errorf("got %d comics, want 1", len(listing.Comics))
		}
	})

	t.Run("defaults", func(t *testing.T) {
		listing, err := svc.ListContent(ctx, ListContentQuery{})
		if err != nil {
			t.Fatalf("ListContent() error = %v", err)
		}
		if listing.Pagination.Page != 1 || listing.Pagination.Limit != defaultPageSize {
			t.Errorf("pagination defaults = %+v", listing.Pagination)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		if _, err := svc.ListContent(ctx, ListContentQuery{Type: "video"}); err != ErrInvalidContentType {
			t.Errorf("ListContent() error = %v, want %v", err, ErrInvalidContentType)
		}
	})
}

func TestUpdateAndDeleteContent(t *testing.T) {
	svc, contentSvc, _ := newTestAdminService(t, 0)
	ctx := context.Background()

	g := seedGallery(t, contentSvc, "owned-by-user", "user-1")

	// Admin bypasses ownership
	newTitle := "edited-by-admin"
	updated, err := svc.UpdateContent(ctx, "gallery", g.ID, content.UpdateRequest{Title: &newTitle}, asAdmin("admin-1"))
	if err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}
	if updated.(*domain.Gallery).Title != newTitle {
		t.Errorf("Title = %q, want %q", updated.(*domain.Gallery).Title, newTitle)
	}

	if _, err := svc.UpdateContent(ctx, "video", g.ID, content.UpdateRequest{}, asAdmin("admin-1")); err != ErrInvalidContentType {
		t.Errorf("UpdateContent() invalid type error = %v, want %v", err, ErrInvalidContentType)
	}

	if err := svc.DeleteContent(ctx, "gallery", g.ID, asAdmin("admin-1")); err != nil {
		t.Fatalf("DeleteContent() error = %v", err)
	}
	if _, err := contentSvc.GetGallery(ctx, g.ID); err != domain.ErrNotFound {
		t.Errorf("gallery still present after admin delete: %v", err)
	}

	if err := svc.DeleteContent(ctx, "video", g.ID, asAdmin("admin-1")); err != ErrInvalidContentType {
		t.Errorf("DeleteContent() invalid type error = %v, want %v", err, ErrInvalidContentType)
	}
}

func TestUpload(t *testing.T) {
	svc, contentSvc, store := newTestAdminService(t, 0)
	ctx := context.Background()

	result, err := svc.Upload(ctx, validUpload(), asAdmin("admin-1"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if result.Gallery == nil {
		t.Fatal("Upload() did not create a gallery")
	}
	if !strings.HasPrefix(result.URL, "/uploads/") {
		t.Errorf("URL = %q, want /uploads/ prefix", result.URL)
	}
	if !strings.HasSuffix(result.URL, "cover.png") {
		t.Errorf("URL = %q, want original file name suffix", result.URL)
	}

	// The upload is the sole image and the thumbnail
	if len(result.Gallery.ImageURLs) != 1 || result.Gallery.ImageURLs[0] != result.URL {
		t.Errorf("ImageURLs = %v, want [%s]", result.Gallery.ImageURLs, result.URL)
	}
	if result.Gallery.Thumbnail != result.URL {
		t.Errorf("Thumbnail = %q, want %q", result.Gallery.Thumbnail, result.URL)
	}
	if result.Gallery.UserID != "admin-1" {
		t.Errorf("UserID = %q, want admin-1", result.Gallery.UserID)
	}

	// Tags are comma split and trimmed
	if len(result.Gallery.Tags) != 2 || result.Gallery.Tags[0] != "art" || result.Gallery.Tags[1] != "fantasy" {
		t.Errorf("Tags = %v, want [art fantasy]", result.Gallery.Tags)
	}

	// The object landed in the store
	name := strings.TrimPrefix(result.URL, "/uploads/")
	if _, ok := store.stored[name]; !ok {
		t.Error("uploaded object not stored")
	}

	// The row is queryable
	if _, err := contentSvc.GetGallery(ctx, result.Gallery.ID); err != nil {
		t.Errorf("GetGallery() after upload error = %v", err)
	}
}

func TestUpload_Comic(t *testing.T) {
	svc, _, _ := newTestAdminService(t, 0)

	episode := 4
	req := validUpload()
	req.Type = "comic"
	req.Episode = &episode

	result, err := svc.Upload(context.Background(), req, asAdmin("admin-1"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if result.Comic == nil {
		t.Fatal("Upload() did not create a comic")
	}
	if result.Comic.Episode == nil || *result.Comic.Episode != 4 {
		t.Errorf("Episode = %v, want 4", result.Comic.Episode)
	}
}

func TestUpload_Validation(t *testing.T) {
	svc, _, _ := newTestAdminService(t, 0)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*UploadRequest)
		wantErr error
	}{
		{
			name:    "no file",
			mutate:  func(r *UploadRequest) { r.Data = nil },
			wantErr: ErrMissingUploadField,
		},
		{
			name:    "no title",
			mutate:  func(r *UploadRequest) { r.Title = "" },
			wantErr: ErrMissingUploadField,
		},
		{
			name:    "no price",
			mutate:  func(r *UploadRequest) { r.Price = "" },
			wantErr: ErrMissingUploadField,
		},
		{
			name:    "no type",
			mutate:  func(r *UploadRequest) { r.Type = "" },
			wantErr: ErrMissingUploadField,
		},
		{
			name:    "bad type",
			mutate:  func(r *UploadRequest) { r.Type = "video" },
			wantErr: ErrInvalidContentType,
		},
		{
			name:    "bad mime",
			mutate:  func(r *UploadRequest) { r.ContentType = "application/pdf" },
			wantErr: ErrUnsupportedFile,
		},
		{
			name:    "svg rejected",
			mutate:  func(r *UploadRequest) { r.ContentType = "image/svg+xml" },
			wantErr: ErrUnsupportedFile,
		},
		{
			name:    "too large",
			mutate:  func(r *UploadRequest) { r.Data = make([]byte, MaxUploadSize+1) },
			wantErr: ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpload()
			tt.mutate(&req)
			if _, err := svc.Upload(ctx, req, asAdmin("admin-1")); err != tt.wantErr {
				t.Errorf("Upload() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpload_StoreFailure(t *testing.T) {
	svc, _, store := newTestAdminService(t, 0)

	store.putFunc = func(context.Context, string, []byte, string) (*ObjectInfo, error) {
		return nil, errors.New("bucket unavailable")
	}

	if _, err := svc.Upload(context.Background(), validUpload(), asAdmin("admin-1")); err == nil {
		t.Error("Upload() error = nil, want storage error")
	}
}

func TestGetUpload(t *testing.T) {
	svc, _, _ := newTestAdminService(t, 0)
	ctx := context.Background()

	result, err := svc.Upload(ctx, validUpload(), asAdmin("admin-1"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	name := strings.TrimPrefix(result.URL, "/uploads/")
	data, info, err := svc.GetUpload(ctx, name)
	if err != nil {
		t.Fatalf("GetUpload() error = %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Errorf("GetUpload() data = %q", data)
	}
	if info.Name != name {
		t.Errorf("info.Name = %q, want %q", info.Name, name)
	}

	if _, _, err := svc.GetUpload(ctx, "missing"); err == nil {
		t.Error("GetUpload() for missing object error = nil, want error")
	}
}
