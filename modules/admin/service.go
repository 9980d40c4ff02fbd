package admin

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domain "github.com/example/enoma/domain/content"
	userdomain "github.com/example/enoma/domain/user"
	"github.com/example/enoma/modules/cache"
	"github.com/example/enoma/modules/content"
)

const (
	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize = 10 << 20

	defaultPageSize = 20
)

// allowedUploadTypes lists the accepted image MIME types for uploads.
var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrMissingUploadField = errors.New("file, title, price and type are required")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file exceeds the maximum upload size")
)

// UserCounter counts registered accounts.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// Service implements the admin panel operations on top of the content module.
type Service struct {
	content *content.Service
	users   UserCounter
	store   ObjectStore
	cache   *cache.Cache
	bucket  string
}

// NewService creates the admin service. cache and store may be nil when the
// backing infrastructure is unavailable.
func NewService(contentSvc *content.Service, users UserCounter, store ObjectStore, c *cache.Cache, bucket string) *Service {
	return &Service{
		content: contentSvc,
		users:   users,
		store:   store,
		cache:   c,
		bucket:  bucket,
	}
}

// Stats gathers dashboard counters. The three counts run concurrently.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var galleries, comics, users int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		galleries, err = s.content.Galleries().Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		comics, err = s.content.Comics().Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.CountUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to gather stats: %w", err)
	}

	stats := &Stats{
		TotalGalleries: galleries,
		TotalComics:    comics,
		TotalUsers:     users,
		TotalContent:   galleries + comics,
	}

	if s.cache != nil {
		snap := s.cache.Snapshot()
		stats.Cache = &CacheStats{
			Hits:    snap.Hits,
			Misses:  snap.Misses,
			Sets:    snap.Sets,
			Deletes: snap.Deletes,
			Errors:  snap.Errors,
			HitRate: snap.HitRate,
		}
	}

	if s.store != nil {
		status := &StorageStatus{Bucket: s.bucket}
		if js, ok := s.store.(*JetStreamObjectStore); ok {
			status.Connected = js.IsConnected()
		} else {
			status.Connected = true
		}
		stats.Storage = status
	}

	return stats, nil
}

// ListContent returns a combined paged listing of galleries and comics.
func (s *Service) ListContent(ctx context.Context, q ListContentQuery) (*ContentListing, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	offset := (page - 1) * limit

	if q.Type != "" && q.Type != "gallery" && q.Type != "comic" {
		return nil, ErrInvalidContentType
	}

	listing := &ContentListing{
		Galleries: []domain.Gallery{},
		Comics:    []domain.Comic{},
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
		},
	}

	if q.Type == "" || q.Type == "gallery" {
		galleries, total, err := s.content.Galleries().ListPaged(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		listing.Galleries = galleries
		listing.Pagination.TotalGalleries = total
		listing.Pagination.TotalPagesGalleries = totalPages(total, limit)
	}

	if q.Type == "" || q.Type == "comic" {
		comics, total, err := s.content.Comics().ListPaged(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		listing.Comics = comics
		listing.Pagination.TotalComics = total
		listing.Pagination.TotalPagesComics = totalPages(total, limit)
	}

	return listing, nil
}

// UpdateContent applies a partial update to a gallery or comic by type.
func (s *Service) UpdateContent(ctx context.Context, contentType, id string, req content.UpdateRequest, claims *userdomain.Claims) (any, error) {
	switch contentType {
	case "gallery":
		return s.content.UpdateGallery(ctx, id, req, claims)
	case "comic":
		return s.content.UpdateComic(ctx, id, req, claims)
	default:
		return nil, ErrInvalidContentType
	}
}

// DeleteContent removes a gallery or comic by type.
func (s *Service) DeleteContent(ctx context.Context, contentType, id string, claims *userdomain.Claims) error {
	switch contentType {
	case "gallery":
		return s.content.DeleteGallery(ctx, id, claims)
	case "comic":
		return s.content.DeleteComic(ctx, id, claims)
	default:
		return ErrInvalidContentType
	}
}

// Upload stores an image and creates a gallery or comic around it.
func (s *Service) Upload(ctx context.Context, req UploadRequest, claims *userdomain.Claims) (*UploadResult, error) {
	if len(req.Data) == 0 || req.Title == "" || req.Price == "" || req.Type == "" {
		return nil, ErrMissingUploadField
	}
	if req.Type != "gallery" && req.Type != "comic" {
		return nil, ErrInvalidContentType
	}
	if !allowedUploadTypes[req.ContentType] {
		return nil, ErrUnsupportedFile
	}
	if len(req.Data) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if s.store == nil {
		return nil, errors.New("upload storage is not available")
	}

	objectName := uniqueObjectName(req.FileName)
	if _, err := s.store.Put(ctx, objectName, req.Data, req.ContentType); err != nil {
		return nil, err
	}
	url := "/uploads/" + objectName

	color := req.Color
	if color == "" {
		color = "#1a1a2e"
	}

	result := &UploadResult{URL: url}
	switch req.Type {
	case "gallery":
		gallery, err := s.content.CreateGallery(ctx, content.CreateGalleryRequest{
			Title:       req.Title,
			Thumbnail:   url,
			ImageURL:    url,
			Color:       color,
			Price:       req.Price,
			Description: req.Description,
			Tags:        splitTags(req.Tags),
			IsPublic:    req.IsPublic,
		}, claims.UserID)
		if err != nil {
			return nil, err
		}
		result.Gallery = gallery
	case "comic":
		comic, err := s.content.CreateComic(ctx, content.CreateComicRequest{
			Title:       req.Title,
			Thumbnail:   url,
			ImageURL:    url,
			Color:       color,
			Price:       req.Price,
			Description: req.Description,
			Tags:        splitTags(req.Tags),
			Episode:     req.Episode,
			IsPublic:    req.IsPublic,
		}, claims.UserID)
		if err != nil {
			return nil, err
		}
		result.Comic = comic
	}

	return result, nil
}

// GetUpload fetches a stored upload by object name.
func (s *Service) GetUpload(ctx context.Context, name string) ([]byte, *ObjectInfo, error) {
	if s.store == nil {
		return nil, nil, errors.New("upload storage is not available")
	}
	return s.store.Get(ctx, name)
}

func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// uniqueObjectName prefixes the original file name so repeated uploads of the
// same file never collide in the bucket.
func uniqueObjectName(fileName string) string {
	base := filepath.Base(fileName)
	if base == "." || base == "/" || base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().UnixMilli())
	}
	return uuid.New().String() + "-" + base
}

// splitTags parses a comma separated tag string into a trimmed list.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
