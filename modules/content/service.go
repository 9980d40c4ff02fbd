// Package content implements the gallery/comic service: ownership-gated
// CRUD, image-array mutation, and like counters, with cached public
// listings.
package content

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	domain "github.com/example/enoma/domain/content"
	userdomain "github.com/example/enoma/domain/user"
	"github.com/example/enoma/modules/cache"
)

var (
	// ErrForbidden is returned when the acting user does not own the content.
	ErrForbidden = errors.New("forbidden")
	// ErrMissingFields is returned when a required creation field is absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidImageIndex is returned for out-of-range image indices.
	ErrInvalidImageIndex = errors.New("invalid image index")
	// ErrLastImage is returned when a deletion would empty the image list.
	ErrLastImage = errors.New("cannot delete the last image")
)

// Cache keys for the public listings.
const (
	galleriesPublicKey = "galleries:public"
	comicsPublicKey    = "comics:public"
)

// Service handles content business logic.
type Service struct {
	galleries *domain.GalleryRepository
	comics    *domain.ComicRepository
	cache     *cache.Cache
}

// NewService creates a new content service. The cache may be nil, in which
// case listings always hit the database.
func NewService(galleries *domain.GalleryRepository, comics *domain.ComicRepository, c *cache.Cache) *Service {
	return &Service{
		galleries: galleries,
		comics:    comics,
		cache:     c,
	}
}

// resolveGalleryFilter maps a listing query plus the caller identity to a
// repository filter. Admins with no explicit query see their own rows (the
// admin panel's "my content" view); everyone else defaults to public only.
func resolveGalleryFilter(q ListQuery, claims *userdomain.Claims) domain.ListFilter {
	switch {
	case q.Public:
		return domain.ListFilter{PublicOnly: true}
	case q.UserID != "":
		return domain.ListFilter{UserID: q.UserID}
	case claims != nil && claims.IsAdmin():
		return domain.ListFilter{UserID: claims.UserID}
	default:
		return domain.ListFilter{PublicOnly: true}
	}
}

// resolveComicFilter is resolveGalleryFilter without the admin branch.
func resolveComicFilter(q ListQuery) domain.ListFilter {
	switch {
	case q.Public:
		return domain.ListFilter{PublicOnly: true}
	case q.UserID != "":
		return domain.ListFilter{UserID: q.UserID}
	default:
		return domain.ListFilter{PublicOnly: true}
	}
}

// ListGalleries lists galleries visible to the caller, newest first. The
// plain public listing is served cache-aside.
func (s *Service) ListGalleries(ctx context.Context, q ListQuery, claims *userdomain.Claims) ([]domain.Gallery, error) {
	f := resolveGalleryFilter(q, claims)

	if s.cache != nil && f.PublicOnly {
		var cached []domain.Gallery
		if hit, err := s.cache.Get(ctx, galleriesPublicKey, &cached); err == nil && hit {
			return cached, nil
		} else if err != nil {
			log.Printf("[content] Cache read failed: %v", err)
		}
	}

	galleries, err := s.galleries.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && f.PublicOnly {
		if err := s.cache.Set(ctx, galleriesPublicKey, galleries); err != nil {
			log.Printf("[content] Cache write failed: %v", err)
		}
	}

	return galleries, nil
}

// GetGallery retrieves a single gallery.
func (s *Service) GetGallery(ctx context.Context, id string) (*domain.Gallery, error) {
	return s.galleries.FindByID(ctx, id)
}

// CreateGallery creates a gallery owned by userID. The unique image URL
// seeds the image list.
func (s *Service) CreateGallery(ctx context.Context, req CreateGalleryRequest, userID string) (*domain.Gallery, error) {
	if req.Title == "" || req.Thumbnail == "" || req.ImageURL == "" || req.Color == "" || req.Price == "" {
		return nil, ErrMissingFields
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	g := &domain.Gallery{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Thumbnail:   req.Thumbnail,
		ImageURLs:   domain.StringList{req.ImageURL},
		Color:       req.Color,
		Price:       req.Price,
		Description: req.Description,
		Tags:        domain.StringList(tags),
		IsPublic:    isPublic,
		UserID:      userID,
	}

	if err := s.galleries.Create(ctx, g); err != nil {
		return nil, err
	}
	s.invalidateGalleries(ctx)
	return g, nil
}

// UpdateGallery applies a partial update. The owner and any admin may
// update; everyone else gets ErrForbidden.
func (s *Service) UpdateGallery(ctx context.Context, id string, req UpdateRequest, claims *userdomain.Claims) (*domain.Gallery, error) {
	g, err := s.galleries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, ErrForbidden
	}

	applyUpdate(req, &g.Title, &g.Thumbnail, &g.Color, &g.Price, &g.Description, &g.Tags, &g.IsPublic)

	if err := s.galleries.Update(ctx, g); err != nil {
		return nil, err
	}
	s.invalidateGalleries(ctx)
	return g, nil
}

// DeleteGallery removes a gallery. The owner and any admin may delete.
func (s *Service) DeleteGallery(ctx context.Context, id string, claims *userdomain.Claims) error {
	g, err := s.galleries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if g.UserID != claims.UserID && !claims.IsAdmin() {
		return ErrForbidden
	}

	if err := s.galleries.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateGalleries(ctx)
	return nil
}

// DeleteGalleryImage removes the image at index from the gallery's image
// list. Deleting the last remaining image is rejected; deleting index 0
// reassigns the thumbnail to the new first image. Owner only.
func (s *Service) DeleteGalleryImage(ctx context.Context, id string, index int, claims *userdomain.Claims) (*domain.Gallery, error) {
	g, err := s.galleries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != claims.UserID {
		return nil, ErrForbidden
	}

	if index < 0 || index >= len(g.ImageURLs) {
		return nil, ErrInvalidImageIndex
	}
	if len(g.ImageURLs) == 1 {
		return nil, ErrLastImage
	}

	updated := make(domain.StringList, 0, len(g.ImageURLs)-1)
	updated = append(updated, g.ImageURLs[:index]...)
	updated = append(updated, g.ImageURLs[index+1:]...)
	g.ImageURLs = updated

	// The thumbnail tracks the first image.
	if index == 0 {
		g.Thumbnail = g.ImageURLs[0]
	}

	if err := s.galleries.Update(ctx, g); err != nil {
		return nil, err
	}
	s.invalidateGalleries(ctx)
	return g, nil
}

// SetGalleryThumbnail points the thumbnail at the image at index. Owner only.
func (s *Service) SetGalleryThumbnail(ctx context.Context, id string, index int, claims *userdomain.Claims) (*domain.Gallery, error) {
	g, err := s.galleries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != claims.UserID {
		return nil, ErrForbidden
	}

	if index < 0 || index >= len(g.ImageURLs) {
		return nil, ErrInvalidImageIndex
	}

	g.Thumbnail = g.ImageURLs[index]
	if err := s.galleries.Update(ctx, g); err != nil {
		return nil, err
	}
	s.invalidateGalleries(ctx)
	return g, nil
}

// LikeGallery adjusts the like counter by +1 or -1 and returns the new
// count. Repeated calls compound; that is the documented behavior.
func (s *Service) LikeGallery(ctx context.Context, id string, increment bool) (int, error) {
	delta := 1
	if !increment {
		delta = -1
	}
	count, err := s.galleries.AddLikes(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	s.invalidateGalleries(ctx)
	return count, nil
}

// ListComics lists comics visible to the caller, in reading order.
func (s *Service) ListComics(ctx context.Context, q ListQuery) ([]domain.Comic, error) {
	f := resolveComicFilter(q)

	if s.cache != nil && f.PublicOnly {
		var cached []domain.Comic
		if hit, err := s.cache.Get(ctx, comicsPublicKey, &cached); err == nil && hit {
			return cached, nil
		} else if err != nil {
			log.Printf("[content] Cache read failed: %v", err)
		}
	}

	comics, err := s.comics.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && f.PublicOnly {
		if err := s.cache.Set(ctx, comicsPublicKey, comics); err != nil {
			log.Printf("[content] Cache write failed: %v", err)
		}
	}

	return comics, nil
}

// GetComic retrieves a single comic.
func (s *Service) GetComic(ctx context.Context, id string) (*domain.Comic, error) {
	return s.comics.FindByID(ctx, id)
}

// CreateComic creates a comic owned by userID.
func (s *Service) CreateComic(ctx context.Context, req CreateComicRequest, userID string) (*domain.Comic, error) {
	if req.Title == "" || req.Thumbnail == "" || req.ImageURL == "" || req.Color == "" || req.Price == "" {
		return nil, ErrMissingFields
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	c := &domain.Comic{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Thumbnail:   req.Thumbnail,
		ImageURLs:   domain.StringList{req.ImageURL},
		Color:       req.Color,
		Price:       req.Price,
		Episode:     req.Episode,
		Description: req.Description,
		Tags:        domain.StringList(tags),
		IsPublic:    isPublic,
		UserID:      userID,
	}

	if err := s.comics.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateComics(ctx)
	return c, nil
}

// UpdateComic applies a partial update. The owner and any admin may update.
func (s *Service) UpdateComic(ctx context.Context, id string, req UpdateRequest, claims *userdomain.Claims) (*domain.Comic, error) {
	c, err := s.comics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != claims.UserID && !claims.IsAdmin() {
		return nil, ErrForbidden
	}

	applyUpdate(req, &c.Title, &c.Thumbnail, &c.Color, &c.Price, &c.Description, &c.Tags, &c.IsPublic)
	if req.Episode != nil {
		c.Episode = req.Episode
	}

	if err := s.comics.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateComics(ctx)
	return c, nil
}

// DeleteComic removes a comic. The owner and any admin may delete.
func (s *Service) DeleteComic(ctx context.Context, id string, claims *userdomain.Claims) error {
	c, err := s.comics.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.UserID != claims.UserID && !claims.IsAdmin() {
		return ErrForbidden
	}

	if err := s.comics.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateComics(ctx)
	return nil
}

// LikeComic adjusts the like counter by +1 or -1 and returns the new count.
func (s *Service) LikeComic(ctx context.Context, id string, increment bool) (int, error) {
	delta := 1
	if !increment {
		delta = -1
	}
	count, err := s.comics.AddLikes(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	s.invalidateComics(ctx)
	return count, nil
}

// Galleries exposes the gallery repository for the admin module.
func (s *Service) Galleries() *domain.GalleryRepository {
	return s.galleries
}

// Comics exposes the comic repository for the admin module.
func (s *Service) Comics() *domain.ComicRepository {
	return s.comics
}

// InvalidateAll drops every cached listing; the admin module calls this
// after mutations that bypass the service.
func (s *Service) InvalidateAll(ctx context.Context) {
	s.invalidateGalleries(ctx)
	s.invalidateComics(ctx)
}

func (s *Service) invalidateGalleries(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "galleries:*"); err != nil {
		log.Printf("[content] Cache invalidation failed: %v", err)
	}
}

func (s *Service) invalidateComics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "comics:*"); err != nil {
		log.Printf("[content] Cache invalidation failed: %v", err)
	}
}

func applyUpdate(req UpdateRequest, title, thumbnail, color, price, description *string, tags *domain.StringList, isPublic *bool) {
	if req.Title != nil {
		*title = *req.Title
	}
	if req.Thumbnail != nil {
		*thumbnail = *req.Thumbnail
	}
	if req.Color != nil {
		*color = *req.Color
	}
	if req.Price != nil {
		*price = *req.Price
	}
	if req.Description != nil {
		*description = *req.Description
	}
	if req.Tags != nil {
		*tags = domain.StringList(*req.Tags)
	}
	if req.IsPublic != nil {
		*isPublic = *req.IsPublic
	}
}
