package content

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a content row does not exist.
var ErrNotFound = errors.New("content not found")

// ListFilter narrows a content listing.
// PublicOnly and UserID are mutually exclusive; when both are zero the
// listing is unrestricted (admin listings only).
type ListFilter struct {
	PublicOnly bool
	UserID     string
}

func applyFilter(q *gorm.DB, f ListFilter) *gorm.DB {
	if f.PublicOnly {
		return q.Where("is_public = ?", true)
	}
	if f.UserID != "" {
		return q.Where("user_id = ?", f.UserID)
	}
	return q
}

// GalleryRepository provides database operations for galleries.
type GalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository.
func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// Create inserts a new gallery row.
func (r *GalleryRepository) Create(ctx context.Context, g *Gallery) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("failed to create gallery: %w", err)
	}
	return nil
}

// FindByID retrieves a gallery by its ID.
func (r *GalleryRepository) FindByID(ctx context.Context, id string) (*Gallery, error) {
	var g Gallery
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gallery: %w", err)
	}
	return &g, nil
}

// List retrieves galleries matching the filter, newest first.
func (r *GalleryRepository) List(ctx context.Context, f ListFilter) ([]Gallery, error) {
	var galleries []Gallery
	q := applyFilter(r.db.WithContext(ctx), f).Order("created_at DESC")
	if err := q.Find(&galleries).Error; err != nil {
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}
	return galleries, nil
}

// ListPaged retrieves a page of galleries, newest first, with the total count.
func (r *GalleryRepository) ListPaged(ctx context.Context, offset, limit int) ([]Gallery, int64, error) {
	var galleries []Gallery
	var total int64

	if err := r.db.WithContext(ctx).Model(&Gallery{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count galleries: %w", err)
	}

	q := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit)
	if err := q.Find(&galleries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list galleries: %w", err)
	}
	return galleries, total, nil
}

// Update persists all fields of a gallery.
func (r *GalleryRepository) Update(ctx context.Context, g *Gallery) error {
	if err := r.db.WithContext(ctx).Save(g).Error; err != nil {
		return fmt.Errorf("failed to update gallery: %w", err)
	}
	return nil
}

// Delete removes a gallery row.
func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Gallery{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete gallery: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of gallery rows.
func (r *GalleryRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Gallery{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count galleries: %w", err)
	}
	return total, nil
}

// AddLikes applies a single-statement likes_count adjustment and returns the
// new count. Concurrent calls rely on the store's per-statement atomicity;
// there is no per-user idempotence and no floor at zero.
func (r *GalleryRepository) AddLikes(ctx context.Context, id string, delta int) (int, error) {
	result := r.db.WithContext(ctx).Model(&Gallery{}).Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update likes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	g, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return g.LikesCount, nil
}

// ComicRepository provides database operations for comics.
type ComicRepository struct {
	db *gorm.DB
}

// NewComicRepository creates a new comic repository.
func NewComicRepository(db *gorm.DB) *ComicRepository {
	return &ComicRepository{db: db}
}

// Create inserts a new comic row.
func (r *ComicRepository) Create(ctx context.Context, c *Comic) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comic: %w", err)
	}
	return nil
}

// FindByID retrieves a comic by its ID.
func (r *ComicRepository) FindByID(ctx context.Context, id string) (*Comic, error) {
	var c Comic
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comic: %w", err)
	}
	return &c, nil
}

// List retrieves comics matching the filter, ordered by episode then
// creation time so series read in order.
func (r *ComicRepository) List(ctx context.Context, f ListFilter) ([]Comic, error) {
	var comics []Comic
	q := applyFilter(r.db.WithContext(ctx), f).Order("episode ASC").Order("created_at DESC")
	if err := q.Find(&comics).Error; err != nil {
		return nil, fmt.Errorf("failed to list comics: %w", err)
	}
	return comics, nil
}

// ListPaged retrieves a page of comics, newest first, with the total count.
func (r *ComicRepository) ListPaged(ctx context.Context, offset, limit int) ([]Comic, int64, error) {
	var comics []Comic
	var total int64

	if err := r.db.WithContext(ctx).Model(&Comic{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comics: %w", err)
	}

	q := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit)
	if err := q.Find(&comics).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list comics: %w", err)
	}
	return comics, total, nil
}

// Update persists all fields of a comic.
func (r *ComicRepository) Update(ctx context.Context, c *Comic) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("failed to update comic: %w", err)
	}
	return nil
}

// Delete removes a comic row.
func (r *ComicRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&Comic{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comic: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of comic rows.
func (r *ComicRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Comic{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count comics: %w", err)
	}
	return total, nil
}

// AddLikes applies a single-statement likes_count adjustment and returns the
// new count.
func (r *ComicRepository) AddLikes(ctx context.Context, id string, delta int) (int, error) {
	result := r.db.WithContext(ctx).Model(&Comic{}).Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update likes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	c, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return c.LikesCount, nil
}

// Migrate runs schema migrations for the content tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Gallery{}, &Comic{})
}
