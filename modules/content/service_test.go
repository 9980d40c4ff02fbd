package content

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/enoma/domain/content"
	userdomain "github.com/example/enoma/domain/user"
)

func newTestContentService(t *testing.T) *Service {
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

	return NewService(
		domain.NewGalleryRepository(db),
		domain.NewComicRepository(db),
		nil,
	)
}

func userClaims(id string) *userdomain.Claims {
	return &userdomain.Claims{UserID: id, Email: id + "@example.com", Role: userdomain.RoleUser}
}

func adminClaims(id string) *userdomain.Claims {
	return &userdomain.Claims{UserID: id, Email: id + "@example.com", Role: userdomain.RoleAdmin}
}

func mustCreateGallery(t *testing.T, svc *Service, req CreateGalleryRequest, userID string) *domain.Gallery {
	t.Helper()
	g, err := svc.CreateGallery(context.Background(), req, userID)
	if err != nil {
		t.Fatalf("CreateGallery() error = %v", err)
	}
	return g
}

func galleryRequest(title string) CreateGalleryRequest {
	return CreateGalleryRequest{
		Title:     title,
		Thumbnail: "/uploads/thumb.jpg",
		ImageURL:  "/uploads/img-1.jpg",
		Color:     "#112233",
		Price:     "4.99",
	}
}

func TestCreateGallery_Defaults(t *testing.T) {
	svc := newTestContentService(t)

	g := mustCreateGallery(t, svc, galleryRequest("First"), "user-1")

	if g.ID == "" {
		t.Error("gallery created without ID")
	}
	if g.UserID != "user-1" {
		t.Errorf("g.UserID = %v, want user-1", g.UserID)
	}
	if !g.IsPublic {
		t.Error("IsPublic should default to true")
	}
	if g.Tags == nil || len(g.Tags) != 0 {
		t.Errorf("g.Tags = %v, want empty list", g.Tags)
	}
	if len(g.ImageURLs) != 1 || g.ImageURLs[0] != "/uploads/img-1.jpg" {
		t.Errorf("g.ImageURLs = %v, want the single seed image", g.ImageURLs)
	}
	if g.LikesCount != 0 {
		t.Errorf("g.LikesCount = %d, want 0", g.LikesCount)
	}
}

func TestCreateGallery_MissingFields(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateGalleryRequest
	}{
		{name: "no title", req: CreateGalleryRequest{Thumbnail: "t", ImageURL: "i", Color: "c", Price: "p"}},
		{name: "no thumbnail", req: CreateGalleryRequest{Title: "t", ImageURL: "i", Color: "c", Price: "p"}},
		{name: "no image", req: CreateGalleryRequest{Title: "t", Thumbnail: "t", Color: "c", Price: "p"}},
		{name: "no color", req: CreateGalleryRequest{Title: "t", Thumbnail: "t", ImageURL: "i", Price: "p"}},
		{name: "no price", req: CreateGalleryRequest{Title: "t", Thumbnail: "t", ImageURL: "i", Color: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateGallery(ctx, tt.req, "user-1"); err != ErrMissingFields {
				t.Errorf("CreateGallery() error = %v, want %v", err, ErrMissingFields)
			}
		})
	}
}

func TestListGalleries_Filters(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	isPrivate := false
	mustCreateGallery(t, svc, galleryRequest("public-a"), "user-1")
	privReq := galleryRequest("private-a")
	privReq.IsPublic = &isPrivate
	mustCreateGallery(t, svc, privReq, "user-1")
	mustCreateGallery(t, svc, galleryRequest("public-b"), "admin-1")

	t.Run("anonymous default is public only", func(t *testing.T) {
		galleries, err := svc.ListGalleries(ctx, ListQuery{}, nil)
		if err != nil {
			t.Fatalf("ListGalleries() error = %v", err)
		}
		if len(galleries) != 2 {
			t.Errorf("got %d galleries, want 2", len(galleries))
		}
		for _, g := range galleries {
			if !g.IsPublic {
				t.Errorf("private gallery %q leaked into the public listing", g.Title)
			}
		}
	})

	t.Run("public flag from a signed-in user", func(t *testing.T) {
		galleries, err := svc.ListGalleries(ctx, ListQuery{Public: true}, userClaims("user-1"))
		if err != nil {
			t.Fatalf("ListGalleries() error = %v", err)
		}
		if len(galleries) != 2 {
			t.Errorf("got %d galleries, want 2", len(galleries))
		}
	})

	t.Run("userId filter includes private rows", func(t *testing.T) {
		galleries, err := svc.ListGalleries(ctx, ListQuery{UserID: "user-1"}, nil)
		if err != nil {
			t.Fatalf("ListGalleries() error = %v", err)
		}
		if len(galleries) != 2 {
			t.Errorf("got %d galleries, want 2", len(galleries))
		}
	})

	t.Run("bare admin request shows own rows", func(t *testing.T) {
		galleries, err := svc.ListGalleries(ctx, ListQuery{}, adminClaims("admin-1"))
		if err != nil {
			t.Fatalf("ListGalleries() error = %v", err)
		}
		if len(galleries) != 1 || galleries[0].Title != "public-b" {
			t.Errorf("admin default listing = %v, want only the admin's gallery", galleries)
		}
	})

	t.Run("bare regular user request is public only", func(t *testing.T) {
		galleries, err := svc.ListGalleries(ctx, ListQuery{}, userClaims("user-1"))
		if err != nil {
			t.Fatalf("ListGalleries() error = %v", err)
		}
		if len(galleries) != 2 {
			t.Errorf("got %d galleries, want 2", len(galleries))
		}
	})
}

func TestUpdateGallery_Ownership(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	g := mustCreateGallery(t, svc, galleryRequest("mine"), "user-1")

	newTitle := "renamed"
	req := UpdateRequest{Title: &newTitle}

	if _, err := svc.UpdateGallery(ctx, g.ID, req, userClaims("user-2")); err != ErrForbidden {
		t.Errorf("UpdateGallery() by non-owner error = %v, want %v", err, ErrForbidden)
	}

	updated, err := svc.UpdateGallery(ctx, g.ID, req, userClaims("user-1"))
	if err != nil {
		t.Fatalf("UpdateGallery() by owner error = %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("updated.Title = %q, want %q", updated.Title, "renamed")
	}
	if updated.Price != g.Price {
		t.Error("partial update touched an unprovided field")
	}

	// Admin bypasses ownership
	adminTitle := "admin-renamed"
	if _, err := svc.UpdateGallery(ctx, g.ID, UpdateRequest{Title: &adminTitle}, adminClaims("admin-1")); err != nil {
		t.Errorf("UpdateGallery() by admin error = %v", err)
	}
}

func TestDeleteGallery(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	g := mustCreateGallery(t, svc, galleryRequest("doomed"), "user-1")

	if err := svc.DeleteGallery(ctx, g.ID, userClaims("user-2")); err != ErrForbidden {
		t.Errorf("DeleteGallery() by non-owner error = %v, want %v", err, ErrForbidden)
	}

	if err := svc.DeleteGallery(ctx, g.ID, userClaims("user-1")); err != nil {
		t.Fatalf("DeleteGallery() error = %v", err)
	}

	if _, err := svc.GetGallery(ctx, g.ID); err != domain.ErrNotFound {
		t.Errorf("GetGallery() after delete error = %v, want %v", err, domain.ErrNotFound)
	}

	if err := svc.DeleteGallery(ctx, "no-such-id", userClaims("user-1")); err != domain.ErrNotFound {
		t.Errorf("DeleteGallery() missing error = %v, want %v", err, domain.ErrNotFound)
	}
}

func TestDeleteGalleryImage(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()
	owner := userClaims("user-1")

	g := mustCreateGallery(t, svc, galleryRequest("imgs"), "user-1")

	// Grow the image list so thumbnail starts at image 0
	g.ImageURLs = append(g.ImageURLs, "/uploads/img-2.jpg", "/uploads/img-3.jpg")
	g.Thumbnail = g.ImageURLs[0]
	if err := svc.Galleries().Update(ctx, g); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	t.Run("out of range", func(t *testing.T) {
		if _, err := svc.DeleteGalleryImage(ctx, g.ID, 5, owner); err != ErrInvalidImageIndex {
			t.Errorf("error = %v, want %v", err, ErrInvalidImageIndex)
		}
		if _, err := svc.DeleteGalleryImage(ctx, g.ID, -1, owner); err != ErrInvalidImageIndex {
			t.Errorf("error = %v, want %v", err, ErrInvalidImageIndex)
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		if _, err := svc.DeleteGalleryImage(ctx, g.ID, 0, userClaims("user-2")); err != ErrForbidden {
			t.Errorf("error = %v, want %v", err, ErrForbidden)
		}
	})

	t.Run("deleting index 0 reassigns thumbnail", func(t *testing.T) {
		updated, err := svc.DeleteGalleryImage(ctx, g.ID, 0, owner)
		if err != nil {
			t.Fatalf("DeleteGalleryImage() error = %v", err)
		}
		if len(updated.ImageURLs) != 2 {
			t.Fatalf("len(ImageURLs) = %d, want 2", len(updated.ImageURLs))
		}
		if updated.ImageURLs[0] != "/uploads/img-2.jpg" {
			t.Errorf("ImageURLs[0] = %q, want /uploads/img-2.jpg", updated.ImageURLs[0])
		}
		if updated.Thumbnail != "/uploads/img-2.jpg" {
			t.Errorf("Thumbnail = %q, want the new first image", updated.Thumbnail)
		}
	})

	t.Run("deleting a middle image keeps thumbnail", func(t *testing.T) {
		updated, err := svc.DeleteGalleryImage(ctx, g.ID, 1, owner)
		if err != nil {
			t.Fatalf("DeleteGalleryImage() error = %v", err)
		}
		if len(updated.ImageURLs) != 1 {
			t.Fatalf("len(ImageURLs) = %d, want 1", len(updated.ImageURLs))
		}
		if updated.Thumbnail != "/uploads/img-2.jpg" {
			t.Errorf("Thumbnail = %q, want unchanged", updated.Thumbnail)
		}
	})

	t.Run("last image cannot be deleted", func(t *testing.T) {
		if _, err := svc.DeleteGalleryImage(ctx, g.ID, 0, owner); err != ErrLastImage {
			t.Errorf("error = %v, want %v", err, ErrLastImage)
		}
	})
}

func TestSetGalleryThumbnail(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()
	owner := userClaims("user-1")

	g := mustCreateGallery(t, svc, galleryRequest("thumbs"), "user-1")
	g.ImageURLs = append(g.ImageURLs, "/uploads/img-2.jpg")
	if err := svc.Galleries().Update(ctx, g); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := svc.SetGalleryThumbnail(ctx, g.ID, 2, owner); err != ErrInvalidImageIndex {
		t.Errorf("error = %v, want %v", err, ErrInvalidImageIndex)
	}

	if _, err := svc.SetGalleryThumbnail(ctx, g.ID, 1, userClaims("user-2")); err != ErrForbidden {
		t.Errorf("error = %v, want %v", err, ErrForbidden)
	}

	updated, err := svc.SetGalleryThumbnail(ctx, g.ID, 1, owner)
	if err != nil {
		t.Fatalf("SetGalleryThumbnail() error = %v", err)
	}
	if updated.Thumbnail != "/uploads/img-2.jpg" {
		t.Errorf("Thumbnail = %q, want /uploads/img-2.jpg", updated.Thumbnail)
	}
}

func TestLikeGallery(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	g := mustCreateGallery(t, svc, galleryRequest("likes"), "user-1")

	likes, err := svc.LikeGallery(ctx, g.ID, true)
	if err != nil {
		t.Fatalf("LikeGallery() error = %v", err)
	}
	if likes != 1 {
		t.Errorf("likes = %d, want 1", likes)
	}

	likes, err = svc.LikeGallery(ctx, g.ID, true)
	if err != nil {
		t.Fatalf("LikeGallery() error = %v", err)
	}
	if likes != 2 {
		t.Errorf("likes = %d, want 2", likes)
	}

	// The raw counter has no floor
	for i := 0; i < 3; i++ {
		likes, err = svc.LikeGallery(ctx, g.ID, false)
		if err != nil {
			t.Fatalf("LikeGallery() error = %v", err)
		}
	}
	if likes != -1 {
		t.Errorf("likes = %d, want -1", likes)
	}

	if _, err := svc.LikeGallery(ctx, "no-such-id", true); err != domain.ErrNotFound {
		t.Errorf("LikeGallery() missing error = %v, want %v", err, domain.ErrNotFound)
	}
}

func comicRequest(title string, episode int) CreateComicRequest {
	return CreateComicRequest{
		Title:     title,
		Thumbnail: "/uploads/thumb.jpg",
		ImageURL:  "/uploads/page-1.jpg",
		Color:     "#445566",
		Price:     "2.99",
		Episode:   &episode,
	}
}

func TestListComics_OrderedByEpisode(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	for _, ep := range []int{3, 1, 2} {
		if _, err := svc.CreateComic(ctx, comicRequest("comic", ep), "user-1"); err != nil {
			t.Fatalf("CreateComic() error = %v", err)
		}
	}

	comics, err := svc.ListComics(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("ListComics() error = %v", err)
	}
	if len(comics) != 3 {
		t.Fatalf("got %d comics, want 3", len(comics))
	}
	for i, want := range []int{1, 2, 3} {
		if comics[i].Episode == nil || *comics[i].Episode != want {
			t.Errorf("comics[%d].Episode = %v, want %d", i, comics[i].Episode, want)
		}
	}
}

func TestListComics_DefaultPublicOnly(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	isPrivate := false
	priv := comicRequest("private", 1)
	priv.IsPublic = &isPrivate
	if _, err := svc.CreateComic(ctx, priv, "user-1"); err != nil {
		t.Fatalf("CreateComic() error = %v", err)
	}
	if _, err := svc.CreateComic(ctx, comicRequest("public", 2), "user-1"); err != nil {
		t.Fatalf("CreateComic() error = %v", err)
	}

	comics, err := svc.ListComics(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("ListComics() error = %v", err)
	}
	if len(comics) != 1 || comics[0].Title != "public" {
		t.Errorf("default comic listing = %v, want the public comic only", comics)
	}
}

func TestUpdateComic_EpisodeAndOwnership(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	c, err := svc.CreateComic(ctx, comicRequest("comic", 1), "user-1")
	if err != nil {
		t.Fatalf("CreateComic() error = %v", err)
	}

	newEpisode := 7
	if _, err := svc.UpdateComic(ctx, c.ID, UpdateRequest{Episode: &newEpisode}, userClaims("user-2")); err != ErrForbidden {
		t.Errorf("UpdateComic() by non-owner error = %v, want %v", err, ErrForbidden)
	}

	updated, err := svc.UpdateComic(ctx, c.ID, UpdateRequest{Episode: &newEpisode}, userClaims("user-1"))
	if err != nil {
		t.Fatalf("UpdateComic() error = %v", err)
	}
	if updated.Episode == nil || *updated.Episode != 7 {
		t.Errorf("updated.Episode = %v, want 7", updated.Episode)
	}
}
