package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/enoma/domain/content"
	"github.com/example/enoma/modules/content"
)

// ListGalleries handles the gallery listing with its visibility filters.
func (h *Handlers) ListGalleries(c *fiber.Ctx) error {
	q := content.ListQuery{
		Public: c.Query("public") == "true",
		UserID: c.Query("userId"),
	}

	galleries, err := h.content.ListGalleries(c.UserContext(), q, claimsFromContext(c))
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"galleries": galleries})
}

// GetGallery returns a single gallery by ID.
func (h *Handlers) GetGallery(c *fiber.Ctx) error {
	gallery, err := h.content.GetGallery(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleContentError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"gallery": gallery})
}

// CreateGallery creates a gallery owned by the authenticated user.
func (h *Handlers) CreateGallery(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	var req content.CreateGalleryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	gallery, err := h.content.CreateGallery(c.UserContext(), req, claims.UserID)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"gallery": gallery})
}

// UpdateGallery applies a partial update to an owned gallery.
func (h *Handlers) UpdateGallery(c *fiber.Ctx) error {
	var req content.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	gallery, err := h.content.UpdateGallery(c.UserContext(), c.Params("id"), req, claimsFromContext(c))
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"gallery": gallery})
}

// DeleteGallery removes an owned gallery.
func (h *Handlers) DeleteGallery(c *fiber.Ctx) error {
	if err := h.content.DeleteGallery(c.UserContext(), c.Params("id"), claimsFromContext(c)); err != nil {
		return h.handleContentError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Gallery deleted successfully",
	})
}

// DeleteGalleryImage removes one image from a gallery by index.
func (h *Handlers) DeleteGalleryImage(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid image index",
		})
	}

	gallery, err := h.content.DeleteGalleryImage(c.UserContext(), c.Params("id"), index, claimsFromContext(c))
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Image deleted successfully",
		"gallery": gallery,
	})
}

// SetGalleryThumbnail points the gallery thumbnail at one of its images.
func (h *Handlers) SetGalleryThumbnail(c *fiber.Ctx) error {
	var req ThumbnailRequest
	if err := c.BodyParser(&req); err != nil || req.ImageIndex == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "imageIndex is required",
		})
	}

	gallery, err := h.content.SetGalleryThumbnail(c.UserContext(), c.Params("id"), *req.ImageIndex, claimsFromContext(c))
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Thumbnail updated successfully",
		"gallery": gallery,
	})
}

// LikeGallery moves the gallery like counter up or down.
func (h *Handlers) LikeGallery(c *fiber.Ctx) error {
	var req LikeRequest
	if err := c.BodyParser(&req); err != nil || req.Increment == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "increment is required",
		})
	}

	likes, err := h.content.LikeGallery(c.UserContext(), c.Params("id"), *req.Increment)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LikesResponse{LikesCount: likes})
}

// ListComics handles the comic listing.
func (h *Handlers) ListComics(c *fiber.Ctx) error {
	q := content.ListQuery{
		Public: c.Query("public") == "true",
		UserID: c.Query("userId"),
	}

	comics, err := h.content.ListComics(c.UserContext(), q)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comics": comics})
}

// GetComic returns a single comic by ID.
func (h *Handlers) GetComic(c *fiber.Ctx) error {
	comic, err := h.content.GetComic(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.handleContentError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comic": comic})
}

// CreateComic creates a comic owned by the authenticated user.
func (h *Handlers) CreateComic(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	var req content.CreateComicRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	comic, err := h.content.CreateComic(c.UserContext(), req, claims.UserID)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comic": comic})
}

// UpdateComic applies a partial update to an owned comic.
func (h *Handlers) UpdateComic(c *fiber.Ctx) error {
	var req content.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	comic, err := h.content.UpdateComic(c.UserContext(), c.Params("id"), req, claimsFromContext(c))
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"comic": comic})
}

// DeleteComic removes an owned comic.
func (h *Handlers) DeleteComic(c *fiber.Ctx) error {
	if err := h.content.DeleteComic(c.UserContext(), c.Params("id"), claimsFromContext(c)); err != nil {
		return h.handleContentError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Comic deleted successfully",
	})
}

// LikeComic moves the comic like counter up or down.
func (h *Handlers) LikeComic(c *fiber.Ctx) error {
	var req LikeRequest
	if err := c.BodyParser(&req); err != nil || req.Increment == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "increment is required",
		})
	}

	likes, err := h.content.LikeComic(c.UserContext(), c.Params("id"), *req.Increment)
	if err != nil {
		return h.handleContentError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LikesResponse{LikesCount: likes})
}

// handleContentError maps content service errors onto the HTTP taxonomy.
func (h *Handlers) handleContentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Content not found",
		})
	case errors.Is(err, content.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error: "You do not have permission to modify this content",
		})
	case errors.Is(err, content.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Title, thumbnail, imageUrl, color and price are required",
		})
	case errors.Is(err, content.ErrInvalidImageIndex):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid image index",
		})
	case errors.Is(err, content.ErrLastImage):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Cannot delete the last image",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
		})
	}
}
