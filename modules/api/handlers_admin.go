package api

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/enoma/modules/admin"
	"github.com/example/enoma/modules/content"
)

// AdminStats returns dashboard counters.
func (h *Handlers) AdminStats(c *fiber.Ctx) error {
	stats, err := h.admin.Stats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to gather stats",
		})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// AdminListContent returns the combined paged content listing.
func (h *Handlers) AdminListContent(c *fiber.Ctx) error {
	q := admin.ListContentQuery{
		Type:  c.Query("type"),
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}

	listing, err := h.admin.ListContent(c.UserContext(), q)
	if err != nil {
		return h.handleAdminError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(listing)
}

// AdminUpdateContent updates a gallery or comic regardless of owner.
func (h *Handlers) AdminUpdateContent(c *fiber.Ctx) error {
	var req content.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	updated, err := h.admin.UpdateContent(c.UserContext(), c.Params("type"), c.Params("id"), req, claimsFromContext(c))
	if err != nil {
		return h.handleAdminError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Content updated successfully",
		"data":    updated,
	})
}

// AdminDeleteContent deletes a gallery or comic regardless of owner.
func (h *Handlers) AdminDeleteContent(c *fiber.Ctx) error {
	if err := h.admin.DeleteContent(c.UserContext(), c.Params("type"), c.Params("id"), claimsFromContext(c)); err != nil {
		return h.handleAdminError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Content deleted successfully",
	})
}

// AdminUpload accepts a multipart image upload and creates the content row.
func (h *Handlers) AdminUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "File, title, price and type are required",
		})
	}

	if fileHeader.Size > admin.MaxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "File exceeds the maximum upload size of 10MB",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to read uploaded file",
		})
	}

	req := admin.UploadRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Type:        c.FormValue("type"),
		Tags:        c.FormValue("tags"),
		Color:       c.FormValue("color"),
	}

	if v := c.FormValue("episode"); v != "" {
		episode, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Invalid episode number",
			})
		}
		req.Episode = &episode
	}

	if v := c.FormValue("isPublic"); v != "" {
		isPublic := v == "true"
		req.IsPublic = &isPublic
	}

	result, err := h.admin.Upload(c.UserContext(), req, claimsFromContext(c))
	if err != nil {
		return h.handleAdminError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Upload successful",
		"data":    result,
	})
}

// GetUpload streams a stored upload back out.
func (h *Handlers) GetUpload(c *fiber.Ctx) error {
	data, info, err := h.admin.GetUpload(c.UserContext(), c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Upload not found",
		})
	}

	c.Set(fiber.HeaderContentType, info.ContentType)
	return c.Send(data)
}

// handleAdminError maps admin service errors onto the HTTP taxonomy.
func (h *Handlers) handleAdminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, admin.ErrInvalidContentType):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid content type",
		})
	case errors.Is(err, admin.ErrMissingUploadField):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "File, title, price and type are required",
		})
	case errors.Is(err, admin.ErrUnsupportedFile):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Only JPEG, PNG, GIF and WebP images are allowed",
		})
	case errors.Is(err, admin.ErrFileTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "File exceeds the maximum upload size of 10MB",
		})
	default:
		return h.handleContentError(c, err)
	}
}
