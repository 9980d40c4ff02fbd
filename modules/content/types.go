package content

// ListQuery narrows a content listing request.
type ListQuery struct {
	// Public selects public rows only (the `public=true` query parameter).
	Public bool
	// UserID selects rows owned by a specific user.
	UserID string
}

// CreateGalleryRequest carries the fields of a new gallery.
type CreateGalleryRequest struct {
	Title       string   `json:"title"`
	Thumbnail   string   `json:"thumbnail"`
	ImageURL    string   `json:"imageUrl"`
	Color       string   `json:"color"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"isPublic"`
}

// CreateComicRequest carries the fields of a new comic.
type CreateComicRequest struct {
	Title       string   `json:"title"`
	Thumbnail   string   `json:"thumbnail"`
	ImageURL    string   `json:"imageUrl"`
	Color       string   `json:"color"`
	Price       string   `json:"price"`
	Episode     *int     `json:"episode"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"isPublic"`
}

// UpdateRequest carries a partial content update; nil fields are untouched.
type UpdateRequest struct {
	Title       *string   `json:"title"`
	Thumbnail   *string   `json:"thumbnail"`
	Color       *string   `json:"color"`
	Price       *string   `json:"price"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Episode     *int      `json:"episode"`
	IsPublic    *bool     `json:"isPublic"`
}
