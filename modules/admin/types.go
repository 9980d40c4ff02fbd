package admin

import "github.com/example/enoma/domain/content"

// Stats summarizes overall marketplace state for the admin dashboard.
type Stats struct {
	TotalGalleries int64          `json:"totalGalleries"`
	TotalComics    int64          `json:"totalComics"`
	TotalUsers     int64          `json:"totalUsers"`
	TotalContent   int64          `json:"totalContent"`
	Cache          *CacheStats    `json:"cache,omitempty"`
	Storage        *StorageStatus `json:"storage,omitempty"`
}

// CacheStats mirrors the cache counter snapshot for the dashboard.
type CacheStats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Deletes uint64  `json:"deletes"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hitRate"`
}

// StorageStatus reports upload storage connectivity.
type StorageStatus struct {
	Connected bool   `json:"connected"`
	Bucket    string `json:"bucket"`
}

// ListContentQuery selects and pages the combined content listing.
type ListContentQuery struct {
	Type  string `json:"type"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// Pagination describes paging state of a combined listing.
type Pagination struct {
	Page                int   `json:"page"`
	Limit               int   `json:"limit"`
	TotalGalleries      int64 `json:"totalGalleries"`
	TotalComics         int64 `json:"totalComics"`
	TotalPagesGalleries int64 `json:"totalPagesGalleries"`
	TotalPagesComics    int64 `json:"totalPagesComics"`
}

// ContentListing is the combined paged listing of all content.
type ContentListing struct {
	Galleries  []content.Gallery `json:"galleries"`
	Comics     []content.Comic   `json:"comics"`
	Pagination Pagination        `json:"pagination"`
}

// UploadRequest carries a single uploaded image and its content metadata.
type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	Title       string
	Description string
	Price       string
	Type        string
	Tags        string
	Color       string
	Episode     *int
	IsPublic    *bool
}

// UploadResult reports the stored object and the created content row.
type UploadResult struct {
	URL     string           `json:"url"`
	Gallery *content.Gallery `json:"gallery,omitempty"`
	Comic   *content.Comic   `json:"comic,omitempty"`
}
