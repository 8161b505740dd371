package gateway

import (
	"net/url"
	"strings"
)

// Catalog categories understood by api/rophim/catalog.
const (
	CategoryMovies    = "movies"
	CategorySeries    = "series"
	CategoryAnimation = "animation"
	CategoryPhimLe    = "phim-le"
	CategoryPhimBo    = "phim-bo"
	CategoryHoatHinh  = "hoat-hinh"
	CategoryPhimMoi   = "phim-moi"
)

// Catalog sort orders.
const (
	SortModified = "modified"
	SortYear     = "year"
	SortRating   = "rating"
	SortViews    = "views"
)

// ProxyURL routes an HLS playlist through the backend's video proxy.
func (c *Client) ProxyURL(m3u8 string) string {
	return c.baseURL + "/proxy/video?url=" + url.QueryEscape(m3u8)
}

// ImageURL resolves a backend image path. Absolute URLs pass through.
func (c *Client) ImageURL(path string) string {
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http"):
		return path
	default:
		return c.baseURL + path
	}
}
