package helpers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLimit is the page size used when the caller supplies none.
	DefaultLimit = 10
)

// ListParams is the resolved query surface of every listing endpoint.
type ListParams struct {
	Limit        int
	Offset       int
	Sort         string
	Order        string
	UpdatedAfter *time.Time
}

// Descending reports whether the caller asked for descending order.
// Anything other than "desc" means ascending.
func (p ListParams) Descending() bool {
	return p.Order == "desc"
}

// Timestamp layouts accepted by the updated_after filter, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseListParams extracts pagination, sorting and filter parameters from
// the request.
//
// Resolution rules: limit defaults to 10 and negative values clamp to 0
// (yielding an empty page rather than an error). An explicit offset wins
// outright over page; otherwise a 1-based page maps to offset (page-1)*limit.
// Supplying both page and offset is accepted, offset takes precedence.
func ParseListParams(c *gin.Context) ListParams {
	p := ListParams{Limit: DefaultLimit}

	if limitStr, ok := c.GetQuery("limit"); ok {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			p.Limit = limit
		}
	}
	if p.Limit < 0 {
		p.Limit = 0
	}

	if offsetStr, ok := c.GetQuery("offset"); ok {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			p.Offset = offset
		}
	} else if pageStr, ok := c.GetQuery("page"); ok {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 1 {
			p.Offset = (page - 1) * p.Limit
		}
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	p.Sort = c.Query("sort")
	if order := c.Query("order"); order == "desc" || order == "DESC" {
		p.Order = "desc"
	} else {
		p.Order = "asc"
	}

	if afterStr, ok := c.GetQuery("updated_after"); ok {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, afterStr); err == nil {
				p.UpdatedAfter = &t
				break
			}
		}
	}

	return p
}

// NextPageURL builds the link to the following page, or nil when the current
// window already covers the collection. The link always encodes limit and
// offset against the entity path, never page.
func NextPageURL(basePath string, limit, offset int, total int64) *string {
	if int64(offset+limit) >= total {
		return nil
	}
	next := fmt.Sprintf("%s/?limit=%d&offset=%d", basePath, limit, offset+limit)
	return &next
}
