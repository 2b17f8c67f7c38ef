package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a limit/offset window parsed from the query string
type Params struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Page returns the 1-based page number for cache keys
func (p Params) Page() int {
	return p.Offset/p.Limit + 1
}

// FromQuery reads ?limit= and ?offset=, clamping bad values to defaults
func FromQuery(c *gin.Context) Params {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}
