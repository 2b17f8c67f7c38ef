package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  Params
		page  int
	}{
		{"", Params{Limit: 10, Offset: 0}, 1},
		{"?limit=20&offset=40", Params{Limit: 20, Offset: 40}, 3},
		{"?limit=-1&offset=-5", Params{Limit: 10, Offset: 0}, 1},
		{"?limit=1000", Params{Limit: 100, Offset: 0}, 1},
		{"?limit=abc&offset=xyz", Params{Limit: 10, Offset: 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/x"+tt.query, nil)

			got := FromQuery(c)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.page, got.Page())
		})
	}
}
