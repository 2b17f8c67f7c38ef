package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voyago/internal/auth"
	"voyago/internal/shared/middleware"
	"voyago/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "analytics-secret"

type envelope struct {
	StatusCode int                    `json:"status_code"`
	Data       json.RawMessage        `json:"data"`
	Errors     map[string]interface{} `json:"errors"`
}

func get(t *testing.T, r http.Handler, path string, role users.Role) (int, envelope) {
	t.Helper()
	token, err := auth.IssueAccessToken(testSecret, uuid.NewString(), string(role), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestAnalyticsOverHTTP(t *testing.T) {
	f := newFixture(t)
	activityID := f.seed(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupAnalyticsRoutes(r.Group("/api/v1"), NewController(f.svc), middleware.JWTAuth(testSecret), middleware.RequireAdmin())

	code, _ := get(t, r, "/api/v1/admin/analytics/overview", users.RoleTourist)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := get(t, r, "/api/v1/admin/analytics/overview", users.RoleAdmin)
	require.Equal(t, http.StatusOK, code)
	var overview struct {
		Bookings struct {
			Active int64 `json:"active"`
		} `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, int64(1), overview.Bookings.Active)

	code, env = get(t, r, "/api/v1/admin/analytics/daily?days=3", users.RoleAdmin)
	require.Equal(t, http.StatusOK, code)
	var flow []DailyMoneyFlow
	require.NoError(t, json.Unmarshal(env.Data, &flow))
	assert.Len(t, flow, 3)

	code, _ = get(t, r, "/api/v1/admin/analytics/daily?days=week", users.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = get(t, r, "/api/v1/admin/analytics/listings/"+activityID.String(), users.RoleAdmin)
	assert.Equal(t, http.StatusOK, code)

	code, env = get(t, r, "/api/v1/admin/analytics/listings/"+uuid.NewString(), users.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Errors["code"])

	code, _ = get(t, r, "/api/v1/admin/analytics/listings/not-a-uuid", users.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, code)
}
