package bookings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

const testSecret = "bookings-secret"

type envelope struct {
	Status     string                 `json:"status"`
	StatusCode int                    `json:"status_code"`
	Data       map[string]interface{} `json:"data"`
	Errors     map[string]interface{} `json:"errors"`
}

func newTestRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	SetupBookingRoutes(api, NewController(f.svc), middleware.JWTAuth(testSecret), middleware.RequireRoles(users.RoleAdmin))
	return r
}

func bearer(t *testing.T, userID uuid.UUID, role users.Role) string {
	t.Helper()
	token, err := auth.IssueAccessToken(testSecret, userID.String(), string(role), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func call(t *testing.T, r http.Handler, method, path, body, authHeader string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestBookAndCancelOverHTTP(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)
	tourist := uuid.New()
	listingID := f.listing(t, "ACTIVITY", "100", "2026-05-10")
	f.fund(t, tourist, "100")
	token := bearer(t, tourist, users.RoleTourist)

	code, env := call(t, r, http.MethodPost, "/api/v1/activities/"+listingID.String()+"/book", `{"date":"2026-05-10"}`, token)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "2026-05-10", env.Data["booked_date"])
	assert.Equal(t, tourist.String(), env.Data["tourist_id"])

	code, env = call(t, r, http.MethodPost, "/api/v1/activities/"+listingID.String()+"/book", `{"date":"2026-05-10"}`, token)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ALREADY_BOOKED", env.Errors["code"])

	code, env = call(t, r, http.MethodPost, "/api/v1/activities/"+listingID.String()+"/cancel", "", token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "100", env.Data["refunded_amount"])
	assert.Equal(t, "100", env.Data["new_wallet_balance"])

	code, env = call(t, r, http.MethodPost, "/api/v1/activities/"+listingID.String()+"/cancel", "", token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_BOOKED", env.Errors["code"])
}

func TestBookOverHTTP_RequestValidation(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)
	token := bearer(t, uuid.New(), users.RoleTourist)
	listingID := f.listing(t, "ITINERARY", "10", "2026-05-10")

	code, _ := call(t, r, http.MethodPost, "/api/v1/itineraries/"+listingID.String()+"/book", `{"date":"2026-05-10"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, r, http.MethodPost, "/api/v1/itineraries/not-a-uuid/book", `{"date":"2026-05-10"}`, token)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, r, http.MethodPost, "/api/v1/itineraries/"+listingID.String()+"/book", `{"date":"10/05/2026"}`, token)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := call(t, r, http.MethodPost, "/api/v1/activities/"+listingID.String()+"/book", `{"date":"2026-05-10"}`, token)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Errors["code"])
}

func TestGetBookersRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)
	listingID := f.listing(t, "ACTIVITY", "10", "2026-05-10")

	code, _ := call(t, r, http.MethodGet, "/api/v1/admin/listings/"+listingID.String()+"/bookers", "", bearer(t, uuid.New(), users.RoleTourist))
	assert.Equal(t, http.StatusForbidden, code)

	code, env := call(t, r, http.MethodGet, "/api/v1/admin/listings/"+listingID.String()+"/bookers", "", bearer(t, uuid.New(), users.RoleAdmin))
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, env.Data["tourist_ids"])
}
