package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, restaurantID int64, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":       int64(1),
		"role":          role,
		"restaurant_id": restaurantID,
		"exp":           time.Now().Add(time.Hour).Unix(),
		"iat":           time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// guardedRouter mirrors the production layering: JWTAuth then TenantGuard in
// front of a handler that echoes the validated tenant id.
func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/menu/:restaurantId", JWTAuth(testSecret), TenantGuard(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"restaurant_id": GetRestaurantID(c)})
	})
	return r
}

func getWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestTenantGuard_MatchingClaimPasses(t *testing.T) {
	w := getWithToken(guardedRouter(), "/menu/5", signToken(t, 5, "owner"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"restaurant_id":5`)
}

func TestTenantGuard_MismatchedClaimForbidden(t *testing.T) {
	r := guardedRouter()

	// A valid token for restaurant 5 has no standing in restaurant 7,
	// whatever the role.
	for _, role := range []string{"owner", "manager", "staff"} {
		w := getWithToken(r, "/menu/7", signToken(t, 5, role))
		assert.Equal(t, http.StatusForbidden, w.Code, "role %s", role)
		assert.Contains(t, w.Body.String(), "not allowed")
	}
}

func TestTenantGuard_MalformedIDBadRequest(t *testing.T) {
	r := guardedRouter()
	token := signToken(t, 5, "owner")

	for _, path := range []string{
		"/menu/abc",
		"/menu/5;DROP",
		"/menu/-5",
		"/menu/0",
	} {
		w := getWithToken(r, path, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestJWTAuth_MissingOrBadToken(t *testing.T) {
	r := guardedRouter()

	w := getWithToken(r, "/menu/5", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = getWithToken(r, "/menu/5", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with a different key
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(1), "role": "owner", "restaurant_id": int64(5),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forged, err := other.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)
	w = getWithToken(r, "/menu/5", forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
