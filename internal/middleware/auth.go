package middleware

import (
	"net/http"
	"strings"

	"restomate/internal/apierror"
	"restomate/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey       = "claims"
	RestaurantIDKey = "restaurantID"
)

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID       int64  `json:"user_id"`
	Role         string `json:"role"`
	RestaurantID int64  `json:"restaurant_id"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalid or expired"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// TenantGuard pins a request to its own restaurant: the :restaurantId route
// parameter must match the restaurant_id claim of the token. A malformed id
// is a 400; a mismatch is a 403 regardless of role — owners of one
// restaurant have no standing in another. The validated id is stored in the
// context for handlers.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := tenant.ParseID(c.Param("restaurantId"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("Invalid restaurant id"))
			return
		}

		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || claims.RestaurantID != id {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Access to this restaurant is not allowed"))
			return
		}

		c.Set(RestaurantIDKey, id)
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// GetRestaurantID returns the tenant id validated by TenantGuard.
func GetRestaurantID(c *gin.Context) int64 {
	return c.GetInt64(RestaurantIDKey)
}
