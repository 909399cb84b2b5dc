package utils

import (
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
)

func TestExtractRequesterFromToken(t *testing.T) {
	// Test case: valid token with name and email
	t.Run("name and email exists", func(t *testing.T) {
		claims := jwt.MapClaims{
			"name":  "Dana Reyes",
			"email": "dana.reyes@clinic.example",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte("test-secret"))

		result := ExtractRequesterFromToken(tokenString)
		assert.Equal(t, "Dana Reyes<dana.reyes@clinic.example>", result)
	})

	// Test case: email replaced by phone_number
	t.Run("email replaced by phone_number", func(t *testing.T) {
		claims := jwt.MapClaims{
			"name":         "Dana Reyes",
			"phone_number": "13800138000",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte("test-secret"))

		assert.Equal(t, "Dana Reyes<13800138000>", ExtractRequesterFromToken(tokenString))
	})

	// Test case: only name exists
	t.Run("only name exists", func(t *testing.T) {
		claims := jwt.MapClaims{"name": "Dana Reyes"}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte("test-secret"))

		assert.Equal(t, "Dana Reyes", ExtractRequesterFromToken(tokenString))
	})

	// Test case: bearer prefix is stripped
	t.Run("bearer prefix", func(t *testing.T) {
		claims := jwt.MapClaims{"name": "Dana Reyes"}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte("test-secret"))

		assert.Equal(t, "Dana Reyes", ExtractRequesterFromToken("Bearer "+tokenString))
	})

	// Test case: no valid claims
	t.Run("no valid claims", func(t *testing.T) {
		claims := jwt.MapClaims{}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, _ := token.SignedString([]byte("test-secret"))

		assert.Equal(t, "unknown", ExtractRequesterFromToken(tokenString))
	})

	// Test case: invalid token
	t.Run("invalid token", func(t *testing.T) {
		assert.Equal(t, "unknown", ExtractRequesterFromToken("invalid.token"))
	})

	// Test case: empty token
	t.Run("empty token", func(t *testing.T) {
		assert.Equal(t, "unknown", ExtractRequesterFromToken(""))
	})
}
