package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt"

	"github.com/medvox-ai/intake-pipeline/internal/logger"
)

// ExtractRequesterFromToken parses a JWT token to extract name and email
// claims for call attribution. The token is not verified; it only feeds
// telemetry, never authorization. If parsing fails, returns "unknown".
func ExtractRequesterFromToken(tokenString string) string {
	var name, email string

	// Remove Bearer prefix if present
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		logger.Debug("failed to parse requester token")
		return "unknown"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		logger.Debug("unexpected requester token claims structure")
		return "unknown"
	}

	if n, ok := claims["name"].(string); ok && n != "" {
		name = n
	}

	if e, ok := claims["email"].(string); ok && e != "" {
		email = e
	} else if p, ok := claims["phone_number"].(string); ok && p != "" {
		email = p
	}

	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s<%s>", name, email)
	case name != "":
		return name
	case email != "":
		return email
	default:
		return "unknown"
	}
}
