package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalUserId   = "user_id"
	LocalUsername = "username"
	LocalToken    = "access_token"
)

// NewJwtMiddleware verifies the HMAC-signed bearer token and exposes the
// user id, username and raw token through ctx.Locals.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := bearerToken(ctx)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Missing token"))
		}

		claims, err := ParseToken(tokenStr, secret)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Invalid token"))
		}

		userId := claimString(claims, "user_id")
		if userId == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(401, "Token missing user_id"))
		}

		ctx.Locals(LocalUserId, userId)
		ctx.Locals(LocalUsername, claimString(claims, "preferred_username"))
		ctx.Locals(LocalToken, tokenStr)
		return ctx.Next()
	}
}

func bearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	// browsers cannot set headers on a websocket handshake
	return ctx.Query("token")
}

func ParseToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// claimString accepts both string and numeric claims; LMS user ids are integers.
func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
