package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/token"
)

// UserIDKey is where the JWT middleware stores the verified caller id on
// the request context.
const UserIDKey = "user_id"

// ResolveCaller turns a raw Authorization header value into a verified
// user id. Every failure mode (missing prefix, bad signature, expired or
// malformed token) surfaces as the same unauthorized error.
func ResolveCaller(tokens *token.Service, header string) (uuid.UUID, error) {
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == header || tokenString == "" {
		return uuid.Nil, apperr.Unauthorized("missing bearer token")
	}
	return tokens.ExtractUserID(tokenString)
}

// JWT guards a route group. On success the verified id is placed in
// Locals for the handler, which passes it explicitly into every service
// call; nothing downstream reads ambient request state.
func JWT(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := ResolveCaller(tokens, c.Get("Authorization"))
		if err != nil {
			return err
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// CallerID reads the id stored by JWT.
func CallerID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("missing bearer token")
	}
	return id, nil
}
