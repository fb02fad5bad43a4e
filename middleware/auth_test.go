package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/handlers"
	"github.com/shuaizuo666/Task-System/middleware"
	"github.com/shuaizuo666/Task-System/token"
)

var testSecret = []byte("middleware-test-secret")

func TestResolveCaller(t *testing.T) {
	tokens := token.New(testSecret)
	userID := uuid.New()
	signed, err := tokens.Issue(userID, "alice@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := middleware.ResolveCaller(tokens, "Bearer "+signed)
	if err != nil {
		t.Fatalf("ResolveCaller: %v", err)
	}
	if got != userID {
		t.Errorf("got %s, want %s", got, userID)
	}
}

func TestResolveCallerFailures(t *testing.T) {
	tokens := token.New(testSecret)
	signed, err := tokens.Issue(uuid.New(), "alice@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"no bearer prefix", signed},
		{"wrong scheme", "Basic " + signed},
		{"prefix only", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := middleware.ResolveCaller(tokens, tc.header)
			if !apperr.IsKind(err, apperr.KindUnauthorized) {
				t.Errorf("got %v, want unauthorized", err)
			}
		})
	}
}

func TestJWTMiddlewarePassesVerifiedID(t *testing.T) {
	tokens := token.New(testSecret)
	userID := uuid.New()
	signed, err := tokens.Issue(userID, "alice@x.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Get("/protected", middleware.JWT(tokens), func(c *fiber.Ctx) error {
		got, err := middleware.CallerID(c)
		if err != nil {
			return err
		}
		return c.SendString(got.String())
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	// Without a token the request never reaches the handler.
	resp, err = app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}
}
