package auth

import (
	"context"
	"testing"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
	"github.com/shuaizuo666/Task-System/token"
)

func newService() (*Service, *store.Memory) {
	mem := store.NewMemory()
	tokens := token.New([]byte("auth-test-secret"))
	return NewService(mem, tokens), mem
}

func register(t *testing.T, svc *Service) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterCreatesUserAndDefaultList(t *testing.T) {
	svc, mem := newService()
	user := register(t, svc)

	if user.PasswordHash == "pw123456" {
		t.Fatal("password stored in plaintext")
	}

	list, err := mem.DefaultList(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("DefaultList: %v", err)
	}
	if !list.IsDefault {
		t.Error("default list not flagged as default")
	}
	if list.Name != DefaultListName {
		t.Errorf("got list name %q, want %q", list.Name, DefaultListName)
	}

	// Exactly one list exists, and it is the default.
	lists, err := mem.ListsByOwner(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListsByOwner: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("got %d lists, want 1", len(lists))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService()

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"blank username", models.RegisterRequest{Username: "  ", Email: "a@x.com", Password: "pw123456"}},
		{"bad email", models.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "pw123456"}},
		{"email without tld", models.RegisterRequest{Username: "alice", Email: "alice@host", Password: "pw123456"}},
		{"short password", models.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw1234"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService()
	register(t, svc)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice2", Email: "alice@x.com", Password: "pw123456",
	})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("got %v, want conflict error", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService()
	user := register(t, svc)

	resp, err := svc.Authenticate(context.Background(), models.LoginRequest{
		Email: "alice@x.com", Password: "pw123456",
	})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if resp.UserID != user.ID || resp.Username != "alice" || resp.Email != "alice@x.com" {
		t.Errorf("unexpected auth response: %+v", resp)
	}

	tokens := token.New([]byte("auth-test-secret"))
	gotID, err := tokens.ExtractUserID(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if gotID != user.ID {
		t.Errorf("token carries user %s, want %s", gotID, user.ID)
	}
}

func TestAuthenticateDoesNotLeakWhichFieldIsWrong(t *testing.T) {
	svc, _ := newService()
	register(t, svc)

	_, wrongPassword := svc.Authenticate(context.Background(), models.LoginRequest{
		Email: "alice@x.com", Password: "wrongpw1",
	})
	_, unknownEmail := svc.Authenticate(context.Background(), models.LoginRequest{
		Email: "nobody@x.com", Password: "pw123456",
	})

	for _, err := range []error{wrongPassword, unknownEmail} {
		if !apperr.IsKind(err, apperr.KindUnauthorized) {
			t.Fatalf("got %v, want unauthorized", err)
		}
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}
