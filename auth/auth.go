// Package auth covers registration and login. Tokens are stateless, so
// there is no logout state to manage here.
package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
	"github.com/shuaizuo666/Task-System/token"
)

// DefaultListName is the name of the protected list every user gets at
// registration.
const DefaultListName = "My Tasks"

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type Service struct {
	store  store.Store
	tokens *token.Service
}

func NewService(s store.Store, tokens *token.Service) *Service {
	return &Service{store: s, tokens: tokens}
}

// Register validates the request, hashes the password, and persists the
// user together with its default task list in one transaction.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, apperr.Validation("username must not be empty")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, apperr.Validation("invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("could not hash password", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if _, err := s.store.CreateUser(ctx, user, DefaultListName); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Internal("could not create user", err)
	}
	return user, nil
}

// Authenticate verifies the credentials and issues a token. Unknown
// email and wrong password produce the same failure so callers cannot
// probe which emails are registered.
func (s *Service) Authenticate(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.store.UserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, apperr.Internal("could not look up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token:    signed,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
