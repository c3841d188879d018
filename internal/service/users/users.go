package users

import (
	"context"
	"time"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/gateway"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// AuthResult is what the auth endpoints hand back: the identity, an
// opaque bearer token and its expiry.
type AuthResult struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type Service struct {
	api *gateway.Client
}

func NewService(api *gateway.Client) *Service {
	return &Service{api: api}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (AuthResult, error) {
	var out AuthResult
	if err := s.api.Post(ctx, "/auth/register", req, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}

func (s *Service) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	var out AuthResult
	if err := s.api.Post(ctx, "/auth/login", creds, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}

// Logout tells the backend to revoke the token. Clearing the session
// store is a separate, independent step for the caller.
func (s *Service) Logout(ctx context.Context) error {
	return s.api.Post(ctx, "/auth/logout", nil, nil)
}

func (s *Service) All(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := s.api.Get(ctx, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) ByID(ctx context.Context, id string) (domain.User, error) {
	var out domain.User
	if err := s.api.Get(ctx, "/users/"+id, nil, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}
