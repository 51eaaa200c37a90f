package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebook/carebook/internal/forms"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrInvalid  = errors.New("invalid user")
)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// CreateUser registers a booking account from the intake form. Submitting an
// email that already has an account returns the existing account instead of
// failing.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	if err := validateIntake(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	u := &User{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func validateIntake(in CreateUserInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if err := forms.Email(in.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := forms.Phone(in.Phone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
