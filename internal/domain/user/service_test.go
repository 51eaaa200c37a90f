package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockUserRepo struct {
	users map[uuid.UUID]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	u.ID = uuid.New()
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]*User, int, error) {
	var items []*User
	for _, u := range m.users {
		items = append(items, u)
	}
	return items, len(items), nil
}

func TestCreateUser(t *testing.T) {
	svc := NewService(newMockUserRepo())

	u, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+15551234567",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if u.Name != "Jane Doe" {
		t.Errorf("name = %q", u.Name)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewService(newMockUserRepo())

	cases := []CreateUserInput{
		{Name: "", Email: "jane@example.com", Phone: "+15551234567"},
		{Name: "Jane", Email: "not-an-email", Phone: "+15551234567"},
		{Name: "Jane", Email: "jane@example.com", Phone: "nope"},
	}
	for i, in := range cases {
		if _, err := svc.CreateUser(context.Background(), in); !errors.Is(err, ErrInvalid) {
			t.Errorf("case %d: got %v, want ErrInvalid", i, err)
		}
	}
}

func TestCreateUserExistingEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	first, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Jane", Email: "jane@example.com", Phone: "+15551234567",
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	second, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Jane Again", Email: "jane@example.com", Phone: "+15557654321",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected existing account, got new id %s", second.ID)
	}
	if len(repo.users) != 1 {
		t.Errorf("repo has %d users", len(repo.users))
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewService(newMockUserRepo())

	_, err := svc.GetUser(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
