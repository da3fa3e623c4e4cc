package rental

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserParams struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

func (p *UserParams) normalize() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)

	switch {
	case p.Name == "":
		return invalid("name is required")
	case !emailPattern.MatchString(p.Email):
		return invalid("email %q is not valid", p.Email)
	case p.Password == "":
		return invalid("password is required")
	case !p.Role.Valid():
		return invalid("unknown role %q", p.Role)
	}

	return nil
}

// addUser appends a new user with a hashed password. The email must already be normalized.
func addUser(st *State, p UserParams) (*User, error) {
	if _, taken := st.UserByEmail(p.Email); taken {
		return nil, fmt.Errorf("%s: %w", p.Email, ErrEmailTaken)
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	st.Users = append(st.Users, User{
		ID:           nextID(st.Users, func(u User) int64 { return u.ID }),
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         p.Role,
	})

	return &st.Users[len(st.Users)-1], nil
}

// Register creates an account through self sign-up. The admin role cannot be self-assigned.
func (s *Service) Register(ctx context.Context, params UserParams) (*User, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	if params.Role == RoleAdmin {
		return nil, fmt.Errorf("%w: admin accounts cannot self-register", ErrForbidden)
	}

	var created User

	err := s.mutate(ctx, func(st *State) error {
		u, err := addUser(st, params)
		if err != nil {
			return err
		}

		created = *u

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// CreateUser creates an account with any role on behalf of an admin.
func (s *Service) CreateUser(ctx context.Context, actor User, params UserParams) (*User, error) {
	if actor.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: only admins manage users", ErrForbidden)
	}

	if err := params.normalize(); err != nil {
		return nil, err
	}

	var created User

	err := s.mutate(ctx, func(st *State) error {
		u, err := addUser(st, params)
		if err != nil {
			return err
		}

		created = *u

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

type UpdateUserParams struct {
	Name  *string
	Email *string
	Role  *Role
}

func (s *Service) UpdateUser(ctx context.Context, actor User, id int64, params UpdateUserParams) (*User, error) {
	if actor.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: only admins manage users", ErrForbidden)
	}

	var updated User

	err := s.mutate(ctx, func(st *State) error {
		u, ok := st.User(id)
		if !ok {
			return notFound("user", id)
		}

		if params.Name != nil {
			name := strings.TrimSpace(*params.Name)
			if name == "" {
				return invalid("name is required")
			}

			u.Name = name
		}

		if params.Email != nil {
			email := NormalizeEmail(*params.Email)
			if !emailPattern.MatchString(email) {
				return invalid("email %q is not valid", email)
			}

			if other, taken := st.UserByEmail(email); taken && other.ID != id {
				return fmt.Errorf("%s: %w", email, ErrEmailTaken)
			}

			u.Email = email

			if t, ok := st.Data.TenantByUser(id); ok {
				t.Email = email
			}
		}

		if params.Role != nil {
			if !params.Role.Valid() {
				return invalid("unknown role %q", *params.Role)
			}

			if _, isTenant := st.Data.TenantByUser(id); isTenant && *params.Role != RoleTenant {
				return fmt.Errorf("%w: user %d backs a tenant record", ErrRoleMismatch, id)
			}

			u.Role = *params.Role
		}

		updated = *u

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Authenticate checks credentials without touching the session pointer.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	u, ok := st.UserByEmail(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := *u

	return &user, nil
}

// Login authenticates and records the user as the current session.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetSession(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return u, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

// CurrentUser resolves the session pointer. A missing pointer or one that
// references an unknown user yields ErrNoSession.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	id, ok, err := s.repo.Session(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	if !ok {
		return nil, ErrNoSession
	}

	u, err := s.User(ctx, id)
	if errors.Is(err, ErrNotFound) {
		s.log.Warn("session references unknown user", "user_id", id)
		return nil, ErrNoSession
	}

	return u, err
}

func (s *Service) User(ctx context.Context, id int64) (*User, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	u, ok := st.User(id)
	if !ok {
		return nil, notFound("user", id)
	}

	user := *u

	return &user, nil
}

// Users lists accounts, optionally restricted to one role.
func (s *Service) Users(ctx context.Context, role *Role) ([]User, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	if role == nil {
		return st.Users, nil
	}

	users := make([]User, 0, len(st.Users))
	for _, u := range st.Users {
		if u.Role == *role {
			users = append(users, u)
		}
	}

	return users, nil
}

// Seed creates the first admin account when no users exist yet.
func (s *Service) Seed(ctx context.Context, params UserParams) (bool, error) {
	params.Role = RoleAdmin
	if err := params.normalize(); err != nil {
		return false, err
	}

	created := false

	err := s.mutate(ctx, func(st *State) error {
		if len(st.Users) > 0 {
			return nil
		}

		if _, err := addUser(st, params); err != nil {
			return err
		}

		created = true

		return nil
	})

	return created, err
}
