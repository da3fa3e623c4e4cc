package rental

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
)

const temporaryPasswordLength = 12

type TenantParams struct {
	Name       string
	Email      string
	Phone      string
	PropertyID int64
	UnitID     int64
}

func (p *TenantParams) validate(st *State) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = NormalizeEmail(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)

	switch {
	case p.Name == "":
		return invalid("tenant name is required")
	case !emailPattern.MatchString(p.Email):
		return invalid("email %q is not valid", p.Email)
	}

	if _, ok := st.Data.Property(p.PropertyID); !ok {
		return notFound("property", p.PropertyID)
	}

	u, ok := st.Data.Unit(p.UnitID)
	if !ok {
		return notFound("unit", p.UnitID)
	}

	if u.PropertyID != p.PropertyID {
		return invalid("unit %d does not belong to property %d", p.UnitID, p.PropertyID)
	}

	return nil
}

// NewTenant is the result of creating a tenant. Password is set only when a
// backing user account had to be created.
type NewTenant struct {
	Tenant   Tenant
	User     User
	Password string
}

// backingUser finds or creates the tenant-role user for email. tenantID is the
// record being linked, zero on creation.
func backingUser(st *State, tenantID int64, name, email string) (*User, string, error) {
	if u, ok := st.UserByEmail(email); ok {
		if u.Role != RoleTenant {
			return nil, "", fmt.Errorf("%w: %s is registered as %s", ErrRoleMismatch, email, u.Role)
		}

		if t, linked := st.Data.TenantByUser(u.ID); linked && t.ID != tenantID {
			return nil, "", fmt.Errorf("%w: %s already backs tenant %d", ErrEmailTaken, email, t.ID)
		}

		return u, "", nil
	}

	password, err := auth.RandomPassword(temporaryPasswordLength)
	if err != nil {
		return nil, "", err
	}

	u, err := addUser(st, UserParams{Name: name, Email: email, Password: password, Role: RoleTenant})
	if err != nil {
		return nil, "", err
	}

	return u, password, nil
}

// CreateTenant adds a tenant, creating its user account when the email is
// unknown, and occupies the assigned unit.
func (s *Service) CreateTenant(ctx context.Context, params TenantParams) (*NewTenant, error) {
	var result NewTenant

	err := s.mutate(ctx, func(st *State) error {
		if err := params.validate(st); err != nil {
			return err
		}

		u, password, err := backingUser(st, 0, params.Name, params.Email)
		if err != nil {
			return err
		}

		result.User = *u
		result.Password = password

		st.Data.Tenants = append(st.Data.Tenants, Tenant{
			ID:     nextID(st.Data.Tenants, func(t Tenant) int64 { return t.ID }),
			UserID: u.ID,
			Name:   params.Name,
			Email:  params.Email,
			Phone:  params.Phone,
		})
		t := &st.Data.Tenants[len(st.Data.Tenants)-1]

		if err := s.assignUnit(st, t, params.UnitID); err != nil {
			return err
		}

		result.Tenant = *t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateTenant edits a tenant. A changed email relinks the tenant to the
// matching user account; a changed unit moves occupancy.
func (s *Service) UpdateTenant(ctx context.Context, id int64, params TenantParams) (*Tenant, error) {
	var updated Tenant

	err := s.mutate(ctx, func(st *State) error {
		t, ok := st.Data.Tenant(id)
		if !ok {
			return notFound("tenant", id)
		}

		if err := params.validate(st); err != nil {
			return err
		}

		if params.Email != t.Email {
			u, _, err := backingUser(st, id, params.Name, params.Email)
			if err != nil {
				return err
			}

			relinkOccupant(st, t, u.ID)
		}

		t.Name = params.Name
		t.Email = params.Email
		t.Phone = params.Phone

		if err := s.assignUnit(st, t, params.UnitID); err != nil {
			return err
		}

		updated = *t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// relinkOccupant points the tenant and its occupied unit at a new user id.
func relinkOccupant(st *State, t *Tenant, userID int64) {
	if u, ok := st.Data.Unit(t.UnitID); ok && u.TenantID != nil && *u.TenantID == t.UserID {
		u.TenantID = &userID
	}

	t.UserID = userID
}

func (s *Service) Tenants(ctx context.Context) ([]Tenant, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return st.Data.Tenants, nil
}

func (s *Service) Tenant(ctx context.Context, id int64) (*Tenant, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	t, ok := st.Data.Tenant(id)
	if !ok {
		return nil, notFound("tenant", id)
	}

	return t, nil
}

// assignUnit moves t into unitID. The new unit must exist and be vacant or
// already held by t; the previous unit, if different, is vacated.
func (s *Service) assignUnit(st *State, t *Tenant, unitID int64) error {
	next, ok := st.Data.Unit(unitID)
	if !ok {
		return notFound("unit", unitID)
	}

	if next.Occupied && (next.TenantID == nil || *next.TenantID != t.UserID) {
		return fmt.Errorf("unit %d: %w", unitID, ErrUnitOccupied)
	}

	if t.UnitID != 0 && t.UnitID != unitID {
		prev, found := st.Data.Unit(t.UnitID)
		if found {
			prev.Occupied = false
			prev.TenantID = nil
		} else {
			s.log.Warn("previous unit of tenant not found", "tenant_id", t.ID, "unit_id", t.UnitID)
		}
	}

	userID := t.UserID
	next.Occupied = true
	next.TenantID = &userID
	t.UnitID = unitID
	t.PropertyID = next.PropertyID

	return nil
}
