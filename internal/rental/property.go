package rental

import (
	"context"
	"fmt"
	"strings"
)

type PropertyParams struct {
	Name      string
	Address   string
	OwnerID   *int64
	ManagerID *int64
}

func (p *PropertyParams) validate(st *State) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)

	if p.Name == "" {
		return invalid("property name is required")
	}

	if p.Address == "" {
		return invalid("property address is required")
	}

	if p.OwnerID != nil {
		if err := requireRole(st, *p.OwnerID, RoleOwner); err != nil {
			return fmt.Errorf("owner: %w", err)
		}
	}

	if p.ManagerID != nil {
		if err := requireRole(st, *p.ManagerID, RoleManager, RoleAdmin); err != nil {
			return fmt.Errorf("manager: %w", err)
		}
	}

	return nil
}

func requireRole(st *State, userID int64, roles ...Role) error {
	u, ok := st.User(userID)
	if !ok {
		return notFound("user", userID)
	}

	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}

	return fmt.Errorf("%w: user %d is %s", ErrRoleMismatch, userID, u.Role)
}

func (s *Service) CreateProperty(ctx context.Context, params PropertyParams) (*Property, error) {
	var created Property

	err := s.mutate(ctx, func(st *State) error {
		if err := params.validate(st); err != nil {
			return err
		}

		created = Property{
			ID:        nextID(st.Data.Properties, func(p Property) int64 { return p.ID }),
			Name:      params.Name,
			Address:   params.Address,
			OwnerID:   params.OwnerID,
			ManagerID: params.ManagerID,
		}
		st.Data.Properties = append(st.Data.Properties, created)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Service) UpdateProperty(ctx context.Context, id int64, params PropertyParams) (*Property, error) {
	var updated Property

	err := s.mutate(ctx, func(st *State) error {
		p, ok := st.Data.Property(id)
		if !ok {
			return notFound("property", id)
		}

		if err := params.validate(st); err != nil {
			return err
		}

		p.Name = params.Name
		p.Address = params.Address
		p.OwnerID = params.OwnerID
		p.ManagerID = params.ManagerID
		updated = *p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Properties(ctx context.Context) ([]Property, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return st.Data.Properties, nil
}

func (s *Service) Property(ctx context.Context, id int64) (*Property, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	p, ok := st.Data.Property(id)
	if !ok {
		return nil, notFound("property", id)
	}

	return p, nil
}

type UnitParams struct {
	PropertyID int64
	Number     string
	Rent       int64
}

func (p *UnitParams) validate(st *State) error {
	p.Number = strings.TrimSpace(p.Number)

	if p.Number == "" {
		return invalid("unit number is required")
	}

	if p.Rent < 0 {
		return invalid("rent must not be negative")
	}

	if _, ok := st.Data.Property(p.PropertyID); !ok {
		return notFound("property", p.PropertyID)
	}

	return nil
}

func (s *Service) CreateUnit(ctx context.Context, params UnitParams) (*Unit, error) {
	var created Unit

	err := s.mutate(ctx, func(st *State) error {
		if err := params.validate(st); err != nil {
			return err
		}

		created = Unit{
			ID:         nextID(st.Data.Units, func(u Unit) int64 { return u.ID }),
			PropertyID: params.PropertyID,
			Number:     params.Number,
			Rent:       params.Rent,
		}
		st.Data.Units = append(st.Data.Units, created)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateUnit edits a unit's attributes. Occupancy is owned by tenant assignment
// and is left untouched; the occupant follows the unit to a new property.
func (s *Service) UpdateUnit(ctx context.Context, id int64, params UnitParams) (*Unit, error) {
	var updated Unit

	err := s.mutate(ctx, func(st *State) error {
		u, ok := st.Data.Unit(id)
		if !ok {
			return notFound("unit", id)
		}

		if err := params.validate(st); err != nil {
			return err
		}

		if u.PropertyID != params.PropertyID {
			for i := range st.Data.Tenants {
				if st.Data.Tenants[i].UnitID == id {
					st.Data.Tenants[i].PropertyID = params.PropertyID
				}
			}
		}

		u.PropertyID = params.PropertyID
		u.Number = params.Number
		u.Rent = params.Rent
		updated = *u

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Units lists units, optionally only those of one property.
func (s *Service) Units(ctx context.Context, propertyID *int64) ([]Unit, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	if propertyID == nil {
		return st.Data.Units, nil
	}

	units := make([]Unit, 0)
	for _, u := range st.Data.Units {
		if u.PropertyID == *propertyID {
			units = append(units, u)
		}
	}

	return units, nil
}

func (s *Service) Unit(ctx context.Context, id int64) (*Unit, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	u, ok := st.Data.Unit(id)
	if !ok {
		return nil, notFound("unit", id)
	}

	return u, nil
}
