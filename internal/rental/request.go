package rental

import (
	"context"
	"fmt"
	"strings"
)

type RequestParams struct {
	TenantID    int64
	PropertyID  int64
	UnitID      int64
	Description string
	Priority    Priority
}

func (p *RequestParams) validate(st *State) error {
	p.Description = strings.TrimSpace(p.Description)
	if p.Priority == "" {
		p.Priority = PriorityLow
	}

	switch {
	case p.Description == "":
		return invalid("description is required")
	case !p.Priority.Valid():
		return invalid("unknown priority %q", p.Priority)
	}

	if _, ok := st.Data.Tenant(p.TenantID); !ok {
		return notFound("tenant", p.TenantID)
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

// visibleRequest returns the request when actor may see it.
func visibleRequest(st *State, actor User, id int64) (*MaintenanceRequest, error) {
	r, ok := st.Data.Request(id)
	if !ok || len(VisibleRequests(actor, st.Data.Tenants, []MaintenanceRequest{*r})) == 0 {
		return nil, notFound("maintenance request", id)
	}

	return r, nil
}

// CreateRequest files a New maintenance request. Tenants may only file
// requests for their own tenant record; vendors cannot file requests.
func (s *Service) CreateRequest(ctx context.Context, actor User, params RequestParams) (*MaintenanceRequest, error) {
	var created MaintenanceRequest

	err := s.mutate(ctx, func(st *State) error {
		if err := params.validate(st); err != nil {
			return err
		}

		switch actor.Role {
		case RoleVendor:
			return fmt.Errorf("%w: vendors cannot file requests", ErrForbidden)
		case RoleTenant:
			if !tenantIDsFor(actor, st.Data.Tenants)[params.TenantID] {
				return fmt.Errorf("%w: tenant %d is not the acting user", ErrForbidden, params.TenantID)
			}
		}

		created = MaintenanceRequest{
			ID:          nextID(st.Data.MaintenanceRequests, func(r MaintenanceRequest) int64 { return r.ID }),
			TenantID:    params.TenantID,
			PropertyID:  params.PropertyID,
			UnitID:      params.UnitID,
			Description: params.Description,
			Priority:    params.Priority,
			Status:      MaintenanceNew,
			Date:        s.today(),
		}
		st.Data.MaintenanceRequests = append(st.Data.MaintenanceRequests, created)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateRequest edits the description and priority of a request. Status
// changes go through AssignRequest and CompleteRequest.
func (s *Service) UpdateRequest(ctx context.Context, actor User, id int64, description string, priority Priority) (*MaintenanceRequest, error) {
	var updated MaintenanceRequest

	err := s.mutate(ctx, func(st *State) error {
		r, err := visibleRequest(st, actor, id)
		if err != nil {
			return err
		}

		if actor.Role == RoleVendor {
			return fmt.Errorf("%w: vendors cannot edit requests", ErrForbidden)
		}

		description = strings.TrimSpace(description)
		if description == "" {
			return invalid("description is required")
		}

		if !priority.Valid() {
			return invalid("unknown priority %q", priority)
		}

		r.Description = description
		r.Priority = priority
		updated = *r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) AssignRequest(ctx context.Context, actor User, id, vendorID int64) (*MaintenanceRequest, error) {
	var updated MaintenanceRequest

	err := s.mutate(ctx, func(st *State) error {
		r, err := visibleRequest(st, actor, id)
		if err != nil {
			return err
		}

		vendor, ok := st.User(vendorID)
		if !ok {
			return notFound("user", vendorID)
		}

		if err := r.Assign(actor, *vendor); err != nil {
			return err
		}

		updated = *r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) CompleteRequest(ctx context.Context, actor User, id int64) (*MaintenanceRequest, error) {
	var updated MaintenanceRequest

	err := s.mutate(ctx, func(st *State) error {
		r, err := visibleRequest(st, actor, id)
		if err != nil {
			return err
		}

		if err := r.Complete(actor); err != nil {
			return err
		}

		updated = *r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Requests lists the maintenance requests visible to actor.
func (s *Service) Requests(ctx context.Context, actor User) ([]MaintenanceRequest, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return VisibleRequests(actor, st.Data.Tenants, st.Data.MaintenanceRequests), nil
}
