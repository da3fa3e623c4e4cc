package rental

import (
	"cmp"
	"context"
	"slices"
)

type LeaseParams struct {
	TenantID   int64
	PropertyID int64
	UnitID     int64
	StartDate  Date
	EndDate    Date
	Rent       int64
}

func (p LeaseParams) terms(leaseID int64) LeaseTerms {
	return LeaseTerms{
		TenantID:   p.TenantID,
		PropertyID: p.PropertyID,
		UnitID:     p.UnitID,
		LeaseID:    leaseID,
		Start:      p.StartDate,
		End:        p.EndDate,
		Rent:       p.Rent,
	}
}

func (p LeaseParams) validate(st *State) error {
	if err := p.terms(0).validate(); err != nil {
		return err
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

// CreateLease records a lease, generates its monthly payments and moves the
// tenant into the leased unit.
func (s *Service) CreateLease(ctx context.Context, params LeaseParams) (*Lease, []Payment, error) {
	var (
		created  Lease
		payments []Payment
	)

	err := s.mutate(ctx, func(st *State) error {
		if err := params.validate(st); err != nil {
			return err
		}

		created = Lease{
			ID:         nextID(st.Data.Leases, func(l Lease) int64 { return l.ID }),
			TenantID:   params.TenantID,
			PropertyID: params.PropertyID,
			UnitID:     params.UnitID,
			StartDate:  params.StartDate,
			EndDate:    params.EndDate,
			Rent:       params.Rent,
		}

		var err error

		payments, err = Schedule(params.terms(created.ID))
		if err != nil {
			return err
		}

		t, _ := st.Data.Tenant(params.TenantID)
		if err := s.assignUnit(st, t, params.UnitID); err != nil {
			return err
		}

		id := nextID(st.Data.Payments, func(p Payment) int64 { return p.ID })
		for i := range payments {
			payments[i].ID = id + int64(i)
		}

		st.Data.Leases = append(st.Data.Leases, created)
		st.Data.Payments = append(st.Data.Payments, payments...)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &created, payments, nil
}

// UpdateLease edits the lease record only. Already generated payments are kept as they are.
func (s *Service) UpdateLease(ctx context.Context, id int64, params LeaseParams) (*Lease, error) {
	var updated Lease

	err := s.mutate(ctx, func(st *State) error {
		l, ok := st.Data.Lease(id)
		if !ok {
			return notFound("lease", id)
		}

		if err := params.validate(st); err != nil {
			return err
		}

		l.TenantID = params.TenantID
		l.PropertyID = params.PropertyID
		l.UnitID = params.UnitID
		l.StartDate = params.StartDate
		l.EndDate = params.EndDate
		l.Rent = params.Rent
		updated = *l

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Leases(ctx context.Context) ([]Lease, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	return st.Data.Leases, nil
}

func (s *Service) Lease(ctx context.Context, id int64) (*Lease, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	l, ok := st.Data.Lease(id)
	if !ok {
		return nil, notFound("lease", id)
	}

	return l, nil
}

// SortPayments orders payments by due date, then id.
func SortPayments(payments []Payment) {
	slices.SortStableFunc(payments, func(a, b Payment) int {
		if c := a.DueDate.Time().Compare(b.DueDate.Time()); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
}
