// Package report derives read-only summaries from a snapshot of the store.
package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// Source hands out a consistent copy of the store.
type Source interface {
	Snapshot(ctx context.Context) (*rental.State, error)
}

type Dashboard struct {
	Year           int       `json:"year"`
	Properties     int       `json:"properties"`
	Units          int       `json:"units"`
	Tenants        int       `json:"tenants"`
	Leases         int       `json:"leases"`
	OccupiedUnits  int       `json:"occupiedUnits"`
	VacantUnits    int       `json:"vacantUnits"`
	OpenRequests   int       `json:"openRequests"`
	Revenue        int64     `json:"revenue"`
	MonthlyRevenue [12]int64 `json:"monthlyRevenue"`
}

type Occupancy struct {
	PropertyID int64  `json:"propertyId"`
	Property   string `json:"property"`
	Units      int    `json:"units"`
	Occupied   int    `json:"occupied"`
	Vacant     int    `json:"vacant"`
	Rate       int    `json:"rate"`
}

type Revenue struct {
	PropertyID int64  `json:"propertyId"`
	Property   string `json:"property"`
	Revenue    int64  `json:"revenue"`
}

type ProfitLoss struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Net     int64 `json:"net"`
}

type OwnerProperty struct {
	PropertyID int64  `json:"propertyId"`
	Property   string `json:"property"`
	Address    string `json:"address"`
	Units      int    `json:"units"`
	Occupied   int    `json:"occupied"`
	Revenue    int64  `json:"revenue"`
}

type Service struct {
	src Source
	now func() time.Time
}

func NewService(src Source) *Service {
	return &Service{src: src, now: time.Now}
}

func (s *Service) snapshot(ctx context.Context) (*rental.State, error) {
	st, err := s.src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	return st, nil
}

// Dashboard summarizes the store for actor. A zero year means the current one.
func (s *Service) Dashboard(ctx context.Context, actor rental.User, year int) (*Dashboard, error) {
	st, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if year == 0 {
		year = s.now().Year()
	}

	return BuildDashboard(st, actor, year), nil
}

func (s *Service) Occupancy(ctx context.Context) ([]Occupancy, error) {
	st, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return BuildOccupancy(st), nil
}

func (s *Service) Revenue(ctx context.Context, actor rental.User) ([]Revenue, error) {
	st, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return BuildRevenue(st, actor), nil
}

// Expenses lists ledger entries of type Expense, oldest first.
func (s *Service) Expenses(ctx context.Context) ([]rental.LedgerEntry, error) {
	st, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return BuildExpenses(st), nil
}

func (s *Service) ProfitLoss(ctx context.Context) (*ProfitLoss, error) {
	st, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return BuildProfitLoss(st), nil
}

// Owner lists the properties owned by actor.
func (s *Service) Owner(ctx context.Context, actor rental.User) ([]OwnerProperty, error) {
	st, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return BuildOwner(st, actor), nil
}

func BuildDashboard(st *rental.State, actor rental.User, year int) *Dashboard {
	d := &Dashboard{
		Year:       year,
		Properties: len(st.Data.Properties),
		Units:      len(st.Data.Units),
		Tenants:    len(st.Data.Tenants),
		Leases:     len(st.Data.Leases),
	}

	for _, u := range st.Data.Units {
		if u.Occupied {
			d.OccupiedUnits++
		}
	}

	d.VacantUnits = d.Units - d.OccupiedUnits

	for _, r := range rental.VisibleRequests(actor, st.Data.Tenants, st.Data.MaintenanceRequests) {
		if r.Status != rental.MaintenanceCompleted {
			d.OpenRequests++
		}
	}

	for _, p := range rental.VisiblePayments(actor, st.Data.Tenants, st.Data.Payments) {
		if p.Status != rental.PaymentPaid {
			continue
		}

		d.Revenue += p.Amount

		when := p.DueDate
		if p.PaidDate != nil && !p.PaidDate.IsZero() {
			when = *p.PaidDate
		}

		if when.Year() == year {
			d.MonthlyRevenue[when.Month()-1] += p.Amount
		}
	}

	return d
}

func BuildOccupancy(st *rental.State) []Occupancy {
	out := make([]Occupancy, 0, len(st.Data.Properties))

	for _, prop := range st.Data.Properties {
		o := Occupancy{PropertyID: prop.ID, Property: prop.Name}

		for _, u := range st.Data.Units {
			if u.PropertyID != prop.ID {
				continue
			}

			o.Units++
			if u.Occupied {
				o.Occupied++
			}
		}

		o.Vacant = o.Units - o.Occupied
		o.Rate = rate(o.Occupied, o.Units)

		out = append(out, o)
	}

	return out
}

// rate is part/total as a percentage rounded half up.
func rate(part, total int) int {
	if total == 0 {
		return 0
	}

	return (part*200 + total) / (total * 2)
}

func BuildRevenue(st *rental.State, actor rental.User) []Revenue {
	paid := paidByProperty(rental.VisiblePayments(actor, st.Data.Tenants, st.Data.Payments))

	out := make([]Revenue, 0, len(st.Data.Properties))
	for _, prop := range st.Data.Properties {
		out = append(out, Revenue{PropertyID: prop.ID, Property: prop.Name, Revenue: paid[prop.ID]})
	}

	return out
}

func paidByProperty(payments []rental.Payment) map[int64]int64 {
	paid := make(map[int64]int64)

	for _, p := range payments {
		if p.Status == rental.PaymentPaid {
			paid[p.PropertyID] += p.Amount
		}
	}

	return paid
}

func BuildExpenses(st *rental.State) []rental.LedgerEntry {
	out := make([]rental.LedgerEntry, 0)

	for _, e := range st.Data.Expenses {
		if e.Type == rental.LedgerExpense {
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, func(a, b rental.LedgerEntry) int {
		return a.Date.Time().Compare(b.Date.Time())
	})

	return out
}

func BuildProfitLoss(st *rental.State) *ProfitLoss {
	var pl ProfitLoss

	for _, e := range st.Data.Expenses {
		switch e.Type {
		case rental.LedgerIncome:
			pl.Income += e.Amount
		case rental.LedgerExpense:
			pl.Expense += e.Amount
		}
	}

	pl.Net = pl.Income - pl.Expense

	return &pl
}

func BuildOwner(st *rental.State, actor rental.User) []OwnerProperty {
	paid := paidByProperty(st.Data.Payments)

	out := make([]OwnerProperty, 0)

	for _, prop := range st.Data.Properties {
		if prop.OwnerID == nil || *prop.OwnerID != actor.ID {
			continue
		}

		op := OwnerProperty{
			PropertyID: prop.ID,
			Property:   prop.Name,
			Address:    prop.Address,
			Revenue:    paid[prop.ID],
		}

		for _, u := range st.Data.Units {
			if u.PropertyID != prop.ID {
				continue
			}

			op.Units++
			if u.Occupied {
				op.Occupied++
			}
		}

		out = append(out, op)
	}

	return out
}
