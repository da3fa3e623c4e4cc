package rental

import (
	"context"
	"strings"
)

type LedgerParams struct {
	Date        Date
	Description string
	Amount      int64
	Type        LedgerType
}

func (p *LedgerParams) validate() error {
	p.Description = strings.TrimSpace(p.Description)

	switch {
	case p.Date.IsZero():
		return invalid("date is required")
	case p.Description == "":
		return invalid("description is required")
	case p.Amount < 0:
		return invalid("amount must not be negative")
	case !p.Type.Valid():
		return invalid("unknown ledger type %q", p.Type)
	}

	return nil
}

func (s *Service) AddLedgerEntry(ctx context.Context, params LedgerParams) (*LedgerEntry, error) {
	entries, err := s.AddLedgerEntries(ctx, []LedgerParams{params})
	if err != nil {
		return nil, err
	}

	return &entries[0], nil
}

// AddLedgerEntries books several manual entries at once. Either all of them are
// stored or, on the first invalid one, none.
func (s *Service) AddLedgerEntries(ctx context.Context, params []LedgerParams) ([]LedgerEntry, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for i := range params {
		if err := params[i].validate(); err != nil {
			return nil, err
		}
	}

	entries := make([]LedgerEntry, 0, len(params))

	err := s.mutate(ctx, func(st *State) error {
		id := nextID(st.Data.Expenses, func(e LedgerEntry) int64 { return e.ID })
		for i, p := range params {
			entries = append(entries, LedgerEntry{
				ID:          id + int64(i),
				Date:        p.Date,
				Description: p.Description,
				Amount:      p.Amount,
				Type:        p.Type,
			})
		}

		st.Data.Expenses = append(st.Data.Expenses, entries...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

type LedgerFilter struct {
	Type *LedgerType
	From *Date
	To   *Date
}

func (f LedgerFilter) match(e LedgerEntry) bool {
	if f.Type != nil && e.Type != *f.Type {
		return false
	}

	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}

	if f.To != nil && e.Date.After(*f.To) {
		return false
	}

	return true
}

func (s *Service) Ledger(ctx context.Context, filter LedgerFilter) ([]LedgerEntry, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(st.Data.Expenses))
	for _, e := range st.Data.Expenses {
		if filter.match(e) {
			entries = append(entries, e)
		}
	}

	return entries, nil
}
