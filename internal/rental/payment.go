package rental

import (
	"context"
	"fmt"
	"slices"
)

// Payments lists the payments visible to actor, ordered by due date.
func (s *Service) Payments(ctx context.Context, actor User) ([]Payment, error) {
	st, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	payments := slices.Clone(VisiblePayments(actor, st.Data.Tenants, st.Data.Payments))
	SortPayments(payments)

	return payments, nil
}

// SettlePayment marks a Due payment as Paid today and books the matching
// income entry. Settling twice fails with ErrAlreadyPaid.
func (s *Service) SettlePayment(ctx context.Context, actor User, id int64) (*Payment, *LedgerEntry, error) {
	if actor.Role == RoleVendor {
		return nil, nil, fmt.Errorf("%w: vendors cannot settle payments", ErrForbidden)
	}

	var (
		paid  Payment
		entry LedgerEntry
	)

	err := s.mutate(ctx, func(st *State) error {
		p, ok := st.Data.Payment(id)
		if !ok || len(VisiblePayments(actor, st.Data.Tenants, []Payment{*p})) == 0 {
			return notFound("payment", id)
		}

		if p.Status == PaymentPaid {
			return fmt.Errorf("payment %d: %w", id, ErrAlreadyPaid)
		}

		today := s.today()
		p.Status = PaymentPaid
		p.PaidDate = &today
		paid = *p

		paymentID := p.ID
		entry = LedgerEntry{
			ID:          nextID(st.Data.Expenses, func(e LedgerEntry) int64 { return e.ID }),
			Date:        today,
			Description: RentPaymentMemo,
			Amount:      p.Amount,
			Type:        LedgerIncome,
			PaymentID:   &paymentID,
		}
		st.Data.Expenses = append(st.Data.Expenses, entry)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &paid, &entry, nil
}
