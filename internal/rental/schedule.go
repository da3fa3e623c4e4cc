package rental

// MaxLeaseMonths bounds the number of payments a single lease may generate.
const MaxLeaseMonths = 1200

// LeaseTerms are the inputs of the monthly payment schedule.
type LeaseTerms struct {
	TenantID   int64
	PropertyID int64
	UnitID     int64
	LeaseID    int64
	Start      Date
	End        Date
	Rent       int64
}

func (t LeaseTerms) validate() error {
	switch {
	case t.Start.IsZero():
		return invalid("start date is required")
	case t.End.IsZero():
		return invalid("end date is required")
	case t.End.Before(t.Start):
		return invalid("end date %s is before start date %s", t.End, t.Start)
	case t.Rent < 0:
		return invalid("rent must not be negative")
	}

	return nil
}

// Schedule returns one Due payment per month from Start to End inclusive.
// Every due date keeps the start's day of month, clamped to the last day of
// shorter months. Payment ids are left for the caller to assign.
func Schedule(terms LeaseTerms) ([]Payment, error) {
	if err := terms.validate(); err != nil {
		return nil, err
	}

	var payments []Payment

	for k := 0; ; k++ {
		due := terms.Start.AddMonths(k)
		if due.After(terms.End) {
			break
		}

		if k == MaxLeaseMonths {
			return nil, invalid("lease exceeds %d months", MaxLeaseMonths)
		}

		payments = append(payments, Payment{
			TenantID:   terms.TenantID,
			PropertyID: terms.PropertyID,
			UnitID:     terms.UnitID,
			LeaseID:    terms.LeaseID,
			Amount:     terms.Rent,
			DueDate:    due,
			Status:     PaymentDue,
		})
	}

	return payments, nil
}
