package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

// Kind names one exportable table.
type Kind string

const (
	KindPayments    Kind = "payments"
	KindLedger      Kind = "ledger"
	KindMaintenance Kind = "maintenance"
)

// Kinds lists every exportable table.
var Kinds = []Kind{KindPayments, KindLedger, KindMaintenance}

// ParseKind accepts a kind name, with or without a ".csv" suffix.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimSuffix(s, ".csv"))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: unknown export %q", rental.ErrValidation, s)
}

// Source hands out a consistent copy of the store.
type Source interface {
	Snapshot(ctx context.Context) (*rental.State, error)
}

// Service writes store tables as CSV, filtered by what the actor may see.
type Service struct {
	src Source
}

func NewService(src Source) *Service {
	return &Service{src: src}
}

// Write renders the kind table for actor into w.
func (s *Service) Write(ctx context.Context, w io.Writer, actor rental.User, kind Kind) error {
	st, err := s.src.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	cw := csv.NewWriter(w)

	switch kind {
	case KindPayments:
		err = writePayments(cw, st, actor)
	case KindLedger:
		err = writeLedger(cw, st)
	case KindMaintenance:
		err = writeMaintenance(cw, st, actor)
	default:
		return fmt.Errorf("%w: unknown export %q", rental.ErrValidation, kind)
	}

	if err != nil {
		return fmt.Errorf("writing %s: %w", kind, err)
	}

	cw.Flush()

	return cw.Error()
}

// WriteDir exports every table the actor may read into dir and returns the
// written paths.
func (s *Service) WriteDir(ctx context.Context, dir string, actor rental.User, kinds ...Kind) ([]string, error) {
	if len(kinds) == 0 {
		kinds = Kinds
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(kinds))

	for _, kind := range kinds {
		path := filepath.Join(dir, string(kind)+".csv")

		if err := s.writeFile(ctx, path, actor, kind); err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func (s *Service) writeFile(ctx context.Context, path string, actor rental.User, kind Kind) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.Write(ctx, f, actor, kind); err != nil {
		return err
	}

	return f.Close()
}

func writePayments(cw *csv.Writer, st *rental.State, actor rental.User) error {
	payments := rental.VisiblePayments(actor, st.Data.Tenants, st.Data.Payments)
	payments = append([]rental.Payment(nil), payments...)
	rental.SortPayments(payments)

	if err := cw.Write([]string{"id", "tenant", "property", "unit", "lease_id", "amount", "due_date", "status", "paid_date"}); err != nil {
		return err
	}

	for _, p := range payments {
		paid := ""
		if p.PaidDate != nil {
			paid = p.PaidDate.String()
		}

		err := cw.Write([]string{
			itoa(p.ID),
			tenantName(st, p.TenantID),
			propertyName(st, p.PropertyID),
			unitNumber(st, p.UnitID),
			itoa(p.LeaseID),
			rental.FormatAmount(p.Amount),
			p.DueDate.String(),
			string(p.Status),
			paid,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// writeLedger uses the column names the ledger importer recognises.
func writeLedger(cw *csv.Writer, st *rental.State) error {
	if err := cw.Write([]string{"date", "description", "amount", "type", "payment_id"}); err != nil {
		return err
	}

	for _, e := range st.Data.Expenses {
		payment := ""
		if e.PaymentID != nil {
			payment = itoa(*e.PaymentID)
		}

		if err := cw.Write([]string{e.Date.String(), e.Description, rental.FormatAmount(e.Amount), string(e.Type), payment}); err != nil {
			return err
		}
	}

	return nil
}

func writeMaintenance(cw *csv.Writer, st *rental.State, actor rental.User) error {
	requests := rental.VisibleRequests(actor, st.Data.Tenants, st.Data.MaintenanceRequests)

	if err := cw.Write([]string{"id", "date", "tenant", "property", "unit", "description", "priority", "status", "vendor"}); err != nil {
		return err
	}

	for _, r := range requests {
		vendor := ""
		if r.VendorID != nil {
			if u, ok := st.User(*r.VendorID); ok {
				vendor = u.Name
			}
		}

		err := cw.Write([]string{
			itoa(r.ID),
			r.Date.String(),
			tenantName(st, r.TenantID),
			propertyName(st, r.PropertyID),
			unitNumber(st, r.UnitID),
			r.Description,
			string(r.Priority),
			string(r.Status),
			vendor,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func tenantName(st *rental.State, id int64) string {
	if t, ok := st.Data.Tenant(id); ok {
		return t.Name
	}

	return ""
}

func propertyName(st *rental.State, id int64) string {
	if p, ok := st.Data.Property(id); ok {
		return p.Name
	}

	return ""
}

func unitNumber(st *rental.State, id int64) string {
	if u, ok := st.Data.Unit(id); ok {
		return u.Number
	}

	return ""
}
