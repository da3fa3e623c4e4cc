package rental

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rental
type Repository interface {
	// Load returns a fresh copy of the persisted store. Missing or corrupt
	// documents load as empty ones.
	Load(ctx context.Context) (*State, error)
	// Save persists both documents.
	Save(ctx context.Context, st *State) error

	Session(ctx context.Context) (userID int64, ok bool, err error)
	SetSession(ctx context.Context, userID int64) error
	ClearSession(ctx context.Context) error
}

// Service is the domain store. Every mutation loads the persisted state,
// applies the change and saves it back; a failed mutation saves nothing.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time

	mu sync.Mutex
}

type Option func(*Service)

// WithClock overrides the time source used to stamp dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}

	s := &Service{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) today() Date {
	return DateOf(s.now())
}

func (s *Service) mutate(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	if err := fn(st); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, st); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}

	return nil
}

func (s *Service) read(ctx context.Context) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}

	return st, nil
}

// Snapshot returns a read-only copy of the whole store.
func (s *Service) Snapshot(ctx context.Context) (*State, error) {
	return s.read(ctx)
}

func find[T any](items []T, match func(*T) bool) (*T, bool) {
	for i := range items {
		if match(&items[i]) {
			return &items[i], true
		}
	}

	return nil, false
}

func nextID[T any](items []T, id func(T) int64) int64 {
	var maxID int64
	for _, item := range items {
		maxID = max(maxID, id(item))
	}

	return maxID + 1
}

func (st *State) User(id int64) (*User, bool) {
	return find(st.Users, func(u *User) bool { return u.ID == id })
}

func (st *State) UserByEmail(email string) (*User, bool) {
	email = NormalizeEmail(email)
	return find(st.Users, func(u *User) bool { return u.Email == email })
}

func (d *Data) Property(id int64) (*Property, bool) {
	return find(d.Properties, func(p *Property) bool { return p.ID == id })
}

func (d *Data) Unit(id int64) (*Unit, bool) {
	return find(d.Units, func(u *Unit) bool { return u.ID == id })
}

func (d *Data) Tenant(id int64) (*Tenant, bool) {
	return find(d.Tenants, func(t *Tenant) bool { return t.ID == id })
}

func (d *Data) TenantByUser(userID int64) (*Tenant, bool) {
	return find(d.Tenants, func(t *Tenant) bool { return t.UserID == userID })
}

func (d *Data) Lease(id int64) (*Lease, bool) {
	return find(d.Leases, func(l *Lease) bool { return l.ID == id })
}

func (d *Data) Payment(id int64) (*Payment, bool) {
	return find(d.Payments, func(p *Payment) bool { return p.ID == id })
}

func (d *Data) Request(id int64) (*MaintenanceRequest, bool) {
	return find(d.MaintenanceRequests, func(r *MaintenanceRequest) bool { return r.ID == id })
}

func (d *Data) Lead(id int64) (*Lead, bool) {
	return find(d.Leads, func(l *Lead) bool { return l.ID == id })
}

func (d *Data) File(id int64) (*File, bool) {
	return find(d.Files, func(f *File) bool { return f.ID == id })
}
