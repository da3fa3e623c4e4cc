package rental_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

var testNow = time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)

// memory backs a MockRepository with a serialized copy of the store, so every
// Load hands out a fresh state like a real repository does.
type memory struct {
	t       *testing.T
	raw     []byte
	saves   int
	session *int64
}

func (m *memory) load(context.Context) (*rental.State, error) {
	st := rental.NewState()
	if m.raw == nil {
		return st, nil
	}

	require.NoError(m.t, json.Unmarshal(m.raw, st))
	st.Data.Normalize()

	return st, nil
}

func (m *memory) save(_ context.Context, st *rental.State) error {
	raw, err := json.Marshal(st)
	require.NoError(m.t, err)

	m.raw = raw
	m.saves++

	return nil
}

func (m *memory) state() *rental.State {
	st, _ := m.load(context.Background())
	return st
}

func newTestService(t *testing.T) (*rental.Service, *memory) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := rental.NewMockRepository(ctrl)
	mem := &memory{t: t}

	repo.EXPECT().Load(gomock.Any()).DoAndReturn(mem.load).AnyTimes()
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(mem.save).AnyTimes()
	repo.EXPECT().Session(gomock.Any()).DoAndReturn(func(context.Context) (int64, bool, error) {
		if mem.session == nil {
			return 0, false, nil
		}

		return *mem.session, true, nil
	}).AnyTimes()
	repo.EXPECT().SetSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id int64) error {
		mem.session = &id
		return nil
	}).AnyTimes()
	repo.EXPECT().ClearSession(gomock.Any()).DoAndReturn(func(context.Context) error {
		mem.session = nil
		return nil
	}).AnyTimes()

	svc := rental.NewService(repo, nil, rental.WithClock(func() time.Time { return testNow }))

	return svc, mem
}

func mustDate(t *testing.T, s string) rental.Date {
	t.Helper()

	d, err := rental.ParseDate(s)
	require.NoError(t, err)

	return d
}

// fixture is a property with two vacant units.
type fixture struct {
	property rental.Property
	u1, u2   rental.Unit
}

func seedProperty(t *testing.T, svc *rental.Service) fixture {
	t.Helper()

	ctx := context.Background()

	p, err := svc.CreateProperty(ctx, rental.PropertyParams{Name: "P1", Address: "1 Main St"})
	require.NoError(t, err)

	u1, err := svc.CreateUnit(ctx, rental.UnitParams{PropertyID: p.ID, Number: "U1", Rent: 100000})
	require.NoError(t, err)

	u2, err := svc.CreateUnit(ctx, rental.UnitParams{PropertyID: p.ID, Number: "U2", Rent: 120000})
	require.NoError(t, err)

	return fixture{property: *p, u1: *u1, u2: *u2}
}

func unitByID(t *testing.T, st *rental.State, id int64) rental.Unit {
	t.Helper()

	u, ok := st.Data.Unit(id)
	require.True(t, ok, "unit %d", id)

	return *u
}
