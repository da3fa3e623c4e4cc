package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MrJamesThe3rd/rentbook/internal/rental/store"
)

func newSQLite(t *testing.T) *store.SQLite {
	t.Helper()

	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "rentbook.db"))
	require.NoError(t, err)

	return s
}

func TestNewSQLite_MigratesExistingHandle(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "shared.db")), &gorm.Config{})
	require.NoError(t, err)

	_, err = store.NewSQLite(db)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&store.Document{}))
}

func TestSQLite_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newSQLite(t)

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Users)
	assert.NotNil(t, empty.Data.Payments)

	require.NoError(t, s.Save(ctx, sampleState()))

	st := sampleState()
	st.Data.Properties[0].Name = "Renamed"
	require.NoError(t, s.Save(ctx, st))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
	require.Len(t, got.Data.Properties, 1)
	assert.Equal(t, "Renamed", got.Data.Properties[0].Name)
}

func TestSQLite_Session(t *testing.T) {
	ctx := context.Background()
	s := newSQLite(t)

	_, ok, err := s.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetSession(ctx, 7))
	require.NoError(t, s.SetSession(ctx, 8))

	id, ok, err := s.Session(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(8), id)

	require.NoError(t, s.ClearSession(ctx))

	_, ok, err = s.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
