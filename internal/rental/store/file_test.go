package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
	"github.com/MrJamesThe3rd/rentbook/internal/rental/store"
)

func sampleState() *rental.State {
	st := rental.NewState()
	st.Users = append(st.Users, rental.User{ID: 1, Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: rental.RoleAdmin})
	st.Data.Properties = append(st.Data.Properties, rental.Property{ID: 1, Name: "P1", Address: "1 Main St"})
	st.Data.Payments = append(st.Data.Payments, rental.Payment{
		ID: 1, TenantID: 1, Amount: 100000, DueDate: rental.NewDate(2024, 1, 15), Status: rental.PaymentDue,
	})

	return st
}

func TestFile_LoadMissingIsEmpty(t *testing.T) {
	fs, err := store.NewFile(t.TempDir())
	require.NoError(t, err)

	st, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, st.Users)
	assert.NotNil(t, st.Data.MaintenanceRequests)
	assert.NotNil(t, st.Data.Files)

	_, ok, err := fs.Session(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := store.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Save(ctx, sampleState()))

	st, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Users, 1)
	assert.Equal(t, "admin@example.com", st.Users[0].Email)
	require.Len(t, st.Data.Payments, 1)
	assert.Equal(t, "2024-01-15", st.Data.Payments[0].DueDate.String())

	raw, err := os.ReadFile(filepath.Join(dir, "appdata.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"maintenanceRequests":[]`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp files must be cleaned up")
	}
}

func TestFile_CorruptAndPartialDocuments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appdata.json"), []byte(`{"properties":[{"id":3,"name":"Old"}]}`), 0o600))

	fs, err := store.NewFile(dir)
	require.NoError(t, err)

	st, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, st.Users)
	require.Len(t, st.Data.Properties, 1)
	assert.Equal(t, "Old", st.Data.Properties[0].Name)
	assert.NotNil(t, st.Data.Units)
	assert.NotNil(t, st.Data.Leads)
}

func TestFile_Session(t *testing.T) {
	ctx := context.Background()

	fs, err := store.NewFile(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.SetSession(ctx, 42))

	id, ok, err := fs.Session(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	require.NoError(t, fs.ClearSession(ctx))
	require.NoError(t, fs.ClearSession(ctx))

	_, ok, err = fs.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_Sealed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	key, err := store.GenerateKey()
	require.NoError(t, err)

	sealer, err := store.NewSealer(key)
	require.NoError(t, err)

	fs, err := store.NewFile(dir, store.WithSealer(sealer))
	require.NoError(t, err)
	require.NoError(t, fs.Save(ctx, sampleState()))

	raw, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "admin@example.com")

	st, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, st.Users, 1)

	otherKey, err := store.GenerateKey()
	require.NoError(t, err)

	otherSealer, err := store.NewSealer(otherKey)
	require.NoError(t, err)

	wrong, err := store.NewFile(dir, store.WithSealer(otherSealer))
	require.NoError(t, err)

	_, err = wrong.Load(ctx)
	assert.Error(t, err, "a wrong key must not be mistaken for an empty store")
}

func TestNewSealer_InvalidKey(t *testing.T) {
	_, err := store.NewSealer("invalid-key-format")
	assert.ErrorContains(t, err, "parsing identity")
}
