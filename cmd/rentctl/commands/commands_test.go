package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type cli struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "file")

	return &cli{t: t, dir: t.TempDir()}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()

	var out bytes.Buffer

	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--data-dir", c.dir}, args...))

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()

	out, err := c.run(args...)
	require.NoError(c.t, err, out)

	return out
}

func TestSessionCommands(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("whoami")
	assert.ErrorIs(t, err, rental.ErrNoSession)

	_, err = c.run("seed")
	assert.ErrorContains(t, err, "password required")

	out := c.mustRun("seed", "--password", "s3cret")
	assert.Contains(t, out, "Admin account admin@example.com created")

	out = c.mustRun("seed", "--password", "other")
	assert.Contains(t, out, "nothing seeded")

	_, err = c.run("login", "admin@example.com", "--password", "wrong")
	assert.ErrorIs(t, err, rental.ErrInvalidCredentials)

	out = c.mustRun("login", "ADMIN@example.com", "--password", "s3cret")
	assert.Contains(t, out, "Logged in as admin@example.com (admin)")

	out = c.mustRun("whoami")
	assert.Contains(t, out, "<admin@example.com> admin")

	out = c.mustRun("user", "create", "--name", "Olive Owner", "--email", "olive@example.com", "--role", "owner", "--password", "pw")
	assert.Contains(t, out, "Created owner olive@example.com")
	assert.NotContains(t, out, "Temporary password")

	out = c.mustRun("user", "create", "--name", "Val Vendor", "--email", "val@example.com", "--role", "vendor")
	assert.Contains(t, out, "Temporary password")

	out = c.mustRun("user", "list", "--role", "vendor")
	assert.Contains(t, out, "val@example.com")
	assert.NotContains(t, out, "olive@example.com")

	c.mustRun("logout")

	_, err = c.run("whoami")
	assert.ErrorIs(t, err, rental.ErrNoSession)

	c.mustRun("login", "olive@example.com", "--password", "pw")

	_, err = c.run("user", "create", "--name", "X", "--email", "x@example.com")
	assert.ErrorIs(t, err, rental.ErrForbidden)

	_, err = c.run("report", "profit")
	assert.ErrorIs(t, err, rental.ErrForbidden)

	out = c.mustRun("report", "owner")
	assert.Contains(t, out, "PROPERTY")
}

func TestLedgerImportExport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("seed", "--password", "s3cret")
	c.mustRun("login", "admin@example.com", "--password", "s3cret")

	file := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(file, []byte("date,description,amount,type\n2024-01-20,Plumber,150.00,Expense\n2024-01-21,Parking,40.00,Income\n"), 0o600))

	out := c.mustRun("import", "ledger", file, "--dry-run")
	assert.Contains(t, out, "Detected rentbook layout")
	assert.Contains(t, out, "Plumber")
	assert.Contains(t, out, "Dry run")

	out = c.mustRun("report", "profit")
	assert.Contains(t, out, "0.00")
	assert.NotContains(t, out, "150.00")

	out = c.mustRun("import", "ledger", file)
	assert.Contains(t, out, "Booked 2 entries")

	out = c.mustRun("report", "profit")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "-110.00")

	out = c.mustRun("export", "ledger", "--stdout")
	assert.Contains(t, out, "date,description,amount,type,payment_id")
	assert.Contains(t, out, "Parking")

	_, err := c.run("export", "--stdout")
	assert.ErrorContains(t, err, "exactly one table")

	_, err = c.run("export", "leases")
	assert.ErrorIs(t, err, rental.ErrValidation)

	dir := filepath.Join(t.TempDir(), "out")
	out = c.mustRun("export", "-o", dir)

	for _, name := range []string{"payments.csv", "ledger.csv", "maintenance.csv"} {
		assert.Contains(t, out, filepath.Join(dir, name))
		assert.FileExists(t, filepath.Join(dir, name))
	}
}
