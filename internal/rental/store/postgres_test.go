package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/rental/store"
)

func newPostgres(t *testing.T) (*store.Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return store.NewPostgres(db), mock
}

func TestPostgres_Load(t *testing.T) {
	s, mock := newPostgres(t)

	rows := sqlmock.NewRows([]string{"key", "body"}).
		AddRow("users", []byte(`[{"id":1,"email":"a@example.com","role":"admin"}]`)).
		AddRow("appData", []byte(`{"units":[{"id":2,"number":"2A","occupied":false}]}`))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, body FROM documents WHERE key IN ($1, $2)`)).
		WithArgs("users", "appData").
		WillReturnRows(rows)

	st, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, st.Users, 1)
	require.Len(t, st.Data.Units, 1)
	assert.Equal(t, "2A", st.Data.Units[0].Number)
	assert.NotNil(t, st.Data.Properties)
}

func TestPostgres_Save(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr bool
	}

	upsert := regexp.QuoteMeta(`INSERT INTO documents (key, body, updated_at)`)

	tests := []testCase{
		{
			name: "Success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(upsert).WithArgs("users", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(upsert).WithArgs("appData", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "RollbackOnError",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(upsert).WithArgs("users", sqlmock.AnyArg()).WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newPostgres(t)
			tt.setup(mock)

			err := s.Save(context.Background(), sampleState())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPostgres_Session(t *testing.T) {
	s, mock := newPostgres(t)
	query := regexp.QuoteMeta(`SELECT body FROM documents WHERE key = $1`)

	mock.ExpectQuery(query).WithArgs("currentUserId").WillReturnRows(sqlmock.NewRows([]string{"body"}))
	mock.ExpectQuery(query).WithArgs("currentUserId").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"userId":5}`)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM documents WHERE key = $1`)).
		WithArgs("currentUserId").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()

	_, ok, err := s.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	id, ok, err := s.Session(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	require.NoError(t, s.ClearSession(ctx))
}
