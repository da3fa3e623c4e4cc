package rental_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

func TestSchedule(t *testing.T) {
	type args struct {
		start, end string
		rent       int64
	}

	type testCase struct {
		name    string
		args    args
		wantDue []string
		wantErr bool
	}

	tests := []testCase{
		{
			name:    "ThreeMonthsInclusive",
			args:    args{start: "2024-01-15", end: "2024-03-15", rent: 100000},
			wantDue: []string{"2024-01-15", "2024-02-15", "2024-03-15"},
		},
		{
			name:    "EndBeforeNextDueExcludesIt",
			args:    args{start: "2024-01-15", end: "2024-03-14", rent: 100000},
			wantDue: []string{"2024-01-15", "2024-02-15"},
		},
		{
			name:    "ZeroDuration",
			args:    args{start: "2024-06-01", end: "2024-06-01", rent: 0},
			wantDue: []string{"2024-06-01"},
		},
		{
			name:    "MonthEndClampsAndRecovers",
			args:    args{start: "2024-01-31", end: "2024-05-31", rent: 5000},
			wantDue: []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31"},
		},
		{
			name:    "NonLeapFebruary",
			args:    args{start: "2023-01-30", end: "2023-03-01", rent: 5000},
			wantDue: []string{"2023-01-30", "2023-02-28"},
		},
		{
			name:    "CrossesYear",
			args:    args{start: "2024-11-10", end: "2025-01-10", rent: 5000},
			wantDue: []string{"2024-11-10", "2024-12-10", "2025-01-10"},
		},
		{
			name:    "StartAfterEnd",
			args:    args{start: "2024-03-01", end: "2024-02-01", rent: 5000},
			wantErr: true,
		},
		{
			name:    "NegativeRent",
			args:    args{start: "2024-03-01", end: "2024-04-01", rent: -1},
			wantErr: true,
		},
		{
			name:    "TooLong",
			args:    args{start: "2000-01-01", end: "2200-01-01", rent: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rental.Schedule(rental.LeaseTerms{
				TenantID:   1,
				PropertyID: 2,
				UnitID:     3,
				LeaseID:    4,
				Start:      mustDate(t, tt.args.start),
				End:        mustDate(t, tt.args.end),
				Rent:       tt.args.rent,
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, rental.ErrValidation)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.wantDue))

			for i, p := range got {
				assert.Equal(t, tt.wantDue[i], p.DueDate.String())
				assert.Equal(t, tt.args.rent, p.Amount)
				assert.Equal(t, rental.PaymentDue, p.Status)
				assert.Equal(t, int64(4), p.LeaseID)
				assert.Nil(t, p.PaidDate)

				if i > 0 {
					assert.True(t, got[i-1].DueDate.Before(p.DueDate))
				}
			}
		})
	}
}

func TestDate_AddMonths(t *testing.T) {
	d := rental.NewDate(2024, 1, 31)

	assert.Equal(t, "2024-02-29", d.AddMonths(1).String())
	assert.Equal(t, "2024-04-30", d.AddMonths(3).String())
	assert.Equal(t, "2025-01-31", d.AddMonths(12).String())
	assert.Equal(t, "2023-12-31", d.AddMonths(-1).String())
}

func TestParseDate(t *testing.T) {
	_, err := rental.ParseDate("2024-02-30")
	assert.ErrorIs(t, err, rental.ErrValidation)

	_, err = rental.ParseDate("15/01/2024")
	assert.ErrorIs(t, err, rental.ErrValidation)

	d, err := rental.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, 29, d.Day())
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d rental.Date

	require.NoError(t, d.UnmarshalJSON([]byte(`"2024-01-15T00:00:00.000Z"`)))
	assert.Equal(t, "2024-01-15", d.String())

	require.NoError(t, d.UnmarshalJSON([]byte(`""`)))
	assert.True(t, d.IsZero())

	assert.Error(t, d.UnmarshalJSON([]byte(`"yesterday"`)))
}

func TestParseAmount(t *testing.T) {
	tests := map[string]int64{
		"1000":      100000,
		"1000.5":    100050,
		"1,234.56":  123456,
		" 0.005 ":   1,
		"12.344999": 1234,
	}

	for in, want := range tests {
		got, err := rental.ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := rental.ParseAmount("-5")
	assert.ErrorIs(t, err, rental.ErrValidation)

	_, err = rental.ParseAmount("abc")
	assert.ErrorIs(t, err, rental.ErrValidation)

	assert.Equal(t, "1234.50", rental.FormatAmount(123450))
}
