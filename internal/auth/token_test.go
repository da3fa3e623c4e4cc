package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	type testCase struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}

	svc := NewTokenService("test-secret", time.Hour)

	tests := []testCase{
		{
			name: "Valid",
			token: func(t *testing.T) string {
				tok, err := svc.Generate(3, "a@example.com", "manager")
				require.NoError(t, err)

				return tok
			},
		},
		{
			name: "Expired",
			token: func(t *testing.T) string {
				old := NewTokenService("test-secret", time.Hour)
				old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

				tok, err := old.Generate(3, "a@example.com", "manager")
				require.NoError(t, err)

				return tok
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "WrongSecret",
			token: func(t *testing.T) string {
				tok, err := NewTokenService("other-secret", time.Hour).Generate(3, "a@example.com", "manager")
				require.NoError(t, err)

				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Garbage",
			token:   func(*testing.T) string { return "not.a.token" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Validate(tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(3), claims.UserID)
			assert.Equal(t, "a@example.com", claims.Email)
			assert.Equal(t, "manager", claims.Role)
			assert.Equal(t, "3", claims.Subject)
			assert.NotEmpty(t, claims.ID)
		})
	}
}
