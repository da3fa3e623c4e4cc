package rental_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

func TestMaintenanceRequest_Assign(t *testing.T) {
	vendor := rental.User{ID: 7, Role: rental.RoleVendor}

	type testCase struct {
		name    string
		status  rental.MaintenanceStatus
		actor   rental.User
		vendor  rental.User
		wantErr error
	}

	tests := []testCase{
		{name: "ManagerAssigns", status: rental.MaintenanceNew, actor: rental.User{ID: 1, Role: rental.RoleManager}, vendor: vendor},
		{name: "AdminAssigns", status: rental.MaintenanceNew, actor: rental.User{ID: 1, Role: rental.RoleAdmin}, vendor: vendor},
		{name: "OwnerForbidden", status: rental.MaintenanceNew, actor: rental.User{ID: 1, Role: rental.RoleOwner}, vendor: vendor, wantErr: rental.ErrForbidden},
		{name: "VendorForbidden", status: rental.MaintenanceNew, actor: vendor, vendor: vendor, wantErr: rental.ErrForbidden},
		{name: "AssigneeNotVendor", status: rental.MaintenanceNew, actor: rental.User{ID: 1, Role: rental.RoleManager}, vendor: rental.User{ID: 8, Role: rental.RoleTenant}, wantErr: rental.ErrRoleMismatch},
		{name: "AlreadyAssigned", status: rental.MaintenanceAssigned, actor: rental.User{ID: 1, Role: rental.RoleManager}, vendor: vendor, wantErr: rental.ErrInvalidTransition},
		{name: "Completed", status: rental.MaintenanceCompleted, actor: rental.User{ID: 1, Role: rental.RoleManager}, vendor: vendor, wantErr: rental.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rental.MaintenanceRequest{ID: 1, Status: tt.status}

			err := r.Assign(tt.actor, tt.vendor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, r.Status)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, rental.MaintenanceAssigned, r.Status)
			require.NotNil(t, r.VendorID)
			assert.Equal(t, tt.vendor.ID, *r.VendorID)
		})
	}
}

func TestMaintenanceRequest_Complete(t *testing.T) {
	vendorID := int64(7)

	type testCase struct {
		name     string
		status   rental.MaintenanceStatus
		vendorID *int64
		actor    rental.User
		wantErr  error
	}

	tests := []testCase{
		{name: "AssignedVendor", status: rental.MaintenanceAssigned, vendorID: &vendorID, actor: rental.User{ID: 7, Role: rental.RoleVendor}},
		{name: "OtherVendor", status: rental.MaintenanceAssigned, vendorID: &vendorID, actor: rental.User{ID: 8, Role: rental.RoleVendor}, wantErr: rental.ErrForbidden},
		{name: "ManagerCannotComplete", status: rental.MaintenanceAssigned, vendorID: &vendorID, actor: rental.User{ID: 1, Role: rental.RoleManager}, wantErr: rental.ErrForbidden},
		{name: "SkipFromNew", status: rental.MaintenanceNew, actor: rental.User{ID: 7, Role: rental.RoleVendor}, wantErr: rental.ErrForbidden},
		{name: "NoRegression", status: rental.MaintenanceCompleted, vendorID: &vendorID, actor: rental.User{ID: 7, Role: rental.RoleVendor}, wantErr: rental.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rental.MaintenanceRequest{ID: 1, Status: tt.status, VendorID: tt.vendorID}

			err := r.Complete(tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.status, r.Status)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, rental.MaintenanceCompleted, r.Status)
		})
	}
}
