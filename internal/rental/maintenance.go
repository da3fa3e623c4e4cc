package rental

import "fmt"

// next returns the only status reachable from s.
func (s MaintenanceStatus) next() (MaintenanceStatus, bool) {
	switch s {
	case MaintenanceNew:
		return MaintenanceAssigned, true
	case MaintenanceAssigned:
		return MaintenanceCompleted, true
	case MaintenanceCompleted:
		return "", false
	}

	return "", false
}

func (r *MaintenanceRequest) advance(to MaintenanceStatus) error {
	next, ok := r.Status.next()
	if !ok || next != to {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, r.Status, to)
	}

	r.Status = to

	return nil
}

// Assign moves a New request to Assigned. Only managers and admins may
// assign, and the assignee must be a vendor.
func (r *MaintenanceRequest) Assign(actor, vendor User) error {
	if actor.Role != RoleManager && actor.Role != RoleAdmin {
		return fmt.Errorf("%w: %s cannot assign requests", ErrForbidden, actor.Role)
	}

	if vendor.Role != RoleVendor {
		return fmt.Errorf("%w: user %d is %s, not vendor", ErrRoleMismatch, vendor.ID, vendor.Role)
	}

	if err := r.advance(MaintenanceAssigned); err != nil {
		return err
	}

	r.VendorID = &vendor.ID

	return nil
}

// Complete moves an Assigned request to Completed. Only the assigned vendor may complete it.
func (r *MaintenanceRequest) Complete(actor User) error {
	if actor.Role != RoleVendor || r.VendorID == nil || *r.VendorID != actor.ID {
		return fmt.Errorf("%w: only the assigned vendor can complete request %d", ErrForbidden, r.ID)
	}

	return r.advance(MaintenanceCompleted)
}
