package rental

// Visibility rules per role. Every surface that lists payments, maintenance
// requests or messages (API, export, reports, TUI) goes through these.

// tenantIDsFor returns the ids of the tenant records whose email matches the actor.
func tenantIDsFor(actor User, tenants []Tenant) map[int64]bool {
	ids := make(map[int64]bool)

	email := NormalizeEmail(actor.Email)
	for _, t := range tenants {
		if NormalizeEmail(t.Email) == email {
			ids[t.ID] = true
		}
	}

	return ids
}

// VisiblePayments filters payments down to what actor may see. Tenants only
// see payments of their own tenant record; vendors see none.
func VisiblePayments(actor User, tenants []Tenant, payments []Payment) []Payment {
	switch actor.Role {
	case RoleVendor:
		return []Payment{}
	case RoleTenant:
	default:
		return payments
	}

	own := tenantIDsFor(actor, tenants)

	visible := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if own[p.TenantID] {
			visible = append(visible, p)
		}
	}

	return visible
}

// VisibleRequests filters maintenance requests down to what actor may see.
// Tenants see their own requests, vendors the ones assigned to them.
func VisibleRequests(actor User, tenants []Tenant, requests []MaintenanceRequest) []MaintenanceRequest {
	var keep func(MaintenanceRequest) bool

	switch actor.Role {
	case RoleTenant:
		own := tenantIDsFor(actor, tenants)
		keep = func(r MaintenanceRequest) bool { return own[r.TenantID] }
	case RoleVendor:
		keep = func(r MaintenanceRequest) bool { return r.VendorID != nil && *r.VendorID == actor.ID }
	default:
		return requests
	}

	visible := make([]MaintenanceRequest, 0, len(requests))
	for _, r := range requests {
		if keep(r) {
			visible = append(visible, r)
		}
	}

	return visible
}

// CanReadMessage reports whether a message addressed to recipients reaches role.
func CanReadMessage(role Role, recipients []string) bool {
	for _, r := range recipients {
		if r == RecipientAll || r == role.Plural() || r == string(role) {
			return true
		}
	}

	return false
}

func VisibleMessages(actor User, messages []Message) []Message {
	visible := make([]Message, 0, len(messages))
	for _, m := range messages {
		if CanReadMessage(actor.Role, m.Recipients) {
			visible = append(visible, m)
		}
	}

	return visible
}

// validRecipient reports whether r names a recipient group.
func validRecipient(r string) bool {
	if r == RecipientAll {
		return true
	}

	for _, role := range Roles {
		if r == string(role) || r == role.Plural() {
			return true
		}
	}

	return false
}
