package main

import (
	"slices"

	"github.com/MrJamesThe3rd/rentbook/internal/rental"
)

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewScreen
)

type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenUnits
	ScreenPayments
	ScreenMaintenance
	ScreenMessages
	ScreenImport
	ScreenExport
	ScreenLogout
)

type menuItem struct {
	key    string
	label  string
	screen Screen
}

var screenLabels = map[Screen]string{
	ScreenDashboard:   "Dashboard",
	ScreenUnits:       "Units",
	ScreenPayments:    "Payments",
	ScreenMaintenance: "Maintenance",
	ScreenMessages:    "Messages",
	ScreenImport:      "Import ledger",
	ScreenExport:      "Export CSV",
	ScreenLogout:      "Logout",
}

var roleScreens = map[rental.Role][]Screen{
	rental.RoleAdmin:   {ScreenDashboard, ScreenUnits, ScreenPayments, ScreenMaintenance, ScreenMessages, ScreenImport, ScreenExport},
	rental.RoleManager: {ScreenDashboard, ScreenUnits, ScreenPayments, ScreenMaintenance, ScreenMessages, ScreenImport, ScreenExport},
	rental.RoleOwner:   {ScreenDashboard, ScreenMessages, ScreenExport},
	rental.RoleTenant:  {ScreenDashboard, ScreenPayments, ScreenMaintenance, ScreenMessages, ScreenExport},
	rental.RoleVendor:  {ScreenDashboard, ScreenMaintenance, ScreenMessages},
}

// menuFor numbers the screens open to role. Logout is always last.
func menuFor(role rental.Role) []menuItem {
	screens := append(slices.Clone(roleScreens[role]), ScreenLogout)

	items := make([]menuItem, 0, len(screens))
	for i, s := range screens {
		items = append(items, menuItem{
			key:    string(rune('1' + i)),
			label:  screenLabels[s],
			screen: s,
		})
	}

	return items
}
