// Package tenant owns the per-restaurant table naming scheme.
//
// Every restaurant gets its own set of tables named <base>_<restaurantID>
// (menu_42, bills_42, …). The restaurant id is the only dynamic fragment ever
// interpolated into an SQL identifier in this codebase, so it MUST pass
// through ParseID / Table before any query string is built from it. A raw
// path parameter never reaches fmt.Sprintf directly.
package tenant

import (
	"errors"
	"fmt"
	"strconv"
)

// Base names of the per-tenant tables.
const (
	Menu       = "menu"
	Bills      = "bills"
	BillItems  = "bill_items"
	Employees  = "employees"
	Attendance = "attendance"
)

// ErrInvalidRestaurantID is returned for anything that is not a positive
// decimal integer. Callers translate it into a 400.
var ErrInvalidRestaurantID = errors.New("invalid restaurant id")

// ParseID validates a restaurant id taken from a route parameter or token
// claim. Strictly digits, positive, and short enough to fit in int64 —
// anything else is rejected before a table name is ever derived from it.
func ParseID(raw string) (int64, error) {
	if raw == "" || len(raw) > 18 {
		return 0, ErrInvalidRestaurantID
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, ErrInvalidRestaurantID
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidRestaurantID
	}
	return id, nil
}

// Table returns the tenant table name for a base and a validated id.
// Panics on a non-positive id: that means a caller bypassed ParseID,
// which is a programming error, not an input error.
func Table(base string, restaurantID int64) string {
	if restaurantID <= 0 {
		panic(fmt.Sprintf("tenant: table %q requested with id %d", base, restaurantID))
	}
	return fmt.Sprintf("%s_%d", base, restaurantID)
}

// AllTables lists every tenant table for a restaurant, in creation order.
func AllTables(restaurantID int64) []string {
	bases := []string{Employees, Menu, Bills, BillItems, Attendance}
	names := make([]string, len(bases))
	for i, b := range bases {
		names[i] = Table(b, restaurantID)
	}
	return names
}
