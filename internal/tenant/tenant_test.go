package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID_Valid(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = ParseID("1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestParseID_RejectsNonNumeric(t *testing.T) {
	bad := []string{
		"",
		"0",
		"-1",
		"1.5",
		"42abc",
		"abc",
		"42; DROP TABLE restaurants--",
		"1 OR 1=1",
		"٤٢", // non-ASCII digits
		"9999999999999999999", // longer than 18 digits
	}
	for _, raw := range bad {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidRestaurantID, "input %q", raw)
	}
}

func TestTable(t *testing.T) {
	assert.Equal(t, "menu_42", Table(Menu, 42))
	assert.Equal(t, "bill_items_7", Table(BillItems, 7))
}

func TestTable_PanicsOnUnvalidatedID(t *testing.T) {
	assert.Panics(t, func() { Table(Menu, 0) })
	assert.Panics(t, func() { Table(Bills, -3) })
}

func TestAllTables(t *testing.T) {
	names := AllTables(9)
	assert.Equal(t, []string{
		"employees_9", "menu_9", "bills_9", "bill_items_9", "attendance_9",
	}, names)
}
