//go:build unit

package readstore

import (
	"strings"
	"testing"

	"staybook/tests/common/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every select list in the write-path reads must name real columns of the
// table it scans; a drifted name would only surface as undefined_column
// inside the booking transaction.
func TestCommandReadsSQL_SelectListsMatchSchema(t *testing.T) {
	tests := []struct {
		name  string
		query string
		table string
	}{
		{name: "property snapshot", query: propertyByIDSQL, table: "properties"},
		{name: "calendar overrides", query: overridesForRangeSQL, table: "calendar_days"},
		{name: "occupied ranges", query: occupiedRangesSQL, table: "bookings"},
		{name: "booking by id", query: bookingByIDSQL, table: "bookings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns := dbtest.TableColumns(t, tt.table)
			for _, col := range selectList(t, tt.query) {
				assert.True(t, columns[col], "query selects %q, not a %s column", col, tt.table)
			}
		})
	}
}

func selectList(t *testing.T, query string) []string {
	t.Helper()

	start := strings.Index(query, "SELECT")
	end := strings.Index(query, "FROM")
	require.True(t, start >= 0 && end > start, "query has no select list")

	var cols []string
	for _, col := range strings.Split(query[start+len("SELECT"):end], ",") {
		cols = append(cols, strings.TrimSpace(col))
	}
	return cols
}
