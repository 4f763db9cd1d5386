//go:build unit

package repository

import (
	"regexp"
	"strings"
	"testing"

	"staybook/tests/common/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var excludedRefPattern = regexp.MustCompile(`([a-z_]+) = EXCLUDED\.([a-z_]+)`)

// The upsert is the only statement writing calendar_days; every column it
// names must exist in db/schema.sql or the whole calendar write path dies
// with undefined_column at runtime.
func TestUpsertOverrideSQL_ColumnsMatchSchema(t *testing.T) {
	columns := dbtest.TableColumns(t, "calendar_days")

	open := strings.Index(upsertOverrideSQL, "(")
	closing := strings.Index(upsertOverrideSQL, ")")
	require.Greater(t, closing, open)

	for _, col := range strings.Split(upsertOverrideSQL[open+1:closing], ",") {
		col = strings.TrimSpace(col)
		assert.True(t, columns[col], "insert references %q, not a calendar_days column", col)
	}

	for _, match := range excludedRefPattern.FindAllStringSubmatch(upsertOverrideSQL, -1) {
		assert.True(t, columns[match[1]], "update sets %q, not a calendar_days column", match[1])
		assert.True(t, columns[match[2]], "update reads EXCLUDED.%s, not a calendar_days column", match[2])
	}
}
