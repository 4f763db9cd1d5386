//go:build unit || e2e

package dbtest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TableColumns parses db/schema.sql and returns the column set of one
// table. Tests use it to pin hand-written SQL to the canonical schema
// without needing a running database.
func TableColumns(t *testing.T, table string) map[string]bool {
	t.Helper()

	raw := readSchemaFile(t)
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(raw, marker)
	require.GreaterOrEqual(t, start, 0, "table %q not found in schema", table)

	body := raw[start+len(marker):]
	end := strings.Index(body, ");")
	require.GreaterOrEqual(t, end, 0, "unterminated definition for table %q", table)

	columns := make(map[string]bool)
	for _, line := range strings.Split(body[:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		first := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })[0]
		switch strings.ToUpper(first) {
		case "PRIMARY", "FOREIGN", "UNIQUE", "CHECK", "CONSTRAINT":
			continue
		}
		columns[first] = true
	}
	require.NotEmpty(t, columns, "no columns parsed for table %q", table)
	return columns
}

func readSchemaFile(t *testing.T) string {
	t.Helper()

	candidates := []string{
		"db/schema.sql",
		filepath.Join("..", "db", "schema.sql"),
		filepath.Join("..", "..", "db", "schema.sql"),
		filepath.Join("..", "..", "..", "db", "schema.sql"),
		filepath.Join("..", "..", "..", "..", "db", "schema.sql"),
	}
	for _, candidate := range candidates {
		if raw, err := os.ReadFile(candidate); err == nil {
			return string(raw)
		}
	}
	t.Fatal("db/schema.sql not found from the test working directory")
	return ""
}
