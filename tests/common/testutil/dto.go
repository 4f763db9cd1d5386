//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"
)

// DtoMap renders a request DTO to the map shape the JSON binder sees, then
// applies mutations so a test can corrupt one field without redeclaring the
// whole payload.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal dto: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal dto: %v", err)
	}
	for _, f := range muts {
		f(m)
	}
	return m
}
