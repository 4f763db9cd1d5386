//go:build unit || e2e

package testutil

// Field mutates one key of a request payload map. A nil value removes the
// key entirely, which is how handler tests drop a required field.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
