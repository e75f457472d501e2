// Package validation holds helpers for nullable values, optional payload
// fields and JSON schema validation of request bodies.
package validation

func StringPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

func Int64Ptr(i int64) *int64 {
	return &i
}

// GetStringOrEmpty returns the string value or an empty string if nil
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetBoolOrFalse returns the bool value or false if nil
func GetBoolOrFalse(b *bool) bool {
	if b == nil {
		return false
	}
	return *b
}
