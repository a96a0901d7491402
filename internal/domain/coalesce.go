package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FirstFloat returns the first non-nil *float64 from ptrs, or nil.
func FirstFloat(ptrs ...*float64) *float64 {
	for _, p := range ptrs {
		if p != nil {
			return p
		}
	}
	return nil
}

// Float64FromPtrWithDefault returns the first non-nil *float64 value, or the fallback.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// BoolFromPtrWithDefault returns the first non-nil *bool value, or the fallback.
func BoolFromPtrWithDefault(fallback bool, ptrs ...*bool) bool {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// FloatPtr returns a pointer to v. Convenience for literals in builders and tests.
func FloatPtr(v float64) *float64 {
	return &v
}
