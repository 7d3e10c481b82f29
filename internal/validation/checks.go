// Package validation holds the field-level rule sets that guard every request
// before its handler runs.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Check inspects one field. It returns a failure message and false when the
// field violates its rule.
type Check func() (string, bool)

// Collect runs every check and returns the failures in the order given.
// It never stops at the first failure.
func Collect(checks ...Check) []string {
	var failures []string
	for _, check := range checks {
		if msg, ok := check(); !ok {
			failures = append(failures, msg)
		}
	}
	return failures
}

// GreaterThan requires value > min.
func GreaterThan(field string, value, min int64) Check {
	return func() (string, bool) {
		if err := validate.Var(value, fmt.Sprintf("gt=%d", min)); err != nil {
			return fmt.Sprintf("%s must be greater than %d", field, min), false
		}
		return "", true
	}
}

// NotEmpty requires a value that is not empty or whitespace only.
func NotEmpty(field, value string) Check {
	return func() (string, bool) {
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("%s must not be empty", field), false
		}
		return "", true
	}
}

// When applies check only if cond holds.
func When(cond bool, check Check) Check {
	return func() (string, bool) {
		if !cond {
			return "", true
		}
		return check()
	}
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
