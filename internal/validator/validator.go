// Package validator wraps a shared validator instance and the enum checks
// applied at the service layer. GraphQL inputs do not pass through Gin's
// binding engine, so services call these directly.
package validator

import (
	"github.com/go-playground/validator/v10"

	"fintrack/internal/models"
)

var validate = validator.New()

// Email reports whether s is a well-formed email address.
func Email(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// Password reports whether s satisfies the password policy.
func Password(s string) bool {
	return validate.Var(s, "required,min=8,max=128") == nil
}

// CategoryColor reports whether s names one of the palette colors.
func CategoryColor(s string) bool {
	for _, c := range models.CategoryColors {
		if string(c) == s {
			return true
		}
	}
	return false
}

// CategoryIcon reports whether s names one of the icon set tags.
func CategoryIcon(s string) bool {
	for _, icon := range models.CategoryIcons {
		if icon == s {
			return true
		}
	}
	return false
}
