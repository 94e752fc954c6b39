package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a first or last name is valid
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: field, Message: field + " must be at least 2 characters"}
	}
	return nil
}

// ValidateAge checks an optional age field
func ValidateAge(age *int) error {
	if age == nil {
		return nil
	}
	if *age < 13 || *age > 120 {
		return ValidationError{Field: "age", Message: "age must be between 13 and 120"}
	}
	return nil
}

// ValidateOccupation checks an optional occupation field
func ValidateOccupation(occupation *string) error {
	if occupation == nil {
		return nil
	}
	if len(strings.TrimSpace(*occupation)) < 2 {
		return ValidationError{Field: "occupation", Message: "occupation must be at least 2 characters"}
	}
	return nil
}
