package users

import "strings"

// MinPasswordLength is the minimum accepted password length at signup
const MinPasswordLength = 5

// Credentials carries the email/password pair supplied at signup and signin
type Credentials struct {
	Email    string
	Password string
}

// ValidationError is an expected input failure. Its message is surfaced to
// the client verbatim inside the userErrors envelope.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateSignup checks signup input and returns the first failing check.
// The order is fixed (email, then password length, then name/bio presence):
// clients depend on which single message they get back, so checks must not
// be reordered or aggregated.
func ValidateSignup(credentials Credentials, name, bio string) *ValidationError {
	if !isEmail(credentials.Email) {
		return &ValidationError{Message: "Please provide valid email"}
	}

	if len(credentials.Password) < MinPasswordLength {
		return &ValidationError{Message: "Password length must be at least 5"}
	}

	if name == "" || bio == "" {
		return &ValidationError{Message: "Please provide name or bio"}
	}

	return nil
}

// isEmail performs a structural email check: one "@" with a non-empty local
// part and a dotted, non-empty domain
func isEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	if domain == "" || !strings.Contains(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	return true
}
