package validate

import "strings"

// passwordSymbols is the fixed punctuation set accepted by the sign-up
// password policy.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:,.<>?/|~"

// The policy is five independent predicates; a password is valid iff all
// five hold. They are exported separately so callers can report exactly
// which requirement failed.

// HasMinLength reports whether s is at least 8 characters long.
func HasMinLength(s string) bool { return len(s) >= 8 }

// HasUppercase reports whether s contains an ASCII uppercase letter.
func HasUppercase(s string) bool { return strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") }

// HasLowercase reports whether s contains an ASCII lowercase letter.
func HasLowercase(s string) bool { return strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") }

// HasDigit reports whether s contains a digit.
func HasDigit(s string) bool { return strings.ContainsAny(s, "0123456789") }

// HasSymbol reports whether s contains a symbol from the fixed set.
func HasSymbol(s string) bool { return strings.ContainsAny(s, passwordSymbols) }

// Password checks the full sign-up policy and returns a message per failed
// requirement. An empty slice means the password is acceptable.
func Password(s string) []string {
	var problems []string
	if !HasMinLength(s) {
		problems = append(problems, "must be at least 8 characters")
	}
	if !HasUppercase(s) {
		problems = append(problems, "must contain an uppercase letter")
	}
	if !HasLowercase(s) {
		problems = append(problems, "must contain a lowercase letter")
	}
	if !HasDigit(s) {
		problems = append(problems, "must contain a digit")
	}
	if !HasSymbol(s) {
		problems = append(problems, "must contain a symbol")
	}
	return problems
}
