// Package validation checks lead form data. Every rule is an ozzo-validation
// rule carrying a stable error code; codes double as message catalog prefixes
// so the same failure renders in the visitor's language.
package validation
