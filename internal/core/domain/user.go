package domain

import (
	"regexp"
	"time"
	"unicode/utf16"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// emailPattern accepts local@domain.tld where no segment contains '@' or
// whitespace. Unicode separators and BOM count as whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// User models an account holder.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PasswordLength counts UTF-16 code units, the unit browser clients use for
// string length. Characters outside the BMP count as two.
func PasswordLength(password string) int {
	n := 0
	for _, r := range password {
		n += utf16.RuneLen(r)
	}
	return n
}

// ValidEmail reports whether email has the shape local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
