package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type User struct {
	BaseModel

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// Initials returns the upper-cased first letters of the first and last
// words of the user's name: "Ada King Lovelace" -> "AL", "Plato" -> "P".
func (u User) Initials() string {
	return Initials(u.Name)
}

func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}

	first := firstRune(parts[0])
	if len(parts) == 1 {
		return first
	}

	return first + firstRune(parts[len(parts)-1])
}

func firstRune(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
