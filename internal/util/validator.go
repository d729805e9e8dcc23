package util

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var (
	userIDRe = regexp.MustCompile(`^[a-zA-Z0-9]{4,20}$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// upper bound for a single amount
var maxAmount = decimal.NewFromInt(10_000_000_000)

// ValidateUserID checks the login id shape.
func ValidateUserID(id string) error {
	if !userIDRe.MatchString(id) {
		return Invalid("id", "id must be 4-20 alphanumeric characters")
	}
	return nil
}

// ValidateEmail checks the email shape.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return Invalid("email", "invalid email format")
	}
	return nil
}

// ValidateNickname checks nickname length in characters.
func ValidateNickname(nickname string) error {
	n := utf8.RuneCountInString(nickname)
	if n < 2 || n > 50 {
		return Invalid("nickname", "nickname must be 2-50 characters")
	}
	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return Invalid("password", "password must be at least 8 characters")
	}
	return nil
}

// ValidateAmount requires a positive amount below the upper bound.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return Invalid("amount", "amount must be positive")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return Invalid("amount", "amount too large")
	}
	return nil
}

// ValidateDate requires YYYY-MM-DD.
func ValidateDate(field, dateStr string) error {
	if dateStr == "" {
		return Invalid(field, "%s is required", field)
	}
	if _, err := time.Parse(DateLayout, dateStr); err != nil {
		return Invalid(field, "%s must be YYYY-MM-DD", field)
	}
	return nil
}

// ValidateCode requires a non-empty code of reasonable length.
func ValidateCode(field, code string) error {
	if code == "" {
		return Invalid(field, "%s is required", field)
	}
	if len(code) > 30 {
		return Invalid(field, "%s too long, max 30 characters", field)
	}
	return nil
}
